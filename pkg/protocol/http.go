package protocol

import (
	echo "github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

const httpControllerTag = `group:"http.controller"`

type HttpRouter = *echo.Echo

// HttpResolvable is a controller that knows how to register its own routes.
// The http service collects every controller in the group and resolves them
// before the server starts listening.
type HttpResolvable interface {
	Resolve(HttpRouter) error
}

// AsHttpController annotates a controller constructor into the http
// controller group.
func AsHttpController(f any) any {
	return fx.Annotate(
		f,
		fx.As(new(HttpResolvable)),
		fx.ResultTags(httpControllerTag),
	)
}
