package main

import (
	"github.com/syncroom/sync-server/internal/room"
	"github.com/syncroom/sync-server/pkg/protocol"
	"github.com/syncroom/sync-server/pkg/service"
	"go.uber.org/fx"
)

func main() {
	fx.New(
		fx.Provide(
			room.NewRoomService,
			room.NewRoomNotifier,

			protocol.AsHttpController(room.NewRoomController),
			protocol.AsHttpController(room.NewSessionController),
		),

		service.LoggerModule,
		service.HttpModule,
	).Run()
}
