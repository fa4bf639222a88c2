package room

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	echo "github.com/labstack/echo/v4"
	"github.com/syncroom/sync-server/pkg/controller/room"
	"github.com/syncroom/sync-server/pkg/protocol"
	"github.com/syncroom/sync-server/pkg/wsutils"
	"go.uber.org/fx"
)

// roomController is the unauthenticated directory surface: paginated room
// list, lock status lookup, and a lobby notifier socket that pings listeners
// whenever the room set changes. The routes come from the generated openapi
// server interface.
type roomController struct {
	roomService  *RoomService
	roomNotifier *RoomNotifier
	upgrader     websocket.Upgrader
	logger       *slog.Logger
}

func (ctrl *roomController) RoomControllerRoomList(ctx echo.Context, params room.RoomControllerRoomListParams) error {
	page := 1
	if params.Page != nil {
		page = *params.Page
	}

	result := ctrl.roomService.ListRoom(page)
	rooms := make([]room.RoomInfo, 0, len(result.Rooms))
	for _, info := range result.Rooms {
		rooms = append(rooms, room.RoomInfo{
			RoomId:      info.RoomID,
			DisplayName: info.DisplayName,
			IsLocked:    info.IsLocked,
		})
	}
	return ctx.JSON(http.StatusOK, room.RoomListResponse{
		Rooms:       rooms,
		HasNextPage: result.HasNextPage,
	})
}

func (ctrl *roomController) RoomControllerRoomInfo(ctx echo.Context, roomId string) error {
	target := ctrl.roomService.GetRoom(roomId)
	if target == nil {
		return echo.NewHTTPError(http.StatusNotFound, ErrRoomNotExist.Error())
	}
	return ctx.JSON(http.StatusOK, room.RoomLockStatusResponse{IsLocked: target.IsLocked()})
}

func (ctrl *roomController) RoomControllerRoomNotifier(ctx echo.Context) error {
	conn, err := ctrl.upgrader.Upgrade(ctx.Response().Writer, ctx.Request(), nil)
	if err != nil {
		ctrl.logger.Error(fmt.Sprintf("Unable upgrade request %+v", ctx.Request()))
		return err
	}

	w := wsutils.NewThreadSafeWriter(conn)
	defer w.Close()

	id := uuid.NewString()
	ctrl.roomNotifier.Listen(id, w)
	defer ctrl.roomNotifier.Stop(id)

	<-ctx.Request().Context().Done()
	return nil
}

func (ctrl *roomController) Resolve(router protocol.HttpRouter) error {
	go ctrl.roomNotifier.OnUpdateRooms(context.Background(), func(w EventWriter) {
		w.WriteEvent(EvUpdateRooms, nil)
	})

	spec, err := room.GetSwagger()
	if err != nil {
		return err
	}
	spec.Servers = nil
	room.RegisterHandlers(router, ctrl)
	return nil
}

var (
	_ room.ServerInterface    = (*roomController)(nil)
	_ protocol.HttpResolvable = (*roomController)(nil)
)

type newRoomController_Params struct {
	fx.In

	RoomService  *RoomService
	RoomNotifier *RoomNotifier
	Logger       *slog.Logger
}

func NewRoomController(params newRoomController_Params) *roomController {
	return &roomController{
		roomService:  params.RoomService,
		roomNotifier: params.RoomNotifier,
		logger:       params.Logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}
