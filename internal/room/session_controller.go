package room

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	echo "github.com/labstack/echo/v4"
	"github.com/syncroom/sync-server/pkg/protocol"
	"github.com/syncroom/sync-server/pkg/wsutils"
	"go.uber.org/fx"
)

var (
	ErrBadPayload   = errors.New("wrong data format")
	ErrUnknownEvent = errors.New("unknown event")
)

// sessionController runs the per-connection event loop. Each connection gets
// a generated id that doubles as its participant identity.
type sessionController struct {
	roomService *RoomService
	upgrader    websocket.Upgrader
	logger      *slog.Logger
}

func (ctrl *sessionController) SessionControllerAttach(ctx echo.Context) error {
	conn, err := ctrl.upgrader.Upgrade(ctx.Response().Writer, ctx.Request(), nil)
	if err != nil {
		ctrl.logger.Error(fmt.Sprintf("Unable upgrade request %+v", ctx.Request()))
		return err
	}

	w := wsutils.NewThreadSafeWriter(conn)
	defer w.Close()

	connID := uuid.NewString()
	defer ctrl.roomService.Disconnect(connID)

	message := &wsutils.EventMessage{}
	for {
		if err := w.ReadJSON(message); err != nil {
			return nil
		}
		ctrl.dispatch(connID, w, message)
	}
}

// wsError answers the caller with an error event. A dispatch failure never
// tears the connection down and never touches other rooms.
func (ctrl *sessionController) wsError(w EventWriter, err error) {
	ctrl.logger.Debug("request failed", slog.String("reason", err.Error()))
	w.WriteEvent(EvError, errorEvent{Message: err.Error()})
}

func (ctrl *sessionController) dispatch(connID protocol.ConnID, w EventWriter, message *wsutils.EventMessage) {
	switch message.Event {
	case EvCreateRoom:
		ctrl.handleCreateRoom(connID, w, message.Data)
	case EvJoinRoom:
		ctrl.handleJoinRoom(connID, w, message.Data)
	case EvLeaveRoom:
		ctrl.roomService.Disconnect(connID)
	case EvGetRoomInfo:
		ctrl.handleGetRoomInfo(w, message.Data)
	case EvGetRoomList:
		ctrl.handleGetRoomList(w, message.Data)
	case EvHostTimeUpdate:
		ctrl.handleHostTimeUpdate(connID, w, message.Data)
	case EvVideoPlay:
		ctrl.handlePlayPause(connID, w, message.Data, true)
	case EvVideoPause:
		ctrl.handlePlayPause(connID, w, message.Data, false)
	case EvVideoSeek:
		ctrl.handleSeek(connID, w, message.Data)
	case EvChangeVideo:
		ctrl.handleChangeVideo(connID, w, message.Data)
	case EvAddRecommendVideo:
		ctrl.handleAddRecommendVideo(w, message.Data)
	case EvVideoEnded:
		ctrl.handleVideoEnded(connID, w, message.Data)
	case EvBoreVote:
		ctrl.handleBoreVote(connID, w, message.Data)
	case EvSkipRequest:
		ctrl.handleSkipRequest(connID, w, message.Data)
	case EvChatMessage:
		ctrl.handleChatMessage(connID, w, message.Data)
	default:
		ctrl.wsError(w, ErrUnknownEvent)
	}
}

func parsePayload[T any](data string) (*T, error) {
	var payload T
	if err := json.Unmarshal([]byte(data), &payload); err != nil {
		return nil, ErrBadPayload
	}
	return &payload, nil
}

// getRoom resolves a room or answers the caller with a not-found error.
func (ctrl *sessionController) getRoom(w EventWriter, roomID string) *roomContext {
	room := ctrl.roomService.GetRoom(roomID)
	if room == nil {
		ctrl.wsError(w, ErrRoomNotExist)
	}
	return room
}

func (ctrl *sessionController) handleCreateRoom(connID protocol.ConnID, w EventWriter, data string) {
	req, err := parsePayload[createRoomRequest](data)
	if err != nil {
		ctrl.wsError(w, err)
		return
	}

	room, err := ctrl.roomService.CreateRoom(&protocol.RoomCreateOption{
		RoomID:   &req.RoomID,
		VideoID:  req.VideoID,
		Password: req.Password,
	}, connID)
	if err != nil {
		ctrl.wsError(w, err)
		return
	}
	w.WriteEvent(EvRoomCreated, roomCreatedEvent{RoomID: room.roomID})
}

func (ctrl *sessionController) handleJoinRoom(connID protocol.ConnID, w EventWriter, data string) {
	req, err := parsePayload[joinRoomRequest](data)
	if err != nil {
		ctrl.wsError(w, err)
		return
	}

	room := ctrl.getRoom(w, req.RoomID)
	if room == nil {
		return
	}
	if err := room.Join(connID, req.Nickname, req.Password, w); err != nil {
		ctrl.wsError(w, err)
		return
	}
	w.WriteEvent(EvRoomData, room.Snapshot())
}

func (ctrl *sessionController) handleGetRoomInfo(w EventWriter, data string) {
	req, err := parsePayload[roomIDRequest](data)
	if err != nil {
		ctrl.wsError(w, err)
		return
	}

	room := ctrl.getRoom(w, req.RoomID)
	if room == nil {
		return
	}
	w.WriteEvent(EvRoomInfo, roomInfoEvent{IsLocked: room.IsLocked()})
}

func (ctrl *sessionController) handleGetRoomList(w EventWriter, data string) {
	req, err := parsePayload[roomListRequest](data)
	if err != nil {
		ctrl.wsError(w, err)
		return
	}
	w.WriteEvent(EvRoomList, ctrl.roomService.ListRoom(req.Page))
}

func (ctrl *sessionController) handleHostTimeUpdate(connID protocol.ConnID, w EventWriter, data string) {
	req, err := parsePayload[hostTimeUpdateRequest](data)
	if err != nil {
		ctrl.wsError(w, err)
		return
	}

	if room := ctrl.getRoom(w, req.RoomID); room != nil {
		room.SyncHostTime(connID, req.CurrentTime)
	}
}

func (ctrl *sessionController) handlePlayPause(connID protocol.ConnID, w EventWriter, data string, play bool) {
	req, err := parsePayload[roomIDRequest](data)
	if err != nil {
		ctrl.wsError(w, err)
		return
	}

	room := ctrl.getRoom(w, req.RoomID)
	if room == nil {
		return
	}
	if play {
		room.Play(connID)
	} else {
		room.Pause(connID)
	}
}

func (ctrl *sessionController) handleSeek(connID protocol.ConnID, w EventWriter, data string) {
	req, err := parsePayload[seekRequest](data)
	if err != nil {
		ctrl.wsError(w, err)
		return
	}

	if room := ctrl.getRoom(w, req.RoomID); room != nil {
		room.Seek(connID, req.Time)
	}
}

func (ctrl *sessionController) handleChangeVideo(connID protocol.ConnID, w EventWriter, data string) {
	req, err := parsePayload[changeVideoRequest](data)
	if err != nil {
		ctrl.wsError(w, err)
		return
	}

	if room := ctrl.getRoom(w, req.RoomID); room != nil {
		room.ChangeVideo(connID, req.NewVideoID)
	}
}

func (ctrl *sessionController) handleAddRecommendVideo(w EventWriter, data string) {
	req, err := parsePayload[addRecommendVideoRequest](data)
	if err != nil {
		ctrl.wsError(w, err)
		return
	}

	room := ctrl.getRoom(w, req.RoomID)
	if room == nil {
		return
	}
	if err := room.AddRecommendVideo(req.VideoID); err != nil {
		ctrl.wsError(w, err)
	}
}

func (ctrl *sessionController) handleVideoEnded(connID protocol.ConnID, w EventWriter, data string) {
	req, err := parsePayload[roomIDRequest](data)
	if err != nil {
		ctrl.wsError(w, err)
		return
	}

	if room := ctrl.getRoom(w, req.RoomID); room != nil {
		room.VideoEnded(connID)
	}
}

func (ctrl *sessionController) handleBoreVote(connID protocol.ConnID, w EventWriter, data string) {
	req, err := parsePayload[roomIDRequest](data)
	if err != nil {
		ctrl.wsError(w, err)
		return
	}

	if room := ctrl.getRoom(w, req.RoomID); room != nil {
		room.CastBoreVote(connID)
	}
}

func (ctrl *sessionController) handleSkipRequest(connID protocol.ConnID, w EventWriter, data string) {
	req, err := parsePayload[skipVoteRequest](data)
	if err != nil {
		ctrl.wsError(w, err)
		return
	}

	room := ctrl.getRoom(w, req.RoomID)
	if room == nil {
		return
	}
	if err := room.CastSkipVote(connID, req.Direction); err != nil {
		ctrl.wsError(w, err)
	}
}

func (ctrl *sessionController) handleChatMessage(connID protocol.ConnID, w EventWriter, data string) {
	req, err := parsePayload[chatMessageRequest](data)
	if err != nil {
		ctrl.wsError(w, err)
		return
	}

	if room := ctrl.getRoom(w, req.RoomID); room != nil {
		room.SendChat(connID, req.Message)
	}
}

func (ctrl *sessionController) Resolve(router protocol.HttpRouter) error {
	router.GET("/ws", ctrl.SessionControllerAttach)
	return nil
}

var _ protocol.HttpResolvable = (*sessionController)(nil)

type newSessionController_Params struct {
	fx.In

	RoomService *RoomService
	Logger      *slog.Logger
}

func NewSessionController(params newSessionController_Params) *sessionController {
	return &sessionController{
		roomService: params.RoomService,
		logger:      params.Logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}
