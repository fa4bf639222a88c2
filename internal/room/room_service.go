package room

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/syncroom/sync-server/pkg/protocol"
	"go.uber.org/fx"
	"golang.org/x/sync/errgroup"
)

var (
	ErrRoomAlreadyExists = errors.New("room already exists")
	ErrRoomNotExist      = errors.New("room not exist")
	ErrWrongPassword     = errors.New("wrong room password")
	ErrQueueFull         = errors.New("recommendation queue is full")
	ErrUnknownDirection  = errors.New("unknown skip direction")
)

const roomPageSize = 10

// RoomService owns the room id to room state mapping. Rooms are fully
// independent; the service mutex only guards the registry itself.
type RoomService struct {
	sync.Mutex

	logger         *slog.Logger
	roomContextMap map[protocol.RoomID]*roomContext
	creationOrder  []protocol.RoomID
	roomNotifier   *RoomNotifier
}

func NullableRoomID(roomID *string) string {
	if roomID != nil && *roomID != "" {
		return *roomID
	}
	return uuid.NewString()
}

// CreateRoom installs a new room with the requester fixed as host. An id
// collision is rejected rather than silently overwriting the existing room.
func (s *RoomService) CreateRoom(option *protocol.RoomCreateOption, hostConnID protocol.ConnID) (*roomContext, error) {
	s.Lock()
	defer s.Unlock()

	roomID := NullableRoomID(option.RoomID)
	if _, exist := s.roomContextMap[roomID]; exist {
		return nil, ErrRoomAlreadyExists
	}

	room := NewRoomContext(NewRoomContextParams{
		RoomID:     roomID,
		HostConnID: hostConnID,
		VideoID:    option.VideoID,
		Password:   option.Password,
		Logger:     s.logger,
	})
	s.roomContextMap[roomID] = room
	s.creationOrder = append(s.creationOrder, roomID)

	s.roomNotifier.DispatchUpdateRooms()
	return room, nil
}

func (s *RoomService) GetRoom(roomID protocol.RoomID) *roomContext {
	s.Lock()
	defer s.Unlock()

	room, exist := s.roomContextMap[roomID]
	if !exist {
		return nil
	}
	return room
}

func (s *RoomService) DeleteRoom(roomID protocol.RoomID) {
	s.Lock()
	defer s.Unlock()
	s.deleteRoomLocked(roomID)
}

func (s *RoomService) deleteRoomLocked(roomID protocol.RoomID) {
	if _, exist := s.roomContextMap[roomID]; !exist {
		return
	}
	delete(s.roomContextMap, roomID)
	for i, id := range s.creationOrder {
		if id == roomID {
			s.creationOrder = append(s.creationOrder[:i], s.creationOrder[i+1:]...)
			break
		}
	}
	s.roomNotifier.DispatchUpdateRooms()
}

// ListRoom pages through rooms in reverse creation order, most recently
// created first.
func (s *RoomService) ListRoom(page int) protocol.RoomPage {
	if page < 1 {
		page = 1
	}

	s.Lock()
	defer s.Unlock()

	total := len(s.creationOrder)
	start := (page - 1) * roomPageSize
	end := page * roomPageSize
	if end > total {
		end = total
	}

	rooms := make([]protocol.RoomInfo, 0, roomPageSize)
	for i := start; i < end; i++ {
		roomID := s.creationOrder[total-1-i]
		rooms = append(rooms, s.roomContextMap[roomID].Info())
	}

	return protocol.RoomPage{
		Rooms:       rooms,
		HasNextPage: page*roomPageSize < total,
	}
}

// Disconnect handles both network disconnects and explicit leaves, which
// behave identically. Only the first room containing the connection is
// processed. A departing host destroys its room; anyone else just shrinks
// the participant list.
func (s *RoomService) Disconnect(connID protocol.ConnID) {
	s.Lock()
	var target *roomContext
	for _, roomID := range s.creationOrder {
		room := s.roomContextMap[roomID]
		if room.HasParticipant(connID) || room.IsHost(connID) {
			target = room
			break
		}
	}
	s.Unlock()

	if target == nil {
		return
	}

	wasHost := target.IsHost(connID)
	found := target.Leave(connID)

	if wasHost {
		s.DeleteRoom(target.roomID)
		target.Close()
		s.logger.Info("room closed by host departure", slog.String("room", target.roomID))
		return
	}
	if found {
		target.BroadcastUserList()
	}
}

// Close tears every room down in parallel. Only invoked from the fx
// shutdown hook.
func (s *RoomService) Close(ctx context.Context) error {
	s.Lock()
	rooms := make([]*roomContext, 0, len(s.roomContextMap))
	for _, room := range s.roomContextMap {
		rooms = append(rooms, room)
	}
	s.roomContextMap = make(map[protocol.RoomID]*roomContext)
	s.creationOrder = nil
	s.Unlock()

	g, _ := errgroup.WithContext(ctx)
	for _, room := range rooms {
		room := room
		g.Go(room.Shutdown)
	}
	return g.Wait()
}

type NewRoomServiceParams struct {
	fx.In

	Lifecycle    fx.Lifecycle `optional:"true"`
	Logger       *slog.Logger
	RoomNotifier *RoomNotifier
}

func NewRoomService(params NewRoomServiceParams) *RoomService {
	s := &RoomService{
		logger:         params.Logger,
		roomContextMap: make(map[protocol.RoomID]*roomContext),
		roomNotifier:   params.RoomNotifier,
	}
	if params.Lifecycle != nil {
		params.Lifecycle.Append(fx.Hook{OnStop: s.Close})
	}
	return s
}
