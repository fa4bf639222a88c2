package room

import (
	"context"
	"sync"

	"github.com/syncroom/sync-server/pkg/executils"
)

// RoomNotifier pings lobby listeners whenever the room set changes, so a
// directory view can re-fetch the list without polling.
type RoomNotifier struct {
	listeners     map[string]EventWriter
	updateRoomCh  chan struct{}
	updateRoomsMu sync.Mutex
}

func (n *RoomNotifier) Listen(id string, w EventWriter) {
	n.updateRoomsMu.Lock()
	defer n.updateRoomsMu.Unlock()
	n.listeners[id] = w
}

func (n *RoomNotifier) Stop(id string) {
	n.updateRoomsMu.Lock()
	defer n.updateRoomsMu.Unlock()
	delete(n.listeners, id)
}

// DispatchUpdateRooms coalesces bursts: a ping already queued is enough.
func (n *RoomNotifier) DispatchUpdateRooms() {
	select {
	case n.updateRoomCh <- struct{}{}:
	default:
	}
}

func (n *RoomNotifier) getListeners() (result []EventWriter) {
	n.updateRoomsMu.Lock()
	defer n.updateRoomsMu.Unlock()
	for _, listener := range n.listeners {
		result = append(result, listener)
	}
	return
}

func (n *RoomNotifier) OnUpdateRooms(ctx context.Context, fn func(EventWriter)) {
	var threshold uint64 = 1000000
	var step uint64 = 2
	for {
		select {
		case <-ctx.Done():
			return
		case <-n.updateRoomCh:
			executils.ParallelExec(n.getListeners(), threshold, step, fn)
		}
	}
}

func NewRoomNotifier() *RoomNotifier {
	return &RoomNotifier{
		listeners:    make(map[string]EventWriter),
		updateRoomCh: make(chan struct{}, 1),
	}
}
