package room

import (
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/syncroom/sync-server/pkg/protocol"
)

type recordedEvent struct {
	event   string
	payload any
}

// fakeWriter records everything broadcast to a connection.
type fakeWriter struct {
	mu     sync.Mutex
	events []recordedEvent
	closed bool
}

func (w *fakeWriter) WriteEvent(event string, payload any) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.events = append(w.events, recordedEvent{event: event, payload: payload})
	return nil
}

func (w *fakeWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	return nil
}

func (w *fakeWriter) count(event string) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	n := 0
	for _, e := range w.events {
		if e.event == event {
			n++
		}
	}
	return n
}

func (w *fakeWriter) last(event string) (recordedEvent, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for i := len(w.events) - 1; i >= 0; i-- {
		if w.events[i].event == event {
			return w.events[i], true
		}
	}
	return recordedEvent{}, false
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestService() *RoomService {
	return NewRoomService(NewRoomServiceParams{
		Logger:       newTestLogger(),
		RoomNotifier: NewRoomNotifier(),
	})
}

func createTestRoom(t *testing.T, s *RoomService, roomID, videoID, password string, hostConnID protocol.ConnID) *roomContext {
	t.Helper()
	id := roomID
	room, err := s.CreateRoom(&protocol.RoomCreateOption{
		RoomID:   &id,
		VideoID:  videoID,
		Password: password,
	}, hostConnID)
	if err != nil {
		t.Fatalf("CreateRoom(%q): %v", roomID, err)
	}
	return room
}

func joinTestRoom(t *testing.T, r *roomContext, connID protocol.ConnID, nickname, password string) *fakeWriter {
	t.Helper()
	w := &fakeWriter{}
	if err := r.Join(connID, nickname, password, w); err != nil {
		t.Fatalf("Join(%q): %v", connID, err)
	}
	return w
}

// waitFor polls cond until it holds or the deadline passes.
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not reached within deadline")
}
