package room

import (
	"context"
	"testing"
)

func TestNotifierPingsListenersOnRoomChanges(t *testing.T) {
	notifier := NewRoomNotifier()
	s := NewRoomService(NewRoomServiceParams{
		Logger:       newTestLogger(),
		RoomNotifier: notifier,
	})

	listener := &fakeWriter{}
	notifier.Listen("lobby-1", listener)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go notifier.OnUpdateRooms(ctx, func(w EventWriter) {
		w.WriteEvent(EvUpdateRooms, nil)
	})

	createTestRoom(t, s, "R", "vid", "", "host")
	waitFor(t, func() bool { return listener.count(EvUpdateRooms) >= 1 })

	s.DeleteRoom("R")
	waitFor(t, func() bool { return listener.count(EvUpdateRooms) >= 2 })

	// A stopped listener receives nothing further.
	notifier.Stop("lobby-1")
	before := listener.count(EvUpdateRooms)
	createTestRoom(t, s, "R2", "vid", "", "host")
	waitFor(t, func() bool { return len(notifier.getListeners()) == 0 })
	if listener.count(EvUpdateRooms) != before {
		// A ping dispatched before Stop may still be in flight; tolerate one.
		if listener.count(EvUpdateRooms) > before+1 {
			t.Fatal("stopped listener kept receiving pings")
		}
	}
}
