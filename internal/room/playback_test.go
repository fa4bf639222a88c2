package room

import (
	"testing"
)

func newPlaybackRoom(t *testing.T) (*roomContext, *fakeWriter, *fakeWriter) {
	t.Helper()
	s := newTestService()
	room := createTestRoom(t, s, "R", "vid-0", "", "host")
	host := joinTestRoom(t, room, "host", "alice", "")
	guest := joinTestRoom(t, room, "guest", "bob", "")
	return room, host, guest
}

func TestNonHostCommandsAreDropped(t *testing.T) {
	room, host, guest := newPlaybackRoom(t)
	before := room.Snapshot()

	for name, command := range map[string]func() bool{
		"Play":        func() bool { return room.Play("guest") },
		"Pause":       func() bool { return room.Pause("guest") },
		"Seek":        func() bool { return room.Seek("guest", 42) },
		"SyncTime":    func() bool { return room.SyncHostTime("guest", 42) },
		"ChangeVideo": func() bool { return room.ChangeVideo("guest", "vid-9") },
		"VideoEnded":  func() bool { return room.VideoEnded("guest") },
	} {
		command := command
		t.Run(name, func(t *testing.T) {
			if command() {
				t.Fatal("non-host command must be rejected")
			}
		})
	}

	after := room.Snapshot()
	if after.VideoID != before.VideoID || after.CurrentTime != before.CurrentTime || after.IsPlaying != before.IsPlaying {
		t.Fatalf("state mutated by non-host commands: %+v -> %+v", before, after)
	}

	// No playback event may reach anyone, not even the unauthorized caller.
	for _, ev := range []string{EvVideoPlay, EvVideoPause, EvVideoSeek, EvVideoChanged} {
		if host.count(ev) != 0 || guest.count(ev) != 0 {
			t.Fatalf("unexpected %s broadcast after non-host command", ev)
		}
	}
}

func TestPlayPauseSuppressHostEcho(t *testing.T) {
	room, host, guest := newPlaybackRoom(t)

	if !room.Play("host") {
		t.Fatal("host play rejected")
	}
	if !room.Pause("host") {
		t.Fatal("host pause rejected")
	}

	if guest.count(EvVideoPlay) != 1 || guest.count(EvVideoPause) != 1 {
		t.Fatal("guest must mirror play and pause")
	}
	if host.count(EvVideoPlay) != 0 || host.count(EvVideoPause) != 0 {
		t.Fatal("the host must not receive its own playback echo")
	}
}

func TestSeekBroadcastsExceptHost(t *testing.T) {
	room, host, guest := newPlaybackRoom(t)

	room.Seek("host", 123.5)

	if got := room.Snapshot().CurrentTime; got != 123.5 {
		t.Fatalf("currentTime = %v", got)
	}
	last, ok := guest.last(EvVideoSeek)
	if !ok {
		t.Fatal("guest missed the seek")
	}
	if last.payload.(seekEvent).Time != 123.5 {
		t.Fatalf("seek payload = %+v", last.payload)
	}
	if host.count(EvVideoSeek) != 0 {
		t.Fatal("seek echo must be suppressed for the host")
	}
}

func TestSeekFloorsAtZero(t *testing.T) {
	room, _, _ := newPlaybackRoom(t)

	room.Seek("host", -17)
	if got := room.Snapshot().CurrentTime; got != 0 {
		t.Fatalf("currentTime = %v, want 0", got)
	}

	room.SyncHostTime("host", -1)
	if got := room.Snapshot().CurrentTime; got != 0 {
		t.Fatalf("currentTime after sync = %v, want 0", got)
	}
}

func TestSyncHostTimeIsSilent(t *testing.T) {
	room, host, guest := newPlaybackRoom(t)

	room.SyncHostTime("host", 55)

	if got := room.Snapshot().CurrentTime; got != 55 {
		t.Fatalf("currentTime = %v, want 55", got)
	}
	if guest.count(EvVideoSeek) != 0 || host.count(EvVideoSeek) != 0 {
		t.Fatal("time sync must not broadcast")
	}
}

func TestChangeVideoResetsRoomState(t *testing.T) {
	room, host, guest := newPlaybackRoom(t)
	joinTestRoom(t, room, "guest-2", "carol", "")
	room.Seek("host", 200)
	room.CastSkipVote("guest", "forward")
	room.CastBoreVote("guest")

	if got := room.Snapshot(); got.SkipCounts.Forward != 1 || got.BoreCount != 1 {
		t.Fatalf("votes not pending before change: %+v", got)
	}

	if !room.ChangeVideo("host", "vid-next") {
		t.Fatal("host change rejected")
	}

	snapshot := room.Snapshot()
	if snapshot.VideoID != "vid-next" || snapshot.CurrentTime != 0 || !snapshot.IsPlaying {
		t.Fatalf("snapshot after change = %+v", snapshot)
	}
	if snapshot.SkipCounts != (skipCounts{}) || snapshot.BoreCount != 0 {
		t.Fatalf("votes must be cleared, got %+v bore=%d", snapshot.SkipCounts, snapshot.BoreCount)
	}

	// The full new state goes to everyone, host included.
	for _, w := range []*fakeWriter{host, guest} {
		last, ok := w.last(EvVideoChanged)
		if !ok {
			t.Fatal("missing video_changed broadcast")
		}
		changed := last.payload.(videoChangedEvent)
		if changed.VideoID != "vid-next" || !changed.IsPlaying || changed.CurrentTime != 0 {
			t.Fatalf("video_changed payload = %+v", changed)
		}
	}
}

func TestVideoEndedAdvancesThroughQueueInOrder(t *testing.T) {
	room, _, guest := newPlaybackRoom(t)
	for _, v := range []string{"vid-a", "vid-b"} {
		if err := room.AddRecommendVideo(v); err != nil {
			t.Fatal(err)
		}
	}

	room.VideoEnded("host")
	if got := room.Snapshot(); got.VideoID != "vid-a" || !got.IsPlaying {
		t.Fatalf("first advance = %+v", got)
	}

	room.VideoEnded("host")
	if got := room.Snapshot(); got.VideoID != "vid-b" || !got.IsPlaying {
		t.Fatalf("second advance = %+v", got)
	}

	// Empty queue pauses instead of advancing.
	room.VideoEnded("host")
	if got := room.Snapshot(); got.VideoID != "vid-b" || got.IsPlaying {
		t.Fatalf("end with empty queue = %+v", got)
	}

	// The bore tally broadcast fires after every branch.
	if guest.count(EvBoreVoteUpdate) != 3 {
		t.Fatalf("bore_vote_update count = %d, want 3", guest.count(EvBoreVoteUpdate))
	}
}
