package room

import (
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/syncroom/sync-server/pkg/executils"
	"github.com/syncroom/sync-server/pkg/protocol"
	"github.com/syncroom/sync-server/pkg/wsutils"
)

// Below this many participants the broadcast fan-out stays on the caller's
// goroutine.
const parallelWriteThreshold uint64 = 128

// EventWriter is the outbound side of a connection. *wsutils.ThreadSafeWriter
// satisfies it; tests substitute a recording fake.
type EventWriter interface {
	WriteEvent(event string, payload any) error
}

var _ EventWriter = (*wsutils.ThreadSafeWriter)(nil)

type participant struct {
	connID   protocol.ConnID
	nickname string
	w        EventWriter
}

// roomContext owns all state of a single room. Every exported method takes
// the room mutex; rooms never lock each other.
type roomContext struct {
	mu sync.Mutex

	roomID     protocol.RoomID
	hostConnID protocol.ConnID
	password   string
	createdAt  time.Time

	player playerState

	// order keeps join order, participants the actual entries. The host's
	// own entry appears only once it joins, not at creation time.
	order        []protocol.ConnID
	participants map[protocol.ConnID]*participant

	skipVote *voteSet
	boreVote *voteSet
	queue    *recommendQueue

	skipStep   float64
	skipExpiry time.Duration

	logger *slog.Logger
}

type NewRoomContextParams struct {
	RoomID     protocol.RoomID
	HostConnID protocol.ConnID
	VideoID    string
	Password   string
	Logger     *slog.Logger
}

func NewRoomContext(params NewRoomContextParams) *roomContext {
	return &roomContext{
		roomID:       params.RoomID,
		hostConnID:   params.HostConnID,
		password:     params.Password,
		createdAt:    time.Now(),
		player:       playerState{videoID: params.VideoID},
		participants: make(map[protocol.ConnID]*participant),
		skipVote:     newVoteSet(atLeastHalf),
		boreVote:     newVoteSet(moreThanHalf),
		queue:        &recommendQueue{},
		skipStep:     SkipStepSeconds,
		skipExpiry:   SkipVoteExpiry,
		logger:       params.Logger,
	}
}

func (r *roomContext) IsHost(connID protocol.ConnID) bool {
	return connID == r.hostConnID
}

func (r *roomContext) IsLocked() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.password != ""
}

// Join adds the connection to the room after the password check. The host
// joins its own room without a password.
func (r *roomContext) Join(connID protocol.ConnID, nickname, password string, w EventWriter) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.password != "" && connID != r.hostConnID && password != r.password {
		return ErrWrongPassword
	}

	if _, exist := r.participants[connID]; !exist {
		r.order = append(r.order, connID)
	}
	r.participants[connID] = &participant{connID: connID, nickname: nickname, w: w}

	r.broadcastLocked("", EvUserListUpdate, r.userListLocked())
	return nil
}

// Leave removes the participant entry without any broadcast. The caller
// decides between a user-list update and a room teardown.
func (r *roomContext) Leave(connID protocol.ConnID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exist := r.participants[connID]; !exist {
		return false
	}
	delete(r.participants, connID)
	for i, id := range r.order {
		if id == connID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	r.skipVote.remove(connID)
	r.boreVote.remove(connID)
	return true
}

func (r *roomContext) HasParticipant(connID protocol.ConnID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, exist := r.participants[connID]
	return exist
}

// Close tears the room down: notifies everyone, evicts every connection from
// the broadcast group and cancels pending vote timers.
func (r *roomContext) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.broadcastLocked("", EvRoomClosed, nil)
	r.participants = make(map[protocol.ConnID]*participant)
	r.order = nil
	r.skipVote.reset()
	r.boreVote.reset()
}

// Shutdown is Close plus closing the underlying connections. Used on process
// shutdown only.
func (r *roomContext) Shutdown() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.broadcastLocked("", EvRoomClosed, nil)
	var err error
	for _, p := range r.participants {
		if closer, ok := p.w.(io.Closer); ok {
			err = closer.Close()
		}
	}
	r.participants = make(map[protocol.ConnID]*participant)
	r.order = nil
	r.skipVote.reset()
	r.boreVote.reset()
	return err
}

func (r *roomContext) BroadcastUserList() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.broadcastLocked("", EvUserListUpdate, r.userListLocked())
}

func (r *roomContext) Snapshot() roomDataEvent {
	r.mu.Lock()
	defer r.mu.Unlock()

	return roomDataEvent{
		RoomID:      r.roomID,
		VideoID:     r.player.videoID,
		CurrentTime: r.player.currentTime,
		IsPlaying:   r.player.isPlaying,
		IsLocked:    r.password != "",
		Users:       r.userListLocked(),
		SkipCounts:  r.skipCountsLocked(),
		BoreCount:   r.boreVote.count(boreKey),
		Queue:       r.queue.list(),
	}
}

// Info is the directory projection. The host nickname falls back to a
// placeholder in the window between create_room and the host's own join.
func (r *roomContext) Info() protocol.RoomInfo {
	r.mu.Lock()
	defer r.mu.Unlock()

	hostNickname := "unknown"
	if host, exist := r.participants[r.hostConnID]; exist {
		hostNickname = host.nickname
	}
	return protocol.RoomInfo{
		RoomID:      r.roomID,
		DisplayName: fmt.Sprintf("%s : %s", hostNickname, r.roomID),
		IsLocked:    r.password != "",
	}
}

func (r *roomContext) userListLocked() []string {
	users := make([]string, 0, len(r.order))
	for _, id := range r.order {
		if p, exist := r.participants[id]; exist {
			users = append(users, p.nickname)
		}
	}
	return users
}

// broadcastLocked fans an event out to every participant, skipping except
// when it is non-empty. State is already mutated when this runs; the fan-out
// is synchronous with the mutation.
func (r *roomContext) broadcastLocked(except protocol.ConnID, event string, payload any) {
	writers := make([]EventWriter, 0, len(r.order))
	for _, id := range r.order {
		if except != "" && id == except {
			continue
		}
		if p, exist := r.participants[id]; exist {
			writers = append(writers, p.w)
		}
	}

	executils.ParallelExec(writers, parallelWriteThreshold, 2, func(w EventWriter) {
		if err := w.WriteEvent(event, payload); err != nil {
			r.logger.Debug("broadcast write failed",
				slog.String("room", r.roomID),
				slog.String("event", event))
		}
	})
}
