package room

import (
	"math"
	"time"

	"github.com/syncroom/sync-server/pkg/protocol"
)

const (
	// SkipStepSeconds is how far a successful skip vote moves playback.
	SkipStepSeconds = 10.0
	// SkipVoteExpiry is how long a cast skip vote stays counted before the
	// scheduled reversal removes it again.
	SkipVoteExpiry = 2 * time.Second

	boreKey = "bore"
)

type quorumFunc func(votes, participants int) bool

// Skip votes win on a tie with half the room, bore votes need a strict
// majority. The asymmetry is deliberate; do not unify the two.
func atLeastHalf(votes, participants int) bool { return 2*votes >= participants }

func moreThanHalf(votes, participants int) bool { return 2*votes > participants }

// voteSet is the majority-vote primitive, instantiated once per room for
// directional skips and once for bore votes. It carries no lock of its own;
// callers hold the room mutex.
type voteSet struct {
	counts map[string]int
	voters map[protocol.ConnID]string
	timers map[protocol.ConnID]*time.Timer
	// epoch advances on every reset, so an expiry timer that already fired
	// and was waiting on the room mutex cannot touch a vote re-cast in the
	// next epoch.
	epoch  uint64
	quorum quorumFunc
}

func newVoteSet(quorum quorumFunc) *voteSet {
	return &voteSet{
		counts: make(map[string]int),
		voters: make(map[protocol.ConnID]string),
		timers: make(map[protocol.ConnID]*time.Timer),
		quorum: quorum,
	}
}

// cast records a vote for key. A connection holds at most one pending vote
// per set, across all keys; a second cast is a no-op.
func (v *voteSet) cast(connID protocol.ConnID, key string) bool {
	if _, pending := v.voters[connID]; pending {
		return false
	}
	v.voters[connID] = key
	v.counts[key]++
	return true
}

func (v *voteSet) remove(connID protocol.ConnID) {
	key, pending := v.voters[connID]
	if !pending {
		return
	}
	delete(v.voters, connID)
	if v.counts[key] > 0 {
		v.counts[key]--
	}
	if t, exist := v.timers[connID]; exist {
		t.Stop()
		delete(v.timers, connID)
	}
}

// reset clears tallies, voters and cancels every outstanding expiry timer, so
// a late firing cannot resurrect a stale vote.
func (v *voteSet) reset() {
	for _, t := range v.timers {
		t.Stop()
	}
	v.counts = make(map[string]int)
	v.voters = make(map[protocol.ConnID]string)
	v.timers = make(map[protocol.ConnID]*time.Timer)
	v.epoch++
}

func (v *voteSet) count(key string) int { return v.counts[key] }

func (r *roomContext) skipCountsLocked() skipCounts {
	return skipCounts{
		Forward:  r.skipVote.count(string(protocol.SkipForward)),
		Backward: r.skipVote.count(string(protocol.SkipBackward)),
	}
}

// CastSkipVote tallies a directional skip vote. On quorum the playback
// offset jumps by the skip step (floored at zero), everyone receives the new
// position as a seek, and both directions reset. Otherwise the vote expires
// on its own after the expiry delay.
func (r *roomContext) CastSkipVote(connID protocol.ConnID, direction protocol.SkipDirection) error {
	if !direction.Valid() {
		return ErrUnknownDirection
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := string(direction)
	if !r.skipVote.cast(connID, key) {
		return nil
	}
	r.broadcastLocked("", EvSkipCountsUpdate, r.skipCountsLocked())

	if r.skipVote.quorum(r.skipVote.count(key), len(r.participants)) {
		delta := r.skipStep
		if direction == protocol.SkipBackward {
			delta = -delta
		}
		r.player.currentTime = math.Max(0, r.player.currentTime+delta)
		r.skipVote.reset()
		r.broadcastLocked("", EvVideoSeek, seekEvent{Time: r.player.currentTime})
		r.broadcastLocked("", EvSkipCountsUpdate, skipCounts{})
		return nil
	}

	epoch := r.skipVote.epoch
	r.skipVote.timers[connID] = time.AfterFunc(r.skipExpiry, func() {
		r.expireSkipVote(connID, key, epoch)
	})
	return nil
}

// expireSkipVote is the scheduled reversal of a single skip vote. When a
// quorum reset or a video change already cleared the set it is a no-op, even
// when the same connection re-cast the same direction afterwards.
func (r *roomContext) expireSkipVote(connID protocol.ConnID, key string, epoch uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.skipVote.epoch != epoch {
		return
	}
	if pendingKey, pending := r.skipVote.voters[connID]; !pending || pendingKey != key {
		return
	}
	r.skipVote.remove(connID)
	r.broadcastLocked("", EvSkipCountsUpdate, r.skipCountsLocked())
}

// CastBoreVote tallies a "boring" vote. These never expire; the set resets
// on quorum, on video change and on video end. Quorum behaves exactly like
// the video-ended auto-advance.
func (r *roomContext) CastBoreVote(connID protocol.ConnID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.boreVote.cast(connID, boreKey) {
		return
	}
	r.broadcastLocked("", EvBoreVoteUpdate, r.boreVote.count(boreKey))

	if r.boreVote.quorum(r.boreVote.count(boreKey), len(r.participants)) {
		r.videoEndedLocked()
	}
}
