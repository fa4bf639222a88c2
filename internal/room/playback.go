package room

import (
	"log/slog"
	"math"

	"github.com/syncroom/sync-server/pkg/protocol"
)

// playerState is host-authoritative. currentTime is floor-clamped at zero on
// every write path.
type playerState struct {
	videoID     string
	currentTime float64
	isPlaying   bool
}

// Play flips the transport state on. Host only; the echo back to the host is
// suppressed. Returns false when the command was dropped.
func (r *roomContext) Play(connID protocol.ConnID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.IsHost(connID) {
		r.dropNonHostLocked(connID, EvVideoPlay)
		return false
	}
	r.player.isPlaying = true
	r.broadcastLocked(connID, EvVideoPlay, nil)
	return true
}

func (r *roomContext) Pause(connID protocol.ConnID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.IsHost(connID) {
		r.dropNonHostLocked(connID, EvVideoPause)
		return false
	}
	r.player.isPlaying = false
	r.broadcastLocked(connID, EvVideoPause, nil)
	return true
}

func (r *roomContext) Seek(connID protocol.ConnID, t float64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.IsHost(connID) {
		r.dropNonHostLocked(connID, EvVideoSeek)
		return false
	}
	r.player.currentTime = math.Max(0, t)
	r.broadcastLocked(connID, EvVideoSeek, seekEvent{Time: r.player.currentTime})
	return true
}

// SyncHostTime caches the host's playback position with no broadcast, so a
// participant joining between explicit seeks receives an accurate offset.
func (r *roomContext) SyncHostTime(connID protocol.ConnID, t float64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.IsHost(connID) {
		r.dropNonHostLocked(connID, EvHostTimeUpdate)
		return false
	}
	r.player.currentTime = math.Max(0, t)
	return true
}

// ChangeVideo swaps the media id, resets the offset, clears both vote sets
// and resumes playing. The full new state goes to everyone, host included.
func (r *roomContext) ChangeVideo(connID protocol.ConnID, videoID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.IsHost(connID) {
		r.dropNonHostLocked(connID, EvChangeVideo)
		return false
	}
	r.changeVideoLocked(videoID, true)
	return true
}

// VideoEnded advances to the next recommended video, or pauses when the
// queue is empty. The bore tally always resets to zero, whichever branch ran.
func (r *roomContext) VideoEnded(connID protocol.ConnID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.IsHost(connID) {
		r.dropNonHostLocked(connID, EvVideoEnded)
		return false
	}
	r.videoEndedLocked()
	return true
}

func (r *roomContext) changeVideoLocked(videoID string, isPlaying bool) {
	r.player = playerState{videoID: videoID, isPlaying: isPlaying}
	r.skipVote.reset()
	r.boreVote.reset()
	r.broadcastLocked("", EvVideoChanged, videoChangedEvent{
		VideoID:     videoID,
		CurrentTime: 0,
		IsPlaying:   isPlaying,
		SkipCounts:  skipCounts{},
	})
}

func (r *roomContext) videoEndedLocked() {
	if next, exist := r.queue.pop(); exist {
		r.changeVideoLocked(next, true)
		r.broadcastLocked("", EvRecommendQueueUpdated, r.queue.list())
	} else {
		r.player.isPlaying = false
	}
	r.boreVote.reset()
	r.broadcastLocked("", EvBoreVoteUpdate, 0)
}

// Host-only commands from anyone else are dropped without any outbound
// signal, so an unauthorized caller cannot discover which connection is host.
func (r *roomContext) dropNonHostLocked(connID protocol.ConnID, event string) {
	r.logger.Debug("dropping host-only command",
		slog.String("room", r.roomID),
		slog.String("conn", connID),
		slog.String("event", event))
}
