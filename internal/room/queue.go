package room

// RecommendQueueCap bounds how many pending video ids a room may hold.
const RecommendQueueCap = 100

// recommendQueue is the FIFO of pending video ids. No deduplication; callers
// hold the room mutex.
type recommendQueue struct {
	items []string
}

func (q *recommendQueue) push(videoID string) error {
	if len(q.items) >= RecommendQueueCap {
		return ErrQueueFull
	}
	q.items = append(q.items, videoID)
	return nil
}

func (q *recommendQueue) pop() (string, bool) {
	if len(q.items) == 0 {
		return "", false
	}
	next := q.items[0]
	q.items = q.items[1:]
	return next, true
}

func (q *recommendQueue) list() []string {
	items := make([]string, len(q.items))
	copy(items, q.items)
	return items
}

// AddRecommendVideo appends to the queue and pushes the full queue contents
// to the room, as every queue change does.
func (r *roomContext) AddRecommendVideo(videoID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.queue.push(videoID); err != nil {
		return err
	}
	r.broadcastLocked("", EvRecommendQueueUpdated, r.queue.list())
	return nil
}
