package input

// Queue is a FIFO of events. It doubles as a Source: Poll drains everything
// pushed since the previous Poll, in push order.
type Queue struct {
	items []Event
}

// Push adds events.
func (q *Queue) Push(evts ...Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evts...)
}

// Poll returns all events and clears the queue.
func (q *Queue) Poll() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *Queue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

// Batches replays pre-recorded batches, one per Poll. Once exhausted it
// reports a close event.
type Batches struct {
	batches [][]Event
	next    int
}

func NewBatches(batches ...[]Event) *Batches {
	return &Batches{batches: batches}
}

func (b *Batches) Poll() []Event {
	if b.next >= len(b.batches) {
		return []Event{Close()}
	}
	out := b.batches[b.next]
	b.next++
	return out
}

// Remaining returns the number of batches not yet polled.
func (b *Batches) Remaining() int {
	return len(b.batches) - b.next
}
