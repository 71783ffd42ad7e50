package sim

import "container/heap"

// EventQueue is a priority queue of propagation events with deterministic ordering.
// Order by: due time → insertion sequence.
type EventQueue struct {
	events  eventHeap
	nextSeq uint64
}

// NewEventQueue creates an empty event queue.
func NewEventQueue() *EventQueue {
	return &EventQueue{events: make(eventHeap, 0)}
}

// Schedule assigns the event its insertion sequence and pushes it.
func (q *EventQueue) Schedule(ev *PropagationEvent) {
	ev.Seq = q.nextSeq
	q.nextSeq++
	heap.Push(&q.events, ev)
}

// PopNext removes and returns the next event, or nil when empty.
func (q *EventQueue) PopNext() *PropagationEvent {
	if len(q.events) == 0 {
		return nil
	}
	return heap.Pop(&q.events).(*PropagationEvent)
}

// Len returns the number of pending events.
func (q *EventQueue) Len() int {
	return len(q.events)
}

// eventHeap implements heap.Interface.
// See canonical Golang example here: https://pkg.go.dev/container/heap#example-package-IntHeap
type eventHeap []*PropagationEvent

func (h eventHeap) Len() int { return len(h) }

func (h eventHeap) Less(i, j int) bool {
	if h[i].DueTime != h[j].DueTime {
		return h[i].DueTime < h[j].DueTime
	}
	return h[i].Seq < h[j].Seq
}

func (h eventHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *eventHeap) Push(x any) {
	*h = append(*h, x.(*PropagationEvent))
}

func (h *eventHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[0 : n-1]
	return item
}
