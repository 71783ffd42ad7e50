package sim

import (
	"testing"
)

// TestEventQueue_DueTimeOrdering tests that events are popped in due-time order
func TestEventQueue_DueTimeOrdering(t *testing.T) {
	q := NewEventQueue()

	q.Schedule(&PropagationEvent{DueTime: 100, TargetID: "a"})
	q.Schedule(&PropagationEvent{DueTime: 5, TargetID: "b"})
	q.Schedule(&PropagationEvent{DueTime: 300, TargetID: "c"})

	want := []float64{5, 100, 300}
	for i, w := range want {
		ev := q.PopNext()
		if ev.DueTime != w {
			t.Errorf("pop %d: due time = %v, want %v", i, ev.DueTime, w)
		}
	}
	if q.Len() != 0 {
		t.Errorf("queue should be empty, len = %d", q.Len())
	}
}

// TestEventQueue_TiesResolveByInsertionOrder tests the deterministic secondary key
func TestEventQueue_TiesResolveByInsertionOrder(t *testing.T) {
	q := NewEventQueue()
	targets := []string{"t0", "t1", "t2", "t3", "t4", "t5", "t6", "t7"}
	for _, id := range targets {
		q.Schedule(&PropagationEvent{DueTime: 0, TargetID: id})
	}
	for i, want := range targets {
		ev := q.PopNext()
		if ev.TargetID != want {
			t.Errorf("pop %d: target = %s, want %s", i, ev.TargetID, want)
		}
		if ev.Seq != uint64(i) {
			t.Errorf("pop %d: seq = %d, want %d", i, ev.Seq, i)
		}
	}
}

func TestEventQueue_MixedTimesAndTies(t *testing.T) {
	q := NewEventQueue()
	q.Schedule(&PropagationEvent{DueTime: 2, TargetID: "late-1"})
	q.Schedule(&PropagationEvent{DueTime: 0, TargetID: "early-1"})
	q.Schedule(&PropagationEvent{DueTime: 2, TargetID: "late-2"})
	q.Schedule(&PropagationEvent{DueTime: 0, TargetID: "early-2"})

	if q.Len() != 4 {
		t.Fatalf("Len = %d, want 4", q.Len())
	}
	want := []string{"early-1", "early-2", "late-1", "late-2"}
	for i, w := range want {
		if got := q.PopNext().TargetID; got != w {
			t.Errorf("pop %d: got %s, want %s", i, got, w)
		}
	}
}

func TestEventQueue_EmptyQueue(t *testing.T) {
	q := NewEventQueue()
	if q.PopNext() != nil {
		t.Error("PopNext on empty queue should return nil")
	}
	if q.Len() != 0 {
		t.Errorf("Len on empty queue = %d, want 0", q.Len())
	}
}
