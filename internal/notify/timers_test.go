package notify

import (
	"sync"
	"testing"
	"time"
)

func TestTimerManagerArmAndFire(t *testing.T) {
	m := NewTimerManager()

	var mu sync.Mutex
	fired := []string{}
	done := make(chan struct{})

	m.Arm([]Reminder{
		{ID: "r1", FireAt: time.Now().Add(10 * time.Millisecond)},
	}, func(r Reminder) {
		mu.Lock()
		fired = append(fired, r.ID)
		mu.Unlock()
		close(done)
	})

	if m.Pending() != 1 {
		t.Fatalf("expected 1 pending timer, got %d", m.Pending())
	}

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("timer did not fire")
	}

	mu.Lock()
	if len(fired) != 1 || fired[0] != "r1" {
		t.Errorf("unexpected fired reminders: %v", fired)
	}
	mu.Unlock()

	// Fired timers remove themselves
	deadline := time.Now().Add(time.Second)
	for m.Pending() != 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if m.Pending() != 0 {
		t.Errorf("expected fired timer to be removed, %d pending", m.Pending())
	}
}

func TestTimerManagerCancelAll(t *testing.T) {
	m := NewTimerManager()

	fired := make(chan string, 2)
	m.Arm([]Reminder{
		{ID: "r1", FireAt: time.Now().Add(50 * time.Millisecond)},
		{ID: "r2", FireAt: time.Now().Add(50 * time.Millisecond)},
	}, func(r Reminder) {
		fired <- r.ID
	})

	m.CancelAll()
	if m.Pending() != 0 {
		t.Fatalf("expected 0 pending after CancelAll, got %d", m.Pending())
	}

	select {
	case id := <-fired:
		t.Errorf("cancelled timer %s fired anyway", id)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestTimerManagerReplace(t *testing.T) {
	m := NewTimerManager()

	fired := make(chan string, 4)
	fire := func(r Reminder) { fired <- r.ID }

	m.Arm([]Reminder{
		{ID: "old", FireAt: time.Now().Add(50 * time.Millisecond)},
	}, fire)

	m.Replace([]Reminder{
		{ID: "new", FireAt: time.Now().Add(10 * time.Millisecond)},
	}, fire)

	if m.Pending() != 1 {
		t.Fatalf("expected 1 pending after Replace, got %d", m.Pending())
	}

	select {
	case id := <-fired:
		if id != "new" {
			t.Errorf("expected the replacement timer to fire, got %s", id)
		}
	case <-time.After(time.Second):
		t.Fatal("replacement timer did not fire")
	}

	select {
	case id := <-fired:
		t.Errorf("replaced timer %s fired anyway", id)
	case <-time.After(100 * time.Millisecond):
	}
}
