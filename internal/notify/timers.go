package notify

import (
	"sync"
	"time"
)

// TimerManager owns the armed one-shot timers backing a reminder schedule.
// Rescheduling is cancel-all plus re-register: Replace tears down every
// armed timer before arming the new set.
type TimerManager struct {
	mu     sync.Mutex
	timers map[string]*time.Timer
}

func NewTimerManager() *TimerManager {
	return &TimerManager{timers: make(map[string]*time.Timer)}
}

// Arm schedules fire to be called for each reminder at its fire time.
// A reminder whose ID is already armed is replaced.
func (m *TimerManager) Arm(reminders []Reminder, fire func(Reminder)) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	for _, r := range reminders {
		r := r
		if t, ok := m.timers[r.ID]; ok {
			t.Stop()
		}
		delay := r.FireAt.Sub(now)
		if delay < 0 {
			delay = 0
		}
		m.timers[r.ID] = time.AfterFunc(delay, func() {
			fire(r)
			m.remove(r.ID)
		})
	}
}

func (m *TimerManager) remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.timers, id)
}

// CancelAll stops every armed timer.
func (m *TimerManager) CancelAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, t := range m.timers {
		t.Stop()
		delete(m.timers, id)
	}
}

// Replace cancels everything armed and arms the new schedule.
func (m *TimerManager) Replace(reminders []Reminder, fire func(Reminder)) {
	m.CancelAll()
	m.Arm(reminders, fire)
}

// Pending returns the number of armed timers.
func (m *TimerManager) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.timers)
}
