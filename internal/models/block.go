package models

import "fmt"

// BlockStatus represents the lifecycle state of a time block
type BlockStatus string

const (
	StatusNotStarted BlockStatus = "not_started"
	StatusInProgress BlockStatus = "in_progress"
	StatusCompleted  BlockStatus = "completed"
	StatusSkipped    BlockStatus = "skipped"
)

// Valid reports whether s is a known block status.
func (s BlockStatus) Valid() bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusCompleted, StatusSkipped:
		return true
	}
	return false
}

// TimeBlock is the core scheduling unit: a named interval on a given day.
type TimeBlock struct {
	ID              string      `json:"id"`
	Title           string      `json:"title"`
	Notes           string      `json:"notes,omitempty"`
	Date            string      `json:"date"`  // YYYY-MM-DD format
	Start           string      `json:"start"` // HH:MM format
	End             string      `json:"end"`   // HH:MM format
	Status          BlockStatus `json:"status"`
	Category        string      `json:"category,omitempty"`
	Icon            string      `json:"icon,omitempty"`
	CalendarEventID string      `json:"calendar_event_id,omitempty"`
	CalendarSynced  bool        `json:"calendar_synced,omitempty"`
	CreatedAt       string      `json:"created_at"` // RFC3339 timestamp
	UpdatedAt       string      `json:"updated_at"` // RFC3339 timestamp
	DeletedAt       *string     `json:"deleted_at,omitempty"`
}

// CanTransitionTo reports whether the block may move from its current
// status to the target status. Reset back to not_started is always allowed.
func (b *TimeBlock) CanTransitionTo(target BlockStatus) bool {
	if target == StatusNotStarted {
		return true
	}
	switch target {
	case StatusInProgress:
		return b.Status == StatusNotStarted
	case StatusCompleted, StatusSkipped:
		return b.Status == StatusNotStarted || b.Status == StatusInProgress
	}
	return false
}

// TransitionTo applies a guarded status change. The caller is responsible
// for bumping UpdatedAt and persisting the block.
func (b *TimeBlock) TransitionTo(target BlockStatus) error {
	if !target.Valid() {
		return fmt.Errorf("unknown status: %s", target)
	}
	if !b.CanTransitionTo(target) {
		return fmt.Errorf("cannot transition block %q from %s to %s", b.Title, b.Status, target)
	}
	b.Status = target
	return nil
}

// IsFinished reports whether the block has reached a terminal status for the day.
func (b TimeBlock) IsFinished() bool {
	return b.Status == StatusCompleted || b.Status == StatusSkipped
}
