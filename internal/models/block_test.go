package models

import "testing"

func TestBlockStatusValid(t *testing.T) {
	valid := []BlockStatus{StatusNotStarted, StatusInProgress, StatusCompleted, StatusSkipped}
	for _, s := range valid {
		if !s.Valid() {
			t.Errorf("expected %q to be valid", s)
		}
	}
	if BlockStatus("paused").Valid() {
		t.Error("expected unknown status to be invalid")
	}
}

func TestCanTransitionTo(t *testing.T) {
	tests := []struct {
		from    BlockStatus
		to      BlockStatus
		allowed bool
	}{
		{StatusNotStarted, StatusInProgress, true},
		{StatusNotStarted, StatusCompleted, true},
		{StatusNotStarted, StatusSkipped, true},
		{StatusInProgress, StatusCompleted, true},
		{StatusInProgress, StatusSkipped, true},
		{StatusCompleted, StatusInProgress, false},
		{StatusSkipped, StatusInProgress, false},
		{StatusCompleted, StatusSkipped, false},
		{StatusSkipped, StatusCompleted, false},
		// Reset to not_started is always allowed
		{StatusInProgress, StatusNotStarted, true},
		{StatusCompleted, StatusNotStarted, true},
		{StatusSkipped, StatusNotStarted, true},
	}

	for _, tt := range tests {
		b := TimeBlock{Status: tt.from}
		if got := b.CanTransitionTo(tt.to); got != tt.allowed {
			t.Errorf("CanTransitionTo(%q -> %q) = %v, want %v", tt.from, tt.to, got, tt.allowed)
		}
	}
}

func TestTransitionTo(t *testing.T) {
	b := TimeBlock{Status: StatusNotStarted}

	if err := b.TransitionTo(StatusInProgress); err != nil {
		t.Fatalf("TransitionTo(in_progress) failed: %v", err)
	}
	if b.Status != StatusInProgress {
		t.Errorf("expected status in_progress, got %q", b.Status)
	}

	if err := b.TransitionTo(StatusCompleted); err != nil {
		t.Fatalf("TransitionTo(completed) failed: %v", err)
	}

	// Completed blocks can only go back to not_started
	if err := b.TransitionTo(StatusInProgress); err == nil {
		t.Error("expected error transitioning completed -> in_progress")
	}
	if b.Status != StatusCompleted {
		t.Errorf("failed transition must not change status, got %q", b.Status)
	}

	if err := b.TransitionTo(StatusNotStarted); err != nil {
		t.Fatalf("reset to not_started failed: %v", err)
	}
}

func TestIsFinished(t *testing.T) {
	if (TimeBlock{Status: StatusNotStarted}).IsFinished() {
		t.Error("not_started must not be finished")
	}
	if (TimeBlock{Status: StatusInProgress}).IsFinished() {
		t.Error("in_progress must not be finished")
	}
	if !(TimeBlock{Status: StatusCompleted}).IsFinished() {
		t.Error("completed must be finished")
	}
	if !(TimeBlock{Status: StatusSkipped}).IsFinished() {
		t.Error("skipped must be finished")
	}
}
