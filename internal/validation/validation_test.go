package validation

import (
	"testing"

	"github.com/routineanchor/anchor/internal/models"
)

func block(id, title, start, end string) models.TimeBlock {
	return models.TimeBlock{
		ID:     id,
		Title:  title,
		Date:   "2026-01-05",
		Start:  start,
		End:    end,
		Status: models.StatusNotStarted,
	}
}

func conflictsOfType(result ValidationResult, ct ConflictType) int {
	count := 0
	for _, c := range result.Conflicts {
		if c.Type == ct {
			count++
		}
	}
	return count
}

func TestValidateDayClean(t *testing.T) {
	v := New()
	result := v.ValidateDay("2026-01-05", []models.TimeBlock{
		block("a", "Morning", "07:00", "08:00"),
		block("b", "Work", "09:00", "12:00"),
	}, "06:00", "22:00")

	if result.HasConflicts() {
		t.Errorf("expected clean schedule, got: %s", result.FormatReport())
	}
	if result.FormatReport() != "No conflicts detected." {
		t.Errorf("unexpected report: %q", result.FormatReport())
	}
}

func TestValidateDayOverlap(t *testing.T) {
	v := New()
	result := v.ValidateDay("2026-01-05", []models.TimeBlock{
		block("a", "Morning", "07:00", "09:00"),
		block("b", "Breakfast", "08:30", "09:30"),
	}, "06:00", "22:00")

	if conflictsOfType(result, ConflictOverlappingBlocks) != 1 {
		t.Errorf("expected 1 overlap conflict, got: %s", result.FormatReport())
	}
}

func TestValidateDayAdjacentBlocksDoNotOverlap(t *testing.T) {
	v := New()
	result := v.ValidateDay("2026-01-05", []models.TimeBlock{
		block("a", "First", "07:00", "08:00"),
		block("b", "Second", "08:00", "09:00"),
	}, "06:00", "22:00")

	if conflictsOfType(result, ConflictOverlappingBlocks) != 0 {
		t.Errorf("adjacent blocks flagged as overlapping: %s", result.FormatReport())
	}
}

func TestValidateDayInvalidTimes(t *testing.T) {
	v := New()
	result := v.ValidateDay("2026-01-05", []models.TimeBlock{
		block("a", "Bad start", "7am", "08:00"),
		block("b", "Backwards", "10:00", "09:00"),
	}, "06:00", "22:00")

	if conflictsOfType(result, ConflictInvalidDateTime) != 2 {
		t.Errorf("expected 2 invalid datetime conflicts, got: %s", result.FormatReport())
	}
}

func TestValidateDayDuplicateTitles(t *testing.T) {
	v := New()
	result := v.ValidateDay("2026-01-05", []models.TimeBlock{
		block("a", "Gym", "07:00", "08:00"),
		block("b", "Gym", "18:00", "19:00"),
	}, "06:00", "22:00")

	if conflictsOfType(result, ConflictDuplicateTitle) != 1 {
		t.Errorf("expected 1 duplicate title conflict, got: %s", result.FormatReport())
	}
}

func TestValidateDayOutsideWakingWindow(t *testing.T) {
	v := New()
	result := v.ValidateDay("2026-01-05", []models.TimeBlock{
		block("a", "Late night", "22:30", "23:30"),
	}, "06:00", "22:00")

	if conflictsOfType(result, ConflictOutsideWakingWindow) != 1 {
		t.Errorf("expected outside-window conflict, got: %s", result.FormatReport())
	}
}

func TestValidateDayIgnoresDeleted(t *testing.T) {
	deleted := "2026-01-05T00:00:00Z"
	a := block("a", "Gym", "07:00", "08:00")
	b := block("b", "Gym", "07:30", "08:30")
	b.DeletedAt = &deleted

	v := New()
	result := v.ValidateDay("2026-01-05", []models.TimeBlock{a, b}, "06:00", "22:00")
	if result.HasConflicts() {
		t.Errorf("deleted blocks must be ignored, got: %s", result.FormatReport())
	}
}

func TestValidateDayInvalidWakingWindow(t *testing.T) {
	v := New()
	result := v.ValidateDay("2026-01-05", nil, "22:00", "06:00")
	if conflictsOfType(result, ConflictInvalidDateTime) != 1 {
		t.Errorf("expected invalid waking window conflict, got: %s", result.FormatReport())
	}
}

func TestValidateDayInvalidDate(t *testing.T) {
	v := New()
	result := v.ValidateDay("tomorrow-ish", nil, "06:00", "22:00")
	if !result.HasConflicts() {
		t.Error("expected conflict for invalid date")
	}
}
