package sqlite

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/routineanchor/anchor/internal/constants"
	"github.com/routineanchor/anchor/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store := NewStore(filepath.Join(t.TempDir(), "anchor.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testBlock(id, date string) models.TimeBlock {
	now := time.Now().UTC().Format(time.RFC3339)
	return models.TimeBlock{
		ID:        id,
		Title:     "Block " + id,
		Notes:     "some notes",
		Date:      date,
		Start:     "09:00",
		End:       "10:00",
		Status:    models.StatusNotStarted,
		Category:  "work",
		Icon:      "📌",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestInitSeedsDefaultSettings(t *testing.T) {
	store := newTestStore(t)

	settings, err := store.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if settings.DayStart != constants.DefaultDayStart {
		t.Errorf("expected default day start %q, got %q", constants.DefaultDayStart, settings.DayStart)
	}
	if !settings.NotificationsEnabled {
		t.Error("expected notifications enabled by default")
	}
	if settings.NotificationGracePeriodMin != constants.DefaultNotificationGraceMin {
		t.Errorf("unexpected default grace period: %d", settings.NotificationGracePeriodMin)
	}
}

func TestSaveAndGetSettings(t *testing.T) {
	store := newTestStore(t)

	settings, err := store.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}

	settings.DayStart = "05:30"
	settings.NotifyBlockEnd = true
	settings.Timezone = "Europe/Berlin"
	if err := store.SaveSettings(settings); err != nil {
		t.Fatalf("SaveSettings failed: %v", err)
	}

	got, err := store.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if got.DayStart != "05:30" || !got.NotifyBlockEnd || got.Timezone != "Europe/Berlin" {
		t.Errorf("settings round trip failed: %+v", got)
	}
}

func TestBlockCRUD(t *testing.T) {
	store := newTestStore(t)

	b := testBlock("b1", "2026-01-05")
	if err := store.AddBlock(b); err != nil {
		t.Fatalf("AddBlock failed: %v", err)
	}

	got, err := store.GetBlock("b1")
	if err != nil {
		t.Fatalf("GetBlock failed: %v", err)
	}
	if got.Title != b.Title || got.Start != b.Start || got.Status != models.StatusNotStarted {
		t.Errorf("block round trip failed: %+v", got)
	}

	got.Status = models.StatusCompleted
	if err := store.UpdateBlock(got); err != nil {
		t.Fatalf("UpdateBlock failed: %v", err)
	}
	updated, err := store.GetBlock("b1")
	if err != nil {
		t.Fatalf("GetBlock failed: %v", err)
	}
	if updated.Status != models.StatusCompleted {
		t.Errorf("expected completed status, got %q", updated.Status)
	}

	if _, err := store.GetBlock("missing"); err == nil {
		t.Error("expected error for missing block")
	}
}

func TestGetBlocksForDateOrdering(t *testing.T) {
	store := newTestStore(t)

	late := testBlock("late", "2026-01-05")
	late.Start, late.End = "14:00", "15:00"
	early := testBlock("early", "2026-01-05")
	early.Start, early.End = "07:00", "08:00"
	other := testBlock("other", "2026-01-06")

	for _, b := range []models.TimeBlock{late, early, other} {
		if err := store.AddBlock(b); err != nil {
			t.Fatalf("AddBlock failed: %v", err)
		}
	}

	blocks, err := store.GetBlocksForDate("2026-01-05")
	if err != nil {
		t.Fatalf("GetBlocksForDate failed: %v", err)
	}
	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(blocks))
	}
	if blocks[0].ID != "early" || blocks[1].ID != "late" {
		t.Errorf("blocks not ordered by start time: %s, %s", blocks[0].ID, blocks[1].ID)
	}
}

func TestSoftDeleteAndRestore(t *testing.T) {
	store := newTestStore(t)

	if err := store.AddBlock(testBlock("b1", "2026-01-05")); err != nil {
		t.Fatalf("AddBlock failed: %v", err)
	}

	if err := store.DeleteBlock("b1"); err != nil {
		t.Fatalf("DeleteBlock failed: %v", err)
	}

	// Deleted blocks disappear from normal queries
	if _, err := store.GetBlock("b1"); err == nil {
		t.Error("deleted block still visible via GetBlock")
	}
	blocks, err := store.GetBlocksForDate("2026-01-05")
	if err != nil {
		t.Fatalf("GetBlocksForDate failed: %v", err)
	}
	if len(blocks) != 0 {
		t.Errorf("deleted block still listed for its date")
	}

	// But remain in the full set
	all, err := store.GetAllBlocksIncludingDeleted()
	if err != nil {
		t.Fatalf("GetAllBlocksIncludingDeleted failed: %v", err)
	}
	if len(all) != 1 || all[0].DeletedAt == nil {
		t.Errorf("expected soft-deleted block in full set: %+v", all)
	}

	// Double delete fails
	if err := store.DeleteBlock("b1"); err == nil || !strings.Contains(err.Error(), "already deleted") {
		t.Errorf("expected already-deleted error, got %v", err)
	}

	if err := store.RestoreBlock("b1"); err != nil {
		t.Fatalf("RestoreBlock failed: %v", err)
	}
	if _, err := store.GetBlock("b1"); err != nil {
		t.Errorf("restored block not visible: %v", err)
	}

	// Restoring a live block fails
	if err := store.RestoreBlock("b1"); err == nil {
		t.Error("expected error restoring a block that is not deleted")
	}
}

func TestResetDay(t *testing.T) {
	store := newTestStore(t)

	done := testBlock("done", "2026-01-05")
	done.Status = models.StatusCompleted
	skipped := testBlock("skipped", "2026-01-05")
	skipped.Status = models.StatusSkipped
	otherDay := testBlock("other", "2026-01-06")
	otherDay.Status = models.StatusCompleted

	for _, b := range []models.TimeBlock{done, skipped, otherDay} {
		if err := store.AddBlock(b); err != nil {
			t.Fatalf("AddBlock failed: %v", err)
		}
	}

	if err := store.ResetDay("2026-01-05"); err != nil {
		t.Fatalf("ResetDay failed: %v", err)
	}

	blocks, err := store.GetBlocksForDate("2026-01-05")
	if err != nil {
		t.Fatalf("GetBlocksForDate failed: %v", err)
	}
	for _, b := range blocks {
		if b.Status != models.StatusNotStarted {
			t.Errorf("block %s not reset, status %q", b.ID, b.Status)
		}
	}

	other, err := store.GetBlock("other")
	if err != nil {
		t.Fatalf("GetBlock failed: %v", err)
	}
	if other.Status != models.StatusCompleted {
		t.Error("ResetDay must not touch other dates")
	}
}

func TestProgressRoundTrip(t *testing.T) {
	store := newTestStore(t)

	rating := 5
	p := models.DailyProgress{
		Date:            "2026-01-05",
		TotalBlocks:     3,
		CompletedBlocks: 3,
		CompletionPct:   100,
		DayRating:       &rating,
		DayNotes:        "great",
		CreatedAt:       "2026-01-05T20:00:00Z",
		UpdatedAt:       "2026-01-05T20:00:00Z",
	}
	if err := store.SaveProgress(p); err != nil {
		t.Fatalf("SaveProgress failed: %v", err)
	}

	got, err := store.GetProgress("2026-01-05")
	if err != nil {
		t.Fatalf("GetProgress failed: %v", err)
	}
	if got.CompletedBlocks != 3 || got.DayRating == nil || *got.DayRating != 5 || got.DayNotes != "great" {
		t.Errorf("progress round trip failed: %+v", got)
	}

	// Upsert: saving again replaces
	p.DayNotes = "updated"
	p.DayRating = nil
	if err := store.SaveProgress(p); err != nil {
		t.Fatalf("SaveProgress failed: %v", err)
	}
	got, err = store.GetProgress("2026-01-05")
	if err != nil {
		t.Fatalf("GetProgress failed: %v", err)
	}
	if got.DayNotes != "updated" || got.DayRating != nil {
		t.Errorf("progress upsert failed: %+v", got)
	}

	if _, err := store.GetProgress("1999-01-01"); err == nil {
		t.Error("expected error for missing progress record")
	}
}

func TestGetProgressRange(t *testing.T) {
	store := newTestStore(t)

	for _, date := range []string{"2026-01-03", "2026-01-04", "2026-01-05", "2026-01-10"} {
		p := models.DailyProgress{Date: date, TotalBlocks: 1, CompletedBlocks: 1, CompletionPct: 100,
			CreatedAt: date + "T00:00:00Z", UpdatedAt: date + "T00:00:00Z"}
		if err := store.SaveProgress(p); err != nil {
			t.Fatalf("SaveProgress failed: %v", err)
		}
	}

	days, err := store.GetProgressRange("2026-01-03", "2026-01-05")
	if err != nil {
		t.Fatalf("GetProgressRange failed: %v", err)
	}
	if len(days) != 3 {
		t.Errorf("expected 3 records in range, got %d", len(days))
	}
	for i := 1; i < len(days); i++ {
		if days[i].Date < days[i-1].Date {
			t.Error("range not ordered by date")
		}
	}
}

func TestDeleteAllBlocksAndClearProgress(t *testing.T) {
	store := newTestStore(t)

	if err := store.AddBlock(testBlock("b1", "2026-01-05")); err != nil {
		t.Fatalf("AddBlock failed: %v", err)
	}
	if err := store.SaveProgress(models.DailyProgress{Date: "2026-01-05", CreatedAt: "x", UpdatedAt: "x"}); err != nil {
		t.Fatalf("SaveProgress failed: %v", err)
	}

	if err := store.DeleteAllBlocks(); err != nil {
		t.Fatalf("DeleteAllBlocks failed: %v", err)
	}
	if err := store.ClearProgress(); err != nil {
		t.Fatalf("ClearProgress failed: %v", err)
	}

	all, err := store.GetAllBlocksIncludingDeleted()
	if err != nil {
		t.Fatalf("GetAllBlocksIncludingDeleted failed: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("expected no blocks after wipe, got %d", len(all))
	}
	records, err := store.GetAllProgress()
	if err != nil {
		t.Fatalf("GetAllProgress failed: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("expected no progress after wipe, got %d", len(records))
	}
}

func TestLoadValidatesSchema(t *testing.T) {
	store := newTestStore(t)
	if err := store.Load(); err != nil {
		t.Fatalf("Load on initialized store failed: %v", err)
	}
}
