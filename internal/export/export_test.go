package export

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/routineanchor/anchor/internal/models"
	"github.com/routineanchor/anchor/internal/storage/sqlite"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "anchor.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleSnapshot() Snapshot {
	rating := 4
	return Snapshot{
		ExportedAt: "2026-01-05T12:00:00Z",
		AppVersion: "v0.3.0",
		TimeBlocks: []models.TimeBlock{
			{
				ID:        "b1",
				Title:     "Morning routine",
				Notes:     "stretch\nthen coffee",
				Date:      "2026-01-05",
				Start:     "06:30",
				End:       "07:15",
				Status:    models.StatusCompleted,
				Category:  "health",
				Icon:      "🌅",
				CreatedAt: "2026-01-05T06:00:00Z",
				UpdatedAt: "2026-01-05T07:20:00Z",
			},
			{
				ID:        "b2",
				Title:     "Deep work",
				Date:      "2026-01-05",
				Start:     "09:00",
				End:       "11:00",
				Status:    models.StatusNotStarted,
				CreatedAt: "2026-01-05T06:00:00Z",
				UpdatedAt: "2026-01-05T06:00:00Z",
			},
		},
		DailyProgress: []models.DailyProgress{
			{
				Date:            "2026-01-05",
				TotalBlocks:     2,
				CompletedBlocks: 1,
				SkippedBlocks:   0,
				CompletionPct:   50.0,
				DayRating:       &rating,
				DayNotes:        "solid start",
				CreatedAt:       "2026-01-05T07:20:00Z",
				UpdatedAt:       "2026-01-05T07:20:00Z",
			},
		},
		Statistics: Statistics{TotalBlocks: 2, CompletedBlocks: 1, TotalDays: 1},
	}
}

func TestRoundTrip(t *testing.T) {
	for _, format := range []Format{FormatJSON, FormatCSV, FormatText} {
		t.Run(string(format), func(t *testing.T) {
			snap := sampleSnapshot()
			path := filepath.Join(t.TempDir(), "export."+format.Extension())

			if err := Write(snap, format, path); err != nil {
				t.Fatalf("Write failed: %v", err)
			}

			got, err := Read(path)
			if err != nil {
				t.Fatalf("Read failed: %v", err)
			}

			if len(got.TimeBlocks) != 2 {
				t.Fatalf("expected 2 blocks, got %d", len(got.TimeBlocks))
			}
			b := got.TimeBlocks[0]
			if b.ID != "b1" || b.Title != "Morning routine" || b.Start != "06:30" || b.End != "07:15" {
				t.Errorf("block fields lost in round trip: %+v", b)
			}
			if b.Status != models.StatusCompleted {
				t.Errorf("expected completed status, got %q", b.Status)
			}
			if b.Notes != "stretch\nthen coffee" {
				t.Errorf("multi-line notes lost: %q", b.Notes)
			}

			if len(got.DailyProgress) != 1 {
				t.Fatalf("expected 1 progress record, got %d", len(got.DailyProgress))
			}
			p := got.DailyProgress[0]
			if p.Date != "2026-01-05" || p.TotalBlocks != 2 || p.CompletedBlocks != 1 {
				t.Errorf("progress fields lost in round trip: %+v", p)
			}
			if p.CompletionPct != 50.0 {
				t.Errorf("expected 50.0%%, got %v", p.CompletionPct)
			}
			if p.DayRating == nil || *p.DayRating != 4 {
				t.Error("day rating lost in round trip")
			}
		})
	}
}

func TestNegotiateFormat(t *testing.T) {
	tests := []struct {
		explicit string
		path     string
		want     Format
		wantErr  bool
	}{
		{"json", "", FormatJSON, false},
		{"csv", "out.json", FormatCSV, false}, // explicit wins
		{"txt", "", FormatText, false},
		{"", "export.csv", FormatCSV, false},
		{"", "export.txt", FormatText, false},
		{"", "export.json", FormatJSON, false},
		{"", "export", FormatJSON, false},
		{"xml", "", "", true},
	}

	for _, tt := range tests {
		got, err := NegotiateFormat(tt.explicit, tt.path)
		if tt.wantErr {
			if err == nil {
				t.Errorf("NegotiateFormat(%q, %q): expected error", tt.explicit, tt.path)
			}
			continue
		}
		if err != nil {
			t.Errorf("NegotiateFormat(%q, %q): %v", tt.explicit, tt.path, err)
			continue
		}
		if got != tt.want {
			t.Errorf("NegotiateFormat(%q, %q) = %q, want %q", tt.explicit, tt.path, got, tt.want)
		}
	}
}

func TestFileName(t *testing.T) {
	now := time.Date(2026, 1, 5, 14, 30, 45, 0, time.UTC)
	got := FileName(FormatText, now)
	if got != "routine-anchor-export-20260105-143045.txt" {
		t.Errorf("unexpected file name: %s", got)
	}
}

func TestImportSkipsDuplicates(t *testing.T) {
	store := newTestStore(t)
	snap := sampleSnapshot()

	first, err := Import(store, snap)
	if err != nil {
		t.Fatalf("first import failed: %v", err)
	}
	if first.ImportedBlocks != 2 || first.ImportedProgress != 1 || first.Skipped != 0 {
		t.Errorf("unexpected first import result: %+v", first)
	}

	second, err := Import(store, snap)
	if err != nil {
		t.Fatalf("second import failed: %v", err)
	}
	if second.ImportedBlocks != 0 || second.ImportedProgress != 0 {
		t.Errorf("duplicates were imported: %+v", second)
	}
	if second.Skipped != 3 {
		t.Errorf("expected 3 skipped records, got %d", second.Skipped)
	}
}

func TestImportAccumulatesErrors(t *testing.T) {
	store := newTestStore(t)

	snap := Snapshot{
		TimeBlocks: []models.TimeBlock{
			{ID: "", Title: "no id", Date: "2026-01-05", Start: "09:00", End: "10:00", Status: models.StatusNotStarted},
			{ID: "ok", Title: "fine", Date: "2026-01-05", Start: "10:00", End: "11:00", Status: models.StatusNotStarted},
			{ID: "bad-status", Title: "bad", Date: "2026-01-05", Start: "11:00", End: "12:00", Status: "paused"},
		},
		DailyProgress: []models.DailyProgress{
			{Date: "2026-01-05", TotalBlocks: 1, CompletedBlocks: 2}, // completed > total
		},
	}

	result, err := Import(store, snap)
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	if result.ImportedBlocks != 1 {
		t.Errorf("expected the one valid block imported, got %d", result.ImportedBlocks)
	}
	if len(result.Errors) != 3 {
		t.Errorf("expected 3 record errors, got %d: %v", len(result.Errors), result.Errors)
	}
	if result.ErrorSummary() == "" || !strings.Contains(result.ErrorSummary(), ";") {
		t.Errorf("unexpected error summary: %q", result.ErrorSummary())
	}

	// The valid block must actually be there
	if _, err := store.GetBlock("ok"); err != nil {
		t.Errorf("valid block missing after import: %v", err)
	}
}

func TestReadMissingFile(t *testing.T) {
	if _, err := Read(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected error reading missing file")
	}
}
