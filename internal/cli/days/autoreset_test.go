package days

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/routineanchor/anchor/internal/cli"
	"github.com/routineanchor/anchor/internal/models"
	"github.com/routineanchor/anchor/internal/storage/sqlite"
)

func newTestContext(t *testing.T) *cli.Context {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "anchor.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return &cli.Context{Store: store}
}

func seedBlock(t *testing.T, ctx *cli.Context, id, date string, status models.BlockStatus) {
	t.Helper()
	now := time.Now().UTC().Format(time.RFC3339)
	err := ctx.Store.AddBlock(models.TimeBlock{
		ID:        id,
		Title:     "Block " + id,
		Date:      date,
		Start:     "09:00",
		End:       "10:00",
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("AddBlock failed: %v", err)
	}
}

func TestMaybeAutoResetClearsStaleBlocks(t *testing.T) {
	ctx := newTestContext(t)

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	settings.Timezone = "UTC"
	settings.AutoResetOnNewDay = true

	today := time.Now().UTC().Format("2006-01-02")
	yesterday := time.Now().UTC().AddDate(0, 0, -1).Format("2006-01-02")

	seedBlock(t, ctx, "stale", yesterday, models.StatusInProgress)
	seedBlock(t, ctx, "done", yesterday, models.StatusCompleted)
	seedBlock(t, ctx, "current", today, models.StatusInProgress)

	if err := maybeAutoReset(ctx, settings); err != nil {
		t.Fatalf("maybeAutoReset failed: %v", err)
	}

	stale, err := ctx.Store.GetBlock("stale")
	if err != nil {
		t.Fatalf("GetBlock failed: %v", err)
	}
	if stale.Status != models.StatusNotStarted {
		t.Errorf("stale block not reset, status %q", stale.Status)
	}

	// Finished blocks and today's blocks are untouched
	done, err := ctx.Store.GetBlock("done")
	if err != nil {
		t.Fatalf("GetBlock failed: %v", err)
	}
	if done.Status != models.StatusCompleted {
		t.Errorf("completed block changed to %q", done.Status)
	}
	current, err := ctx.Store.GetBlock("current")
	if err != nil {
		t.Fatalf("GetBlock failed: %v", err)
	}
	if current.Status != models.StatusInProgress {
		t.Errorf("today's block changed to %q", current.Status)
	}

	// Yesterday's progress record reflects the reset
	p, err := ctx.Store.GetProgress(yesterday)
	if err != nil {
		t.Fatalf("GetProgress failed: %v", err)
	}
	if p.TotalBlocks != 2 || p.CompletedBlocks != 1 {
		t.Errorf("unexpected rebuilt progress: %+v", p)
	}
}

func TestMaybeAutoResetDisabled(t *testing.T) {
	ctx := newTestContext(t)

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	settings.Timezone = "UTC"
	settings.AutoResetOnNewDay = false

	yesterday := time.Now().UTC().AddDate(0, 0, -1).Format("2006-01-02")
	seedBlock(t, ctx, "stale", yesterday, models.StatusInProgress)

	if err := maybeAutoReset(ctx, settings); err != nil {
		t.Fatalf("maybeAutoReset failed: %v", err)
	}

	stale, err := ctx.Store.GetBlock("stale")
	if err != nil {
		t.Fatalf("GetBlock failed: %v", err)
	}
	if stale.Status != models.StatusInProgress {
		t.Errorf("block reset despite disabled setting, status %q", stale.Status)
	}
}
