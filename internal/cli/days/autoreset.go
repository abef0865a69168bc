package days

import (
	"fmt"
	"time"

	"github.com/routineanchor/anchor/internal/cli"
	"github.com/routineanchor/anchor/internal/models"
	"github.com/routineanchor/anchor/internal/progress"
	"github.com/routineanchor/anchor/internal/utils"
)

// maybeAutoReset clears stale in-progress blocks from previous days once a
// new day begins. Blocks already reset, completed, or skipped are left
// alone, so running it repeatedly on the same day is harmless.
func maybeAutoReset(ctx *cli.Context, settings models.Settings) error {
	if !settings.AutoResetOnNewDay {
		return nil
	}

	today, err := utils.TodayFromSettings(settings)
	if err != nil {
		return err
	}

	blocks, err := ctx.Store.GetAllBlocks()
	if err != nil {
		return err
	}

	staleDates := make(map[string]bool)
	for _, b := range blocks {
		if b.Date >= today || b.Status != models.StatusInProgress {
			continue
		}
		if err := b.TransitionTo(models.StatusNotStarted); err != nil {
			return err
		}
		b.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
		if err := ctx.Store.UpdateBlock(b); err != nil {
			return fmt.Errorf("failed to reset stale block %q: %w", b.Title, err)
		}
		staleDates[b.Date] = true
	}

	for date := range staleDates {
		if _, err := progress.Rebuild(ctx.Store, date); err != nil {
			return fmt.Errorf("blocks reset but progress rebuild failed: %w", err)
		}
	}
	return nil
}
