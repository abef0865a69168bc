package days

import (
	"fmt"

	"github.com/routineanchor/anchor/internal/cli"
	"github.com/routineanchor/anchor/internal/progress"
	"github.com/routineanchor/anchor/internal/utils"
)

type DayResetCmd struct {
	Date string `arg:"" optional:"" help:"Date to reset (YYYY-MM-DD or 'today')." default:"today"`
}

func (c *DayResetCmd) Run(ctx *cli.Context) error {
	ctx.PerformAutomaticBackup()

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	date, err := utils.ResolveDate(c.Date, settings)
	if err != nil {
		return err
	}

	if err := ctx.Store.ResetDay(date); err != nil {
		return err
	}

	if _, err := progress.Rebuild(ctx.Store, date); err != nil {
		return fmt.Errorf("day reset but progress rebuild failed: %w", err)
	}

	fmt.Printf("Reset all blocks for %s to not started.\n", date)
	return nil
}
