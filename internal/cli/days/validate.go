package days

import (
	"fmt"

	"github.com/routineanchor/anchor/internal/cli"
	"github.com/routineanchor/anchor/internal/utils"
	"github.com/routineanchor/anchor/internal/validation"
)

type ValidateCmd struct {
	Date string `arg:"" optional:"" help:"Date to validate (YYYY-MM-DD or 'today')." default:"today"`
}

func (cmd *ValidateCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	date, err := utils.ResolveDate(cmd.Date, settings)
	if err != nil {
		return err
	}

	blocks, err := ctx.Store.GetBlocksForDate(date)
	if err != nil {
		return fmt.Errorf("failed to load blocks: %w", err)
	}

	fmt.Printf("Validating schedule for %s...\n\n", date)
	result := validation.New().ValidateDay(date, blocks, settings.DayStart, settings.DayEnd)
	fmt.Println(result.FormatReport())

	// Conflicts are reported, not treated as a command failure
	return nil
}
