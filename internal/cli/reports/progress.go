// Package reports holds the progress and statistics commands.
package reports

import (
	"fmt"

	"github.com/routineanchor/anchor/internal/cli"
	"github.com/routineanchor/anchor/internal/progress"
	"github.com/routineanchor/anchor/internal/utils"
)

type ProgressShowCmd struct {
	Date string `arg:"" optional:"" help:"Date to show (YYYY-MM-DD, 'today', 'yesterday')." default:"today"`
}

func (c *ProgressShowCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	date, err := utils.ResolveDate(c.Date, settings)
	if err != nil {
		return err
	}

	// Rebuild so the record reflects the current block statuses
	p, err := progress.Rebuild(ctx.Store, date)
	if err != nil {
		return err
	}

	fmt.Printf("Progress for %s:\n", date)
	fmt.Printf("  Total blocks:     %d\n", p.TotalBlocks)
	fmt.Printf("  Completed:        %d\n", p.CompletedBlocks)
	fmt.Printf("  Skipped:          %d\n", p.SkippedBlocks)
	fmt.Printf("  Completion:       %.1f%%\n", p.CompletionPct)
	if p.DayRating != nil {
		fmt.Printf("  Day rating:       %d/5\n", *p.DayRating)
	}
	if p.DayNotes != "" {
		fmt.Printf("  Notes:            %s\n", p.DayNotes)
	}
	if p.IsPerfect() {
		fmt.Println("\n  Perfect day! Every block completed.")
	}

	return nil
}

type ProgressRateCmd struct {
	Rating int    `arg:"" help:"Day rating (1-5)."`
	Date   string `short:"d" help:"Date to rate (YYYY-MM-DD or 'today')." default:"today"`
	Notes  string `short:"n" help:"Reflection notes for the day."`
}

func (c *ProgressRateCmd) Validate() error {
	if c.Rating < 1 || c.Rating > 5 {
		return fmt.Errorf("rating must be between 1 and 5")
	}
	return nil
}

func (c *ProgressRateCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	date, err := utils.ResolveDate(c.Date, settings)
	if err != nil {
		return err
	}

	p, err := progress.Rebuild(ctx.Store, date)
	if err != nil {
		return err
	}

	p.DayRating = &c.Rating
	if c.Notes != "" {
		p.DayNotes = c.Notes
	}
	if err := ctx.Store.SaveProgress(p); err != nil {
		return err
	}

	fmt.Printf("Rated %s: %d/5\n", date, c.Rating)
	return nil
}
