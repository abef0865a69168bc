package reports

import (
	"fmt"

	"github.com/routineanchor/anchor/internal/cli"
	"github.com/routineanchor/anchor/internal/constants"
	"github.com/routineanchor/anchor/internal/progress"
	"github.com/routineanchor/anchor/internal/utils"
)

type StatsCmd struct {
	Days int    `short:"d" help:"Number of days to include, ending today." default:"7"`
	From string `help:"Range start (YYYY-MM-DD); overrides --days."`
	To   string `help:"Range end (YYYY-MM-DD); defaults to today."`
}

func (c *StatsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	endDate := c.To
	if endDate == "" {
		endDate, err = utils.TodayFromSettings(settings)
		if err != nil {
			return err
		}
	}

	startDate := c.From
	if startDate == "" {
		if c.Days < 1 {
			return fmt.Errorf("--days must be at least 1")
		}
		end, err := utils.ParseDate(endDate)
		if err != nil {
			return fmt.Errorf("invalid end date %q: %w", endDate, err)
		}
		startDate = end.AddDate(0, 0, -(c.Days - 1)).Format(constants.DateFormat)
	} else if _, err := utils.ParseDate(startDate); err != nil {
		return fmt.Errorf("invalid start date %q: %w", startDate, err)
	}

	summary, err := progress.Summarize(ctx.Store, startDate, endDate)
	if err != nil {
		return err
	}

	fmt.Printf("Statistics %s to %s:\n", startDate, endDate)
	fmt.Printf("  Days with records: %d\n", len(summary.Days))
	fmt.Printf("  Total blocks:      %d\n", summary.TotalBlocks)
	fmt.Printf("  Completed:         %d\n", summary.CompletedBlocks)
	fmt.Printf("  Skipped:           %d\n", summary.SkippedBlocks)
	fmt.Printf("  Avg completion:    %.1f%%\n", summary.AvgCompletion)
	fmt.Printf("  Perfect-day streak: %d\n", summary.Streak)

	if len(summary.Days) > 0 {
		fmt.Println("\nPer day:")
		for _, d := range summary.Days {
			marker := ""
			if d.IsPerfect() {
				marker = "  *"
			}
			fmt.Printf("  %s  %d/%d completed (%.0f%%)%s\n", d.Date, d.CompletedBlocks, d.TotalBlocks, d.CompletionPct, marker)
		}
	}

	return nil
}
