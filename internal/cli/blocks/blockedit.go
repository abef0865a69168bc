package blocks

import (
	"fmt"
	"time"

	"github.com/routineanchor/anchor/internal/cli"
	"github.com/routineanchor/anchor/internal/utils"
	"github.com/routineanchor/anchor/internal/validation"
)

type BlockEditCmd struct {
	ID       string  `arg:"" help:"Block ID (or unique prefix)."`
	Title    *string `help:"New title."`
	Start    *string `short:"s" help:"New start time (HH:MM)."`
	End      *string `short:"e" help:"New end time (HH:MM)."`
	Notes    *string `short:"n" help:"New notes."`
	Category *string `short:"c" help:"New category."`
	Icon     *string `help:"New icon."`
	Force    bool    `short:"f" help:"Save even if the change conflicts with the existing schedule."`
}

func (c *BlockEditCmd) Run(ctx *cli.Context) error {
	block, err := FindBlock(ctx, c.ID)
	if err != nil {
		return err
	}

	updated := false
	if c.Title != nil {
		block.Title = *c.Title
		updated = true
	}
	if c.Start != nil {
		if _, err := utils.ParseTime(*c.Start); err != nil {
			return fmt.Errorf("invalid start time %q, use HH:MM", *c.Start)
		}
		block.Start = *c.Start
		updated = true
	}
	if c.End != nil {
		if _, err := utils.ParseTime(*c.End); err != nil {
			return fmt.Errorf("invalid end time %q, use HH:MM", *c.End)
		}
		block.End = *c.End
		updated = true
	}
	if c.Notes != nil {
		block.Notes = *c.Notes
		updated = true
	}
	if c.Category != nil {
		block.Category = *c.Category
		updated = true
	}
	if c.Icon != nil {
		block.Icon = *c.Icon
		updated = true
	}

	if !updated {
		fmt.Println("No changes specified.")
		return nil
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	day, err := ctx.Store.GetBlocksForDate(block.Date)
	if err != nil {
		return err
	}
	for i := range day {
		if day[i].ID == block.ID {
			day[i] = block
		}
	}
	result := validation.New().ValidateDay(block.Date, day, settings.DayStart, settings.DayEnd)
	if result.HasConflicts() && !c.Force {
		fmt.Println(result.FormatReport())
		return fmt.Errorf("block not updated, re-run with --force to save anyway")
	}

	block.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	if err := ctx.Store.UpdateBlock(block); err != nil {
		return err
	}

	fmt.Printf("Updated block: %s (%s %s-%s)\n", block.Title, block.Date, block.Start, block.End)
	return nil
}
