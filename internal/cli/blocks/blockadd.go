package blocks

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/routineanchor/anchor/internal/cli"
	"github.com/routineanchor/anchor/internal/models"
	"github.com/routineanchor/anchor/internal/utils"
	"github.com/routineanchor/anchor/internal/validation"
)

type BlockAddCmd struct {
	Title    string `arg:"" help:"Block title."`
	Start    string `short:"s" help:"Start time (HH:MM)." required:""`
	End      string `short:"e" help:"End time (HH:MM)." required:""`
	Date     string `short:"d" help:"Date (YYYY-MM-DD or 'today')." default:"today"`
	Notes    string `short:"n" help:"Notes for the block."`
	Category string `short:"c" help:"Category label."`
	Icon     string `help:"Emoji or icon for the block."`
	Force    bool   `short:"f" help:"Add the block even if it conflicts with the existing schedule."`
}

func (c *BlockAddCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	date, err := utils.ResolveDate(c.Date, settings)
	if err != nil {
		return err
	}

	if _, err := utils.ParseTime(c.Start); err != nil {
		return fmt.Errorf("invalid start time %q, use HH:MM", c.Start)
	}
	if _, err := utils.ParseTime(c.End); err != nil {
		return fmt.Errorf("invalid end time %q, use HH:MM", c.End)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	block := models.TimeBlock{
		ID:        uuid.New().String(),
		Title:     c.Title,
		Notes:     c.Notes,
		Date:      date,
		Start:     c.Start,
		End:       c.End,
		Status:    models.StatusNotStarted,
		Category:  c.Category,
		Icon:      c.Icon,
		CreatedAt: now,
		UpdatedAt: now,
	}

	// Validate against the rest of the day before committing
	existing, err := ctx.Store.GetBlocksForDate(date)
	if err != nil {
		return err
	}
	result := validation.New().ValidateDay(date, append(existing, block), settings.DayStart, settings.DayEnd)
	if result.HasConflicts() && !c.Force {
		fmt.Println(result.FormatReport())
		return fmt.Errorf("block not added, re-run with --force to add it anyway")
	}

	if err := ctx.Store.AddBlock(block); err != nil {
		return err
	}

	fmt.Printf("Added block: %s %s-%s on %s (ID: %s)\n", c.Title, c.Start, c.End, date, block.ID)
	if result.HasConflicts() {
		fmt.Println()
		fmt.Println(result.FormatReport())
	}
	return nil
}
