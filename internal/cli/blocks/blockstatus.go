package blocks

import (
	"fmt"
	"strings"
	"time"

	"github.com/routineanchor/anchor/internal/cli"
	"github.com/routineanchor/anchor/internal/models"
	"github.com/routineanchor/anchor/internal/progress"
)

type BlockStartCmd struct {
	ID string `arg:"" help:"Block ID (or unique prefix)."`
}

func (c *BlockStartCmd) Run(ctx *cli.Context) error {
	return transition(ctx, c.ID, models.StatusInProgress, "Started")
}

type BlockCompleteCmd struct {
	ID string `arg:"" help:"Block ID (or unique prefix)."`
}

func (c *BlockCompleteCmd) Run(ctx *cli.Context) error {
	return transition(ctx, c.ID, models.StatusCompleted, "Completed")
}

type BlockSkipCmd struct {
	ID string `arg:"" help:"Block ID (or unique prefix)."`
}

func (c *BlockSkipCmd) Run(ctx *cli.Context) error {
	return transition(ctx, c.ID, models.StatusSkipped, "Skipped")
}

type BlockResetCmd struct {
	ID string `arg:"" help:"Block ID (or unique prefix)."`
}

func (c *BlockResetCmd) Run(ctx *cli.Context) error {
	return transition(ctx, c.ID, models.StatusNotStarted, "Reset")
}

// transition applies a guarded status change and keeps the day's progress
// record in sync.
func transition(ctx *cli.Context, idArg string, target models.BlockStatus, verb string) error {
	block, err := FindBlock(ctx, idArg)
	if err != nil {
		return err
	}

	if err := block.TransitionTo(target); err != nil {
		return err
	}
	block.UpdatedAt = time.Now().UTC().Format(time.RFC3339)

	if err := ctx.Store.UpdateBlock(block); err != nil {
		return err
	}

	if _, err := progress.Rebuild(ctx.Store, block.Date); err != nil {
		return fmt.Errorf("block updated but progress rebuild failed: %w", err)
	}

	fmt.Printf("%s block: %s (%s-%s)\n", verb, block.Title, block.Start, block.End)
	return nil
}

// FindBlock resolves a full block ID or a unique ID prefix.
func FindBlock(ctx *cli.Context, idArg string) (models.TimeBlock, error) {
	if block, err := ctx.Store.GetBlock(idArg); err == nil {
		return block, nil
	}

	all, err := ctx.Store.GetAllBlocks()
	if err != nil {
		return models.TimeBlock{}, err
	}

	var matches []models.TimeBlock
	for _, b := range all {
		if strings.HasPrefix(b.ID, idArg) {
			matches = append(matches, b)
		}
	}

	switch len(matches) {
	case 0:
		return models.TimeBlock{}, fmt.Errorf("no block found with ID %q", idArg)
	case 1:
		return matches[0], nil
	default:
		return models.TimeBlock{}, fmt.Errorf("ambiguous block ID %q matches %d blocks", idArg, len(matches))
	}
}
