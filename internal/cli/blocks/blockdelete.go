package blocks

import (
	"fmt"

	"github.com/routineanchor/anchor/internal/cli"
	"github.com/routineanchor/anchor/internal/progress"
)

type BlockDeleteCmd struct {
	ID string `arg:"" help:"Block ID (or unique prefix)."`
}

func (c *BlockDeleteCmd) Run(ctx *cli.Context) error {
	block, err := FindBlock(ctx, c.ID)
	if err != nil {
		return err
	}

	if err := ctx.Store.DeleteBlock(block.ID); err != nil {
		return err
	}

	if _, err := progress.Rebuild(ctx.Store, block.Date); err != nil {
		return fmt.Errorf("block deleted but progress rebuild failed: %w", err)
	}

	fmt.Printf("Deleted block: %s (ID: %s)\n", block.Title, block.ID)
	fmt.Println("Use 'anchor block restore' to undo.")
	return nil
}

type BlockRestoreCmd struct {
	ID string `arg:"" help:"Block ID of the deleted block."`
}

func (c *BlockRestoreCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.RestoreBlock(c.ID); err != nil {
		return err
	}

	block, err := ctx.Store.GetBlock(c.ID)
	if err != nil {
		return err
	}

	if _, err := progress.Rebuild(ctx.Store, block.Date); err != nil {
		return fmt.Errorf("block restored but progress rebuild failed: %w", err)
	}

	fmt.Printf("Restored block: %s (%s %s-%s)\n", block.Title, block.Date, block.Start, block.End)
	return nil
}
