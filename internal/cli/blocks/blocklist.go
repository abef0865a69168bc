package blocks

import (
	"fmt"
	"sort"

	"github.com/routineanchor/anchor/internal/cli"
	"github.com/routineanchor/anchor/internal/models"
	"github.com/routineanchor/anchor/internal/utils"
)

type BlockListCmd struct {
	Date     string `arg:"" optional:"" help:"Date to list (YYYY-MM-DD, 'today', 'yesterday', 'tomorrow')." default:"today"`
	All      bool   `help:"List blocks for all dates."`
	Deleted  bool   `help:"Include soft-deleted blocks."`
	Category string `short:"c" help:"Only show blocks in this category."`
}

func (c *BlockListCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	var blocks []models.TimeBlock
	switch {
	case c.All && c.Deleted:
		blocks, err = ctx.Store.GetAllBlocksIncludingDeleted()
	case c.All:
		blocks, err = ctx.Store.GetAllBlocks()
	default:
		var date string
		date, err = utils.ResolveDate(c.Date, settings)
		if err != nil {
			return err
		}
		blocks, err = ctx.Store.GetBlocksForDate(date)
		if err == nil && c.Deleted {
			// Per-date queries exclude deleted rows; pull them from the full set.
			all, allErr := ctx.Store.GetAllBlocksIncludingDeleted()
			if allErr != nil {
				return allErr
			}
			for _, b := range all {
				if b.Date == date && b.DeletedAt != nil {
					blocks = append(blocks, b)
				}
			}
		}
	}
	if err != nil {
		return err
	}

	if c.Category != "" {
		filtered := blocks[:0]
		for _, b := range blocks {
			if b.Category == c.Category {
				filtered = append(filtered, b)
			}
		}
		blocks = filtered
	}

	if len(blocks) == 0 {
		fmt.Println("No blocks found")
		return nil
	}

	sort.Slice(blocks, func(i, j int) bool {
		if blocks[i].Date != blocks[j].Date {
			return blocks[i].Date < blocks[j].Date
		}
		return blocks[i].Start < blocks[j].Start
	})

	fmt.Println("Blocks:")
	lastDate := ""
	for _, b := range blocks {
		if b.Date != lastDate {
			fmt.Printf("\n%s:\n", b.Date)
			lastDate = b.Date
		}

		label := cli.StatusLabel(b.Status)
		if b.DeletedAt != nil {
			label = "[deleted]"
		}
		title := b.Title
		if b.Icon != "" {
			title = b.Icon + " " + title
		}
		fmt.Printf("  %s-%s  %-30s  %s", b.Start, b.End, title, label)
		if b.Category != "" {
			fmt.Printf("  (%s)", b.Category)
		}
		fmt.Println()
		if b.Notes != "" {
			fmt.Printf("              Note: %s\n", b.Notes)
		}
	}

	return nil
}
