package data

import (
	"fmt"

	"github.com/routineanchor/anchor/internal/cli"
	"github.com/routineanchor/anchor/internal/export"
)

type ImportCmd struct {
	File string `arg:"" help:"Export file to import (json, csv, or txt)." type:"existingfile"`
}

func (c *ImportCmd) Run(ctx *cli.Context) error {
	ctx.PerformAutomaticBackup()

	snap, err := export.Read(c.File)
	if err != nil {
		return fmt.Errorf("failed to read export file: %w", err)
	}

	result, err := export.Import(ctx.Store, snap)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	fmt.Printf("Imported %d blocks and %d progress records (%d duplicates skipped).\n",
		result.ImportedBlocks, result.ImportedProgress, result.Skipped)

	if len(result.Errors) > 0 {
		fmt.Printf("\n%d records could not be imported:\n", len(result.Errors))
		for _, e := range result.Errors {
			fmt.Printf("  - %s\n", e)
		}
	}

	return nil
}
