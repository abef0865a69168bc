// Package data holds the export, import, and wipe commands.
package data

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/routineanchor/anchor/internal/cli"
	"github.com/routineanchor/anchor/internal/export"
)

type ExportCmd struct {
	Output string `short:"o" help:"Output file path. Defaults to routine-anchor-export-<timestamp>.<ext> in the current directory." type:"path"`
	Format string `short:"f" help:"Export format (json|csv|text). Inferred from the output extension when omitted."`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	format, err := export.NegotiateFormat(c.Format, c.Output)
	if err != nil {
		return err
	}

	path := c.Output
	if path == "" {
		path = export.FileName(format, time.Now())
	}

	snap, err := export.BuildSnapshot(ctx.Store)
	if err != nil {
		return err
	}

	if err := export.Write(snap, format, path); err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	fmt.Printf("Exported %d blocks and %d progress records to %s (%s)\n",
		len(snap.TimeBlocks), len(snap.DailyProgress), filepath.Base(path), format)
	return nil
}
