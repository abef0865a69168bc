package data

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/routineanchor/anchor/internal/cli"
)

type WipeCmd struct {
	Yes bool `short:"y" help:"Skip the confirmation prompt."`
}

func (c *WipeCmd) Run(ctx *cli.Context) error {
	if !c.Yes {
		fmt.Println("⚠️  WARNING: This permanently deletes ALL time blocks and progress records.")
		fmt.Println("A backup of your current database will be created first.")
		fmt.Print("Continue? [y/N]: ")

		reader := bufio.NewReader(os.Stdin)
		response, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		response = strings.TrimSpace(strings.ToLower(response))
		if response != "y" && response != "yes" {
			fmt.Println("Wipe cancelled.")
			return nil
		}
	}

	ctx.PerformAutomaticBackup()

	if err := ctx.Store.DeleteAllBlocks(); err != nil {
		return fmt.Errorf("failed to delete blocks: %w", err)
	}
	if err := ctx.Store.ClearProgress(); err != nil {
		return fmt.Errorf("failed to clear progress: %w", err)
	}

	fmt.Println("✓ All blocks and progress records deleted.")
	return nil
}
