// Package days holds the day-level commands: the styled day view, the
// day reset, and schedule validation.
package days

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/routineanchor/anchor/internal/cli"
	"github.com/routineanchor/anchor/internal/models"
	"github.com/routineanchor/anchor/internal/utils"
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	completedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	inProgressStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	skippedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Strikethrough(true)

	summaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

type DayCmd struct {
	Date string `arg:"" optional:"" help:"Date to show (YYYY-MM-DD, 'today', 'yesterday', 'tomorrow')." default:"today"`
}

func (c *DayCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if err := maybeAutoReset(ctx, settings); err != nil {
		return err
	}

	date, err := utils.ResolveDate(c.Date, settings)
	if err != nil {
		return err
	}

	blocks, err := ctx.Store.GetBlocksForDate(date)
	if err != nil {
		return err
	}

	fmt.Println(headerStyle.Render(fmt.Sprintf("Routine for %s", date)))
	fmt.Println()

	if len(blocks) == 0 {
		fmt.Println("  No blocks scheduled")
		return nil
	}

	sort.Slice(blocks, func(i, j int) bool {
		return blocks[i].Start < blocks[j].Start
	})

	completed, skipped := 0, 0
	for _, b := range blocks {
		line := fmt.Sprintf("%s-%s  %-30s  %s", b.Start, b.End, blockTitle(b), cli.StatusLabel(b.Status))

		switch b.Status {
		case models.StatusCompleted:
			line = completedStyle.Render(line)
			completed++
		case models.StatusInProgress:
			line = inProgressStyle.Render(line)
		case models.StatusSkipped:
			line = skippedStyle.Render(line)
			skipped++
		}
		fmt.Println(line)

		if b.Notes != "" {
			fmt.Printf("            Note: %s\n", b.Notes)
		}
	}

	pct := 0.0
	if len(blocks) > 0 {
		pct = float64(completed) / float64(len(blocks)) * 100
	}
	fmt.Println()
	fmt.Println(summaryStyle.Render(fmt.Sprintf("%d/%d completed (%.0f%%), %d skipped", completed, len(blocks), pct, skipped)))

	return nil
}

func blockTitle(b models.TimeBlock) string {
	if b.Icon != "" {
		return strings.TrimSpace(b.Icon + " " + b.Title)
	}
	return b.Title
}
