package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/routineanchor/anchor/internal/constants"
	"github.com/routineanchor/anchor/internal/models"
	"github.com/routineanchor/anchor/internal/storage"
)

// ImportResult accumulates the outcome of an import run. Individual record
// failures never abort the run; they are collected here instead.
type ImportResult struct {
	ImportedBlocks   int
	ImportedProgress int
	Skipped          int
	Errors           []string
}

// ErrorSummary joins the per-record errors into one displayable string.
func (r *ImportResult) ErrorSummary() string {
	return strings.Join(r.Errors, "; ")
}

// Import merges a snapshot into the store. Records whose identifier (block
// ID, progress date) already exists are skipped, not overwritten.
func Import(store storage.Provider, snap Snapshot) (ImportResult, error) {
	result := ImportResult{}

	existing, err := store.GetAllBlocksIncludingDeleted()
	if err != nil {
		return result, fmt.Errorf("failed to load existing blocks: %w", err)
	}
	existingIDs := make(map[string]bool, len(existing))
	for _, b := range existing {
		existingIDs[b.ID] = true
	}

	for _, b := range snap.TimeBlocks {
		if err := validateBlock(b); err != nil {
			result.Errors = append(result.Errors, err.Error())
			continue
		}
		if existingIDs[b.ID] {
			result.Skipped++
			continue
		}
		if err := store.AddBlock(b); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("block %s: %v", b.ID, err))
			continue
		}
		existingIDs[b.ID] = true
		result.ImportedBlocks++
	}

	existingProgress, err := store.GetAllProgress()
	if err != nil {
		return result, fmt.Errorf("failed to load existing progress: %w", err)
	}
	existingDates := make(map[string]bool, len(existingProgress))
	for _, p := range existingProgress {
		existingDates[p.Date] = true
	}

	for _, p := range snap.DailyProgress {
		if err := validateProgress(p); err != nil {
			result.Errors = append(result.Errors, err.Error())
			continue
		}
		if existingDates[p.Date] {
			result.Skipped++
			continue
		}
		if err := store.SaveProgress(p); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("progress %s: %v", p.Date, err))
			continue
		}
		existingDates[p.Date] = true
		result.ImportedProgress++
	}

	return result, nil
}

func validateBlock(b models.TimeBlock) error {
	if b.ID == "" {
		return fmt.Errorf("block %q: missing id", b.Title)
	}
	if b.Title == "" {
		return fmt.Errorf("block %s: missing title", b.ID)
	}
	if _, err := time.Parse(constants.DateFormat, b.Date); err != nil {
		return fmt.Errorf("block %s: invalid date %q", b.ID, b.Date)
	}
	if _, err := time.Parse(constants.TimeFormat, b.Start); err != nil {
		return fmt.Errorf("block %s: invalid start time %q", b.ID, b.Start)
	}
	if _, err := time.Parse(constants.TimeFormat, b.End); err != nil {
		return fmt.Errorf("block %s: invalid end time %q", b.ID, b.End)
	}
	if !b.Status.Valid() {
		return fmt.Errorf("block %s: unknown status %q", b.ID, b.Status)
	}
	return nil
}

func validateProgress(p models.DailyProgress) error {
	if _, err := time.Parse(constants.DateFormat, p.Date); err != nil {
		return fmt.Errorf("progress record: invalid date %q", p.Date)
	}
	if p.CompletedBlocks+p.SkippedBlocks > p.TotalBlocks {
		return fmt.Errorf("progress %s: completed+skipped exceeds total", p.Date)
	}
	if p.DayRating != nil && (*p.DayRating < 1 || *p.DayRating > 5) {
		return fmt.Errorf("progress %s: rating %d out of range 1-5", p.Date, *p.DayRating)
	}
	return nil
}
