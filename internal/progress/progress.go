// Package progress derives daily summary records from a day's time blocks
// and keeps them persisted alongside every status mutation.
package progress

import (
	"fmt"
	"time"

	"github.com/routineanchor/anchor/internal/constants"
	"github.com/routineanchor/anchor/internal/models"
	"github.com/routineanchor/anchor/internal/storage"
)

// BuildForDate computes a DailyProgress record from the given blocks.
// Existing rating and notes are carried over from prev when present.
func BuildForDate(date string, blocks []models.TimeBlock, prev *models.DailyProgress) models.DailyProgress {
	now := time.Now().UTC().Format(time.RFC3339)

	p := models.DailyProgress{
		Date:      date,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if prev != nil {
		p.CreatedAt = prev.CreatedAt
		p.DayRating = prev.DayRating
		p.DayNotes = prev.DayNotes
	}

	for _, b := range blocks {
		if b.DeletedAt != nil {
			continue
		}
		p.TotalBlocks++
		switch b.Status {
		case models.StatusCompleted:
			p.CompletedBlocks++
		case models.StatusSkipped:
			p.SkippedBlocks++
		}
	}
	p.Recalculate()
	return p
}

// Rebuild recomputes and persists the progress record for a date.
// Rating and notes already stored for the day survive the rebuild.
func Rebuild(store storage.Provider, date string) (models.DailyProgress, error) {
	blocks, err := store.GetBlocksForDate(date)
	if err != nil {
		return models.DailyProgress{}, fmt.Errorf("failed to load blocks for %s: %w", date, err)
	}

	var prev *models.DailyProgress
	if existing, err := store.GetProgress(date); err == nil {
		prev = &existing
	}

	p := BuildForDate(date, blocks, prev)
	if err := store.SaveProgress(p); err != nil {
		return models.DailyProgress{}, fmt.Errorf("failed to save progress for %s: %w", date, err)
	}
	return p, nil
}

// Summary aggregates a range of progress records.
type Summary struct {
	Days            []models.DailyProgress
	TotalBlocks     int
	CompletedBlocks int
	SkippedBlocks   int
	AvgCompletion   float64
	Streak          int // consecutive perfect days ending at the range end
}

// Summarize builds a Summary over [startDate, endDate].
func Summarize(store storage.Provider, startDate, endDate string) (Summary, error) {
	days, err := store.GetProgressRange(startDate, endDate)
	if err != nil {
		return Summary{}, err
	}

	s := Summary{Days: days}
	for _, d := range days {
		s.TotalBlocks += d.TotalBlocks
		s.CompletedBlocks += d.CompletedBlocks
		s.SkippedBlocks += d.SkippedBlocks
	}
	if s.TotalBlocks > 0 {
		s.AvgCompletion = float64(s.CompletedBlocks) / float64(s.TotalBlocks) * 100
	}
	s.Streak = streak(days, endDate)
	return s, nil
}

// streak counts consecutive perfect days walking backwards from endDate.
// Days with no record or no blocks break the streak.
func streak(days []models.DailyProgress, endDate string) int {
	byDate := make(map[string]models.DailyProgress, len(days))
	for _, d := range days {
		byDate[d.Date] = d
	}

	end, err := time.Parse(constants.DateFormat, endDate)
	if err != nil {
		return 0
	}

	count := 0
	for cursor := end; ; cursor = cursor.AddDate(0, 0, -1) {
		d, ok := byDate[cursor.Format(constants.DateFormat)]
		if !ok || !d.IsPerfect() {
			break
		}
		count++
	}
	return count
}
