// Package validation detects conflicts in a day's schedule of time blocks.
package validation

import (
	"fmt"
	"sort"
	"time"

	"github.com/routineanchor/anchor/internal/constants"
	"github.com/routineanchor/anchor/internal/models"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictOverlappingBlocks   ConflictType = "overlapping_blocks"
	ConflictExceedsWakingWindow ConflictType = "exceeds_waking_window"
	ConflictOvercommitted       ConflictType = "overcommitted"
	ConflictDuplicateTitle      ConflictType = "duplicate_title"
	ConflictInvalidDateTime     ConflictType = "invalid_datetime"
	ConflictOutsideWakingWindow ConflictType = "outside_waking_window"
)

// Conflict represents a detected conflict in a day's schedule
type Conflict struct {
	Type        ConflictType
	Description string
	Date        string   // YYYY-MM-DD format (if applicable)
	Items       []string // Block titles involved
	TimeRange   string   // Human-readable time range (if applicable)
	BlockIDs    []string // IDs of blocks involved
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	report := "Conflicts detected:\n"
	for _, conflict := range vr.Conflicts {
		report += fmt.Sprintf("- %s\n", conflict.Description)
	}
	return report
}

// Validator validates a day's time blocks for conflicts
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

// ValidateDay checks one day's blocks for conflicts against the waking
// window defined by dayStart and dayEnd. Deleted blocks are ignored.
func (v *Validator) ValidateDay(date string, blocks []models.TimeBlock, dayStart, dayEnd string) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	if _, err := time.Parse(constants.DateFormat, date); err != nil {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictInvalidDateTime,
			Description: fmt.Sprintf("Invalid date: %s", date),
			Date:        date,
		})
		return result // Can't continue validation without valid date
	}

	dayStartMinutes, err := parseTimeToMinutes(dayStart)
	if err != nil {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictInvalidDateTime,
			Description: fmt.Sprintf("Invalid day start time: %s", dayStart),
		})
	}

	dayEndMinutes, err := parseTimeToMinutes(dayEnd)
	if err != nil {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictInvalidDateTime,
			Description: fmt.Sprintf("Invalid day end time: %s", dayEnd),
		})
	}

	wakingWindowMinutes := dayEndMinutes - dayStartMinutes
	if wakingWindowMinutes <= 0 {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictInvalidDateTime,
			Description: fmt.Sprintf("Invalid waking window: day_start (%s) must be before day_end (%s)", dayStart, dayEnd),
		})
		return result // Can't continue validation
	}

	active := make([]models.TimeBlock, 0, len(blocks))
	for _, b := range blocks {
		if b.DeletedAt == nil {
			active = append(active, b)
		}
	}

	// Check for duplicate titles on the same day
	titleCount := make(map[string][]string)
	for _, b := range active {
		if b.Title == "" {
			continue
		}
		titleCount[b.Title] = append(titleCount[b.Title], b.ID)
	}
	for title, ids := range titleCount {
		if len(ids) > 1 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateTitle,
				Description: fmt.Sprintf("Duplicate block title: \"%s\" (IDs: %v)", title, ids),
				Date:        date,
				Items:       []string{title},
				BlockIDs:    ids,
			})
		}
	}

	// Per-block time checks
	totalPlannedMinutes := 0
	for _, b := range active {
		startOK := isValidTimeFormat(b.Start)
		endOK := isValidTimeFormat(b.End)
		if !startOK {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidDateTime,
				Description: fmt.Sprintf("Block \"%s\" has invalid start time: %s", b.Title, b.Start),
				Date:        date,
				Items:       []string{b.Title},
				BlockIDs:    []string{b.ID},
			})
		}
		if !endOK {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidDateTime,
				Description: fmt.Sprintf("Block \"%s\" has invalid end time: %s", b.Title, b.End),
				Date:        date,
				Items:       []string{b.Title},
				BlockIDs:    []string{b.ID},
			})
		}
		if !startOK || !endOK {
			continue
		}

		startMin, _ := parseTimeToMinutes(b.Start)
		endMin, _ := parseTimeToMinutes(b.End)
		if endMin <= startMin {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidDateTime,
				Description: fmt.Sprintf("Block \"%s\" has end time (%s) at or before start time (%s)", b.Title, b.End, b.Start),
				Date:        date,
				Items:       []string{b.Title},
				BlockIDs:    []string{b.ID},
			})
			continue
		}

		if startMin < dayStartMinutes || endMin > dayEndMinutes {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type: ConflictOutsideWakingWindow,
				Description: fmt.Sprintf("Block \"%s\" (%s-%s) falls outside the waking window (%s-%s)",
					b.Title, b.Start, b.End, dayStart, dayEnd),
				Date:      date,
				Items:     []string{b.Title},
				TimeRange: fmt.Sprintf("%s-%s", b.Start, b.End),
				BlockIDs:  []string{b.ID},
			})
		}

		totalPlannedMinutes += endMin - startMin
	}

	// Check for overlapping blocks
	// O(n²) complexity - acceptable for typical daily schedules
	sorted := make([]models.TimeBlock, len(active))
	copy(sorted, active)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Start < sorted[j].Start
	})

	for i := 0; i < len(sorted); i++ {
		for j := i + 1; j < len(sorted); j++ {
			b1 := sorted[i]
			b2 := sorted[j]
			if timesOverlap(b1.Start, b1.End, b2.Start, b2.End) {
				result.Conflicts = append(result.Conflicts, Conflict{
					Type: ConflictOverlappingBlocks,
					Description: fmt.Sprintf("Blocks overlap: \"%s\" (%s-%s) and \"%s\" (%s-%s)",
						b1.Title, b1.Start, b1.End, b2.Title, b2.Start, b2.End),
					Date:      date,
					Items:     []string{b1.Title, b2.Title},
					TimeRange: fmt.Sprintf("%s-%s", b1.Start, b1.End),
					BlockIDs:  []string{b1.ID, b2.ID},
				})
			}
		}
	}

	// Check if the schedule exceeds the waking window
	if totalPlannedMinutes > wakingWindowMinutes {
		hoursScheduled := float64(totalPlannedMinutes) / 60.0
		hoursAvailable := float64(wakingWindowMinutes) / 60.0
		result.Conflicts = append(result.Conflicts, Conflict{
			Type: ConflictExceedsWakingWindow,
			Description: fmt.Sprintf("%s: %.1fh scheduled exceeds %.1fh waking window",
				date, hoursScheduled, hoursAvailable),
			Date: date,
		})
	}

	// Warn when the schedule uses more than 80% of the waking window
	overcommitThreshold := int(float64(wakingWindowMinutes) * 0.8)
	if totalPlannedMinutes > overcommitThreshold && totalPlannedMinutes <= wakingWindowMinutes {
		hoursScheduled := float64(totalPlannedMinutes) / 60.0
		hoursAvailable := float64(wakingWindowMinutes) / 60.0
		result.Conflicts = append(result.Conflicts, Conflict{
			Type: ConflictOvercommitted,
			Description: fmt.Sprintf("%s: %.1fh scheduled in %.1fh waking window (>80%% capacity)",
				date, hoursScheduled, hoursAvailable),
			Date: date,
		})
	}

	return result
}

// Helper functions

func isValidTimeFormat(timeStr string) bool {
	_, err := time.Parse(constants.TimeFormat, timeStr)
	return err == nil
}

func parseTimeToMinutes(timeStr string) (int, error) {
	t, err := time.Parse(constants.TimeFormat, timeStr)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// timesOverlap checks if two time ranges overlap
// Assumes all times are in HH:MM format
func timesOverlap(start1, end1, start2, end2 string) bool {
	s1, err := parseTimeToMinutes(start1)
	if err != nil {
		return false
	}
	e1, err := parseTimeToMinutes(end1)
	if err != nil {
		return false
	}
	s2, err := parseTimeToMinutes(start2)
	if err != nil {
		return false
	}
	e2, err := parseTimeToMinutes(end2)
	if err != nil {
		return false
	}

	// Two ranges overlap if: start1 < end2 AND start2 < end1
	return s1 < e2 && s2 < e1
}
