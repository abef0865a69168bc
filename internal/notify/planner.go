// Package notify plans and delivers reminders for a day's time blocks.
package notify

import (
	"fmt"
	"sort"
	"time"

	"github.com/routineanchor/anchor/internal/models"
	"github.com/routineanchor/anchor/internal/utils"
)

// ReminderKind identifies what a reminder is about.
type ReminderKind string

const (
	KindBlockStart   ReminderKind = "block_start"
	KindBlockEnd     ReminderKind = "block_end"
	KindDailySummary ReminderKind = "daily_summary"
)

// Action is the follow-up a reminder offers, dispatched as a deep link
// when the user acts on it.
type Action string

const (
	ActionComplete    Action = "complete"
	ActionSkip        Action = "skip"
	ActionViewSummary Action = "view_summary"
)

// Reminder is one planned notification. IDs are derived from the block ID
// and kind so rescheduling replaces rather than duplicates.
type Reminder struct {
	ID      string
	BlockID string
	Kind    ReminderKind
	Message string
	FireAt  time.Time
	Actions []Action
}

// BuildSchedule computes the reminder schedule for one day's blocks.
//
// Rules: the master toggle gates everything; finished (completed/skipped)
// blocks get no reminders; a reminder whose fire time has passed fires
// immediately if it is still within the grace period, otherwise it is
// dropped.
func BuildSchedule(settings models.Settings, date string, blocks []models.TimeBlock, now time.Time) ([]Reminder, error) {
	if !settings.NotificationsEnabled {
		return nil, nil
	}

	loc, err := utils.LoadLocation(settings.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", settings.Timezone, err)
	}
	grace := time.Duration(settings.NotificationGracePeriodMin) * time.Minute

	var reminders []Reminder

	appendGated := func(r Reminder) {
		if r.FireAt.Before(now) {
			if now.Sub(r.FireAt) > grace {
				return // too late, drop
			}
			r.FireAt = now // within grace: fire immediately
		}
		reminders = append(reminders, r)
	}

	for _, b := range blocks {
		if b.DeletedAt != nil || b.IsFinished() {
			continue
		}

		if settings.NotifyBlockStart {
			startAt, err := utils.CombineDateAndTime(b.Date, b.Start, loc)
			if err == nil {
				offset := time.Duration(settings.BlockStartOffsetMin) * time.Minute
				msg := fmt.Sprintf("Starting now: %s (%s)", b.Title, b.Start)
				if settings.BlockStartOffsetMin > 0 {
					msg = fmt.Sprintf("Upcoming: %s starts in %d min (%s)", b.Title, settings.BlockStartOffsetMin, b.Start)
				}
				appendGated(Reminder{
					ID:      b.ID + "-start",
					BlockID: b.ID,
					Kind:    KindBlockStart,
					Message: msg,
					FireAt:  startAt.Add(-offset),
					Actions: []Action{ActionComplete, ActionSkip},
				})
			}
		}

		if settings.NotifyBlockEnd {
			endAt, err := utils.CombineDateAndTime(b.Date, b.End, loc)
			if err == nil {
				offset := time.Duration(settings.BlockEndOffsetMin) * time.Minute
				msg := fmt.Sprintf("Ending now: %s (%s)", b.Title, b.End)
				if settings.BlockEndOffsetMin > 0 {
					msg = fmt.Sprintf("Ending soon: %s ends in %d min (%s)", b.Title, settings.BlockEndOffsetMin, b.End)
				}
				appendGated(Reminder{
					ID:      b.ID + "-end",
					BlockID: b.ID,
					Kind:    KindBlockEnd,
					Message: msg,
					FireAt:  endAt.Add(-offset),
					Actions: []Action{ActionComplete, ActionSkip},
				})
			}
		}
	}

	if settings.DailyReminderTime != "" {
		dailyAt, err := utils.CombineDateAndTime(date, settings.DailyReminderTime, loc)
		if err == nil {
			appendGated(Reminder{
				ID:      "daily-" + date,
				Kind:    KindDailySummary,
				Message: fmt.Sprintf("Your routine for %s is ready. Check today's blocks.", date),
				FireAt:  dailyAt,
				Actions: []Action{ActionViewSummary},
			})
		}
	}

	sort.Slice(reminders, func(i, j int) bool {
		if reminders[i].FireAt.Equal(reminders[j].FireAt) {
			return reminders[i].ID < reminders[j].ID
		}
		return reminders[i].FireAt.Before(reminders[j].FireAt)
	})

	return reminders, nil
}
