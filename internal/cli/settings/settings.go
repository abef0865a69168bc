package settings

import (
	"fmt"

	"github.com/routineanchor/anchor/internal/cli"
	"github.com/routineanchor/anchor/internal/notify"
	"github.com/routineanchor/anchor/internal/utils"
)

// swappable for tests
var trayAvailable = notify.TrayAvailable

type SettingsCmd struct {
	List bool `help:"List current settings."`

	DayStart *string `help:"Waking window start (HH:MM)."`
	DayEnd   *string `help:"Waking window end (HH:MM)."`
	Timezone *string `help:"IANA timezone name, or 'Local'."`

	NotificationsEnabled *bool   `help:"Enable or disable notifications."`
	NotifyBlockStart     *bool   `help:"Notify on block start."`
	NotifyBlockEnd       *bool   `help:"Notify on block end."`
	BlockStartOffsetMin  *int    `help:"Minutes before block start to notify."`
	BlockEndOffsetMin    *int    `help:"Minutes before block end to notify."`
	DailyReminderTime    *string `help:"Time of the daily summary reminder (HH:MM)."`
	GracePeriodMin       *int    `help:"Minutes a missed reminder may still fire."`

	AutoResetOnNewDay *bool `help:"Reset block statuses automatically on a new day."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if c.List {
		fmt.Println("Current Settings:")
		fmt.Printf("  Day Start:             %s\n", settings.DayStart)
		fmt.Printf("  Day End:               %s\n", settings.DayEnd)
		fmt.Printf("  Timezone:              %s\n", settings.Timezone)
		fmt.Printf("  Auto Reset On New Day: %v\n", settings.AutoResetOnNewDay)
		fmt.Println("\nNotification Settings:")
		fmt.Printf("  Notifications Enabled: %v\n", settings.NotificationsEnabled)
		fmt.Printf("  Notify Block Start:    %v\n", settings.NotifyBlockStart)
		fmt.Printf("  Notify Block End:      %v\n", settings.NotifyBlockEnd)
		fmt.Printf("  Block Start Offset:    %d min\n", settings.BlockStartOffsetMin)
		fmt.Printf("  Block End Offset:      %d min\n", settings.BlockEndOffsetMin)
		fmt.Printf("  Daily Reminder Time:   %s\n", settings.DailyReminderTime)
		fmt.Printf("  Grace Period:          %d min\n", settings.NotificationGracePeriodMin)
		return nil
	}

	updated := false
	if c.DayStart != nil {
		if _, err := utils.ParseTime(*c.DayStart); err != nil {
			return fmt.Errorf("invalid day start %q, use HH:MM", *c.DayStart)
		}
		settings.DayStart = *c.DayStart
		updated = true
	}
	if c.DayEnd != nil {
		if _, err := utils.ParseTime(*c.DayEnd); err != nil {
			return fmt.Errorf("invalid day end %q, use HH:MM", *c.DayEnd)
		}
		settings.DayEnd = *c.DayEnd
		updated = true
	}
	if c.Timezone != nil {
		if _, err := utils.LoadLocation(*c.Timezone); err != nil {
			return fmt.Errorf("invalid timezone %q: %w", *c.Timezone, err)
		}
		settings.Timezone = *c.Timezone
		updated = true
	}
	if c.NotificationsEnabled != nil {
		// Enabling requires a running tray app; the toggle stays off when
		// delivery would fail anyway.
		if *c.NotificationsEnabled {
			if err := trayAvailable(); err != nil {
				return fmt.Errorf("cannot enable notifications: %w", err)
			}
		}
		settings.NotificationsEnabled = *c.NotificationsEnabled
		updated = true
	}
	if c.NotifyBlockStart != nil {
		settings.NotifyBlockStart = *c.NotifyBlockStart
		updated = true
	}
	if c.NotifyBlockEnd != nil {
		settings.NotifyBlockEnd = *c.NotifyBlockEnd
		updated = true
	}
	if c.BlockStartOffsetMin != nil {
		settings.BlockStartOffsetMin = *c.BlockStartOffsetMin
		updated = true
	}
	if c.BlockEndOffsetMin != nil {
		settings.BlockEndOffsetMin = *c.BlockEndOffsetMin
		updated = true
	}
	if c.DailyReminderTime != nil {
		if *c.DailyReminderTime != "" {
			if _, err := utils.ParseTime(*c.DailyReminderTime); err != nil {
				return fmt.Errorf("invalid daily reminder time %q, use HH:MM", *c.DailyReminderTime)
			}
		}
		settings.DailyReminderTime = *c.DailyReminderTime
		updated = true
	}
	if c.GracePeriodMin != nil {
		if *c.GracePeriodMin < 0 {
			return fmt.Errorf("grace period must not be negative")
		}
		settings.NotificationGracePeriodMin = *c.GracePeriodMin
		updated = true
	}
	if c.AutoResetOnNewDay != nil {
		settings.AutoResetOnNewDay = *c.AutoResetOnNewDay
		updated = true
	}

	if updated {
		if err := ctx.Store.SaveSettings(settings); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
		fmt.Println("Settings updated successfully.")
	} else {
		fmt.Println("No changes specified. Use --list to view settings or flags to update them.")
	}

	return nil
}
