package system

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/routineanchor/anchor/internal/cli"
	"github.com/routineanchor/anchor/internal/notify"
	"github.com/routineanchor/anchor/internal/utils"
)

// RemindPreviewCmd prints the reminder schedule without sending anything.
type RemindPreviewCmd struct {
	Date string `arg:"" optional:"" help:"Date to preview (YYYY-MM-DD or 'today')." default:"today"`
}

func (c *RemindPreviewCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if !settings.NotificationsEnabled {
		fmt.Println("Notifications are disabled in settings.")
		return nil
	}

	date, err := utils.ResolveDate(c.Date, settings)
	if err != nil {
		return err
	}

	blocks, err := ctx.Store.GetBlocksForDate(date)
	if err != nil {
		return err
	}

	reminders, err := notify.BuildSchedule(settings, date, blocks, time.Now())
	if err != nil {
		return err
	}

	if len(reminders) == 0 {
		fmt.Printf("No reminders scheduled for %s.\n", date)
		return nil
	}

	fmt.Printf("Reminders for %s:\n", date)
	for _, r := range reminders {
		fmt.Printf("  %s  [%s]  %s\n", r.FireAt.Format("15:04"), r.Kind, r.Message)
	}
	return nil
}

// RemindOnceCmd sends the reminders that are due right now. Intended to be
// run from cron or a systemd timer on systems without the daemon.
type RemindOnceCmd struct {
	DryRun bool `help:"Print notifications to stdout instead of sending them."`
}

func (c *RemindOnceCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if !settings.NotificationsEnabled {
		if c.DryRun {
			fmt.Println("Notifications are disabled in settings.")
		}
		return nil
	}

	date, err := utils.TodayFromSettings(settings)
	if err != nil {
		return err
	}

	blocks, err := ctx.Store.GetBlocksForDate(date)
	if err != nil {
		return err
	}

	now := time.Now()
	reminders, err := notify.BuildSchedule(settings, date, blocks, now)
	if err != nil {
		return err
	}

	sender := notify.Sender(notify.NewTraySender())
	if c.DryRun {
		sender = notify.SenderFunc(func(r notify.Reminder) error {
			fmt.Println("[DryRun] " + r.Message)
			return nil
		})
	}

	sent := 0
	for _, r := range reminders {
		// Only deliver what is due within this invocation's minute
		if r.FireAt.After(now.Add(time.Minute)) {
			continue
		}
		if err := sender.Send(r); err != nil {
			fmt.Printf("Failed to send notification: %v\n", err)
			continue
		}
		sent++
	}

	if c.DryRun {
		fmt.Printf("%d reminder(s) due now.\n", sent)
	}
	return nil
}

// RemindDaemonCmd runs the long-lived reminder daemon.
type RemindDaemonCmd struct{}

func (c *RemindDaemonCmd) Run(ctx *cli.Context) error {
	runCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	daemon := notify.NewDaemon(ctx.Store, notify.NewTraySender())
	fmt.Println("Reminder daemon started. Press Ctrl+C to stop.")

	if err := daemon.Run(runCtx); err != nil && runCtx.Err() == nil {
		return err
	}
	fmt.Println("Reminder daemon stopped.")
	return nil
}
