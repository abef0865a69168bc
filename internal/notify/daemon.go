package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/routineanchor/anchor/internal/logger"
	"github.com/routineanchor/anchor/internal/storage"
	"github.com/routineanchor/anchor/internal/utils"
)

// Daemon keeps the day's reminders armed: it plans today's schedule on
// startup, fires reminders through the sender, and replans just after
// midnight in the configured timezone. Rescheduling is always
// cancel-all + re-register.
type Daemon struct {
	store  storage.Provider
	sender Sender
	timers *TimerManager

	mu   sync.Mutex
	cron *cron.Cron
	loc  *time.Location
}

func NewDaemon(store storage.Provider, sender Sender) *Daemon {
	return &Daemon{
		store:  store,
		sender: sender,
		timers: NewTimerManager(),
	}
}

// Replan rebuilds today's reminder schedule and re-arms the timers.
func (d *Daemon) Replan() error {
	settings, err := d.store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	date, err := utils.TodayFromSettings(settings)
	if err != nil {
		return err
	}

	blocks, err := d.store.GetBlocksForDate(date)
	if err != nil {
		return fmt.Errorf("failed to load blocks for %s: %w", date, err)
	}

	reminders, err := BuildSchedule(settings, date, blocks, time.Now())
	if err != nil {
		return err
	}

	d.timers.Replace(reminders, d.fire)
	logger.Info("Reminder schedule armed", "date", date, "reminders", len(reminders))
	return nil
}

func (d *Daemon) fire(r Reminder) {
	if err := d.sender.Send(r); err != nil {
		logger.Warn("Failed to deliver reminder", "id", r.ID, "error", err)
		return
	}
	logger.Debug("Reminder delivered", "id", r.ID, "kind", r.Kind)
}

// location resolves the timezone reminders and day boundaries follow.
// Midnight must come from settings, not the host clock, or blocks in the
// first hours of a configured day ahead of the host are never armed.
func (d *Daemon) location() *time.Location {
	settings, err := d.store.GetSettings()
	if err != nil {
		logger.Warn("Failed to load settings for replan timezone", "error", err)
		return time.Local
	}
	loc, err := utils.LoadLocation(settings.Timezone)
	if err != nil {
		logger.Warn("Invalid timezone in settings", "timezone", settings.Timezone, "error", err)
		return time.Local
	}
	return loc
}

// startCron arms the just-after-midnight replan in the given location.
func (d *Daemon) startCron(loc *time.Location) error {
	c := cron.New(cron.WithLocation(loc))
	if _, err := c.AddFunc("1 0 * * *", d.midnight); err != nil {
		return fmt.Errorf("failed to schedule midnight replan: %w", err)
	}

	d.mu.Lock()
	d.cron = c
	d.loc = loc
	d.mu.Unlock()

	c.Start()
	return nil
}

func (d *Daemon) midnight() {
	if err := d.Replan(); err != nil {
		logger.Error("Midnight replan failed", "error", err)
	}

	// The configured timezone may have changed since the cron was built;
	// re-anchor midnight to it. Stop without waiting: this runs inside a
	// cron job, and Stop's context only completes once the job returns.
	loc := d.location()
	d.mu.Lock()
	current := d.loc
	old := d.cron
	d.mu.Unlock()
	if loc.String() == current.String() {
		return
	}

	old.Stop()
	if err := d.startCron(loc); err != nil {
		logger.Error("Failed to re-arm midnight replan", "error", err)
	}
}

// Run blocks until ctx is cancelled, keeping the schedule fresh across
// day boundaries.
func (d *Daemon) Run(ctx context.Context) error {
	if err := d.Replan(); err != nil {
		return err
	}

	if err := d.startCron(d.location()); err != nil {
		return err
	}
	defer func() {
		d.mu.Lock()
		c := d.cron
		d.mu.Unlock()
		cronCtx := c.Stop()
		<-cronCtx.Done()
		d.timers.CancelAll()
	}()

	<-ctx.Done()
	return ctx.Err()
}
