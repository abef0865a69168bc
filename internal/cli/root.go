package cli

import (
	"fmt"
	"time"

	"github.com/routineanchor/anchor/internal/backup"
	"github.com/routineanchor/anchor/internal/constants"
	"github.com/routineanchor/anchor/internal/logger"
	"github.com/routineanchor/anchor/internal/models"
	"github.com/routineanchor/anchor/internal/storage"
	"github.com/routineanchor/anchor/internal/storage/sqlite"
)

type Context struct {
	Store storage.Provider
}

// PerformAutomaticBackup creates an automatic backup and silently handles
// errors. Only the embedded sqlite database is backed up; postgres
// deployments manage their own backups.
func (c *Context) PerformAutomaticBackup() {
	store, ok := c.Store.(*sqlite.Store)
	if !ok {
		logger.Debug("Skipping automatic backup, database backups are managed externally")
		return
	}
	mgr := backup.NewManager(store.GetConfigPath())
	_, err := mgr.CreateBackup()
	if err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// StatusLabel formats a block status for list output
func StatusLabel(status models.BlockStatus) string {
	switch status {
	case models.StatusNotStarted:
		return "[not started]"
	case models.StatusInProgress:
		return "[in progress]"
	case models.StatusCompleted:
		return "[completed]"
	case models.StatusSkipped:
		return "[skipped]"
	default:
		return "[unknown]"
	}
}

// BlockDuration returns the duration of a block in minutes.
// Returns 0 if the time format is invalid (which the caller should check).
func BlockDuration(block models.TimeBlock) int {
	start, err := time.Parse(constants.TimeFormat, block.Start)
	if err != nil {
		return 0
	}
	end, err := time.Parse(constants.TimeFormat, block.End)
	if err != nil {
		return 0
	}
	return int(end.Sub(start).Minutes())
}

// FormatDuration renders a minute count as "1h30m" / "45m"
func FormatDuration(minutes int) string {
	if minutes >= 60 && minutes%60 == 0 {
		return fmt.Sprintf("%dh", minutes/60)
	}
	if minutes >= 60 {
		return fmt.Sprintf("%dh%dm", minutes/60, minutes%60)
	}
	return fmt.Sprintf("%dm", minutes)
}
