package sqlite

import (
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/routineanchor/anchor/internal/constants"
	"github.com/routineanchor/anchor/internal/migration"
	"github.com/routineanchor/anchor/internal/models"
	"github.com/routineanchor/anchor/migrations"
)

type Store struct {
	path string
	db   *sql.DB
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if err := s.runMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Initialize default settings if not present or incomplete
	settings, err := s.GetSettings()
	if err != nil || settings.DayStart == "" {
		defaults := models.Settings{
			DayStart:                   constants.DefaultDayStart,
			DayEnd:                     constants.DefaultDayEnd,
			NotificationsEnabled:       constants.DefaultNotificationsEnabled,
			NotifyBlockStart:           constants.DefaultNotifyBlockStart,
			NotifyBlockEnd:             constants.DefaultNotifyBlockEnd,
			BlockStartOffsetMin:        constants.DefaultBlockStartOffsetMin,
			BlockEndOffsetMin:          constants.DefaultBlockEndOffsetMin,
			DailyReminderTime:          constants.DefaultDailyReminderTime,
			NotificationGracePeriodMin: constants.DefaultNotificationGraceMin,
			Timezone:                   constants.DefaultTimezone,
			AutoResetOnNewDay:          constants.DefaultAutoResetOnNewDay,
		}
		if err := s.SaveSettings(defaults); err != nil {
			return fmt.Errorf("failed to save default settings: %w", err)
		}
	}

	return nil
}

func (s *Store) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'anchor init' first")
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	// Validate schema version using embedded migrations
	return s.runner().Validate()
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) runner() *migration.Runner {
	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		// The embedded FS always contains the sqlite directory
		panic(fmt.Sprintf("embedded sqlite migrations missing: %v", err))
	}
	return migration.NewRunner(s.db, subFS)
}

func (s *Store) runMigrations() error {
	_, err := s.runner().Apply(nil)
	return err
}

// Migrate applies pending migrations, reporting progress through logFn.
func (s *Store) Migrate(logFn func(string)) (int, error) {
	return s.runner().Apply(logFn)
}

func (s *Store) GetConfigPath() string {
	return s.path
}

func (s *Store) GetDB() *sql.DB {
	return s.db
}
