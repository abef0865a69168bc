package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"

	_ "github.com/lib/pq"

	"github.com/routineanchor/anchor/internal/constants"
	"github.com/routineanchor/anchor/internal/migration"
	"github.com/routineanchor/anchor/internal/models"
	"github.com/routineanchor/anchor/migrations"
)

var (
	ErrInvalidConnectionString = errors.New("invalid PostgreSQL connection string")
	ErrEmbeddedCredentials     = errors.New("connection string must not contain a password")
)

type Store struct {
	connStr string
	db      *sql.DB
}

func NewStore(connStr string) *Store {
	s := &Store{connStr: connStr}
	s.ensureSearchPath()
	return s
}

// ensureSearchPath pins the connection to the anchor schema unless the
// caller already set one.
func (s *Store) ensureSearchPath() {
	if strings.HasPrefix(s.connStr, "postgres://") || strings.HasPrefix(s.connStr, "postgresql://") {
		u, err := url.Parse(s.connStr)
		if err != nil {
			return
		}
		q := u.Query()
		if q.Get("search_path") == "" {
			q.Set("search_path", constants.AppName)
			u.RawQuery = q.Encode()
			s.connStr = u.String()
		}
		return
	}

	// DSN format: space-separated key=value pairs
	for _, part := range strings.Fields(s.connStr) {
		key, _, ok := strings.Cut(part, "=")
		if ok && strings.EqualFold(key, "search_path") {
			return
		}
	}
	s.connStr = strings.TrimSpace(s.connStr) + " search_path=" + constants.AppName
}

// ValidateConnString rejects connection strings carrying an embedded
// password; those belong in the OS keyring, .pgpass, or the environment.
func ValidateConnString(connStr string) (string, error) {
	if strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://") {
		u, err := url.Parse(connStr)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrInvalidConnectionString, err)
		}
		if _, hasPassword := u.User.Password(); hasPassword {
			return "", ErrEmbeddedCredentials
		}
		return connStr, nil
	}

	for _, part := range strings.Fields(connStr) {
		key, _, ok := strings.Cut(part, "=")
		if ok && strings.EqualFold(key, "password") {
			return "", ErrEmbeddedCredentials
		}
	}
	return connStr, nil
}

// HasEmbeddedCredentials reports whether the connection string carries a password.
func HasEmbeddedCredentials(connStr string) bool {
	_, err := ValidateConnString(connStr)
	return errors.Is(err, ErrEmbeddedCredentials)
}

func (s *Store) Init() error {
	db, err := sql.Open("postgres", s.connStr)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if err := s.db.Ping(); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// The schema must exist before the migration runner touches
	// schema_version, which lives on the search_path.
	if _, err := s.db.Exec("CREATE SCHEMA IF NOT EXISTS " + constants.AppName); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	if err := s.runMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

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

	db, err := sql.Open("postgres", s.connStr)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if err := s.db.Ping(); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	return s.runner().Validate()
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) runner() *migration.Runner {
	subFS, err := fs.Sub(migrations.FS, "postgres")
	if err != nil {
		panic(fmt.Sprintf("embedded postgres migrations missing: %v", err))
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
	return s.connStr
}
