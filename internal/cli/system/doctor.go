package system

import (
	"fmt"
	"io/fs"
	"time"

	"github.com/routineanchor/anchor/internal/backup"
	"github.com/routineanchor/anchor/internal/cli"
	"github.com/routineanchor/anchor/internal/migration"
	"github.com/routineanchor/anchor/internal/storage/sqlite"
	"github.com/routineanchor/anchor/internal/utils"
	"github.com/routineanchor/anchor/internal/validation"
	"github.com/routineanchor/anchor/migrations"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	dbReachable := false

	// Check 1: DB reachable
	if err := checkDBReachable(ctx); err != nil {
		fmt.Printf("❌ Database reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Database reachable: OK\n")
		dbReachable = true
	}

	// Check 2: Schema version valid
	if err := checkSchemaVersion(ctx); err != nil {
		fmt.Printf("❌ Schema version: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Schema version: OK\n")
	}

	// Check 3: Backups present (warning only)
	if err := checkBackupsPresent(ctx); err != nil {
		fmt.Printf("⚠ Backups present: WARNING\n")
		fmt.Printf("   %v\n", err)
	} else {
		fmt.Printf("✓ Backups present: OK\n")
	}

	// Check 4: Data validation (only if DB is reachable)
	if dbReachable {
		if err := checkData(ctx); err != nil {
			fmt.Printf("❌ Data validation: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Data validation: OK\n")
		}
	} else {
		fmt.Printf("⊘ Data validation: SKIPPED (database not reachable)\n")
	}

	// Check 5: Today's schedule conflicts (warning only)
	if dbReachable {
		if err := checkTodaySchedule(ctx); err != nil {
			fmt.Printf("⚠ Today's schedule: WARNING\n")
			fmt.Printf("   %v\n", err)
		} else {
			fmt.Printf("✓ Today's schedule: OK\n")
		}
	}

	// Check 6: Clock/timezone sanity
	if err := checkClockTimezone(ctx); err != nil {
		fmt.Printf("❌ Clock/timezone: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Clock/timezone: OK\n")
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}

	if sqliteStore, ok := ctx.Store.(*sqlite.Store); ok {
		db := sqliteStore.GetDB()
		if db == nil {
			return fmt.Errorf("database connection is nil")
		}
		var result int
		if err := db.QueryRow("SELECT 1").Scan(&result); err != nil {
			return fmt.Errorf("failed to query database: %w", err)
		}
	}

	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	sqliteStore, ok := ctx.Store.(*sqlite.Store)
	if !ok {
		// Postgres validates its schema on Load
		return nil
	}

	db := sqliteStore.GetDB()
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}

	sub, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return fmt.Errorf("failed to read migrations: %w", err)
	}
	runner := migration.NewRunner(db, sub)

	currentVersion, err := runner.CurrentVersion()
	if err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}

	latestVersion, err := runner.LatestVersion()
	if err != nil {
		return fmt.Errorf("failed to get latest schema version: %w", err)
	}

	if currentVersion > latestVersion {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", currentVersion, latestVersion)
	}
	if currentVersion < latestVersion {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d (run 'anchor migrate')", currentVersion, latestVersion)
	}

	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'anchor backup create'")
	}

	return nil
}

func checkData(ctx *cli.Context) error {
	if _, err := ctx.Store.GetSettings(); err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	blocks, err := ctx.Store.GetAllBlocksIncludingDeleted()
	if err != nil {
		return fmt.Errorf("failed to get blocks: %w", err)
	}

	blockIDs := make(map[string]bool)
	for _, block := range blocks {
		if blockIDs[block.ID] {
			return fmt.Errorf("duplicate block ID found: %s", block.ID)
		}
		blockIDs[block.ID] = true
	}

	return nil
}

func checkTodaySchedule(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	today, err := utils.TodayFromSettings(settings)
	if err != nil {
		return err
	}

	blocks, err := ctx.Store.GetBlocksForDate(today)
	if err != nil {
		return fmt.Errorf("failed to get today's blocks: %w", err)
	}

	result := validation.New().ValidateDay(today, blocks, settings.DayStart, settings.DayEnd)
	if result.HasConflicts() {
		return fmt.Errorf("%d conflict(s) in today's schedule - run 'anchor validate' for details", len(result.Conflicts))
	}

	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	now := time.Now()

	// Check if time is in a reasonable range (after 2020 and before 2100)
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}

	if settings, err := ctx.Store.GetSettings(); err == nil {
		if _, err := utils.LoadLocation(settings.Timezone); err != nil {
			return fmt.Errorf("configured timezone %q is invalid: %w", settings.Timezone, err)
		}
	}

	_, offset := now.Zone()
	if offset == 0 && now.Location() == time.UTC {
		fmt.Printf("   Note: timezone is UTC\n")
	}

	return nil
}
