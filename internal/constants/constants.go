package constants

import "time"

const (
	AppName           = "anchor"
	Version           = "v0.3.0"
	DefaultConfigPath = "~/.config/anchor/anchor.db"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// ExportTimestampFormat is used in export file names
	ExportTimestampFormat = "20060102-150405"

	// ExportFilePrefix is the prefix for export file names
	ExportFilePrefix = "routine-anchor-export-"
)

// Settings keys as stored in the settings table
const (
	SettingDayStart             = "day_start"
	SettingDayEnd               = "day_end"
	SettingNotificationsEnabled = "notifications_enabled"
	SettingNotifyBlockStart     = "notify_block_start"
	SettingNotifyBlockEnd       = "notify_block_end"
	SettingBlockStartOffsetMin  = "block_start_offset_min"
	SettingBlockEndOffsetMin    = "block_end_offset_min"
	SettingDailyReminderTime    = "daily_reminder_time"
	SettingNotificationGraceMin = "notification_grace_period_min"
	SettingTimezone             = "timezone"
	SettingAutoResetOnNewDay    = "auto_reset_on_new_day"
)

// Default settings values
const (
	DefaultDayStart             = "06:00"
	DefaultDayEnd               = "22:00"
	DefaultNotificationsEnabled = true
	DefaultNotifyBlockStart     = true
	DefaultNotifyBlockEnd       = false
	DefaultBlockStartOffsetMin  = 5
	DefaultBlockEndOffsetMin    = 5
	DefaultDailyReminderTime    = "08:00"
	DefaultNotificationGraceMin = 10
	DefaultTimezone             = "Local"
	DefaultAutoResetOnNewDay    = false
)

// Backup constants
const (
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "anchor-"
	BackupFileSuffix = ".db"
)

// Notifier constants
const (
	NotifierLockfileName   = "anchor-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.routineanchor.anchor"
	NotifySendTimeout      = 3 * time.Second
)

// Keyring entry names
const (
	KeyringConnectionUser = "database-connection"
	KeyringWebhookUser    = "notifier-webhook-secret"
)
