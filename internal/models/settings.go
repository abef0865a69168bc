package models

// Settings represents application-wide settings
type Settings struct {
	DayStart                   string `json:"day_start"`                     // the time the day starts, e.g. "06:00"
	DayEnd                     string `json:"day_end"`                       // the time the day ends, e.g. "22:00"
	NotificationsEnabled       bool   `json:"notifications_enabled"`         // master toggle for all reminders
	NotifyBlockStart           bool   `json:"notify_block_start"`            // whether to remind before a block starts
	NotifyBlockEnd             bool   `json:"notify_block_end"`              // whether to remind before a block ends
	BlockStartOffsetMin        int    `json:"block_start_offset_min"`        // minutes before block start to remind
	BlockEndOffsetMin          int    `json:"block_end_offset_min"`          // minutes before block end to remind
	DailyReminderTime          string `json:"daily_reminder_time"`           // HH:MM time for the daily summary reminder
	NotificationGracePeriodMin int    `json:"notification_grace_period_min"` // late reminders within this window still fire
	Timezone                   string `json:"timezone"`                      // IANA timezone name, or "Local" for system timezone
	AutoResetOnNewDay          bool   `json:"auto_reset_on_new_day"`         // reset unfinished blocks when a new day begins
}
