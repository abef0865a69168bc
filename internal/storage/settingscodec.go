package storage

import (
	"fmt"
	"strconv"

	"github.com/routineanchor/anchor/internal/constants"
	"github.com/routineanchor/anchor/internal/models"
)

// ApplySetting decodes one key/value row from the settings table onto the
// settings struct. Unknown keys are ignored so older databases keep working.
func ApplySetting(settings *models.Settings, key, value string) error {
	parseInt := func() (int, error) {
		n, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("parsing %s: %w", key, err)
		}
		return n, nil
	}
	parseBool := func() (bool, error) {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return false, fmt.Errorf("parsing %s: %w", key, err)
		}
		return b, nil
	}

	var err error
	switch key {
	case constants.SettingDayStart:
		settings.DayStart = value
	case constants.SettingDayEnd:
		settings.DayEnd = value
	case constants.SettingNotificationsEnabled:
		settings.NotificationsEnabled, err = parseBool()
	case constants.SettingNotifyBlockStart:
		settings.NotifyBlockStart, err = parseBool()
	case constants.SettingNotifyBlockEnd:
		settings.NotifyBlockEnd, err = parseBool()
	case constants.SettingBlockStartOffsetMin:
		settings.BlockStartOffsetMin, err = parseInt()
	case constants.SettingBlockEndOffsetMin:
		settings.BlockEndOffsetMin, err = parseInt()
	case constants.SettingDailyReminderTime:
		settings.DailyReminderTime = value
	case constants.SettingNotificationGraceMin:
		settings.NotificationGracePeriodMin, err = parseInt()
	case constants.SettingTimezone:
		settings.Timezone = value
	case constants.SettingAutoResetOnNewDay:
		settings.AutoResetOnNewDay, err = parseBool()
	}
	return err
}

// EncodeSettings flattens the settings struct into key/value pairs for the
// settings table.
func EncodeSettings(settings models.Settings) [][2]string {
	return [][2]string{
		{constants.SettingDayStart, settings.DayStart},
		{constants.SettingDayEnd, settings.DayEnd},
		{constants.SettingNotificationsEnabled, strconv.FormatBool(settings.NotificationsEnabled)},
		{constants.SettingNotifyBlockStart, strconv.FormatBool(settings.NotifyBlockStart)},
		{constants.SettingNotifyBlockEnd, strconv.FormatBool(settings.NotifyBlockEnd)},
		{constants.SettingBlockStartOffsetMin, strconv.Itoa(settings.BlockStartOffsetMin)},
		{constants.SettingBlockEndOffsetMin, strconv.Itoa(settings.BlockEndOffsetMin)},
		{constants.SettingDailyReminderTime, settings.DailyReminderTime},
		{constants.SettingNotificationGraceMin, strconv.Itoa(settings.NotificationGracePeriodMin)},
		{constants.SettingTimezone, settings.Timezone},
		{constants.SettingAutoResetOnNewDay, strconv.FormatBool(settings.AutoResetOnNewDay)},
	}
}
