package storage

// Slot keys, one per logical table.
const (
	ChatKey      = "bhindi-chat-storage"
	SchedulesKey = "bhindi-schedules"
	FilesKey     = "bhindi-files"
	SettingsKey  = "bhindi-settings"
)

// AllKeys lists every slot the application owns, in export order.
var AllKeys = []string{SettingsKey, ChatKey, SchedulesKey, FilesKey}
