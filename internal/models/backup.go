package models

// DataExport is the backup document produced by the data tab. Chats,
// schedules and files are the raw slot payloads, as stored.
type DataExport struct {
	FileName  string   `json:"-"`
	Settings  Settings `json:"settings"`
	Chats     *string  `json:"chats"`
	Schedules *string  `json:"schedules"`
	Files     *string  `json:"files"`
}
