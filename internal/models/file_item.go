package models

import "time"

// FileItem is metadata about a file the user handed to the assistant.
// The file content itself is never stored.
type FileItem struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Type       string    `json:"type"`
	Size       int64     `json:"size"`
	UploadedAt time.Time `json:"uploadedAt"`
	URL        string    `json:"url,omitempty"`
	Thumbnail  string    `json:"thumbnail,omitempty"`
	Folder     string    `json:"folder,omitempty"`
}

// FileUpload describes an incoming file before it gets an id.
type FileUpload struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Size int64  `json:"size"`
	URL  string `json:"url,omitempty"`
}

func (f FileItem) GetID() string { return f.ID }
