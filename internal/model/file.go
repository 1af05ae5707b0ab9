package model

import "time"

// File is a previously uploaded asset. Path is the storage key and is the
// value meetup images are matched against.
type File struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Path      string    `json:"path"`
	CreatedAt time.Time `json:"created_at"`

	// URL is derived from the storage driver and never persisted.
	URL string `json:"url,omitempty"`
}
