package model

import "time"

// File represents a stored file in the system.
// The name doubles as the storage key; there is no separate identifier and
// no metadata persisted outside the storage backend itself.
type File struct {
	Name        string    `json:"name"`
	Size        int64     `json:"size"`
	ContentType string    `json:"content_type"`
	ModifiedAt  time.Time `json:"modified_at"`
}
