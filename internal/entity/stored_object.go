package entity

import "github.com/google/uuid"

// StoredObject describes a durably written upload. Immutable after creation.
type StoredObject struct {
	ID          uuid.UUID         `json:"id"`
	Key         string            `json:"key"`
	Bucket      string            `json:"bucket"`
	Location    string            `json:"location"`
	ContentType string            `json:"content_type"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}
