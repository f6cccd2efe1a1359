package models

import (
	"time"

	"github.com/google/uuid"
)

// User is an anonymous device-scoped identity. There are no accounts:
// a browser/installation generates an opaque device ID and the first
// report, like, or comment from it creates the row.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	DeviceID  string    `gorm:"not null;size:255;uniqueIndex" json:"device_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
