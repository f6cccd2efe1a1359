package models

import (
	"time"

	"github.com/google/uuid"
)

// Like marks that a user likes a report. The compound unique index is the
// authority for toggle semantics: at most one row per (user, report) pair,
// and a second like request deletes the row instead of erroring.
type Like struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_likes_user_report" json:"user_id"`
	ReportID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_likes_user_report" json:"report_id"`
	CreatedAt time.Time `json:"created_at"`
}
