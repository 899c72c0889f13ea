package models

import (
	"time"

	"gorm.io/gorm"
)

// Session is a single timed stretch of work on a project. A nil EndTime
// means the session is still running; the reflection fields are filled in
// once, when the session is ended.
type Session struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	ProjectID          uint       `gorm:"not null;index" json:"project_id"`
	StartTime          time.Time  `gorm:"not null" json:"start_time"`
	EndTime            *time.Time `json:"end_time"`
	WasImportant       *bool      `json:"was_important"`
	WasUrgent          *bool      `json:"was_urgent"`
	ProductivityRating *int       `json:"productivity_rating"`
	Notes              *string    `json:"notes"`

	// Relationships
	Project Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}

// Active reports whether the session is still running.
func (s Session) Active() bool {
	return s.EndTime == nil
}
