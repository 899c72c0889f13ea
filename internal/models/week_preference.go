package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// WeekPreference holds a user's manual collapse toggles for one project's
// week groups, keyed by week start date (yyyy-MM-dd). Only weeks the user
// has actually toggled appear in the map; everything else falls back to
// the computed default.
type WeekPreference struct {
	gorm.Model

	UserID    uint              `gorm:"not null;uniqueIndex:idx_user_project_week_pref"`
	ProjectID uint              `gorm:"not null;uniqueIndex:idx_user_project_week_pref"`
	Collapsed datatypes.JSONMap

	// Relationships
	User    User    `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Project Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
