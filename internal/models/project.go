package models

import "gorm.io/gorm"

type Project struct {
	gorm.Model

	Title             string `gorm:"not null"`
	Description       string `gorm:"not null"`
	EstimatedDuration string `gorm:"not null"` // "H:MM"
	OwnerID           uint   `gorm:"not null;index"`

	// Relationships
	Owner    User      `gorm:"foreignKey:OwnerID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Sessions []Session `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
