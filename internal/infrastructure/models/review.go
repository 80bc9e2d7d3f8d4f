package models

import (
	"time"

	"github.com/google/uuid"
)

type Review struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	ReviewerID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_pair,priority:1"`
	TargetUserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_pair,priority:2;index"`
	Rating       int       `gorm:"not null"`
	Comment      string    `gorm:"type:text"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
