package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

type Report struct {
	ID                 uuid.UUID   `gorm:"type:uuid;primaryKey"`
	ReporterID         uuid.UUID   `gorm:"type:uuid;not null;index"`
	ReportedUserID     *uuid.UUID  `gorm:"type:uuid;index"`
	ReportedPropertyID *uuid.UUID  `gorm:"type:uuid;index"`
	Reason             string      `gorm:"type:varchar(20);not null"`
	Description        string      `gorm:"type:text"`
	Status             string      `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	AdminNotes         null.String `gorm:"type:text"`
	ResolvedBy         *uuid.UUID  `gorm:"type:uuid"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
