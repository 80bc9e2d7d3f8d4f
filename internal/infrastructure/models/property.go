package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
)

type Property struct {
	ID                   uuid.UUID    `gorm:"type:uuid;primaryKey"`
	OwnerID              uuid.UUID    `gorm:"type:uuid;not null;index"`
	Title                string       `gorm:"type:varchar(200);not null"`
	Location             string       `gorm:"type:varchar(200);not null"`
	Description          string       `gorm:"type:text"`
	Price                float64      `gorm:"type:decimal(14,2);not null;index"`
	Rooms                int          `gorm:"not null;default:0"`
	Floor                null.Int     `gorm:"type:integer"`
	Area                 null.Float64 `gorm:"type:decimal(10,2)"`
	DistanceToMetro      null.Float64 `gorm:"type:decimal(10,2)"`
	DistanceToUniversity null.Float64 `gorm:"type:decimal(10,2)"`
	Latitude             null.Float64 `gorm:"type:decimal(9,6)"`
	Longitude            null.Float64 `gorm:"type:decimal(9,6)"`
	Photos               []string     `gorm:"type:text;serializer:json"`
	Videos               []string     `gorm:"type:text;serializer:json"`
	IsVerified           bool         `gorm:"not null;default:false;index"`
	IsArchived           bool         `gorm:"not null;default:false;index"`
	RatingAverage        float64      `gorm:"type:decimal(3,2);not null;default:0"`
	RatingCount          int          `gorm:"not null;default:0"`
	CreatedAt            time.Time
	UpdatedAt            time.Time
	DeletedAt            gorm.DeletedAt `gorm:"index"`
}

func (Property) TableName() string {
	return "properties"
}
