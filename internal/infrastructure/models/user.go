package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// User has no DeletedAt: rejected accounts are removed permanently.
type User struct {
	ID             uuid.UUID   `gorm:"type:uuid;primaryKey"`
	Name           string      `gorm:"type:varchar(100);not null"`
	Email          string      `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash   string      `gorm:"type:varchar(255);not null"`
	Role           string      `gorm:"type:varchar(20);not null;index"`
	EmailStatus    string      `gorm:"type:varchar(20);not null;default:'PENDING'"`
	IDStatus       string      `gorm:"column:id_status;type:varchar(20);not null;default:'NOT_SUBMITTED'"`
	ApprovalStatus string      `gorm:"type:varchar(20);not null;default:'PENDING'"`
	GovernmentID   string      `gorm:"type:varchar(64)"`
	IDDocumentPath null.String `gorm:"column:id_document_path;type:varchar(512)"`
	Phone          string      `gorm:"type:varchar(32)"`
	Bio            string      `gorm:"type:text"`
	AverageRating  float64     `gorm:"type:decimal(3,2);not null;default:0"`
	ReviewCount    int         `gorm:"not null;default:0"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
