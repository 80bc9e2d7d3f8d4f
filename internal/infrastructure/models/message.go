package models

import (
	"time"

	"github.com/google/uuid"
)

type Message struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	SenderID    uuid.UUID  `gorm:"type:uuid;not null;index:idx_messages_pair,priority:1"`
	RecipientID uuid.UUID  `gorm:"type:uuid;not null;index:idx_messages_pair,priority:2"`
	PropertyID  *uuid.UUID `gorm:"type:uuid;index"`
	Content     string     `gorm:"type:text;not null"`
	IsRead      bool       `gorm:"not null;default:false"`
	IsBlocked   bool       `gorm:"not null;default:false"`
	CreatedAt   time.Time  `gorm:"index"`
}

type Block struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	BlockerID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_blocks_pair,priority:1"`
	BlockedID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_blocks_pair,priority:2"`
	CreatedAt time.Time
}
