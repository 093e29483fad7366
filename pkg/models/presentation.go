package models

import (
	"time"
)

type Presentation struct {
	ID           string    `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	UserID       string    `gorm:"type:uuid;not null;index"`
	Title        string    `gorm:"type:text;not null"`
	Description  *string   `gorm:"type:text"`
	ThumbnailURL *string   `gorm:"type:text"`
	CreatedAt    time.Time `gorm:"default:timezone('utc'::text, now())"`
	UpdatedAt    time.Time `gorm:"default:timezone('utc'::text, now())"`
}
