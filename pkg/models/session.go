package models

import (
	"time"
)

type Session struct {
	UserID    string    `gorm:"type:uuid;primaryKey"`
	Hash      string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"default:timezone('utc'::text, now())"`
}
