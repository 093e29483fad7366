package models

import (
	"time"
)

type Permission string

const (
	PermissionView Permission = "view"
	PermissionEdit Permission = "edit"
)

type ShareType string

const (
	ShareTypeDirect ShareType = "direct"
	ShareTypeLink   ShareType = "link"
)

// PresentationShare is a single access grant for one presentation, either
// addressed to a known user (direct) or bearer-token based (link).
type PresentationShare struct {
	ID             string     `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	PresentationID string     `gorm:"type:uuid;not null;index"`
	SharedBy       string     `gorm:"type:uuid;not null"`
	SharedWith     *string    `gorm:"type:uuid;index"`
	Permission     Permission `gorm:"type:text;not null"`
	ShareToken     string     `gorm:"type:text;not null;uniqueIndex"`
	ShareType      ShareType  `gorm:"type:text;not null"`
	ExpiresAt      *time.Time `gorm:"type:timestamptz"`
	IsSingleUse    bool       `gorm:"default:false"`
	UsedAt         *time.Time `gorm:"type:timestamptz"`
	CreatedAt      time.Time  `gorm:"default:timezone('utc'::text, now())"`
	UpdatedAt      time.Time  `gorm:"default:timezone('utc'::text, now())"`
}

// Valid reports whether the share still grants access at the given instant:
// not expired, and if single-use, not yet consumed.
func (s *PresentationShare) Valid(now time.Time) bool {
	if s.ExpiresAt != nil && s.ExpiresAt.Before(now) {
		return false
	}
	if s.IsSingleUse && s.UsedAt != nil {
		return false
	}
	return true
}
