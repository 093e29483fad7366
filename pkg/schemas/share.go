package schemas

import (
	"time"

	"github.com/prezlink/prezlink/pkg/models"
)

type ShareIn struct {
	PresentationID string            `json:"presentationId" validate:"required,uuid4"`
	Permission     models.Permission `json:"permission" validate:"required,oneof=view edit"`
	ShareType      models.ShareType  `json:"shareType" validate:"required,oneof=direct link"`
	// SharedWith is the recipient's email, required for direct shares.
	SharedWith    *string `json:"sharedWith,omitempty" validate:"omitempty,email"`
	ExpiresInDays *int    `json:"expiresInDays,omitempty" validate:"omitempty,min=0"`
	IsSingleUse   *bool   `json:"isSingleUse,omitempty"`
}

type ShareUpdate struct {
	Permission *models.Permission `json:"permission,omitempty" validate:"omitempty,oneof=view edit"`
	ExpiresAt  *time.Time         `json:"expiresAt,omitempty"`
}

type ShareLinkOut struct {
	Token       string            `json:"token"`
	URL         string            `json:"url"`
	Permission  models.Permission `json:"permission"`
	ExpiresAt   *time.Time        `json:"expiresAt,omitempty"`
	IsSingleUse bool              `json:"isSingleUse"`
}

type ShareOut struct {
	ID             string            `json:"id"`
	PresentationID string            `json:"presentationId"`
	SharedBy       string            `json:"sharedBy"`
	SharedWith     *string           `json:"sharedWith,omitempty"`
	Permission     models.Permission `json:"permission"`
	ShareType      models.ShareType  `json:"shareType"`
	ExpiresAt      *time.Time        `json:"expiresAt,omitempty"`
	IsSingleUse    bool              `json:"isSingleUse"`
	UsedAt         *time.Time        `json:"usedAt,omitempty"`
	CreatedAt      time.Time         `json:"createdAt"`
}

type AccessOut struct {
	CanView bool `json:"canView"`
	CanEdit bool `json:"canEdit"`
	IsOwner bool `json:"isOwner"`
}

type PresentationOut struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  *string   `json:"description,omitempty"`
	ThumbnailURL *string   `json:"thumbnailUrl,omitempty"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type RedeemOut struct {
	Presentation *PresentationOut  `json:"presentation"`
	Permission   models.Permission `json:"permission"`
	ShareID      string            `json:"shareId"`
}

type UserOut struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type SharedWithMeOut struct {
	ShareOut
	Presentation *PresentationOut `json:"presentation"`
	SharedByUser *UserOut         `json:"sharedByUser"`
}

type RevokeOut struct {
	Revoked int64 `json:"revoked"`
}

type Message struct {
	Message string `json:"message"`
}
