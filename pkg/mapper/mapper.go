package mapper

import (
	"github.com/prezlink/prezlink/pkg/models"
	"github.com/prezlink/prezlink/pkg/repository"
	"github.com/prezlink/prezlink/pkg/schemas"
)

func ToShareOut(share *models.PresentationShare) *schemas.ShareOut {
	return &schemas.ShareOut{
		ID:             share.ID,
		PresentationID: share.PresentationID,
		SharedBy:       share.SharedBy,
		SharedWith:     share.SharedWith,
		Permission:     share.Permission,
		ShareType:      share.ShareType,
		ExpiresAt:      share.ExpiresAt,
		IsSingleUse:    share.IsSingleUse,
		UsedAt:         share.UsedAt,
		CreatedAt:      share.CreatedAt,
	}
}

func ToPresentationOut(presentation *models.Presentation) *schemas.PresentationOut {
	return &schemas.PresentationOut{
		ID:           presentation.ID,
		Title:        presentation.Title,
		Description:  presentation.Description,
		ThumbnailURL: presentation.ThumbnailURL,
		UpdatedAt:    presentation.UpdatedAt,
	}
}

func ToUserOut(user *models.User) *schemas.UserOut {
	return &schemas.UserOut{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
	}
}

func ToSharedWithMeOut(row *repository.SharedWithRow) *schemas.SharedWithMeOut {
	return &schemas.SharedWithMeOut{
		ShareOut:     *ToShareOut(&row.Share),
		Presentation: ToPresentationOut(&row.Presentation),
		SharedByUser: ToUserOut(&row.SharedByUser),
	}
}
