package services

import (
	"context"
	"errors"

	"github.com/prezlink/prezlink/internal/database"
	"github.com/prezlink/prezlink/pkg/mapper"
	"github.com/prezlink/prezlink/pkg/models"
	"github.com/prezlink/prezlink/pkg/schemas"
)

// CheckAccess reconciles ownership and direct shares into a single
// permission decision. The owner always has full access; everyone else needs
// a still-valid direct share. No grant means all false, not an error.
func (s *ShareService) CheckAccess(ctx context.Context, presentationID, userID string) (*schemas.AccessOut, error) {
	noAccess := &schemas.AccessOut{}

	owner, err := s.presentations.Owner(ctx, presentationID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return noAccess, nil
		}
		return nil, internalError(err)
	}
	if owner == userID {
		return &schemas.AccessOut{CanView: true, CanEdit: true, IsOwner: true}, nil
	}

	share, err := s.shares.ByPresentationAndUser(ctx, presentationID, userID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return noAccess, nil
		}
		return nil, internalError(err)
	}
	if !share.Valid(s.now()) {
		return noAccess, nil
	}

	return &schemas.AccessOut{
		CanView: true,
		CanEdit: share.Permission == models.PermissionEdit,
	}, nil
}

// RedeemShareToken resolves a bearer token to its presentation. Single-use
// shares are consumed by a conditional write before any content is returned,
// so concurrent redemptions of one token yield exactly one success; the
// losers get the same not-found failure as an unknown token.
func (s *ShareService) RedeemShareToken(ctx context.Context, tok string) (*schemas.RedeemOut, error) {
	share, err := s.lookupValidShare(ctx, tok)
	if err != nil {
		return nil, err
	}

	presentation, err := s.presentations.ByID(ctx, share.PresentationID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			// dangling share row; deletion cascades should prevent this
			return nil, notFound("Presentation")
		}
		return nil, internalError(err)
	}

	if share.IsSingleUse {
		won, err := s.shares.MarkUsed(ctx, share.ID, s.now())
		if err != nil {
			return nil, internalError(err)
		}
		if !won {
			return nil, shareNotFound()
		}
		s.logger.Infow("single-use share consumed", "shareId", share.ID)
	}

	return &schemas.RedeemOut{
		Presentation: mapper.ToPresentationOut(presentation),
		Permission:   share.Permission,
		ShareID:      share.ID,
	}, nil
}
