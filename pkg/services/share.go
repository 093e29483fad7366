package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/prezlink/prezlink/internal/config"
	"github.com/prezlink/prezlink/internal/database"
	"github.com/prezlink/prezlink/internal/token"
	"github.com/prezlink/prezlink/pkg/mapper"
	"github.com/prezlink/prezlink/pkg/models"
	"github.com/prezlink/prezlink/pkg/repository"
	"github.com/prezlink/prezlink/pkg/schemas"
	"go.uber.org/zap"
)

// ShareService implements share issuance, the registry operations and the
// token redemption path.
type ShareService struct {
	shares        repository.ShareRepository
	presentations repository.PresentationRepository
	users         repository.UserRepository
	cnf           *config.ShareConfig
	logger        *zap.SugaredLogger
	now           func() time.Time
}

func NewShareService(
	shares repository.ShareRepository,
	presentations repository.PresentationRepository,
	users repository.UserRepository,
	cnf *config.ShareConfig,
	logger *zap.Logger,
) *ShareService {
	return &ShareService{
		shares:        shares,
		presentations: presentations,
		users:         users,
		cnf:           cnf,
		logger:        logger.Sugar(),
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// requireOwner resolves the presentation owner and rejects callers that do
// not own it.
func (s *ShareService) requireOwner(ctx context.Context, presentationID, userID string) error {
	owner, err := s.presentations.Owner(ctx, presentationID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return notFound("Presentation")
		}
		return internalError(err)
	}
	if owner != userID {
		return permissionDenied()
	}
	return nil
}

func (s *ShareService) CreateShare(ctx context.Context, userID string, in *schemas.ShareIn) (*schemas.ShareLinkOut, error) {
	if err := s.requireOwner(ctx, in.PresentationID, userID); err != nil {
		return nil, err
	}

	var sharedWith *string
	if in.ShareType == models.ShareTypeDirect {
		if in.SharedWith == nil || *in.SharedWith == "" {
			return nil, validation("recipient is required for direct shares")
		}
		recipient, err := s.users.ByEmail(ctx, *in.SharedWith)
		if err != nil {
			if errors.Is(err, database.ErrNotFound) {
				return nil, notFound("User")
			}
			return nil, internalError(err)
		}
		sharedWith = &recipient.ID
	}

	// Link shares are single use unless the caller says otherwise.
	isSingleUse := in.ShareType == models.ShareTypeLink
	if in.IsSingleUse != nil {
		isSingleUse = *in.IsSingleUse
	}

	expiresAt := token.ExpiryFromDays(s.now(), in.ExpiresInDays)

	share, err := s.insertWithFreshToken(ctx, func(tok string) *models.PresentationShare {
		return &models.PresentationShare{
			PresentationID: in.PresentationID,
			SharedBy:       userID,
			SharedWith:     sharedWith,
			Permission:     in.Permission,
			ShareToken:     tok,
			ShareType:      in.ShareType,
			ExpiresAt:      expiresAt,
			IsSingleUse:    isSingleUse,
		}
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("share created",
		"shareId", share.ID,
		"presentationId", share.PresentationID,
		"type", share.ShareType,
		"permission", share.Permission,
		"singleUse", share.IsSingleUse)

	return &schemas.ShareLinkOut{
		Token:       share.ShareToken,
		URL:         s.shareURL(share.ShareToken),
		Permission:  share.Permission,
		ExpiresAt:   share.ExpiresAt,
		IsSingleUse: share.IsSingleUse,
	}, nil
}

// insertWithFreshToken inserts the share and retries once with a new token
// on a unique violation. Tokens carry ~190 bits of entropy, so a second
// collision in a row means something is badly wrong.
func (s *ShareService) insertWithFreshToken(ctx context.Context, build func(tok string) *models.PresentationShare) (*models.PresentationShare, error) {
	for attempt := 0; attempt < 2; attempt++ {
		tok, err := token.Generate()
		if err != nil {
			return nil, internalError(err)
		}
		share := build(tok)
		if err := s.shares.Create(ctx, share); err != nil {
			if database.IsKeyConflictErr(err) && attempt == 0 {
				s.logger.Warnw("share token collision, regenerating", "attempt", attempt)
				continue
			}
			return nil, internalError(err)
		}
		return share, nil
	}
	return nil, internalError(errors.New("could not generate a unique share token"))
}

func (s *ShareService) shareURL(tok string) string {
	return fmt.Sprintf("%s/app/presentation/shared/%s", strings.TrimSuffix(s.cnf.BaseURL, "/"), tok)
}

// GetShareByToken returns the share a token resolves to. Absent, expired and
// already-consumed tokens all fail the same way.
func (s *ShareService) GetShareByToken(ctx context.Context, tok string) (*schemas.ShareOut, error) {
	share, err := s.lookupValidShare(ctx, tok)
	if err != nil {
		return nil, err
	}
	return mapper.ToShareOut(share), nil
}

func (s *ShareService) lookupValidShare(ctx context.Context, tok string) (*models.PresentationShare, error) {
	share, err := s.shares.ByToken(ctx, tok)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, shareNotFound()
		}
		return nil, internalError(err)
	}
	if !share.Valid(s.now()) {
		return nil, shareNotFound()
	}
	return share, nil
}

// MarkShareAsUsed flips used_at for a single-use share. The write is
// conditional on used_at still being null; a lost race is reported, never
// retried.
func (s *ShareService) MarkShareAsUsed(ctx context.Context, shareID string) error {
	won, err := s.shares.MarkUsed(ctx, shareID, s.now())
	if err != nil {
		return internalError(err)
	}
	if !won {
		return &ApiError{Err: ErrShareUsed, Code: http.StatusConflict}
	}
	return nil
}

func (s *ShareService) ListShares(ctx context.Context, userID, presentationID string) ([]schemas.ShareOut, error) {
	if err := s.requireOwner(ctx, presentationID, userID); err != nil {
		return nil, err
	}
	shares, err := s.shares.ListByPresentation(ctx, presentationID, userID)
	if err != nil {
		return nil, internalError(err)
	}
	out := make([]schemas.ShareOut, 0, len(shares))
	for i := range shares {
		out = append(out, *mapper.ToShareOut(&shares[i]))
	}
	return out, nil
}

func (s *ShareService) ListSharedWithMe(ctx context.Context, userID string) ([]schemas.SharedWithMeOut, error) {
	rows, err := s.shares.ListSharedWith(ctx, userID)
	if err != nil {
		return nil, internalError(err)
	}
	out := make([]schemas.SharedWithMeOut, 0, len(rows))
	for i := range rows {
		out = append(out, *mapper.ToSharedWithMeOut(&rows[i]))
	}
	return out, nil
}

func (s *ShareService) UpdateShare(ctx context.Context, userID, shareID string, in *schemas.ShareUpdate) (*schemas.ShareOut, error) {
	share, err := s.shares.ByID(ctx, shareID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, notFound("Share")
		}
		return nil, internalError(err)
	}
	if share.SharedBy != userID {
		return nil, permissionDenied()
	}

	values := map[string]interface{}{"updated_at": s.now()}
	if in.Permission != nil {
		values["permission"] = *in.Permission
		share.Permission = *in.Permission
	}
	if in.ExpiresAt != nil {
		values["expires_at"] = *in.ExpiresAt
		share.ExpiresAt = in.ExpiresAt
	}
	if err := s.shares.Update(ctx, shareID, values); err != nil {
		return nil, internalError(err)
	}
	return mapper.ToShareOut(share), nil
}

func (s *ShareService) DeleteShare(ctx context.Context, userID, shareID string) error {
	share, err := s.shares.ByID(ctx, shareID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return notFound("Share")
		}
		return internalError(err)
	}
	if share.SharedBy != userID {
		return permissionDenied()
	}
	if err := s.shares.Delete(ctx, shareID); err != nil {
		return internalError(err)
	}
	return nil
}

func (s *ShareService) RevokeAllShares(ctx context.Context, userID, presentationID string) (int64, error) {
	if err := s.requireOwner(ctx, presentationID, userID); err != nil {
		return 0, err
	}
	count, err := s.shares.DeleteByPresentation(ctx, presentationID, userID)
	if err != nil {
		return 0, internalError(err)
	}
	s.logger.Infow("shares revoked", "presentationId", presentationID, "count", count)
	return count, nil
}
