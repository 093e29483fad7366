package services

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prezlink/prezlink/pkg/models"
	"github.com/prezlink/prezlink/pkg/schemas"
)

func (s *ShareServiceSuite) directShare(permission models.Permission) {
	email := "user@example.com"
	_, err := s.srv.CreateShare(context.Background(), ownerID, &schemas.ShareIn{
		PresentationID: presentationID,
		Permission:     permission,
		ShareType:      models.ShareTypeDirect,
		SharedWith:     &email,
	})
	s.Require().NoError(err)
}

func (s *ShareServiceSuite) TestCheckAccessOwner() {
	// the owner has full access regardless of share rows
	access, err := s.srv.CheckAccess(context.Background(), presentationID, ownerID)
	s.Require().NoError(err)
	s.Equal(&schemas.AccessOut{CanView: true, CanEdit: true, IsOwner: true}, access)
}

func (s *ShareServiceSuite) TestCheckAccessNoShare() {
	access, err := s.srv.CheckAccess(context.Background(), presentationID, otherUserID)
	s.Require().NoError(err)
	s.Equal(&schemas.AccessOut{}, access)
}

func (s *ShareServiceSuite) TestCheckAccessUnknownPresentation() {
	access, err := s.srv.CheckAccess(context.Background(), uuid.NewString(), otherUserID)
	s.Require().NoError(err)
	s.Equal(&schemas.AccessOut{}, access)
}

func (s *ShareServiceSuite) TestCheckAccessViewShare() {
	s.directShare(models.PermissionView)

	access, err := s.srv.CheckAccess(context.Background(), presentationID, otherUserID)
	s.Require().NoError(err)
	s.Equal(&schemas.AccessOut{CanView: true}, access)
}

func (s *ShareServiceSuite) TestCheckAccessEditShare() {
	s.directShare(models.PermissionEdit)

	access, err := s.srv.CheckAccess(context.Background(), presentationID, otherUserID)
	s.Require().NoError(err)
	s.Equal(&schemas.AccessOut{CanView: true, CanEdit: true}, access)
}

func (s *ShareServiceSuite) TestCheckAccessExpiredShare() {
	email := "user@example.com"
	days := 1
	_, err := s.srv.CreateShare(context.Background(), ownerID, &schemas.ShareIn{
		PresentationID: presentationID,
		Permission:     models.PermissionEdit,
		ShareType:      models.ShareTypeDirect,
		SharedWith:     &email,
		ExpiresInDays:  &days,
	})
	s.Require().NoError(err)

	s.advance(48 * time.Hour)

	access, err := s.srv.CheckAccess(context.Background(), presentationID, otherUserID)
	s.Require().NoError(err)
	s.Equal(&schemas.AccessOut{}, access)
}

func (s *ShareServiceSuite) TestRedeemSingleUseLink() {
	out := s.linkShare(nil)

	res, err := s.srv.RedeemShareToken(context.Background(), out.Token)
	s.Require().NoError(err)
	s.Equal(models.PermissionView, res.Permission)
	s.Equal("Quarterly Review", res.Presentation.Title)
	s.NotEmpty(res.ShareID)

	// the second redemption is indistinguishable from an unknown token
	_, err = s.srv.RedeemShareToken(context.Background(), out.Token)
	s.Require().Error(err)
	s.ErrorIs(err, ErrShareNotFound)
	s.Equal(http.StatusNotFound, s.apiCode(err))
}

func (s *ShareServiceSuite) TestRedeemMultiUseLink() {
	multi := false
	out := s.linkShare(&schemas.ShareIn{
		PresentationID: presentationID,
		Permission:     models.PermissionEdit,
		ShareType:      models.ShareTypeLink,
		IsSingleUse:    &multi,
	})

	for i := 0; i < 3; i++ {
		res, err := s.srv.RedeemShareToken(context.Background(), out.Token)
		s.Require().NoError(err)
		s.Equal(models.PermissionEdit, res.Permission)
	}
}

func (s *ShareServiceSuite) TestRedeemExpiredLink() {
	days := 1
	out := s.linkShare(&schemas.ShareIn{
		PresentationID: presentationID,
		Permission:     models.PermissionView,
		ShareType:      models.ShareTypeLink,
		ExpiresInDays:  &days,
	})

	s.advance(25 * time.Hour)

	_, err := s.srv.RedeemShareToken(context.Background(), out.Token)
	s.Require().Error(err)
	s.ErrorIs(err, ErrShareNotFound)

	share, serr := s.shares.ByToken(context.Background(), out.Token)
	s.Require().NoError(serr)
	s.Nil(share.UsedAt, "expiry rejection must not consume the share")
}

func (s *ShareServiceSuite) TestRedeemUnknownToken() {
	_, err := s.srv.RedeemShareToken(context.Background(), "AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA")
	s.Require().Error(err)
	s.ErrorIs(err, ErrShareNotFound)
}

func (s *ShareServiceSuite) TestConcurrentRedemptionSingleWinner() {
	out := s.linkShare(nil)

	const workers = 16
	var wg sync.WaitGroup
	results := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.srv.RedeemShareToken(context.Background(), out.Token)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var successes, notFound int
	for err := range results {
		if err == nil {
			successes++
			continue
		}
		s.ErrorIs(err, ErrShareNotFound)
		notFound++
	}
	s.Equal(1, successes, "exactly one concurrent redemption may win")
	s.Equal(workers-1, notFound)
}
