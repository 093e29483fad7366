package controller

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prezlink/prezlink/internal/auth"
	"github.com/prezlink/prezlink/pkg/httputil"
	"github.com/prezlink/prezlink/pkg/schemas"
)

func (c *Controller) CreateShare(w http.ResponseWriter, r *http.Request) {
	var payload schemas.ShareIn
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		httputil.NewError(w, r, http.StatusBadRequest, err)
		return
	}
	if err := c.validate.Struct(&payload); err != nil {
		httputil.NewError(w, r, http.StatusBadRequest, err)
		return
	}

	res, err := c.shares.CreateShare(r.Context(), auth.GetUser(r.Context()), &payload)
	if err != nil {
		c.writeError(w, r, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, res)
}

func (c *Controller) ListShares(w http.ResponseWriter, r *http.Request) {
	res, err := c.shares.ListShares(r.Context(), auth.GetUser(r.Context()), chi.URLParam(r, "presentationId"))
	if err != nil {
		c.writeError(w, r, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, res)
}

func (c *Controller) ListSharedWithMe(w http.ResponseWriter, r *http.Request) {
	res, err := c.shares.ListSharedWithMe(r.Context(), auth.GetUser(r.Context()))
	if err != nil {
		c.writeError(w, r, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, res)
}

func (c *Controller) UpdateShare(w http.ResponseWriter, r *http.Request) {
	var payload schemas.ShareUpdate
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		httputil.NewError(w, r, http.StatusBadRequest, err)
		return
	}
	if err := c.validate.Struct(&payload); err != nil {
		httputil.NewError(w, r, http.StatusBadRequest, err)
		return
	}

	res, err := c.shares.UpdateShare(r.Context(), auth.GetUser(r.Context()), chi.URLParam(r, "shareId"), &payload)
	if err != nil {
		c.writeError(w, r, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, res)
}

func (c *Controller) DeleteShare(w http.ResponseWriter, r *http.Request) {
	err := c.shares.DeleteShare(r.Context(), auth.GetUser(r.Context()), chi.URLParam(r, "shareId"))
	if err != nil {
		c.writeError(w, r, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, schemas.Message{Message: "share deleted"})
}

func (c *Controller) RevokeAllShares(w http.ResponseWriter, r *http.Request) {
	count, err := c.shares.RevokeAllShares(r.Context(), auth.GetUser(r.Context()), chi.URLParam(r, "presentationId"))
	if err != nil {
		c.writeError(w, r, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, schemas.RevokeOut{Revoked: count})
}

func (c *Controller) CheckAccess(w http.ResponseWriter, r *http.Request) {
	res, err := c.shares.CheckAccess(r.Context(), chi.URLParam(r, "presentationId"), auth.GetUser(r.Context()))
	if err != nil {
		c.writeError(w, r, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, res)
}

func (c *Controller) GetShareByToken(w http.ResponseWriter, r *http.Request) {
	res, err := c.shares.GetShareByToken(r.Context(), chi.URLParam(r, "token"))
	if err != nil {
		c.writeError(w, r, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, res)
}

func (c *Controller) RedeemShareToken(w http.ResponseWriter, r *http.Request) {
	res, err := c.shares.RedeemShareToken(r.Context(), chi.URLParam(r, "token"))
	if err != nil {
		c.writeError(w, r, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, res)
}
