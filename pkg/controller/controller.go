package controller

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/prezlink/prezlink/pkg/httputil"
	"github.com/prezlink/prezlink/pkg/services"
)

type Controller struct {
	shares   *services.ShareService
	validate *validator.Validate
}

func NewController(shares *services.ShareService) *Controller {
	return &Controller{
		shares:   shares,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (c *Controller) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var apiErr *services.ApiError
	if errors.As(err, &apiErr) {
		httputil.NewError(w, r, apiErr.Code, apiErr)
		return
	}
	httputil.NewError(w, r, http.StatusInternalServerError, err)
}
