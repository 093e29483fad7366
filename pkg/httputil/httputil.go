package httputil

import (
	"encoding/json"
	"net/http"

	"github.com/prezlink/prezlink/internal/logging"
	"go.uber.org/zap"
)

type HTTPError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func NewError(w http.ResponseWriter, r *http.Request, status int, err error) {
	logger := logging.FromContext(r.Context())
	logger.Error("request failed", zap.Int("status", status), zap.Error(err))
	if status == 0 {
		status = http.StatusInternalServerError
	}
	WriteJSON(w, status, HTTPError{
		Code:    status,
		Message: err.Error(),
	})
}

func WriteJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
