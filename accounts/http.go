package accounts

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dmitrymomot/changenotify/core/logger"
)

type grantAdminRequest struct {
	UID string `json:"uid"`
}

type messageResponse struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// GrantAdminHandler serves POST /v1/accounts/grant-admin.
func GrantAdminHandler(svc *Service, auth *TokenAuthenticator, log *slog.Logger) http.HandlerFunc {
	if log == nil {
		log = logger.Discard()
	}
	return func(w http.ResponseWriter, r *http.Request) {
		caller := auth.Authenticate(bearerToken(r))

		var req grantAdminRequest
		if caller != "" {
			r.Body = http.MaxBytesReader(w, r.Body, 1<<16)
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				writeJSON(w, http.StatusBadRequest, messageResponse{Error: "request body must be JSON with a uid field"})
				return
			}
		}

		if err := svc.GrantAdmin(r.Context(), caller, req.UID); err != nil {
			status, msg := statusFor(err)
			if status >= http.StatusInternalServerError {
				log.ErrorContext(r.Context(), "grant admin request failed", logger.Error(err))
			}
			writeJSON(w, status, messageResponse{Error: msg})
			return
		}

		writeJSON(w, http.StatusOK, messageResponse{Message: "admin role granted to " + strings.TrimSpace(req.UID)})
	}
}

func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized, ErrUnauthenticated.Error()
	case errors.Is(err, ErrInvalidArgument):
		return http.StatusBadRequest, "uid is required"
	case errors.Is(err, ErrAccountNotFound):
		return http.StatusNotFound, ErrAccountNotFound.Error()
	default:
		return http.StatusInternalServerError, ErrInternal.Error()
	}
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if len(h) < 7 || !strings.EqualFold(h[:7], "bearer ") {
		return ""
	}
	return strings.TrimSpace(h[7:])
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
