package httpx

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/pedizone/pedizone-crm/internal/shared"
)

// StatusFor maps domain errors to HTTP status codes.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, shared.ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, shared.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, shared.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, shared.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// RespondError writes err as a {"detail": ...} body. Unclassified errors are
// logged and hidden behind a generic message.
func RespondError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		if logger != nil {
			logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		}
		Detail(w, status, "internal server error")
		return
	}
	if status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", "Bearer")
	}
	Detail(w, status, message(err))
}

func message(err error) string {
	var se *shared.Error
	if errors.As(err, &se) {
		return se.Message
	}
	switch {
	case errors.Is(err, shared.ErrNotFound):
		return "not found"
	case errors.Is(err, shared.ErrForbidden):
		return "insufficient permissions"
	case errors.Is(err, shared.ErrUnauthorized):
		return "could not validate credentials"
	default:
		return err.Error()
	}
}
