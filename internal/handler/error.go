package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/DukeRupert/savant/internal/domain"
	"github.com/DukeRupert/savant/internal/middleware"
)

// ErrorCodeToHTTPStatus maps domain error codes to HTTP status codes.
func ErrorCodeToHTTPStatus(code string) int {
	switch code {
	case domain.EINVALID:
		return http.StatusBadRequest // 400
	case domain.ENOTFOUND:
		return http.StatusNotFound // 404
	case domain.ETOOLARGE:
		return http.StatusRequestEntityTooLarge // 413
	case domain.EUNAVAILABLE:
		return http.StatusServiceUnavailable // 503
	default:
		return http.StatusInternalServerError // 500
	}
}

// ErrorResponse logs err and writes its safe message as plain text with the
// status its code maps to. The page and the htmx card are HTML, so there is
// no JSON variant; /api/contact has its own response shape.
func ErrorResponse(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	logError(logger, r, err)
	http.Error(w, domain.ErrorMessage(err), ErrorCodeToHTTPStatus(domain.ErrorCode(err)))
}

// NotFoundResponse answers a path no route serves.
func NotFoundResponse(w http.ResponseWriter, r *http.Request, logger *slog.Logger) {
	ErrorResponse(w, r, logger, domain.Errorf(domain.ENOTFOUND, "", "The requested page was not found"))
}

// InternalErrorResponse answers with a generic 500. Errors that already carry
// a code keep it for logging; anything else is wrapped as EINTERNAL.
func InternalErrorResponse(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	if domain.ErrorCode(err) != domain.EINTERNAL {
		err = domain.Internal(err, domain.ErrorOp(err), "An unexpected error occurred")
	}
	ErrorResponse(w, r, logger, err)
}

// logError logs err at the level its code deserves: ERROR for faults on our
// side or the relay's, INFO for bad requests. The level follows the code even
// when the response status is fixed, as on /api/contact.
func logError(logger *slog.Logger, r *http.Request, err error) {
	code := domain.ErrorCode(err)
	attrs := []any{
		"error", err.Error(),
		"code", code,
		"path", r.URL.Path,
		"method", r.Method,
	}
	if op := domain.ErrorOp(err); op != "" {
		attrs = append(attrs, "op", op)
	}
	var de *domain.Error
	if errors.As(err, &de) && de.Err != nil {
		attrs = append(attrs, "cause", de.Err.Error())
	}
	if id := middleware.RequestIDFromContext(r.Context()); id != "" {
		attrs = append(attrs, "request_id", id)
	}

	if ErrorCodeToHTTPStatus(code) >= 500 {
		logger.Error("server error", attrs...)
		return
	}
	logger.Info("client error", attrs...)
}
