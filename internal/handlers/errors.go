package handlers

import (
	"errors"
	"net/http"

	"dateTracker/internal/logger"
	"dateTracker/internal/middleware"
	"dateTracker/internal/service"

	"go.uber.org/zap"
)

const redactedMessage = "Internal server error"

func mapBusinessErrorToHTTP(code string) int {
	switch code {
	case service.CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusBadRequest
	}
}

// handleServiceError answers a failed service call. Business errors keep
// their message; anything else is a 500 whose text only leaves the process
// in development.
func handleServiceError(w http.ResponseWriter, r *http.Request, err error, development bool) {
	var businessErr *service.BusinessError
	if errors.As(err, &businessErr) {
		statusCode := mapBusinessErrorToHTTP(businessErr.Code)

		logger.Warn("HTTP: business error",
			zap.String("request_id", middleware.GetRequestID(r.Context())),
			zap.String("error_code", businessErr.Code),
			zap.Int("http_status", statusCode))

		if businessErr.Code == service.CodeValidation {
			field, _ := businessErr.Details["field"].(string)
			respondValidation(w, FieldError{Field: field, Message: businessErr.Message})
			return
		}
		respondFailure(w, statusCode, businessErr.Message)
		return
	}

	logger.Error("HTTP: service failure", err,
		zap.String("request_id", middleware.GetRequestID(r.Context())),
		zap.String("path", r.URL.Path))

	message := redactedMessage
	if development {
		message = err.Error()
	}
	respondFailure(w, http.StatusInternalServerError, message)
}
