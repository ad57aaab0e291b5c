package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"runtime/debug"

	"dateTracker/internal/logger"

	"go.uber.org/zap"
)

// Recover turns a panic into a 500 response. The panic value is only
// exposed to clients in development.
func Recover(development bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				logger.Logger.Error("HTTP: panic recovered",
					zap.String("request_id", GetRequestID(r.Context())),
					zap.Any("panic", rec),
					zap.ByteString("stack", debug.Stack()),
				)

				message := "Internal server error"
				if development {
					message = fmt.Sprint(rec)
				}

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_ = json.NewEncoder(w).Encode(map[string]string{
					"error":   "Something went wrong!",
					"message": message,
				})
			}()

			next.ServeHTTP(w, r)
		})
	}
}
