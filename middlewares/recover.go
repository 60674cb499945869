package middlewares

import (
	"encoding/json"
	"fmt"
	"net/http"

	"student-records/apperrors"
	"student-records/models"

	"github.com/umakantv/go-utils/logger"
	"go.uber.org/zap"
)

// Recover turns a panic in any handler into the generic 500 envelope
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			logger.Error("Unhandled panic",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("request_id", GetRequestID(r.Context())),
				zap.String("panic", fmt.Sprint(rec)),
				zap.Stack("stack"),
			)

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(models.ErrorResponse{
				Status:  models.StatusError,
				Message: apperrors.GenericMessage,
			})
		}()

		next.ServeHTTP(w, r)
	})
}
