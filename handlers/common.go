package handlers

import (
	"encoding/json"
	"net/http"

	"student-records/apperrors"
	"student-records/middlewares"
	"student-records/models"

	"github.com/gorilla/mux"
	logger "github.com/umakantv/go-utils/logger"
	"go.uber.org/zap"
)

// logRequest logs a line for the current request with route, method, path
// and request id attached as fields.
func logRequest(r *http.Request, level string, message string, fields ...zap.Field) {
	routeName := ""
	if route := mux.CurrentRoute(r); route != nil {
		routeName = route.GetName()
	}

	logMsg := routeName + " - " + r.Method + " - " + r.URL.Path
	if message != "" {
		logMsg += " - " + message
	}

	allFields := append([]zap.Field{
		zap.String("route", routeName),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.String("request_id", middlewares.GetRequestID(r.Context())),
	}, fields...)

	switch level {
	case "info":
		logger.Info(logMsg, allFields...)
	case "error":
		logger.Error(logMsg, allFields...)
	case "debug":
		logger.Debug(logMsg, allFields...)
	}
}

// writeJSON sends body with status. The header is already out when encoding
// fails, so the failure is only logged.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logRequest(r, "debug", "Failed to write response", zap.Int("status", status), zap.Error(err))
	}
}

// writeError sends the error envelope. Server-side failures are logged with
// their cause, which never reaches the client.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := apperrors.StatusCode(err)
	if status >= http.StatusInternalServerError {
		logRequest(r, "error", "Request failed", zap.Error(err))
	} else {
		logRequest(r, "info", "Request rejected",
			zap.Int("status", status), zap.String("kind", apperrors.KindOf(err).String()))
	}

	writeJSON(w, r, status, models.ErrorResponse{
		Status:  models.StatusError,
		Message: apperrors.Message(err),
	})
}

// Health handles GET /health
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, models.HealthResponse{Status: "up", Message: "Server is running"})
}

// NotFound answers requests that match no route
func NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, apperrors.NewNotFoundError("Route not found"))
}

// MethodNotAllowed answers known paths called with an unsupported method
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusMethodNotAllowed, models.ErrorResponse{
		Status:  models.StatusError,
		Message: "Method not allowed",
	})
}
