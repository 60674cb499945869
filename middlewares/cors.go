package middlewares

import (
	"net/http"

	gorillahandlers "github.com/gorilla/handlers"
)

// CORS allows the browser client at origin to call the API with credentials
func CORS(origin string) func(http.Handler) http.Handler {
	return gorillahandlers.CORS(
		gorillahandlers.AllowedOrigins([]string{origin}),
		gorillahandlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete}),
		gorillahandlers.AllowedHeaders([]string{"Content-Type", RequestIDHeader}),
		gorillahandlers.ExposedHeaders([]string{RequestIDHeader}),
		gorillahandlers.AllowCredentials(),
	)
}
