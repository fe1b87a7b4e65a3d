package middleware

import (
	"net/http"
	"strings"

	"github.com/go-chi/cors"
)

// CORS returns a CORS middleware for the dashboard frontends. frontendURLs
// is a comma separated origin list; localhost dev servers are added when
// any of them is local.
func CORS(frontendURLs string) func(http.Handler) http.Handler {
	var origins []string
	local := false
	for _, o := range strings.Split(frontendURLs, ",") {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		if o == "" {
			continue
		}
		origins = append(origins, o)
		if strings.Contains(o, "localhost") || strings.Contains(o, "127.0.0.1") {
			local = true
		}
	}
	if local {
		origins = append(origins, "http://localhost:3000", "http://localhost:5173", "http://127.0.0.1:5173")
	}

	return cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Accept-Language",
			"Authorization",
			"Content-Type",
			"X-Request-ID",
		},
		ExposedHeaders:   []string{"X-Request-ID", "Content-Language"},
		AllowCredentials: true,
		MaxAge:           300,
	})
}
