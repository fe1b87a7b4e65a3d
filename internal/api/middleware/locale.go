package middleware

import (
	"net/http"

	"github.com/kosbot/kosbot-api/internal/pkg/i18n"
)

// Locale negotiates the response language from Accept-Language
func Locale(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tag := i18n.Negotiate(r.Header.Get("Accept-Language"))
		w.Header().Set("Content-Language", tag.String())
		next.ServeHTTP(w, r.WithContext(i18n.WithLanguage(r.Context(), tag)))
	})
}
