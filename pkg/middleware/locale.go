package middleware

import (
	"net/http"

	"aeroclub/pkg/identity"
	"aeroclub/pkg/locale"
)

// Locale resolves the request locale and stores it on the request identity.
func Locale(resolver *locale.Resolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			loc := resolver.Resolve(r.Header.Get("Referer"), r.Header.Get("Accept-Language"))
			w.Header().Set("Content-Language", loc)
			next.ServeHTTP(w, r.WithContext(identity.WithLocale(r.Context(), loc)))
		})
	}
}
