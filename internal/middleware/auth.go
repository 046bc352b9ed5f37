package middleware

import (
	"log"
	"net/http"
)

type TokenVerifier interface {
	VerifyHeader(header string) (string, error)
}

// Authenticate rejects requests without a valid bearer token with an empty
// 401. The reason is only logged.
func Authenticate(v TokenVerifier, logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			sub, err := v.VerifyHeader(header)
			if err != nil {
				logger.Printf("auth rejected %s %s cid=%s: %v", r.Method, r.URL.Path, GetCorrelationID(r.Context()), err)
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithSubject(r.Context(), sub)))
		})
	}
}
