package middleware

import (
	"context"
	"log"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// HeaderCorrelationID ties a waiter terminal call to the API log lines it
// produces. The client forwards it when the context carries one.
const HeaderCorrelationID = "X-Correlation-Id"

const maxCorrelationIDLen = 64

// CorrelationID keeps a caller supplied id when it is short printable ASCII.
// Otherwise the id falls back to chi's request id, then to a new UUID, so a
// terminal cannot inject arbitrary text into the order log.
func CorrelationID(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cid := r.Header.Get(HeaderCorrelationID)
			if cid != "" && !validCorrelationID(cid) {
				logger.Printf("correlation id rejected on %s %s (%d bytes)", r.Method, r.URL.Path, len(cid))
				cid = ""
			}
			if cid == "" {
				cid = chimw.GetReqID(r.Context())
			}
			if cid == "" {
				cid = uuid.NewString()
			}

			w.Header().Set(HeaderCorrelationID, cid)
			next.ServeHTTP(w, r.WithContext(WithCorrelationID(r.Context(), cid)))
		})
	}
}

func validCorrelationID(cid string) bool {
	if len(cid) > maxCorrelationIDLen {
		return false
	}
	for i := 0; i < len(cid); i++ {
		if c := cid[i]; c < 0x21 || c > 0x7e {
			return false
		}
	}
	return true
}

// WithCorrelationID lets callers outside an HTTP request, such as the waiter
// terminal, pick the id the API will log.
func WithCorrelationID(ctx context.Context, cid string) context.Context {
	return context.WithValue(ctx, ctxCorrelationID, cid)
}
