package middleware

import (
	"net/http"

	"github.com/frahmantamala/asset-management/pkg/logger"
	"github.com/google/uuid"
)

// RequestID honors an inbound X-Trace-ID, minting one when absent, so a
// request can be traced across services and back to the client.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get("X-Trace-ID")
		if traceID == "" {
			traceID = uuid.NewString()
		}

		ctx := logger.With(r.Context(), "trace_id", traceID)
		w.Header().Set("X-Trace-ID", traceID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
