package kit

import "net/http"

// RequestIDHeader carries the request id in and out of HTTP calls.
const RequestIDHeader = "X-Request-ID"

// HTTPContext tags requests with the http transport and a request id,
// reusing the caller's X-Request-ID when present, and echoes the id back.
func HTTPContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = NewRequestID()
		}
		w.Header().Set(RequestIDHeader, id)
		ctx := WithRequestID(WithTransport(r.Context(), "http"), id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
