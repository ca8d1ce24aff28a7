package testutil

import (
	"net/http"
	"time"

	"rankbridge/pkg/requestcontext"
)

// WithRequestID attaches a request id the way the request middleware would.
func WithRequestID(req *http.Request, requestID string) *http.Request {
	return req.WithContext(requestcontext.WithRequestID(req.Context(), requestID))
}

// WithRequestTime pins the request clock so stored timestamps are predictable.
func WithRequestTime(req *http.Request, now time.Time) *http.Request {
	return req.WithContext(requestcontext.WithTime(req.Context(), now))
}
