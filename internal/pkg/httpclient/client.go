// Package httpclient builds the outbound HTTP client carrier adapters share.
// Every vendor call goes through a logging round tripper and a bounded
// timeout so a slow vendor degrades one call instead of stalling a sweep.
package httpclient

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

// DefaultTimeout bounds every vendor call when the caller does not specify
// its own.
const DefaultTimeout = 15 * time.Second

// LoggingRoundTripper captures request details for debugging.
type LoggingRoundTripper struct {
	// Proxied is the underlying RoundTripper to execute the request.
	Proxied http.RoundTripper

	// Logger receives one debug entry per request and an error entry per
	// transport failure.
	Logger *zap.Logger
}

// RoundTrip executes the request and logs details.
func (lrt *LoggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	lrt.Logger.Debug("HTTP Request Started",
		zap.String("method", req.Method),
		zap.String("url", req.URL.String()),
	)

	resp, err := lrt.Proxied.RoundTrip(req)

	duration := time.Since(start)

	if err != nil {
		lrt.Logger.Error("HTTP Request Failed",
			zap.String("method", req.Method),
			zap.String("url", req.URL.String()),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return nil, err
	}

	lrt.Logger.Debug("HTTP Request Completed",
		zap.String("method", req.Method),
		zap.String("url", req.URL.String()),
		zap.Int("status_code", resp.StatusCode),
		zap.Duration("duration", duration),
	)

	return resp, nil
}

// NewClient returns an http.Client with logging middleware and the given
// per-call timeout. A zero timeout falls back to DefaultTimeout.
func NewClient(timeout time.Duration, log *zap.Logger) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{
		Transport: &LoggingRoundTripper{
			Proxied: http.DefaultTransport,
			Logger:  log,
		},
		Timeout: timeout,
	}
}
