package httpclient

import (
	"net/http"
	"time"

	"shipping-calculator/internal/core/logger"
	"shipping-calculator/internal/core/proxy"

	"go.uber.org/zap"
)

// LoggingRoundTripper captures request details for debugging.
type LoggingRoundTripper struct {
	// Proxied is the underlying RoundTripper to execute the request.
	Proxied http.RoundTripper
}

// RoundTrip executes the request and logs details.
func (lrt *LoggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	log := logger.Get().With(
		zap.String("method", req.Method),
		zap.String("host", req.URL.Host),
		zap.String("path", req.URL.Path),
	)

	log.Debug("HTTP Request Started")

	resp, err := lrt.Proxied.RoundTrip(req)
	duration := time.Since(start)

	if err != nil {
		log.Error("HTTP Request Failed", zap.Duration("duration", duration), zap.Error(err))
		return nil, err
	}

	log.Debug("HTTP Request Completed",
		zap.Int("status_code", resp.StatusCode),
		zap.Duration("duration", duration),
	)

	return resp, nil
}

// NewClient returns an http.Client with logging middleware, routed through the
// proxy when one is configured.
func NewClient(timeout time.Duration, proxySettings proxy.Settings) *http.Client {
	base := http.DefaultTransport
	if u := proxySettings.URL(); u != nil {
		t := http.DefaultTransport.(*http.Transport).Clone()
		t.Proxy = http.ProxyURL(u)
		base = t
	}

	return &http.Client{
		Transport: &LoggingRoundTripper{Proxied: base},
		Timeout:   timeout,
	}
}
