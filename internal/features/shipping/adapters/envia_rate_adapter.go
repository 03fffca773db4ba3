package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"shipping-calculator/internal/core/httpclient"
	"shipping-calculator/internal/core/proxy"
	"shipping-calculator/internal/features/shipping/domain"
)

const (
	ratePath = "/ship/rate/"
	// maxBodyLog bounds the response excerpt attached to errors.
	maxBodyLog = 512
)

// EnviaRateAdapter implements ports.RateProvider against the Envia.com shipping API.
type EnviaRateAdapter struct {
	client     *http.Client
	baseURL    string
	sandboxURL string
}

// NewEnviaRateAdapter creates an adapter. Merchants in sandbox mode are sent to sandboxURL.
func NewEnviaRateAdapter(baseURL, sandboxURL string, timeout time.Duration, proxySettings proxy.Settings) *EnviaRateAdapter {
	return &EnviaRateAdapter{
		client:     httpclient.NewClient(timeout, proxySettings),
		baseURL:    strings.TrimRight(baseURL, "/"),
		sandboxURL: strings.TrimRight(sandboxURL, "/"),
	}
}

// rateResponse is the body of a successful rate call.
type rateResponse struct {
	Data []domain.CarrierOffer `json:"data"`
}

// Rate posts the quote and returns the raw offers.
func (a *EnviaRateAdapter) Rate(ctx context.Context, creds domain.Credentials, quote domain.RateQuote) ([]domain.CarrierOffer, error) {
	payload, err := json.Marshal(quote)
	if err != nil {
		return nil, fmt.Errorf("failed to encode quote: %w", err)
	}

	base := a.baseURL
	if creds.Sandbox {
		base = a.sandboxURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, base+ratePath, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+creds.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &domain.StatusError{StatusCode: resp.StatusCode, Body: excerpt(body)}
	}

	var result rateResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if result.Data == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnexpectedResponse, excerpt(body))
	}

	return result.Data, nil
}

func excerpt(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > maxBodyLog {
		return s[:maxBodyLog] + "..."
	}
	return s
}
