package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrUnexpectedResponse is returned when a rate response has no offer list.
var ErrUnexpectedResponse = errors.New("unexpected rate response")

// StatusError is a non-2xx answer from the rate API.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("rate API returned status %d: %s", e.StatusCode, e.Body)
}

// MerchantFault reports whether the request itself was refused (bad key, bad zip).
// Throttling and timeouts are upstream conditions, not merchant faults.
func (e *StatusError) MerchantFault() bool {
	switch e.StatusCode {
	case http.StatusRequestTimeout, http.StatusTooManyRequests:
		return false
	}
	return e.StatusCode >= 400 && e.StatusCode < 500
}
