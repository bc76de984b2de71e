package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly,
// while allowing extension with additional application-specific behavior.
//
// Example usage:
//
//	client := utils.NewHTTPClient("https://pass.example.com", 15*time.Second)
//	resp, err := client.R().Get("/pass/v1/share")
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient creates a new HTTPClient bound to baseURL. Every request
// accepts JSON and is bounded by timeout (zero means no client-side timeout).
// Retries are left disabled: a failed fetch is retried by the next sync tick.
//
// Each call returns an independent client instance with its own
// configuration, connection pool, and state.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		SetRetryCount(0)

	if timeout > 0 {
		client.SetTimeout(timeout)
	}

	return &HTTPClient{Client: client}
}
