package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient creates a client rooted at baseURL. Every request is bounded
// by timeout and sends JSON.
//
// Example usage:
//
//	client := utils.NewHTTPClient("https://mail.example.com", 5*time.Second)
//	resp, err := client.R().SetBody(msg).Post("/send")
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("User-Agent", "go-tool-access")

	return &HTTPClient{Client: client}
}
