package imageload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	http "github.com/bogdanfinn/fhttp"
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"
)

const (
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"

	// maxImageBytes caps a single download
	maxImageBytes = 20 << 20
)

var (
	ErrNotFound    = errors.New("image not found")
	ErrUnavailable = errors.New("image host unavailable")
	ErrTooLarge    = errors.New("image exceeds size limit")
	ErrNotImage    = errors.New("response is not a decodable image")
)

// Client downloads image bytes over HTTP(S).
// Uses tls-client with a Chrome TLS fingerprint so CDNs that reject
// non-browser clients still serve the image.
type Client struct {
	httpClient tls_client.HttpClient
	retryDelay time.Duration
}

// NewClient creates a download client with the given request timeout
func NewClient(timeout time.Duration) *Client {
	secs := int(timeout / time.Second)
	if secs <= 0 {
		secs = 30
	}
	options := []tls_client.HttpClientOption{
		tls_client.WithClientProfile(profiles.Chrome_131),
		tls_client.WithRandomTLSExtensionOrder(),
		tls_client.WithTimeoutSeconds(secs),
	}

	tlsClient, err := tls_client.NewHttpClient(tls_client.NewNoopLogger(), options...)
	if err != nil {
		log.Printf("Warning: failed to create TLS client, falling back: %v", err)
		tlsClient, _ = tls_client.NewHttpClient(tls_client.NewNoopLogger())
	}

	return &Client{
		httpClient: tlsClient,
		retryDelay: 2 * time.Second,
	}
}

// Fetch downloads the body at url (retries once on transient errors)
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		if attempt > 0 {
			log.Printf("Retrying image fetch %s (attempt %d)...", url, attempt+1)
			select {
			case <-time.After(c.retryDelay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		data, err := c.fetchOnce(ctx, url)
		if err == nil {
			return data, nil
		}
		lastErr = err

		// Don't retry permanent errors
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrTooLarge) || ctx.Err() != nil {
			return nil, err
		}
		log.Printf("Image fetch attempt %d failed: %v", attempt+1, err)
	}
	return nil, lastErr
}

func (c *Client) fetchOnce(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, url)
	case resp.StatusCode >= 500:
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
	if err != nil {
		return nil, err
	}
	if len(body) > maxImageBytes {
		return nil, ErrTooLarge
	}
	return body, nil
}

// setHeaders sets browser-like headers for image requests
func (c *Client) setHeaders(req *http.Request) {
	req.Header = http.Header{
		"User-Agent":      {userAgent},
		"Accept":          {"image/avif,image/webp,image/apng,image/*,*/*;q=0.8"},
		"Accept-Language": {"en-US,en;q=0.9"},
		"Sec-Fetch-Dest":  {"image"},
		"Sec-Fetch-Mode":  {"no-cors"},
		"Sec-Fetch-Site":  {"cross-site"},
		http.HeaderOrderKey: {
			"user-agent", "accept", "accept-language",
			"sec-fetch-dest", "sec-fetch-mode", "sec-fetch-site",
		},
	}
}
