package enrichlayer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://enrichlayer.com/api/v2"

// ErrBadCredentials means the API key was rejected; no call in the batch
// can succeed, so the whole run must abort.
var ErrBadCredentials = errors.New("enrichment api rejected credentials")

// ErrNotFound means the provider has no data for the company; this is an
// expected outcome, not a failure.
var ErrNotFound = errors.New("no enrichment data for company")

// ErrRateLimited is returned after the backoff budget for a 429 response
// is exhausted.
var ErrRateLimited = errors.New("enrichment api rate limit exceeded")

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Client struct {
	apiKey      string
	baseURL     string
	httpClient  HTTPClient
	rateLimiter *rate.Limiter

	maxAttempts    int
	initialBackoff time.Duration
	sleep          func(time.Duration)
}

func NewClient(apiKey string, baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		apiKey:         apiKey,
		baseURL:        baseURL,
		httpClient:     &http.Client{Timeout: timeout},
		maxAttempts:    3,
		initialBackoff: time.Second,
		sleep:          time.Sleep,
	}
}

func (c *Client) SetHTTPClient(client HTTPClient) {
	c.httpClient = client
}

func (c *Client) SetRateLimit(maxRequestsPerSecond float32) {
	c.rateLimiter = rate.NewLimiter(rate.Limit(maxRequestsPerSecond), 1)
}

// GetCompany fetches the company profile for a normalized LinkedIn URL.
// 429 responses are retried with exponential backoff starting at one
// second and doubling each attempt; every other non-200 status is final.
func (c *Client) GetCompany(ctx context.Context, linkedinURL string) (*CompanyProfile, error) {

	apiURL := c.baseURL + "/company?" + url.Values{"url": {linkedinURL}}.Encode()

	backoff := c.initialBackoff
	for attempt := 1; ; attempt++ {

		body, status, err := c.sendRequest(ctx, apiURL)
		if err != nil {
			return nil, err
		}

		switch {
		case status == http.StatusOK:
			var profile CompanyProfile
			if err := json.Unmarshal(body, &profile); err != nil {
				return nil, fmt.Errorf("error decoding JSON response: %v", err)
			}
			return &profile, nil
		case status == http.StatusUnauthorized:
			return nil, ErrBadCredentials
		case status == http.StatusNotFound:
			return nil, ErrNotFound
		case status == http.StatusTooManyRequests:
			if attempt >= c.maxAttempts {
				return nil, ErrRateLimited
			}
			c.sleep(backoff)
			backoff *= 2
		default:
			return nil, fmt.Errorf("request failed with status %v, body: %v", status, string(body))
		}
	}
}

func (c *Client) sendRequest(ctx context.Context, url string) ([]byte, int, error) {

	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, 0, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("error creating request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("error sending request: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("error reading response body: %v", err)
	}

	return body, resp.StatusCode, nil
}
