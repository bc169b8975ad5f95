package llama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// Client talks to a local ollama/llama-server completion endpoint.
type Client struct {
	baseURL           string
	model             string
	httpClient        HTTPClient
	minuteRateLimiter *rate.Limiter
}

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type generateRequest struct {
	Model   string          `json:"model"`
	Prompt  string          `json:"prompt"`
	Stream  bool            `json:"stream"`
	Options generateOptions `json:"options"`
}

type generateOptions struct {
	Temperature float32 `json:"temperature"`
	TopP        float32 `json:"top_p"`
	NumCtx      int     `json:"num_ctx"`
}

type generateResponse struct {
	Response string `json:"response"`
}

func NewClient(baseURL string, model string, timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = 120 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		model:      model,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) SetHTTPClient(client HTTPClient) {
	c.httpClient = client
}

func (c *Client) SetMinuteRateLimit(maxRequestsPerMinute float32) {
	c.minuteRateLimiter = rate.NewLimiter(rate.Limit(maxRequestsPerMinute/60), 1)
}

func (c *Client) GenerateResponse(ctx context.Context, text string) (string, error) {

	if c.minuteRateLimiter != nil {
		if err := c.minuteRateLimiter.Wait(ctx); err != nil {
			return "", err
		}
	}

	payload, err := json.Marshal(generateRequest{
		Model:  c.model,
		Prompt: text,
		Stream: false,
		Options: generateOptions{
			Temperature: 0.1,
			TopP:        0.9,
			NumCtx:      4096,
		},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("error creating request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("error sending request: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("error reading response body: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("request failed with status %v, body: %v", resp.StatusCode, string(body))
	}

	var decoded generateResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return "", fmt.Errorf("error decoding JSON response: %v", err)
	}

	if decoded.Response == "" {
		return "", fmt.Errorf("empty response from completion server")
	}

	return decoded.Response, nil
}
