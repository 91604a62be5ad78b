package articut

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog"
)

// Endpoint is the production API endpoint.
const Endpoint = "https://api.droidtown.co/Articut/API/"

// Client represents an Articut API client. The underlying HTTP client
// is created lazily on the first request and reused afterwards; supply
// WithHTTPClient when the client is shared across goroutines before any
// request has been made.
type Client struct {
	username   string
	apiKey     string
	endpoint   string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates a new Articut client. Credentials are required but
// not verified here; the service checks them on every request.
func NewClient(username, apiKey string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if username == "" {
		return nil, fmt.Errorf("articut username is required")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("articut API key is required")
	}

	client := &Client{
		username: username,
		apiKey:   apiKey,
		endpoint: Endpoint,
		logger:   logger,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

// parseRequest is the wire payload: the request options flattened next
// to the input text and the account credentials.
type parseRequest struct {
	RequestOptions
	InputStr string `json:"input_str"`
	Username string `json:"username"`
	APIKey   string `json:"api_key"`
}

// parseResponse wraps Response with the msg field the service uses to
// report failures. The message feeds the error table and is never
// exposed to callers.
type parseResponse struct {
	Response
	Msg string `json:"msg"`
}

// Parse submits text for segmentation and annotation with the default
// request options.
func (c *Client) Parse(ctx context.Context, text string) (*Response, error) {
	return c.ParseWithOptions(ctx, text, RequestOptions{})
}

// ParseWithOptions submits text for segmentation and annotation. Zero
// fields in opts are filled with the documented defaults. Failures are
// reported inside the response body, so the body is decoded regardless
// of HTTP status and matched against the known failure phrases.
// Transport and decode failures surface as *NetworkError. Each call is
// a single request; the client never retries.
func (c *Client) ParseWithOptions(ctx context.Context, text string, opts RequestOptions) (*Response, error) {
	payload := parseRequest{
		RequestOptions: opts.withDefaults(),
		InputStr:       text,
		Username:       c.username,
		APIKey:         c.apiKey,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, &NetworkError{Err: fmt.Errorf("failed to encode request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &NetworkError{Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	c.logger.Debug().
		Str("version", payload.Version).
		Str("level", string(payload.Level)).
		Int("input_len", len(text)).
		Msg("Submitting text to Articut")

	resp, err := c.http().Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	var decoded parseResponse
	if err := json.Unmarshal(respBody, &decoded); err != nil {
		return nil, &NetworkError{Err: fmt.Errorf("failed to parse response: %w", err)}
	}

	if err := errorFromMessage(decoded.Msg); err != nil {
		c.logger.Debug().
			Str("msg", decoded.Msg).
			Msg("Articut rejected the request")
		return nil, err
	}

	c.logger.Debug().
		Float64("exec_time", decoded.ExecTime).
		Int("word_count_balance", decoded.WordCountBalance).
		Msg("Articut parse completed")

	return &decoded.Response, nil
}

// http returns the HTTP client, creating the default one on first use.
// The default imposes no timeout.
func (c *Client) http() *http.Client {
	if c.httpClient == nil {
		c.httpClient = &http.Client{}
	}
	return c.httpClient
}
