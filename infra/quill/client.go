package quill

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/quillfeed/quillterm/domain"
	"github.com/quillfeed/quillterm/infra/auth"
)

// Client is a thin HTTP wrapper for the Quillfeed API.
// It handles base URL construction, bearer token injection and error
// envelope unwrapping.
type Client struct {
	baseURL       string
	tokenProvider auth.TokenProvider
	http          *http.Client
	logger        log.FieldLogger
}

// NewClient creates a Quillfeed API client.
func NewClient(baseURL string, tp auth.TokenProvider, logger log.FieldLogger) *Client {
	if logger == nil {
		l := log.New()
		l.SetOutput(io.Discard)
		logger = l
	}
	return &Client{
		baseURL:       strings.TrimRight(baseURL, "/"),
		tokenProvider: tp,
		http:          &http.Client{Timeout: 30 * time.Second},
		logger:        logger,
	}
}

// APIError is a non-2xx response with its unwrapped server message.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// Get performs an authenticated GET request.
func (c *Client) Get(ctx context.Context, path string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, path, nil)
}

// Post performs an authenticated POST request with a JSON body.
// A nil payload sends an empty body.
func (c *Client) Post(ctx context.Context, path string, payload any) ([]byte, error) {
	body, err := encodeJSON(payload)
	if err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodPost, path, body)
}

// Delete performs an authenticated DELETE request.
func (c *Client) Delete(ctx context.Context, path string) ([]byte, error) {
	return c.do(ctx, http.MethodDelete, path, nil)
}

func encodeJSON(payload any) (io.Reader, error) {
	if payload == nil {
		return nil, nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding request body: %w", err)
	}
	return bytes.NewReader(data), nil
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader) ([]byte, error) {
	token, err := c.tokenProvider.AccessToken()
	if err != nil {
		return nil, fmt.Errorf("auth: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.WithFields(log.Fields{"method": method, "path": path}).Debug("api request")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s: %w", path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := unwrapErrorMessage(resp, data)
		c.logger.WithFields(log.Fields{
			"method": method, "path": path, "status": resp.StatusCode,
		}).Debugf("api error: %s", msg)
		if resp.StatusCode == http.StatusUnauthorized {
			return nil, fmt.Errorf("%w: %s", domain.ErrUnauthorized, msg)
		}
		return nil, &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	return data, nil
}

// unwrapErrorMessage extracts a human-readable message from an error
// response. JSON bodies are decoded for an "error" or "message" field;
// other bodies get a best-effort JSON re-parse before falling back to the
// HTTP status text.
func unwrapErrorMessage(resp *http.Response, body []byte) string {
	mediaType, _, _ := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	isJSON := mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")

	var envelope struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil || isJSON {
		if envelope.Error != "" {
			return envelope.Error
		}
		if envelope.Message != "" {
			return envelope.Message
		}
	}

	if !isJSON {
		if text := strings.TrimSpace(string(body)); text != "" {
			return text
		}
	}
	return http.StatusText(resp.StatusCode)
}

// Transfer performs a direct binary PUT to a signed upload target. The
// target URL carries its own authorization; no bearer token is attached.
func (c *Client) Transfer(ctx context.Context, uploadURL, contentType string, body io.Reader, size int64) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, uploadURL, body)
	if err != nil {
		return fmt.Errorf("creating upload request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if size > 0 {
		req.ContentLength = size
	}

	c.logger.WithField("size", size).Debug("binary transfer")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("upload transfer: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{StatusCode: resp.StatusCode, Message: "upload rejected: " + http.StatusText(resp.StatusCode)}
	}
	return nil
}
