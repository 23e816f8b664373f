package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"quotechat/pkg/logging"
)

const chatPath = "/chat"

// maxErrorBody bounds how much of a failed response is read for its detail.
const maxErrorBody = 64 << 10

// Chatter sends one chat turn to the quoting assistant.
type Chatter interface {
	Chat(ctx context.Context, req ChatRequest) (ChatResponse, error)
}

// Client talks to the quoting assistant's HTTP API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for baseURL. A zero timeout means requests
// never time out.
func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	return newClientWithHTTPClient(baseURL, &http.Client{Timeout: timeout})
}

func newClientWithHTTPClient(baseURL string, httpClient *http.Client) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		return nil, fmt.Errorf("base url is required")
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{baseURL: base, httpClient: httpClient}, nil
}

// BaseURL returns the normalized base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Chat posts one message and decodes the reply. Non-2xx statuses are
// returned as *Error.
func (c *Client) Chat(ctx context.Context, req ChatRequest) (ChatResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return ChatResponse{}, fmt.Errorf("failed to marshal chat request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+chatPath, bytes.NewReader(body))
	if err != nil {
		return ChatResponse{}, fmt.Errorf("failed to create chat request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	logging.Trace(ctx, "chat_request", "url", httpReq.URL.String(), "body", string(body))

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		slog.Error("chat_request_error", "error", err, "elapsed", time.Since(start))
		return ChatResponse{}, fmt.Errorf("chat request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := newError(resp)
		slog.Warn("chat_request_rejected",
			"status", resp.StatusCode,
			"detail", apiErr.Detail,
			"elapsed", time.Since(start),
		)
		return ChatResponse{}, apiErr
	}

	var out ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return ChatResponse{}, fmt.Errorf("failed to decode chat response: %w", err)
	}

	slog.Debug("chat_request_done",
		"status", resp.StatusCode,
		"session_id", out.SessionID,
		"intent", out.CurrentIntent,
		"has_quote", out.QuoteMD != "",
		"thinking_steps", len(out.ThinkingSteps),
		"elapsed", time.Since(start),
	)
	return out, nil
}

func newError(resp *http.Response) *Error {
	apiErr := &Error{
		StatusCode: resp.StatusCode,
		StatusText: statusText(resp),
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(data) == 0 {
		return apiErr
	}
	apiErr.Detail = parseDetail(data)
	return apiErr
}

// parseDetail extracts a string "detail" field. Structured details (such as
// validation error lists) are ignored so the status text is used instead.
func parseDetail(data []byte) string {
	var raw struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(data, &raw); err != nil || len(raw.Detail) == 0 {
		return ""
	}
	var detail string
	if err := json.Unmarshal(raw.Detail, &detail); err != nil {
		return ""
	}
	return strings.TrimSpace(detail)
}

func statusText(resp *http.Response) string {
	if text := http.StatusText(resp.StatusCode); text != "" {
		return text
	}
	status := strings.TrimSpace(resp.Status)
	if prefix := fmt.Sprintf("%d ", resp.StatusCode); strings.HasPrefix(status, prefix) {
		return strings.TrimPrefix(status, prefix)
	}
	return status
}
