package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestClient_Chat(t *testing.T) {
	var gotPath string
	var gotMethod string
	var gotContentType string
	var gotPayload map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		gotContentType = r.Header.Get("Content-Type")
		if err := json.NewDecoder(r.Body).Decode(&gotPayload); err != nil {
			t.Errorf("failed to decode request body: %v", err)
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"reply":          "Here is your quote",
			"quote_md":       "# Window Quote\n**¥1,200.00**",
			"current_intent": "price_inquiry",
			"session_id":     "sess-1",
			"thinking_steps": []string{"classified intent", "priced 1 item"},
		})
	}))
	defer server.Close()

	client, err := NewClient(server.URL+"/", 0)
	if err != nil {
		t.Fatalf("NewClient() error: %v", err)
	}

	resp, err := client.Chat(context.Background(), ChatRequest{Message: "how much for a window"})
	if err != nil {
		t.Fatalf("Chat() error: %v", err)
	}

	if gotPath != "/chat" {
		t.Errorf("Expected path /chat, got %q", gotPath)
	}
	if gotMethod != http.MethodPost {
		t.Errorf("Expected POST, got %q", gotMethod)
	}
	if gotContentType != "application/json" {
		t.Errorf("Expected JSON content type, got %q", gotContentType)
	}
	if gotPayload["message"] != "how much for a window" {
		t.Errorf("Expected message in payload, got %v", gotPayload)
	}
	if _, ok := gotPayload["session_id"]; ok {
		t.Errorf("Expected session_id to be omitted when unset, got %v", gotPayload)
	}

	if resp.Reply != "Here is your quote" {
		t.Errorf("Unexpected reply %q", resp.Reply)
	}
	if resp.SessionID != "sess-1" {
		t.Errorf("Unexpected session id %q", resp.SessionID)
	}
	if resp.CurrentIntent != "price_inquiry" {
		t.Errorf("Unexpected intent %q", resp.CurrentIntent)
	}
	if len(resp.ThinkingSteps) != 2 {
		t.Errorf("Expected 2 thinking steps, got %d", len(resp.ThinkingSteps))
	}
	if !strings.HasPrefix(resp.QuoteMD, "# Window Quote") {
		t.Errorf("Unexpected quote %q", resp.QuoteMD)
	}
}

func TestClient_ChatSendsSessionID(t *testing.T) {
	var gotPayload map[string]any
	client, err := newClientWithHTTPClient("http://quote.test/api", newTestClient(func(req *http.Request) (*http.Response, error) {
		if req.URL.String() != "http://quote.test/api/chat" {
			t.Errorf("Unexpected URL %q", req.URL.String())
		}
		if err := json.NewDecoder(req.Body).Decode(&gotPayload); err != nil {
			t.Errorf("decode body: %v", err)
		}
		return newJSONResponse(t, req, http.StatusOK, ChatResponse{Reply: "ok", SessionID: "sess-1"}), nil
	}))
	if err != nil {
		t.Fatalf("newClientWithHTTPClient() error: %v", err)
	}

	if _, err := client.Chat(context.Background(), ChatRequest{Message: "hi", SessionID: "sess-1"}); err != nil {
		t.Fatalf("Chat() error: %v", err)
	}
	if gotPayload["session_id"] != "sess-1" {
		t.Errorf("Expected session_id in payload, got %v", gotPayload)
	}
}

func TestClient_ChatErrorDetail(t *testing.T) {
	client, _ := newClientWithHTTPClient("http://quote.test", newTestClient(func(req *http.Request) (*http.Response, error) {
		return newJSONResponse(t, req, http.StatusBadRequest, map[string]string{"detail": "message must not be empty"}), nil
	}))

	_, err := client.Chat(context.Background(), ChatRequest{Message: "x"})
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("Expected *Error, got %T (%v)", err, err)
	}
	if apiErr.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", apiErr.StatusCode)
	}
	if apiErr.Error() != "message must not be empty" {
		t.Errorf("Expected detail as message, got %q", apiErr.Error())
	}
}

func TestClient_ChatErrorFallsBackToStatusText(t *testing.T) {
	tests := []struct {
		name string
		body []byte
	}{
		{"empty body", nil},
		{"not json", []byte("<html>bad gateway</html>")},
		{"no detail", []byte(`{"error":"boom"}`)},
		{"structured detail", []byte(`{"detail":[{"loc":["body","message"],"msg":"field required"}]}`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newClientWithHTTPClient("http://quote.test", newTestClient(func(req *http.Request) (*http.Response, error) {
				return newHTTPResponse(req, http.StatusBadGateway, "", tt.body), nil
			}))

			_, err := client.Chat(context.Background(), ChatRequest{Message: "x"})
			var apiErr *Error
			if !errors.As(err, &apiErr) {
				t.Fatalf("Expected *Error, got %T (%v)", err, err)
			}
			if apiErr.Detail != "" {
				t.Errorf("Expected empty detail, got %q", apiErr.Detail)
			}
			if apiErr.Error() != "Bad Gateway" {
				t.Errorf("Expected status text, got %q", apiErr.Error())
			}
		})
	}
}

func TestClient_ChatTransportError(t *testing.T) {
	client, _ := newClientWithHTTPClient("http://quote.test", newTestClient(func(req *http.Request) (*http.Response, error) {
		return nil, errors.New("connection refused")
	}))

	_, err := client.Chat(context.Background(), ChatRequest{Message: "x"})
	if err == nil {
		t.Fatal("Expected transport error")
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		t.Fatalf("Transport errors should not be *Error, got %v", apiErr)
	}
	if !strings.Contains(err.Error(), "connection refused") {
		t.Errorf("Expected wrapped cause, got %v", err)
	}
}

func TestClient_ChatInvalidJSON(t *testing.T) {
	client, _ := newClientWithHTTPClient("http://quote.test", newTestClient(func(req *http.Request) (*http.Response, error) {
		return newHTTPResponse(req, http.StatusOK, "application/json", []byte("{")), nil
	}))

	if _, err := client.Chat(context.Background(), ChatRequest{Message: "x"}); err == nil {
		t.Fatal("Expected decode error")
	}
}

func TestNewClient_RequiresBaseURL(t *testing.T) {
	if _, err := NewClient("   ", 0); err == nil {
		t.Fatal("Expected error for empty base url")
	}
}

func TestError_Message(t *testing.T) {
	tests := []struct {
		err  Error
		want string
	}{
		{Error{StatusCode: 500, StatusText: "Internal Server Error", Detail: "graph build failed"}, "graph build failed"},
		{Error{StatusCode: 500, StatusText: "Internal Server Error"}, "Internal Server Error"},
		{Error{StatusCode: 599}, "request failed with status 599"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}
