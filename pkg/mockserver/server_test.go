package mockserver

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"quotechat/pkg/api"
	"quotechat/pkg/chat"
	"quotechat/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	s, err := New(config.Default().MockServer)
	require.NoError(t, err)
	ts := httptest.NewServer(s.Router())
	t.Cleanup(ts.Close)
	return s, ts
}

func postChat(t *testing.T, url, body string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Post(url+"/chat", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func TestServer_RootAndHealth(t *testing.T) {
	_, ts := newTestServer(t)

	for _, path := range []string{"/", "/health"} {
		resp, err := http.Get(ts.URL + path)
		require.NoError(t, err)
		var body map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
		assert.Equal(t, "ok", body["status"], path)
	}
}

func TestServer_ChatRejectsBlankMessage(t *testing.T) {
	_, ts := newTestServer(t)

	for _, body := range []string{`{"message":""}`, `{"message":"   \n"}`, `not json`} {
		resp, raw := postChat(t, ts.URL, body)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, body)

		var e api.ErrorResponse
		require.NoError(t, json.Unmarshal(raw, &e))
		assert.NotEmpty(t, e.Detail, body)
	}
}

func TestServer_ChatQuote(t *testing.T) {
	s, ts := newTestServer(t)

	resp, raw := postChat(t, ts.URL, `{"message":"price for 2 windows 1.5x1.2 in the 70 series"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var out api.ChatResponse
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.NotEmpty(t, out.SessionID)
	assert.Equal(t, "price_inquiry", out.CurrentIntent)
	assert.True(t, strings.HasPrefix(out.QuoteMD, "# Window Quote"))
	require.NotEmpty(t, out.ThinkingSteps)
	assert.Equal(t, "started a new session", out.ThinkingSteps[0])

	history := s.Sessions().History(out.SessionID)
	require.Len(t, history, 2)
	assert.Equal(t, "user", history[0].Role)
	assert.Equal(t, out.Reply, history[1].Content)
}

func TestServer_SessionContinuity(t *testing.T) {
	s, ts := newTestServer(t)

	_, raw := postChat(t, ts.URL, `{"message":"hello"}`)
	var first api.ChatResponse
	require.NoError(t, json.Unmarshal(raw, &first))

	_, raw = postChat(t, ts.URL, `{"message":"how much","session_id":"`+first.SessionID+`"}`)
	var second api.ChatResponse
	require.NoError(t, json.Unmarshal(raw, &second))

	assert.Equal(t, first.SessionID, second.SessionID)
	assert.Equal(t, "continuing session, turn 2", second.ThinkingSteps[0])
	assert.Len(t, s.Sessions().History(first.SessionID), 4)

	_, raw = postChat(t, ts.URL, `{"message":"hello","session_id":"unknown"}`)
	var third api.ChatResponse
	require.NoError(t, json.Unmarshal(raw, &third))
	assert.NotEqual(t, "unknown", third.SessionID)
	assert.NotEqual(t, first.SessionID, third.SessionID)
	assert.Equal(t, 2, s.Sessions().Len())
}

func TestServer_TurnNumberKeepsCountingPastHistoryLimit(t *testing.T) {
	s, ts := newTestServer(t)

	_, raw := postChat(t, ts.URL, `{"message":"hello"}`)
	var resp api.ChatResponse
	require.NoError(t, json.Unmarshal(raw, &resp))
	sid := resp.SessionID

	turns := maxSessionMessages/2 + 5
	for i := 2; i <= turns; i++ {
		_, raw = postChat(t, ts.URL, `{"message":"hello","session_id":"`+sid+`"}`)
		require.NoError(t, json.Unmarshal(raw, &resp))
	}

	assert.Equal(t, fmt.Sprintf("continuing session, turn %d", turns), resp.ThinkingSteps[0])
	assert.Len(t, s.Sessions().History(sid), maxSessionMessages)
}

func TestServer_CORS(t *testing.T) {
	_, ts := newTestServer(t)

	req, err := http.NewRequest(http.MethodOptions, ts.URL+"/chat", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "POST")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "http://localhost:5173", resp.Header.Get("Access-Control-Allow-Origin"))
}

// The client and controller against the real handler.
func TestServer_WithClientAndController(t *testing.T) {
	_, ts := newTestServer(t)

	client, err := api.NewClient(ts.URL, 5*time.Second)
	require.NoError(t, err)
	ctrl := chat.NewController(client)

	require.True(t, ctrl.Send(context.Background(), "how much for 1.5x1.2?"))
	sid := ctrl.SessionID()
	require.NotEmpty(t, sid)

	quote, ok := ctrl.LastQuote()
	require.True(t, ok)
	assert.Contains(t, quote, "## Breakdown")

	require.True(t, ctrl.Send(context.Background(), "thanks"))
	assert.Equal(t, sid, ctrl.SessionID())
	assert.Equal(t, 4, ctrl.Len())

	msgs := ctrl.Messages()
	assert.Equal(t, "chat", msgs[3].CurrentIntent)
	assert.False(t, msgs[3].Transient())
}

func TestServer_ListenAndServeStopsOnCancel(t *testing.T) {
	s, err := New(config.Default().MockServer)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx, "127.0.0.1:0") }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not stop")
	}
}
