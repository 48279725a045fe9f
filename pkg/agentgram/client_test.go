package agentgram_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/agentgram/agentgram-go/pkg/agentgram"
)

// testClient builds a client pointed at srv with a test API key.
func testClient(t *testing.T, srv *httptest.Server, opts ...agentgram.Option) *agentgram.Client {
	t.Helper()
	opts = append([]agentgram.Option{agentgram.WithBaseURL(srv.URL)}, opts...)
	c, err := agentgram.New("test-key", opts...)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestNew_requiresAPIKey(t *testing.T) {
	if _, err := agentgram.New(""); err == nil {
		t.Error("expected error for empty API key")
	}
}

func TestNew_rejectsBadTimeout(t *testing.T) {
	if _, err := agentgram.New("k", agentgram.WithTimeout(0)); err == nil {
		t.Error("expected error for zero timeout")
	}
}

func TestClient_stripsTrailingSlash(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/agents/me" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{"success": true, "data": map[string]any{"id": "a1"}})
	}))
	defer srv.Close()

	c, err := agentgram.New("test-key", agentgram.WithBaseURL(srv.URL+"///"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.Me(context.Background()); err != nil {
		t.Fatalf("Me: %v", err)
	}
}

func TestClient_headers(t *testing.T) {
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		json.NewEncoder(w).Encode(map[string]any{"success": true, "data": map[string]any{"id": "a1"}})
	}))
	defer srv.Close()

	c := testClient(t, srv)
	if _, err := c.Me(context.Background()); err != nil {
		t.Fatalf("Me: %v", err)
	}

	if auth := got.Get("Authorization"); auth != "Bearer test-key" {
		t.Errorf("unexpected Authorization header: %q", auth)
	}
	if ct := got.Get("Content-Type"); ct != "application/json" {
		t.Errorf("unexpected Content-Type header: %q", ct)
	}
	if accept := got.Get("Accept"); accept != "application/json" {
		t.Errorf("unexpected Accept header: %q", accept)
	}
	if ua := got.Get("User-Agent"); !strings.HasPrefix(ua, "agentgram-go/") {
		t.Errorf("unexpected User-Agent header: %q", ua)
	}
	if got.Get("X-Request-Id") == "" {
		t.Error("expected an X-Request-Id header")
	}
}

func TestClient_statusKindTable(t *testing.T) {
	cases := []struct {
		status int
		kind   agentgram.Kind
	}{
		{400, agentgram.KindValidation},
		{401, agentgram.KindAuthentication},
		{404, agentgram.KindNotFound},
		{429, agentgram.KindRateLimit},
		{500, agentgram.KindServer},
		{502, agentgram.KindServer},
		{503, agentgram.KindServer},
		{418, agentgram.KindGeneric},
	}

	for _, tc := range cases {
		t.Run(fmt.Sprintf("status_%d", tc.status), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				json.NewEncoder(w).Encode(map[string]any{
					"success": false,
					"error":   map[string]any{"code": "SOME_CODE", "message": "it failed"},
				})
			}))
			defer srv.Close()

			c := testClient(t, srv)
			_, err := c.GetAgent(context.Background(), "agent_x")
			if err == nil {
				t.Fatal("expected error")
			}
			apiErr, ok := agentgram.AsError(err)
			if !ok {
				t.Fatalf("expected *agentgram.Error, got %T", err)
			}
			if apiErr.Kind != tc.kind {
				t.Errorf("kind = %s, want %s", apiErr.Kind, tc.kind)
			}
			if apiErr.StatusCode != tc.status {
				t.Errorf("status = %d, want %d", apiErr.StatusCode, tc.status)
			}
			if apiErr.Message != "it failed" {
				t.Errorf("message = %q, want envelope message", apiErr.Message)
			}
			if apiErr.Code != "SOME_CODE" {
				t.Errorf("code = %q, want SOME_CODE", apiErr.Code)
			}
		})
	}
}

func TestClient_failureEnvelopeWithoutDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		json.NewEncoder(w).Encode(map[string]any{"success": false})
	}))
	defer srv.Close()

	c := testClient(t, srv)
	_, err := c.GetAgent(context.Background(), "agent_x")
	apiErr, ok := agentgram.AsError(err)
	if !ok {
		t.Fatalf("expected *agentgram.Error, got %v", err)
	}
	if apiErr.Message != "HTTP 502" {
		t.Errorf("message = %q, want generic HTTP 502", apiErr.Message)
	}
	if apiErr.Kind != agentgram.KindServer {
		t.Errorf("kind = %s, want server", apiErr.Kind)
	}
}

// A 200 whose envelope says success:false is still a failure; the status
// falls through the table to the generic kind.
func TestClient_successStatusFailureEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"error":   map[string]any{"code": "SOFT_FAIL", "message": "rejected"},
		})
	}))
	defer srv.Close()

	c := testClient(t, srv)
	_, err := c.GetAgent(context.Background(), "agent_x")
	apiErr, ok := agentgram.AsError(err)
	if !ok {
		t.Fatalf("expected *agentgram.Error, got %v", err)
	}
	if apiErr.Kind != agentgram.KindGeneric {
		t.Errorf("kind = %s, want generic", apiErr.Kind)
	}
	if apiErr.Message != "rejected" || apiErr.Code != "SOFT_FAIL" {
		t.Errorf("unexpected detail: %q / %q", apiErr.Message, apiErr.Code)
	}
}

func TestClient_queryOmitsAbsentKeys(t *testing.T) {
	var rawQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawQuery = r.URL.RawQuery
		json.NewEncoder(w).Encode(map[string]any{"success": true, "data": []any{}})
	}))
	defer srv.Close()

	c := testClient(t, srv)
	// page absent, limit present-and-zero: limit must still be serialized.
	_, _, err := c.ListPosts(context.Background(), &agentgram.ListPostsParams{
		Sort:  agentgram.String("new"),
		Limit: agentgram.Int(0),
	})
	if err != nil {
		t.Fatalf("ListPosts: %v", err)
	}
	if rawQuery != "limit=0&sort=new" {
		t.Errorf("unexpected query: %q", rawQuery)
	}
}

func TestClient_noContentSkipsDecoding(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("unexpected method: %s", r.Method)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := testClient(t, srv)
	if err := c.DeletePost(context.Background(), "p1"); err != nil {
		t.Fatalf("DeletePost: %v", err)
	}
}

func TestClient_malformedBodyIsParseError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	c := testClient(t, srv)
	_, err := c.GetPost(context.Background(), "p1")
	apiErr, ok := agentgram.AsError(err)
	if !ok {
		t.Fatalf("expected *agentgram.Error, got %v", err)
	}
	if apiErr.Kind != agentgram.KindParse {
		t.Errorf("kind = %s, want parse", apiErr.Kind)
	}
	if apiErr.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", apiErr.StatusCode)
	}
}

func TestClient_missingDiscriminantIsParseError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"data": map[string]any{"id": "p1"}})
	}))
	defer srv.Close()

	c := testClient(t, srv)
	_, err := c.GetPost(context.Background(), "p1")
	if !agentgram.IsKind(err, agentgram.KindParse) {
		t.Errorf("expected parse error, got %v", err)
	}
}

func TestClient_timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		json.NewEncoder(w).Encode(map[string]any{"success": true, "data": map[string]any{}})
	}))
	defer srv.Close()

	c := testClient(t, srv, agentgram.WithTimeout(30*time.Millisecond))
	_, err := c.GetPost(context.Background(), "p1")
	apiErr, ok := agentgram.AsError(err)
	if !ok {
		t.Fatalf("expected *agentgram.Error, got %v", err)
	}
	if apiErr.Kind != agentgram.KindTimeout {
		t.Errorf("kind = %s, want timeout", apiErr.Kind)
	}
	if !strings.Contains(apiErr.Message, "30ms") {
		t.Errorf("message %q should carry the configured timeout", apiErr.Message)
	}
}

// The timer firing while the body is still streaming — headers already
// received — is still a timeout, not a network failure.
func TestClient_timeoutDuringBodyRead(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.(http.Flusher).Flush()
		time.Sleep(500 * time.Millisecond)
	}))
	defer srv.Close()

	c := testClient(t, srv, agentgram.WithTimeout(50*time.Millisecond))
	_, err := c.GetPost(context.Background(), "p1")
	apiErr, ok := agentgram.AsError(err)
	if !ok {
		t.Fatalf("expected *agentgram.Error, got %v", err)
	}
	if apiErr.Kind != agentgram.KindTimeout {
		t.Errorf("kind = %s, want timeout (err: %v)", apiErr.Kind, err)
	}
	if !strings.Contains(apiErr.Message, "50ms") {
		t.Errorf("message %q should carry the configured timeout", apiErr.Message)
	}
}

// When the caller's context deadline is sooner than the configured timeout,
// the error must not claim the configured timeout fired.
func TestClient_callerDeadlineSoonerThanTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		json.NewEncoder(w).Encode(map[string]any{"success": true, "data": map[string]any{}})
	}))
	defer srv.Close()

	c := testClient(t, srv) // default 30s timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	_, err := c.GetPost(ctx, "p1")
	apiErr, ok := agentgram.AsError(err)
	if !ok {
		t.Fatalf("expected *agentgram.Error, got %v", err)
	}
	if apiErr.Kind != agentgram.KindTimeout {
		t.Errorf("kind = %s, want timeout", apiErr.Kind)
	}
	if strings.Contains(apiErr.Message, "30s") {
		t.Errorf("message %q blames the configured timeout, which never fired", apiErr.Message)
	}
	if !strings.Contains(apiErr.Message, "caller") {
		t.Errorf("message %q should name the caller deadline", apiErr.Message)
	}
}

// A completed call must have disarmed its timer: waiting out the timeout after
// success must not disturb the client or subsequent calls.
func TestClient_noSpuriousAbortAfterCompletion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"success": true, "data": map[string]any{"id": "p1"}})
	}))
	defer srv.Close()

	c := testClient(t, srv, agentgram.WithTimeout(50*time.Millisecond))
	if _, err := c.GetPost(context.Background(), "p1"); err != nil {
		t.Fatalf("first call: %v", err)
	}
	time.Sleep(120 * time.Millisecond)
	if _, err := c.GetPost(context.Background(), "p1"); err != nil {
		t.Fatalf("call after timer would have fired: %v", err)
	}
}

func TestClient_networkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c := testClient(t, srv)
	_, err := c.GetPost(context.Background(), "p1")
	if !agentgram.IsKind(err, agentgram.KindNetwork) {
		t.Errorf("expected network error, got %v", err)
	}
}

func TestClient_successEnvelopeRoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data":    []map[string]any{{"id": "p1", "title": "t"}},
			"meta":    map[string]any{"page": 1, "limit": 10, "total": 1},
		})
	}))
	defer srv.Close()

	c := testClient(t, srv)
	posts, meta, err := c.ListPosts(context.Background(), nil)
	if err != nil {
		t.Fatalf("ListPosts: %v", err)
	}
	if len(posts) != 1 || posts[0].ID != "p1" {
		t.Errorf("unexpected posts: %+v", posts)
	}
	if meta == nil || meta.Page != 1 || meta.Limit != 10 || meta.Total != 1 {
		t.Errorf("unexpected meta: %+v", meta)
	}
}

func TestClient_createPostScenario(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/posts" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if body["title"] != "t" || body["content"] != "c" {
			t.Errorf("unexpected body: %v", body)
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data":    map[string]any{"id": "abc"},
		})
	}))
	defer srv.Close()

	c := testClient(t, srv)
	post, err := c.CreatePost(context.Background(), agentgram.CreatePostRequest{Title: "t", Content: "c"})
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}
	if post.ID != "abc" {
		t.Errorf("post ID = %q, want abc", post.ID)
	}
}

func TestClient_getAgentNotFoundScenario(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/agents/x" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"error":   map[string]any{"code": "NOT_FOUND", "message": "no such agent"},
		})
	}))
	defer srv.Close()

	c := testClient(t, srv)
	_, err := c.GetAgent(context.Background(), "x")
	apiErr, ok := agentgram.AsError(err)
	if !ok {
		t.Fatalf("expected *agentgram.Error, got %v", err)
	}
	if apiErr.Kind != agentgram.KindNotFound {
		t.Errorf("kind = %s, want not_found", apiErr.Kind)
	}
	if apiErr.Message != "no such agent" {
		t.Errorf("message = %q, want \"no such agent\"", apiErr.Message)
	}
	if apiErr.Code != "NOT_FOUND" {
		t.Errorf("code = %q, want NOT_FOUND", apiErr.Code)
	}
}

func TestClient_getRequestHasNoBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength != 0 {
			t.Errorf("GET carried a body of %d bytes", r.ContentLength)
		}
		json.NewEncoder(w).Encode(map[string]any{"success": true, "data": map[string]any{"id": "p1"}})
	}))
	defer srv.Close()

	c := testClient(t, srv)
	if _, err := c.GetPost(context.Background(), "p1"); err != nil {
		t.Fatalf("GetPost: %v", err)
	}
}

func TestClient_metrics(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "missing") {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]any{"success": false, "error": map[string]any{"message": "gone"}})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"success": true, "data": map[string]any{"id": "a1"}})
	}))
	defer srv.Close()

	reg := prometheus.NewRegistry()
	c := testClient(t, srv, agentgram.WithMetrics(reg))

	if _, err := c.GetAgent(context.Background(), "a1"); err != nil {
		t.Fatalf("GetAgent: %v", err)
	}
	if _, err := c.GetAgent(context.Background(), "missing"); err == nil {
		t.Fatal("expected not-found error")
	}

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}
	for _, want := range []string{
		"agentgram_client_requests_total",
		"agentgram_client_errors_total",
		"agentgram_client_request_duration_seconds",
	} {
		if !names[want] {
			t.Errorf("metric %s not registered", want)
		}
	}
}

func TestClient_concurrentCalls(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"success": true, "data": map[string]any{"id": "p1"}})
	}))
	defer srv.Close()

	c := testClient(t, srv)
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		go func() {
			_, err := c.GetPost(context.Background(), "p1")
			errs <- err
		}()
	}
	for i := 0; i < 16; i++ {
		if err := <-errs; err != nil {
			t.Errorf("concurrent call: %v", err)
		}
	}
}
