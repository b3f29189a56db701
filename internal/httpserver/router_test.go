package httpserver_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"codeassist/internal/config"
	"codeassist/internal/httpserver"
	"codeassist/internal/llm"
	"codeassist/internal/metrics"
	"codeassist/internal/web"

	"go.uber.org/zap/zaptest"
)

func newTestServer(t *testing.T, upstream http.HandlerFunc) *httptest.Server {
	t.Helper()
	api := httptest.NewServer(upstream)
	t.Cleanup(api.Close)

	logger := zaptest.NewLogger(t)
	m := metrics.New()
	cfg := &config.GroqConfig{APIKey: "k", Model: "llama-3.1-8b-instant", Endpoint: api.URL}
	forwarder := llm.NewForwarder(cfg, api.Client(), logger, llm.WithRecorder(m))

	router := httpserver.NewRouter(httpserver.RouterDeps{
		Logger:  logger,
		Web:     web.NewHandler(web.Deps{LLM: forwarder, Logger: logger, ModelName: llm.GetModelName(cfg.Model)}),
		Metrics: m,
	})
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(b)
}

func TestRouterEndToEnd(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"choices":[{"message":{"content":"SELECT 1;"}}]}`)
	})

	resp, err := http.Get(srv.URL + "/ping")
	if err != nil {
		t.Fatalf("ping: %v", err)
	}
	if body := readBody(t, resp); body != "pong" {
		t.Fatalf("unexpected ping body: %q", body)
	}
	if resp.Header.Get("X-Request-ID") == "" {
		t.Errorf("expected request id header")
	}

	resp, err = http.Get(srv.URL + "/")
	if err != nil {
		t.Fatalf("index: %v", err)
	}
	if body := readBody(t, resp); !strings.Contains(body, "Llama 3.1 8B Instant") {
		t.Errorf("index must show model name")
	}

	resp, err = http.Post(srv.URL+"/api/v1/generate", "application/json", strings.NewReader(`{"prompt":"sql hello"}`))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if body := readBody(t, resp); !strings.Contains(body, `"text":"SELECT 1;"`) {
		t.Fatalf("unexpected generate body: %s", body)
	}

	resp, err = http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatalf("metrics: %v", err)
	}
	body := readBody(t, resp)
	if !strings.Contains(body, `prompt_forward_total{outcome="success"} 1`) {
		t.Errorf("expected forward counter in metrics output")
	}
	if !strings.Contains(body, `path="/api/v1/generate"`) {
		t.Errorf("expected request metrics by route")
	}
}

func TestRouterUpstreamFailure(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"error":{"message":"Invalid API Key"}}`)
	})

	resp, err := http.Post(srv.URL+"/api/v1/generate", "application/json", strings.NewReader(`{"prompt":"x"}`))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	body := readBody(t, resp)
	if resp.StatusCode != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", resp.StatusCode)
	}
	if !strings.Contains(body, `"code":"http_error"`) || !strings.Contains(body, "401") {
		t.Fatalf("unexpected body: %s", body)
	}
}

func TestRouterNotFound(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {})

	resp, err := http.Get(srv.URL + "/missing")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	body := readBody(t, resp)
	if resp.StatusCode != http.StatusNotFound || !strings.Contains(body, "not_found") {
		t.Fatalf("unexpected response %d: %s", resp.StatusCode, body)
	}
}
