package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"ai_content_generator/generator"
	"ai_content_generator/history"
	"ai_content_generator/metrics"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testEnv struct {
	handler http.Handler
	store   *history.Store
}

func newTestEnv(t *testing.T, llm generator.LLMClient, limit int) testEnv {
	t.Helper()
	store := history.NewStore(limit)
	m := metrics.New()
	agent, err := generator.NewAgent(llm, generator.Options{History: store, Metrics: m})
	if err != nil {
		t.Fatalf("NewAgent() error = %v", err)
	}
	srv, err := New(Config{Agent: agent, History: store, Metrics: m})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return testEnv{handler: srv.Routes(), store: store}
}

func (e testEnv) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(bytes.NewReader(rec.Body.Bytes())).Decode(&v); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return v
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t, nil, 10)
	rec := env.do(t, http.MethodGet, "/api/health", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	resp := decode[healthResp](t, rec)
	if resp.Status == "" || resp.Message == "" || resp.Timestamp == "" {
		t.Errorf("incomplete health response: %+v", resp)
	}
	if resp.AIProvider != generator.ProviderMock {
		t.Errorf("aiProvider = %q", resp.AIProvider)
	}
	if rec.Header().Get(requestIDHeader) == "" {
		t.Error("missing X-Request-ID header")
	}
}

func TestInfo(t *testing.T) {
	env := newTestEnv(t, nil, 10)
	rec := env.do(t, http.MethodGet, "/api/info", "")

	resp := decode[infoResp](t, rec)
	if resp.Version != "1.0.0" {
		t.Errorf("version = %q", resp.Version)
	}
	if resp.Endpoints["generate"] != "POST /api/generate" {
		t.Errorf("endpoints = %v", resp.Endpoints)
	}
}

func TestGenerate_NoProvider(t *testing.T) {
	env := newTestEnv(t, nil, 10)
	rec := env.do(t, http.MethodPost, "/api/generate", `{"type":"bio","data":{"name":"Ada","skills":"math"}}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}
	resp := decode[generateResp](t, rec)
	if !resp.Success {
		t.Error("success = false")
	}
	if !strings.Contains(resp.Content, "Ada") || !strings.Contains(resp.Content, "math") {
		t.Errorf("content = %q", resp.Content)
	}
	if resp.AIProvider != generator.ProviderMock {
		t.Errorf("aiProvider = %q", resp.AIProvider)
	}
	if resp.ID == "" || resp.Entry.ID != resp.ID {
		t.Errorf("id = %q entry.id = %q", resp.ID, resp.Entry.ID)
	}
	if resp.Message != "Content generated with Mock Data" {
		t.Errorf("message = %q", resp.Message)
	}
	if env.store.Len() != 1 {
		t.Errorf("history len = %d", env.store.Len())
	}
}

func TestGenerate_ProviderHTTPFailureFallsBack(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer upstream.Close()

	llm := generator.NewGeminiLLM(generator.LLMSettings{APIKey: "k", BaseURL: upstream.URL})
	env := newTestEnv(t, llm, 10)
	rec := env.do(t, http.MethodPost, "/api/generate", `{"type":"bio","data":{"name":"Ada","skills":"math"}}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	resp := decode[generateResp](t, rec)
	if resp.AIProvider != "Mock Data (Google Gemini Failed)" {
		t.Errorf("aiProvider = %q", resp.AIProvider)
	}
	if !strings.HasPrefix(resp.Content, "PROFESSIONAL BIOGRAPHY") {
		t.Errorf("content = %q", resp.Content)
	}
}

func TestGenerate_ProviderSuccess(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"Ada builds **proofs**."}]}}]}`))
	}))
	defer upstream.Close()

	llm := generator.NewGeminiLLM(generator.LLMSettings{APIKey: "k", BaseURL: upstream.URL})
	env := newTestEnv(t, llm, 10)
	rec := env.do(t, http.MethodPost, "/api/generate", `{"type":"bio","data":{"name":"Ada","skills":"math"}}`)

	resp := decode[generateResp](t, rec)
	if resp.AIProvider != generator.ProviderGemini || resp.Content != "Ada builds **proofs**." {
		t.Errorf("resp = %+v", resp)
	}
	if !strings.Contains(resp.HTML, "<strong>proofs</strong>") {
		t.Errorf("html = %q", resp.HTML)
	}
}

func TestGenerate_BadRequests(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"empty object", `{}`, "Type and data are required"},
		{"empty body", ``, "Type and data are required"},
		{"missing data", `{"type":"bio"}`, "Type and data are required"},
		{"missing type", `{"data":{"name":"Ada"}}`, "Type and data are required"},
		{"unknown type", `{"type":"poem","data":{"a":"b"}}`, "Unsupported content type: poem"},
		{"missing required", `{"type":"project","data":{"title":"x"}}`, "Missing required fields: description"},
		{"malformed", `{"type":`, "Invalid JSON body"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, nil, 10)
			rec := env.do(t, http.MethodPost, "/api/generate", tt.body)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			resp := decode[errorResp](t, rec)
			if resp.Success || resp.Error != tt.wantErr {
				t.Errorf("resp = %+v, want error %q", resp, tt.wantErr)
			}
			if env.store.Len() != 0 {
				t.Error("rejected request was recorded")
			}
		})
	}
}

func TestGenerate_NonStringFields(t *testing.T) {
	env := newTestEnv(t, nil, 10)
	rec := env.do(t, http.MethodPost, "/api/generate", `{"type":"project","data":{"title":"Apollo","description":"moon","outcomes":11,"technologies":null}}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	resp := decode[generateResp](t, rec)
	if !strings.Contains(resp.Content, "Results: 11") {
		t.Errorf("content = %q", resp.Content)
	}
}

func TestHistoryAndStats(t *testing.T) {
	env := newTestEnv(t, nil, 3)
	bodies := []string{
		`{"type":"bio","data":{"name":"A","skills":"s"}}`,
		`{"type":"project","data":{"title":"P","description":"d"}}`,
		`{"type":"reflection","data":{"topic":"T","experience":"e"}}`,
		`{"type":"bio","data":{"name":"B","skills":"s"}}`,
		`{"type":"bio","data":{"name":"C","skills":"s"}}`,
	}
	for _, b := range bodies {
		if rec := env.do(t, http.MethodPost, "/api/generate", b); rec.Code != http.StatusOK {
			t.Fatalf("generate status = %d", rec.Code)
		}
	}

	hist := decode[historyResp](t, env.do(t, http.MethodGet, "/api/history", ""))
	if !hist.Success || hist.Total != 3 || len(hist.History) != 3 {
		t.Fatalf("history = %+v", hist)
	}
	if got := hist.History[0].Data["name"]; got != "C" {
		t.Errorf("most recent name = %q, want C", got)
	}
	if hist.History[2].Type != generator.TypeReflection {
		t.Errorf("oldest retained type = %q", hist.History[2].Type)
	}

	st := decode[statsResp](t, env.do(t, http.MethodGet, "/api/stats", ""))
	if st.Stats.TotalGenerations != 3 {
		t.Errorf("totalGenerations = %d", st.Stats.TotalGenerations)
	}
	sum := 0
	for _, key := range []string{"bio", "project", "reflection"} {
		n, ok := st.Stats.GenerationsByType[key]
		if !ok {
			t.Errorf("generationsByType missing %q", key)
		}
		sum += n
	}
	if sum != st.Stats.TotalGenerations {
		t.Errorf("per-type sum = %d, total = %d", sum, st.Stats.TotalGenerations)
	}
	if st.Stats.ServerUptime < 0 {
		t.Errorf("serverUptime = %v", st.Stats.ServerUptime)
	}
}

func TestStaticAndNotFound(t *testing.T) {
	env := newTestEnv(t, nil, 10)

	rec := env.do(t, http.MethodGet, "/", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "AI Content Generator") {
		t.Errorf("index: status = %d", rec.Code)
	}

	rec = env.do(t, http.MethodGet, "/script.js", "")
	if rec.Code != http.StatusOK {
		t.Errorf("script.js status = %d", rec.Code)
	}

	rec = env.do(t, http.MethodGet, "/api/nope", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown api status = %d", rec.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	env := newTestEnv(t, nil, 10)
	env.do(t, http.MethodGet, "/api/health", "")

	rec := env.do(t, http.MethodGet, "/metrics", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `route="/api/health"`) {
		t.Error("metrics missing /api/health route label")
	}
}

func TestCORS(t *testing.T) {
	env := newTestEnv(t, nil, 10)
	req := httptest.NewRequest(http.MethodOptions, "/api/generate", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("allow-origin = %q, want *", got)
	}
}

func TestNew_RequiresAgent(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Fatal("expected error without agent")
	}
}
