package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BerylCAtieno/landing-assistant-agent/internal/completion"
	"github.com/BerylCAtieno/landing-assistant-agent/internal/history"
	"github.com/BerylCAtieno/landing-assistant-agent/internal/images"
	"github.com/BerylCAtieno/landing-assistant-agent/internal/intake"
	"github.com/BerylCAtieno/landing-assistant-agent/internal/models"
	"github.com/BerylCAtieno/landing-assistant-agent/internal/page"
	"github.com/BerylCAtieno/landing-assistant-agent/internal/pipeline"
	"github.com/BerylCAtieno/landing-assistant-agent/internal/session"
	"github.com/BerylCAtieno/landing-assistant-agent/internal/synth"
)

type stubResolver struct{}

func (stubResolver) Resolve(_ context.Context, keyword string, count int, _ string) images.Result {
	out := make([]models.ImageDescriptor, count)
	for i := range out {
		out[i] = models.ImageDescriptor{ID: fmt.Sprintf("img-%d", i), URL: "https://img.test/" + keyword}
	}
	return images.Result{Images: out, Source: images.SourceFallback}
}

type failingGenerator struct{ err error }

func (f failingGenerator) Generate(context.Context, pipeline.Input, chan<- pipeline.Progress) (*page.Document, error) {
	return nil, f.err
}

type echoCompletion struct{ err error }

func (echoCompletion) Name() string { return "echo" }

func (e echoCompletion) Complete(_ context.Context, req completion.Request) (string, error) {
	if e.err != nil {
		return "", e.err
	}
	return "eco: " + req.Prompt, nil
}

func newTestRouter(t *testing.T, mut func(*Deps)) *gin.Engine {
	t.Helper()
	d := Deps{
		Images:    stubResolver{},
		Generator: pipeline.New(stubResolver{}, nil, nil),
		Sessions:  session.NewManager(session.NewMemoryStore(time.Hour), intake.NewEngine(nil)),
		Designs:   history.NewMemoryStore(),
	}
	if mut != nil {
		mut(&d)
	}
	r := NewRouter(RouterConfig{Mode: gin.TestMode})
	NewHandler(d).Register(r)
	return r
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON %q: %v", w.Body.String(), err)
	}
	return out
}

func TestHealthAndMetrics(t *testing.T) {
	r := newTestRouter(t, nil)
	if w := do(r, http.MethodGet, "/health", ""); w.Code != http.StatusOK || w.Body.String() != "OK" {
		t.Errorf("health = %d %q", w.Code, w.Body.String())
	}
	if w := do(r, http.MethodGet, "/metrics", ""); w.Code != http.StatusOK {
		t.Errorf("metrics = %d", w.Code)
	}
}

func TestSearchImages(t *testing.T) {
	r := newTestRouter(t, nil)

	tests := []struct {
		name, method, path, body string
		status, total            int
		capped                   bool
	}{
		{"default count", http.MethodPost, "/api/images/search", `{"query":"panadería"}`, 200, images.DefaultCount, false},
		{"explicit count", http.MethodPost, "/api/images/search", `{"query":"cafe","count":2}`, 200, 2, false},
		{"get capped", http.MethodGet, "/api/images/search?query=cafe&count=99", "", 200, images.MaxCount, true},
		{"missing query", http.MethodPost, "/api/images/search", `{"industry":"x"}`, 400, 0, false},
		{"non-string query", http.MethodPost, "/api/images/search", `{"query":42}`, 400, 0, false},
		{"get missing query", http.MethodGet, "/api/images/search", "", 400, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, tt.method, tt.path, tt.body)
			if w.Code != tt.status {
				t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
			}
			body := decode(t, w)
			if tt.status != 200 {
				if body["success"] != false || body["error"] == "" {
					t.Errorf("error body = %v", body)
				}
				return
			}
			if int(body["total"].(float64)) != tt.total || body["industry"] != "general" || body["source"] != images.SourceFallback {
				t.Errorf("body = %v", body)
			}
			if int(body["count"].(float64)) != tt.total || body["capped"] != tt.capped {
				t.Errorf("count = %v capped = %v, want %d %v", body["count"], body["capped"], tt.total, tt.capped)
			}
		})
	}
}

func TestGenerateLanding(t *testing.T) {
	r := newTestRouter(t, nil)

	w := do(r, http.MethodPost, "/api/landing/generate", `{"text":"Tengo una panadería llamada La Espiga en Rosario"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	body := decode(t, w)
	blocks := body["blocks"].(map[string]any)
	if len(blocks) != len(page.TemplateOrder) {
		t.Errorf("blocks = %d kinds", len(blocks))
	}
	if _, ok := blocks[string(page.KindHeroSlide)]; !ok {
		t.Errorf("missing hero block: %v", blocks)
	}

	w = do(r, http.MethodPost, "/api/landing/generate", `{"text":"   "}`)
	if w.Code != http.StatusBadRequest || decode(t, w)["error"] != "Prompt inválido" {
		t.Errorf("blank prompt = %d %s", w.Code, w.Body.String())
	}
}

func TestGenerateLandingErrors(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{pipeline.ErrTimeout, http.StatusGatewayTimeout},
		{fmt.Errorf("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		r := newTestRouter(t, func(d *Deps) { d.Generator = failingGenerator{tt.err} })
		w := do(r, http.MethodPost, "/api/landing/generate", `{"text":"una tienda"}`)
		if w.Code != tt.status || decode(t, w)["success"] != false {
			t.Errorf("%v: status = %d", tt.err, w.Code)
		}
	}
}

func TestStreamLanding(t *testing.T) {
	srv := httptest.NewServer(newTestRouter(t, nil))
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/api/landing/generate/stream", "application/json", bytes.NewBufferString(`{"text":"Un gimnasio en Córdoba"}`))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	out := string(raw)

	if got := strings.Count(out, "event:progress"); got != 6 {
		t.Errorf("progress events = %d\n%s", got, out)
	}
	if !strings.Contains(out, "event:page") || strings.Contains(out, "event:error") {
		t.Errorf("missing final page event:\n%s", out)
	}
	if strings.Index(out, "event:page") < strings.LastIndex(out, "event:progress") {
		t.Errorf("page sent before the last progress event")
	}
}

func TestComplete(t *testing.T) {
	r := newTestRouter(t, func(d *Deps) { d.Completion = echoCompletion{} })
	w := do(r, http.MethodPost, "/api/ai/complete", `{"prompt":"hola","sessionId":"s1"}`)
	if w.Code != http.StatusOK || decode(t, w)["content"] != "eco: hola" {
		t.Errorf("complete = %d %s", w.Code, w.Body.String())
	}

	w = do(r, http.MethodPost, "/api/ai/complete", `{"prompt":""}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("empty prompt = %d", w.Code)
	}

	for name, c := range map[string]completion.Client{
		"unconfigured": nil,
		"down":         echoCompletion{err: fmt.Errorf("%w: all providers failed", completion.ErrUnavailable)},
	} {
		r := newTestRouter(t, func(d *Deps) { d.Completion = c })
		w := do(r, http.MethodPost, "/api/ai/complete", `{"prompt":"hola"}`)
		if w.Code != http.StatusServiceUnavailable {
			t.Errorf("%s: status = %d", name, w.Code)
			continue
		}
		body := decode(t, w)
		if body["retryable"] != true || body["content"] != retryMessage {
			t.Errorf("%s: body = %v", name, body)
		}
	}
}

func TestIntakeSession(t *testing.T) {
	r := newTestRouter(t, nil)

	w := do(r, http.MethodPost, "/api/intake/sessions", "")
	if w.Code != http.StatusCreated {
		t.Fatalf("start = %d %s", w.Code, w.Body.String())
	}
	id := decode(t, w)["session"].(map[string]any)["id"].(string)

	w = do(r, http.MethodPost, "/api/intake/sessions/"+id+"/messages", `{"text":"Me llamo Ana y mi negocio se llama Ana's Deli"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("message = %d %s", w.Code, w.Body.String())
	}
	profile := decode(t, w)["session"].(map[string]any)["profile"].(map[string]any)
	if profile["userName"] != "Ana" || profile["businessName"] != "Ana's Deli" {
		t.Errorf("profile = %v", profile)
	}

	w = do(r, http.MethodPost, "/api/intake/sessions/"+id+"/messages", `{"text":""}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("empty message = %d", w.Code)
	}

	w = do(r, http.MethodPost, "/api/intake/sessions/"+id+"/generate", "")
	if w.Code != http.StatusOK {
		t.Fatalf("generate = %d %s", w.Code, w.Body.String())
	}
	if title := decode(t, w)["page"].(map[string]any)["title"]; title != "Ana's Deli" {
		t.Errorf("page title = %v", title)
	}

	for _, path := range []string{"/api/intake/sessions/nope", "/api/intake/sessions/nope/generate"} {
		method := http.MethodGet
		if strings.HasSuffix(path, "generate") {
			method = http.MethodPost
		}
		if w := do(r, method, path, ""); w.Code != http.StatusNotFound {
			t.Errorf("%s = %d", path, w.Code)
		}
	}
}

func TestDesignsCRUD(t *testing.T) {
	r := newTestRouter(t, nil)
	blocks := synth.New().Synthesize(models.BusinessProfile{}, models.ExtractedLandingData{}, nil)
	raw, _ := json.Marshal(map[string]any{"name": "Primera", "blocks": blocks})

	w := do(r, http.MethodPost, "/api/designs", string(raw))
	if w.Code != http.StatusCreated {
		t.Fatalf("save = %d %s", w.Code, w.Body.String())
	}
	id := decode(t, w)["id"].(string)

	w = do(r, http.MethodGet, "/api/designs/"+id, "")
	design := decode(t, w)["design"].(map[string]any)
	if design["name"] != "Primera" || len(design["blocks"].([]any)) != len(blocks) {
		t.Errorf("load = %v", design["name"])
	}

	w = do(r, http.MethodPost, "/api/designs/"+id+"/duplicate", "")
	if w.Code != http.StatusCreated {
		t.Fatalf("duplicate = %d", w.Code)
	}
	copyID := decode(t, w)["id"].(string)

	w = do(r, http.MethodGet, "/api/designs", "")
	if list := decode(t, w)["designs"].([]any); len(list) != 2 {
		t.Errorf("list = %v", list)
	}

	if w := do(r, http.MethodDelete, "/api/designs/"+copyID, ""); w.Code != http.StatusOK {
		t.Errorf("delete = %d", w.Code)
	}
	if w := do(r, http.MethodGet, "/api/designs/"+copyID, ""); w.Code != http.StatusNotFound {
		t.Errorf("load deleted = %d", w.Code)
	}
	if w := do(r, http.MethodDelete, "/api/designs/"+copyID, ""); w.Code != http.StatusNotFound {
		t.Errorf("delete twice = %d", w.Code)
	}

	if w := do(r, http.MethodPost, "/api/designs", `{"name":"vacío","blocks":[]}`); w.Code != http.StatusBadRequest {
		t.Errorf("empty design = %d", w.Code)
	}
}
