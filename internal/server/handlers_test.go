package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hyperjump/catalogrank/internal/catalog"
	"github.com/hyperjump/catalogrank/internal/config"
	"github.com/hyperjump/catalogrank/internal/models"
	"github.com/hyperjump/catalogrank/internal/search"
)

func testConfig() *config.Config {
	var cfg config.Config
	config.ApplyDefaults(&cfg)
	return &cfg
}

func newTestServer(t *testing.T, source catalog.Source) http.Handler {
	t.Helper()
	cfg := testConfig()
	engine := search.NewEngine(catalog.NewStore(source), &cfg.Search, cfg.Ranking)
	if source == nil {
		items := []models.SearchableItem{
			{ID: "sofa", Name: "Modern Leather Sofa", Category: "Furniture", Price: models.Float64(1299), Featured: true},
			{ID: "sofa-bed", Name: "Sofa Bed", Category: "Furniture", Price: models.Float64(799)},
			{ID: "lamp", Name: "Brass Floor Lamp", Category: "Lighting", Price: models.Float64(149)},
		}
		if err := engine.Replace(context.Background(), items); err != nil {
			t.Fatal(err)
		}
	}
	t.Cleanup(func() { _ = engine.Close() })
	return NewServer(engine, &cfg.Server, nil).Router()
}

func do(t *testing.T, h http.Handler, method, target string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		r = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandleSearch(t *testing.T) {
	h := newTestServer(t, nil)

	rec := do(t, h, http.MethodPost, "/api/v1/search", []byte(`{"query": "sofa", "limit": 2}`))
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	var resp models.SearchResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Query != "sofa" {
		t.Errorf("Query = %q", resp.Query)
	}
	if len(resp.Results) != 2 {
		t.Fatalf("got %d results, want 2", len(resp.Results))
	}
	if resp.Results[0].Item.ID != "sofa" {
		t.Errorf("first result = %q, want sofa", resp.Results[0].Item.ID)
	}
	if resp.Total < len(resp.Results) {
		t.Errorf("Total = %d, below page size", resp.Total)
	}
	if len(resp.Keywords) != 1 || resp.Keywords[0] != "sofa" {
		t.Errorf("Keywords = %v", resp.Keywords)
	}
}

func TestHandleSearch_BadRequest(t *testing.T) {
	h := newTestServer(t, nil)

	tests := []struct {
		name string
		body string
	}{
		{"malformed body", `{"query":`},
		{"inverted price range", `{"query": "sofa", "minPrice": 500, "maxPrice": 100}`},
		{"negative offset", `{"query": "sofa", "offset": -1}`},
		{"negative min score", `{"query": "sofa", "minScore": -5}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/api/v1/search", []byte(tt.body))
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
			var body map[string]string
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatal(err)
			}
			if body["error"] == "" {
				t.Error("expected error message")
			}
		})
	}
}

func TestHandleSuggest(t *testing.T) {
	h := newTestServer(t, nil)

	rec := do(t, h, http.MethodGet, "/api/v1/suggest?q=sofa", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	var resp suggestResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Query != "sofa" || resp.HasCorrections || resp.Suggestion != "" {
		t.Errorf("unexpected suggestion for a known term: %+v", resp)
	}
	if resp.MisspelledTerms == nil {
		t.Error("misspelled_terms should be an empty list")
	}

	rec = do(t, h, http.MethodGet, "/api/v1/suggest", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing q: status = %d, want 400", rec.Code)
	}
}

func TestHandleComplete(t *testing.T) {
	h := newTestServer(t, nil)

	rec := do(t, h, http.MethodGet, "/api/v1/complete?prefix=sof&limit=1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Prefix      string   `json:"prefix"`
		Completions []string `json:"completions"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Prefix != "sof" || len(resp.Completions) != 1 {
		t.Errorf("unexpected completions: %+v", resp)
	}

	for _, limit := range []string{"abc", "-3"} {
		rec := do(t, h, http.MethodGet, "/api/v1/complete?prefix=sof&limit="+limit, nil)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("limit %q: status = %d, want 400", limit, rec.Code)
		}
	}
}

func TestHandleKeywords(t *testing.T) {
	h := newTestServer(t, nil)

	rec := do(t, h, http.MethodGet, "/api/v1/keywords?q=the+leather+sofa", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	var resp struct {
		Query    string   `json:"query"`
		Keywords []string `json:"keywords"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if strings.Join(resp.Keywords, ",") != "leather,sofa" {
		t.Errorf("Keywords = %v", resp.Keywords)
	}
}

func TestHandleStatus(t *testing.T) {
	h := newTestServer(t, nil)

	rec := do(t, h, http.MethodGet, "/api/v1/status", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	var status search.Status
	if err := json.NewDecoder(rec.Body).Decode(&status); err != nil {
		t.Fatal(err)
	}
	if status.Items != 3 || status.Prefilter {
		t.Errorf("unexpected status: %+v", status)
	}
}

func TestHandleReload(t *testing.T) {
	t.Run("no source", func(t *testing.T) {
		h := newTestServer(t, nil)
		rec := do(t, h, http.MethodPost, "/api/v1/catalog/reload", nil)
		if rec.Code != http.StatusNotImplemented {
			t.Errorf("status = %d, want 501", rec.Code)
		}
	})

	t.Run("file source", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "catalog.json")
		if err := os.WriteFile(path, []byte(`{"items": [{"id": "1", "name": "Wool Rug"}, {"id": "2", "name": "Jute Rug"}]}`), 0600); err != nil {
			t.Fatal(err)
		}
		h := newTestServer(t, catalog.NewFileSource(path))

		rec := do(t, h, http.MethodPost, "/api/v1/catalog/reload", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
		}
		var resp struct {
			Items  int    `json:"items"`
			Status string `json:"status"`
		}
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatal(err)
		}
		if resp.Items != 2 || resp.Status != "reloaded" {
			t.Errorf("unexpected reload response: %+v", resp)
		}
	})

	t.Run("broken file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "catalog.json")
		if err := os.WriteFile(path, []byte(`not json`), 0600); err != nil {
			t.Fatal(err)
		}
		h := newTestServer(t, catalog.NewFileSource(path))

		rec := do(t, h, http.MethodPost, "/api/v1/catalog/reload", nil)
		if rec.Code != http.StatusInternalServerError {
			t.Errorf("status = %d, want 500", rec.Code)
		}
	})
}

func TestHandleHealthAndMetrics(t *testing.T) {
	h := newTestServer(t, nil)

	rec := do(t, h, http.MethodGet, "/health", nil)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("health: %d %s", rec.Code, rec.Body.String())
	}

	rec = do(t, h, http.MethodGet, "/metrics", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics status %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "catalogrank_http_requests_total") {
		t.Error("expected request counter in metrics output")
	}
}

func TestServer_StopWithoutStart(t *testing.T) {
	cfg := testConfig()
	srv := NewServer(nil, &cfg.Server, nil)
	if err := srv.Stop(context.Background()); err != nil {
		t.Errorf("Stop() = %v", err)
	}
}
