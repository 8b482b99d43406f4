package images

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func TestSerperDiscover(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/search" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("X-API-KEY") != "sk" {
			t.Errorf("missing api key")
		}
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["q"] != "pan images" {
			t.Errorf("q = %v", body["q"])
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"organic": []map[string]string{
				{"title": "Pan", "link": "https://www.pinterest.com/pin/1", "snippet": "photo of bread"},
				{"title": "Blog", "link": "https://blog.example.com/post", "snippet": "recipes"},
			},
		})
	}))
	defer srv.Close()

	got, err := SerperSearch{APIKey: "sk", BaseURL: srv.URL, HTTPClient: srv.Client()}.Discover(context.Background(), "pan images", 10)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if len(got) != 2 || got[0].URL != "https://www.pinterest.com/pin/1" {
		t.Errorf("results = %+v", got)
	}
}

func TestBraveDiscover(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/res/v1/web/search" || r.URL.Query().Get("count") != "5" {
			t.Errorf("request = %s", r.URL)
		}
		if r.Header.Get("X-Subscription-Token") != "bk" {
			t.Errorf("missing token")
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"web": map[string]any{"results": []map[string]string{
				{"title": "Shoes", "url": "https://cdn.example.com/shoe.png", "description": "red shoes"},
			}},
		})
	}))
	defer srv.Close()

	got, err := BraveSearch{APIKey: "bk", BaseURL: srv.URL, HTTPClient: srv.Client()}.Discover(context.Background(), "shoes", 5)
	if err != nil || len(got) != 1 || got[0].Snippet != "red shoes" {
		t.Fatalf("Discover() = %+v, %v", got, err)
	}
}

type fakeSearcher struct {
	results []SearchResult
	err     error
	calls   int32
}

func (f *fakeSearcher) Discover(context.Context, string, int) ([]SearchResult, error) {
	atomic.AddInt32(&f.calls, 1)
	return f.results, f.err
}

func TestWebImageProviderFilters(t *testing.T) {
	s := &fakeSearcher{results: []SearchResult{
		{Title: "Pin", URL: "https://www.pinterest.com/pin/1", Snippet: "cosas"},
		{Title: "", URL: "https://blog.example.com/a", Snippet: "Mirá esta foto https://cdn.example.com/a.jpg de pan casero recién horneado hoy"},
		{Title: "Text only", URL: "https://news.example.com/b", Snippet: "nothing visual here"},
		{Title: "Direct", URL: "https://cdn.example.com/c.webp?w=10", Snippet: ""},
	}}
	got, err := NewWebImageProvider("serper", s).Search(context.Background(), "pan", 10)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d: %+v", len(got), got)
	}
	if got[0].Source != "pinterest.com" {
		t.Errorf("Source = %q", got[0].Source)
	}
	if got[1].URL != "https://cdn.example.com/a.jpg" || got[1].Title != "Mirá esta foto https://cdn.example.com/a.jpg de pan casero recién" {
		t.Errorf("snippet image = %+v", got[1])
	}
	if got[2].URL != "https://cdn.example.com/c.webp?w=10" {
		t.Errorf("direct image = %+v", got[2])
	}
}

func TestDoJSONUnrecoverable(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	p := NewWebImageProvider("serper", SerperSearch{APIKey: "x", BaseURL: srv.URL, HTTPClient: srv.Client()})
	if _, err := p.Search(context.Background(), "q", 3); err == nil {
		t.Fatal("expected error")
	}
	if hits != 1 {
		t.Errorf("4xx should not be retried, hits = %d", hits)
	}
}
