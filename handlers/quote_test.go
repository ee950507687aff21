package handlers_test

import (
	"daysleft/handlers"
	"daysleft/models"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type fakeQuoteCache struct {
	entries map[string]models.Quote
}

func (c *fakeQuoteCache) GetQuote(key string) (models.Quote, bool) {
	q, ok := c.entries[key]
	return q, ok
}

func (c *fakeQuoteCache) SetQuote(key string, q models.Quote, ttl time.Duration) {
	c.entries[key] = q
}

func TestDailyQuoteHandler(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"q":"Start now.","a":"Anon"}]`))
	}))
	defer upstream.Close()

	cache := &fakeQuoteCache{entries: map[string]models.Quote{}}

	req := httptest.NewRequest(http.MethodGet, "/api/daily-quote", nil)
	rec := httptest.NewRecorder()
	handlers.DailyQuoteHandler(rec, req, cache, upstream.Client(), upstream.URL)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %q, want application/json", ct)
	}

	var q models.Quote
	if err := json.NewDecoder(rec.Body).Decode(&q); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	want := models.Quote{Text: "Start now.", Author: "Anon"}
	if q != want {
		t.Errorf("quote = %+v, want %+v", q, want)
	}
}

func TestDailyQuoteHandlerAlwaysSucceeds(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer upstream.Close()

	cache := &fakeQuoteCache{entries: map[string]models.Quote{}}

	req := httptest.NewRequest(http.MethodGet, "/api/daily-quote", nil)
	rec := httptest.NewRecorder()
	handlers.DailyQuoteHandler(rec, req, cache, upstream.Client(), upstream.URL)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d even when upstream is down", rec.Code, http.StatusOK)
	}

	var q models.Quote
	if err := json.NewDecoder(rec.Body).Decode(&q); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	want := models.Quote{
		Text:   "Stay consistent. Your future self will thank you.",
		Author: "Unknown",
	}
	if q != want {
		t.Errorf("quote = %+v, want fallback %+v", q, want)
	}
}

func TestDailyQuoteHandlerRejectsNonGet(t *testing.T) {
	cache := &fakeQuoteCache{entries: map[string]models.Quote{}}

	req := httptest.NewRequest(http.MethodPost, "/api/daily-quote", nil)
	rec := httptest.NewRecorder()
	handlers.DailyQuoteHandler(rec, req, cache, http.DefaultClient, "http://unused.invalid")

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
	}
}
