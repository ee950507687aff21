package utils_test

import (
	"daysleft/models"
	"daysleft/utils"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// memQuoteCache is an in-memory QuoteCache for tests. TTL is recorded but
// not enforced; the gate's per-day keys make expiry irrelevant here.
type memQuoteCache struct {
	entries map[string]models.Quote
	lastTTL time.Duration
}

func newMemQuoteCache() *memQuoteCache {
	return &memQuoteCache{entries: map[string]models.Quote{}}
}

func (c *memQuoteCache) GetQuote(key string) (models.Quote, bool) {
	q, ok := c.entries[key]
	return q, ok
}

func (c *memQuoteCache) SetQuote(key string, q models.Quote, ttl time.Duration) {
	c.entries[key] = q
	c.lastTTL = ttl
}

func TestDailyQuoteFetchesOncePerDay(t *testing.T) {
	calls := 0
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`[{"q":"Do the work.","a":"Anon"},{"q":"Second quote","a":"Ignored"}]`))
	}))
	defer upstream.Close()

	cache := newMemQuoteCache()

	first := utils.DailyQuote(cache, upstream.Client(), upstream.URL, "2025-06-15")
	second := utils.DailyQuote(cache, upstream.Client(), upstream.URL, "2025-06-15")

	if calls != 1 {
		t.Errorf("upstream calls = %d, want 1", calls)
	}
	want := models.Quote{Text: "Do the work.", Author: "Anon"}
	if first != want {
		t.Errorf("first quote = %+v, want %+v (first array element)", first, want)
	}
	if second != first {
		t.Errorf("second call = %+v, want identical cached quote %+v", second, first)
	}
	if cache.lastTTL != 24*time.Hour {
		t.Errorf("cache ttl = %v, want 24h", cache.lastTTL)
	}
}

func TestDailyQuoteNewDayPermitsNewFetch(t *testing.T) {
	calls := 0
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`[{"q":"Quote of the day","a":"Someone"}]`))
	}))
	defer upstream.Close()

	cache := newMemQuoteCache()

	utils.DailyQuote(cache, upstream.Client(), upstream.URL, "2025-06-15")
	utils.DailyQuote(cache, upstream.Client(), upstream.URL, "2025-06-16")

	if calls != 2 {
		t.Errorf("upstream calls = %d, want 2 (one per day key)", calls)
	}
}

func TestDailyQuoteFallback(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "Upstream error status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "rate limited", http.StatusTooManyRequests)
			},
		},
		{
			name: "Malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"not":"an array"}`))
			},
		},
		{
			name: "Empty array",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`[]`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			upstream := httptest.NewServer(tt.handler)
			defer upstream.Close()

			cache := newMemQuoteCache()
			got := utils.DailyQuote(cache, upstream.Client(), upstream.URL, "2025-06-15")

			want := models.Quote{
				Text:   "Stay consistent. Your future self will thank you.",
				Author: "Unknown",
			}
			if got != want {
				t.Errorf("DailyQuote() = %+v, want exact fallback %+v", got, want)
			}
			// Fallback must not poison the cache; a later call the same day
			// retries upstream.
			if len(cache.entries) != 0 {
				t.Errorf("fallback was cached: %+v", cache.entries)
			}
		})
	}
}

func TestDailyQuoteUnreachableUpstream(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	upstream.Close() // connection refused from here on

	cache := newMemQuoteCache()
	got := utils.DailyQuote(cache, &http.Client{Timeout: time.Second}, upstream.URL, "2025-06-15")

	if got != utils.FallbackQuote {
		t.Errorf("DailyQuote() = %+v, want fallback %+v", got, utils.FallbackQuote)
	}
}
