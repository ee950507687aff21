package utils

import (
	"context"
	"daysleft/models"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
)

// QuoteAPIURL is the default upstream quote source. Overridable through the
// QUOTE_API_URL environment variable.
const QuoteAPIURL = "https://zenquotes.io/api/today"

// FallbackQuote is served whenever the upstream source fails. It is never
// written to the cache, so a later request the same day may retry upstream.
var FallbackQuote = models.Quote{
	Text:   "Stay consistent. Your future self will thank you.",
	Author: "Unknown",
}

// QuoteCache is the process-wide daily quote cache. Empty at startup; keys
// are quote:YYYY-MM-DD.
type QuoteCache interface {
	GetQuote(key string) (models.Quote, bool)
	SetQuote(key string, q models.Quote, ttl time.Duration)
}

// RedisQuoteCache stores quotes as JSON strings in redis.
type RedisQuoteCache struct {
	Client *redis.Client
}

func (c *RedisQuoteCache) GetQuote(key string) (models.Quote, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	val, err := c.Client.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			log.Println("Error reading quote cache:", err)
		}
		return models.Quote{}, false
	}

	var q models.Quote
	if err := json.Unmarshal([]byte(val), &q); err != nil {
		log.Println("Error decoding cached quote:", err)
		return models.Quote{}, false
	}
	return q, true
}

func (c *RedisQuoteCache) SetQuote(key string, q models.Quote, ttl time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	data, err := json.Marshal(q)
	if err != nil {
		log.Println("Error encoding quote for cache:", err)
		return
	}
	if err := c.Client.Set(ctx, key, data, ttl).Err(); err != nil {
		log.Println("Error writing quote cache:", err)
	}
}

// FetchUpstreamQuote calls the quote source and returns the first quote of
// the response array. An empty array or malformed body is an error; the
// caller falls back.
func FetchUpstreamQuote(client *http.Client, url string) (models.Quote, error) {
	resp, err := client.Get(url)
	if err != nil {
		return models.Quote{}, fmt.Errorf("quote source unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.Quote{}, fmt.Errorf("quote source returned status %d", resp.StatusCode)
	}

	var raw []struct {
		Q string `json:"q"`
		A string `json:"a"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return models.Quote{}, fmt.Errorf("malformed quote response: %w", err)
	}
	if len(raw) == 0 {
		return models.Quote{}, errors.New("quote source returned no quotes")
	}

	return models.Quote{Text: raw[0].Q, Author: raw[0].A}, nil
}

// DailyQuote returns the quote for the given day key, fetching upstream at
// most once per day per deployment. Concurrent misses may each call
// upstream; the duplicate fetch is tolerated rather than locked out.
func DailyQuote(cache QuoteCache, client *http.Client, url string, day string) models.Quote {
	key := "quote:" + day

	if q, ok := cache.GetQuote(key); ok {
		return q
	}

	q, err := FetchUpstreamQuote(client, url)
	if err != nil {
		log.Println("Quote fetch failed, serving fallback:", err)
		return FallbackQuote
	}

	cache.SetQuote(key, q, 24*time.Hour)
	return q
}
