package handlers

import (
	"daysleft/utils"
	"encoding/json"
	"log"
	"net/http"
	"time"
)

// DailyQuoteHandler serves GET /api/daily-quote. Always 200: upstream
// failure is absorbed into the fixed fallback quote. The cache and HTTP
// client are injected so tests can swap both out.
func DailyQuoteHandler(w http.ResponseWriter, r *http.Request, cache utils.QuoteCache, client *http.Client, quoteURL string) {
	if r.Method != http.MethodGet {
		http.Error(w, "Invalid request method", http.StatusMethodNotAllowed)
		return
	}

	quote := utils.DailyQuote(cache, client, quoteURL, utils.DayKey(time.Now()))

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(quote); err != nil {
		log.Println("Error encoding quote response:", err)
	}
}
