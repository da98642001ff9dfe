package suggest

import (
	"encoding/json"

	"github.com/Captain-T2004/Ongaku-Backend/internal/domain/geo"
	"github.com/Captain-T2004/Ongaku-Backend/internal/i18n"
)

// Request captures the payload accepted by quick suggestions.
type Request struct {
	UserQuery   string         `json:"user_query"`
	Location    string         `json:"location"`
	Latitude    geo.Coordinate `json:"latitude"`
	Longitude   geo.Coordinate `json:"longitude"`
	Preferences []string       `json:"preferences"`
	Date        string         `json:"date"`
	Language    string         `json:"language"`
}

// Locale returns the language used for error messages, defaulting to English.
func (r Request) Locale() i18n.Locale {
	return i18n.ParseLocale(r.Language, i18n.EN)
}

// Query echoes the interpreted request.
type Query struct {
	Location  string  `json:"location"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	// Date is the requested date or "today".
	Date    string `json:"date"`
	Weather string `json:"weather"`
	// Temperature is a number, or "N/A" when upstream omitted it.
	Temperature any      `json:"temperature"`
	UserQuery   string   `json:"user_query"`
	Preferences []string `json:"preferences"`
}

// Response is serialized back to API consumers.
type Response struct {
	Success     bool              `json:"success"`
	Query       Query             `json:"query"`
	Suggestions []json.RawMessage `json:"suggestions"`
	LLMProvider string            `json:"llm_provider"`
}

// Config wires runtime settings for quick suggestions.
type Config struct {
	Timezone     string
	MaxDaysAhead int
}
