package suggest

import (
	_ "embed"
	"fmt"
	"strconv"
	"strings"
	"text/template"

	"github.com/Captain-T2004/Ongaku-Backend/internal/domain/forecast"
)

//go:embed templates/quick.tmpl
var quickTemplate string

var prompt = template.Must(template.New("quick").Delims("{%", "%}").Parse(quickTemplate))

// ComposePrompt renders the quick suggestion prompt.
func ComposePrompt(location string, current forecast.CurrentWeather, preferences []string, userQuery string) (string, error) {
	prefs := "None"
	if len(preferences) > 0 {
		prefs = strings.Join(preferences, ", ")
	}
	data := struct {
		Location    string
		Condition   string
		Temperature string
		Preferences string
		UserQuery   string
	}{
		Location:    location,
		Condition:   current.Condition,
		Temperature: temperatureText(current.Temperature),
		Preferences: prefs,
		UserQuery:   userQuery,
	}

	var b strings.Builder
	if err := prompt.Execute(&b, data); err != nil {
		return "", fmt.Errorf("render suggestion prompt: %w", err)
	}
	return strings.TrimSpace(b.String()), nil
}

func temperatureText(t *float64) string {
	if t == nil {
		return "N/A"
	}
	return strconv.FormatFloat(*t, 'f', -1, 64)
}

func temperatureValue(t *float64) any {
	if t == nil {
		return "N/A"
	}
	return *t
}
