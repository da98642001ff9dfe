package itinerary

import (
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/Captain-T2004/Ongaku-Backend/internal/domain/forecast"
	"github.com/Captain-T2004/Ongaku-Backend/internal/i18n"
	"github.com/Captain-T2004/Ongaku-Backend/pkg/util"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// JSON skeletons inside the templates rule out the default braces.
var prompts = template.Must(template.New("prompts").Delims("{%", "%}").ParseFS(templateFS, "templates/*.tmpl"))

var (
	dayNamesJA = [7]string{"月曜日", "火曜日", "水曜日", "木曜日", "金曜日", "土曜日", "日曜日"}
	dayNamesEN = [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
)

type promptData struct {
	Location    string
	Prefecture  string
	StartDate   string
	Days        int
	Preferences string
	UserQuery   string
	Weather     string
	DayNameJA   string
	DayNameEN   string
}

// ComposePrompt renders the itinerary prompt for plan in its locale.
func ComposePrompt(plan Plan, days []forecast.DaySummary) (string, error) {
	weekday := (int(plan.Start.Weekday()) + 6) % 7
	data := promptData{
		Location:    plan.Location.Name,
		Prefecture:  plan.Location.Admin1,
		StartDate:   plan.Start.Format(util.DateLayout),
		Days:        plan.Days,
		Preferences: joinPreferences(plan.Preferences, plan.Locale),
		UserQuery:   plan.UserQuery,
		Weather:     WeatherLines(days),
		DayNameJA:   dayNamesJA[weekday],
		DayNameEN:   dayNamesEN[weekday],
	}

	var b strings.Builder
	if err := prompts.ExecuteTemplate(&b, string(plan.Locale)+".tmpl", data); err != nil {
		return "", fmt.Errorf("render %s itinerary prompt: %w", plan.Locale, err)
	}
	return strings.TrimSpace(b.String()), nil
}

// WeatherLines renders one line per day summary.
func WeatherLines(days []forecast.DaySummary) string {
	lines := make([]string, 0, len(days))
	for i, d := range days {
		lines = append(lines, fmt.Sprintf("Day %d (%s): Morning %s %.1f°C, Afternoon %s %.1f°C, Evening %s %.1f°C",
			i+1, d.Date,
			d.Morning.Condition, d.Morning.TemperatureC,
			d.Afternoon.Condition, d.Afternoon.TemperatureC,
			d.Evening.Condition, d.Evening.TemperatureC,
		))
	}
	return strings.Join(lines, "\n")
}

func joinPreferences(prefs []string, loc i18n.Locale) string {
	if len(prefs) == 0 {
		if loc == i18n.JA {
			return "なし"
		}
		return "None"
	}
	return strings.Join(prefs, ", ")
}
