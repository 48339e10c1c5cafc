package guide

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Pranali0315/NomadHelp/internal/domain"
)

// Render produces the fixed human-readable view of a report. Line order is
// fixed (identity, summary, weather, events, cuisine); sections whose result
// is unavailable or empty are omitted entirely rather than rendered as
// errors. Brief detail stops after the weather line.
func Render(report domain.Report) string {
	var lines []string

	header := fmt.Sprintf("🌍 *%s*", report.Identity.Name)
	if c := report.Identity.Country; c != "" && c != report.Identity.Name {
		header += fmt.Sprintf(" (%s)", c)
	}
	lines = append(lines, header)

	if summary, ok := report.Summary.Value(); ok {
		lines = append(lines, "📍 "+summary.Text)
	}

	if weather, ok := report.Weather.Value(); ok {
		lines = append(lines, fmt.Sprintf("☀️ Weather: %s°C, %s",
			formatTemp(weather.TemperatureC), weather.Condition))
	}

	if report.Detail == domain.DetailFull {
		if events, ok := report.Events.Value(); ok && len(events) > 0 {
			lines = append(lines, "🎟️ Events:")
			for _, e := range events {
				lines = append(lines, "• "+formatEvent(e))
			}
		}

		if dishes, ok := report.Cuisine.Value(); ok && len(dishes) > 0 {
			lines = append(lines, "🍽️ Local Cuisine:")
			for _, dish := range dishes {
				lines = append(lines, "• "+dish)
			}
		}
	}

	return strings.Join(lines, "\n")
}

func formatTemp(t float64) string {
	return strconv.FormatFloat(t, 'f', -1, 64)
}

func formatEvent(e domain.Event) string {
	if e.Venue != "" {
		return fmt.Sprintf("%s at %s (%s)", e.Title, e.Venue, e.Date)
	}
	return fmt.Sprintf("%s (%s)", e.Title, e.Date)
}
