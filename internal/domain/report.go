package domain

// DetailLevel selects how much of a report the presenter renders.
type DetailLevel string

const (
	DetailBrief DetailLevel = "brief"
	DetailFull  DetailLevel = "full"
)

// ParseDetailLevel normalizes a caller-supplied detail level, defaulting to
// full for empty or unrecognized input.
func ParseDetailLevel(s string) DetailLevel {
	if s == string(DetailBrief) {
		return DetailBrief
	}
	return DetailFull
}

// Summary is a short encyclopedic description of a place.
type Summary struct {
	Text string
}

// Weather holds current conditions at the resolved coordinates.
type Weather struct {
	TemperatureC float64
	Condition    string
}

// Event is a single near-term listing near the resolved coordinates.
type Event struct {
	Title string
	Date  string
	Venue string
}

// Report is the merged, per-request aggregate of one identity plus four
// provider results. Field order here fixes the assembly and rendering order.
type Report struct {
	Identity Identity
	Detail   DetailLevel

	Summary Result[Summary]
	Weather Result[Weather]
	Events  Result[[]Event]
	Cuisine Result[[]string]
}
