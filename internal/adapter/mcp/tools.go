package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Pranali0315/NomadHelp/internal/domain"
	"github.com/Pranali0315/NomadHelp/internal/guide"
)

const (
	toolValidate     = "validate"
	toolLocationInfo = "location_info"
)

func toolDescriptors() []toolDescriptor {
	return []toolDescriptor{
		{
			Name:        toolValidate,
			Description: "Returns the server owner's identifier, used by the host for liveness and identity checks.",
			InputSchema: map[string]any{
				"type":       "object",
				"properties": map[string]any{},
			},
		},
		{
			Name:        toolLocationInfo,
			Description: "Get comprehensive travel info about a place: description, current weather, upcoming events, and local cuisine.",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"location": map[string]any{
						"type":        "string",
						"description": "City, country or region",
					},
					"detail_level": map[string]any{
						"type":        "string",
						"enum":        []string{"brief", "full"},
						"description": "Rendering granularity, defaults to full",
					},
				},
				"required": []string{"location"},
			},
		},
	}
}

type locationInfoArgs struct {
	Location    string `json:"location"`
	DetailLevel string `json:"detail_level"`
}

func (h *Handler) callLocationInfo(ctx context.Context, arguments json.RawMessage) *ToolResponse {
	var args locationInfoArgs
	if len(arguments) > 0 {
		if err := json.Unmarshal(arguments, &args); err != nil {
			h.metrics.ToolCalls.WithLabelValues(toolLocationInfo, "error").Inc()
			return errorResponse("Error: invalid arguments for location_info")
		}
	}

	report, err := h.builder.Build(ctx, args.Location, domain.ParseDetailLevel(args.DetailLevel))
	if err != nil {
		// The only fatal failures: blank input or an unresolvable location.
		h.metrics.ToolCalls.WithLabelValues(toolLocationInfo, "error").Inc()
		return errorResponse("Error: " + pipelineMessage(err, args.Location))
	}

	h.metrics.ToolCalls.WithLabelValues(toolLocationInfo, "success").Inc()
	resp := textResponse(guide.Render(report))
	resp.StructuredContent = structuredReport(report)
	return resp
}

func pipelineMessage(err error, location string) string {
	var perr *domain.PipelineError
	if errors.As(err, &perr) {
		return perr.Message
	}
	return fmt.Sprintf("could not resolve location %q", location)
}

// structuredView is the machine-readable report shape returned alongside the
// rendered text. Sections a provider could not supply are absent from the
// payload; their reasons appear under "unavailable" so programmatic callers
// can tell feature-disabled from broken.
type structuredView struct {
	Name        string            `json:"name"`
	Type        string            `json:"type"`
	Country     string            `json:"country,omitempty"`
	Coordinates [2]float64        `json:"coordinates"`
	Description string            `json:"description,omitempty"`
	Weather     *weatherView      `json:"weather,omitempty"`
	Events      []eventView       `json:"events,omitempty"`
	Dishes      []string          `json:"dishes,omitempty"`
	Unavailable map[string]string `json:"unavailable,omitempty"`
}

type weatherView struct {
	Temp       float64 `json:"temp"`
	Conditions string  `json:"conditions"`
}

type eventView struct {
	Name  string `json:"name"`
	Date  string `json:"date"`
	Venue string `json:"venue,omitempty"`
}

func structuredReport(report domain.Report) structuredView {
	v := structuredView{
		Name:        report.Identity.Name,
		Type:        string(report.Identity.Kind),
		Country:     report.Identity.Country,
		Coordinates: [2]float64{report.Identity.Lat, report.Identity.Lon},
	}

	unavailable := map[string]string{}
	if summary, ok := report.Summary.Value(); ok {
		v.Description = summary.Text
	} else {
		unavailable["description"] = string(report.Summary.Reason())
	}
	if weather, ok := report.Weather.Value(); ok {
		v.Weather = &weatherView{Temp: weather.TemperatureC, Conditions: weather.Condition}
	} else {
		unavailable["weather"] = string(report.Weather.Reason())
	}
	if events, ok := report.Events.Value(); ok {
		v.Events = make([]eventView, 0, len(events))
		for _, e := range events {
			v.Events = append(v.Events, eventView{Name: e.Title, Date: e.Date, Venue: e.Venue})
		}
	} else {
		unavailable["events"] = string(report.Events.Reason())
	}
	if dishes, ok := report.Cuisine.Value(); ok {
		v.Dishes = dishes
	} else {
		unavailable["dishes"] = string(report.Cuisine.Reason())
	}
	if len(unavailable) > 0 {
		v.Unavailable = unavailable
	}
	return v
}
