package domain

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResult_Present(t *testing.T) {
	r := Present(Summary{Text: "a place"})

	assert.True(t, r.Available())
	v, ok := r.Value()
	assert.True(t, ok)
	assert.Equal(t, "a place", v.Text)
	assert.Empty(t, r.Reason())
}

func TestResult_Unavailable(t *testing.T) {
	r := Unavailable[Weather](ReasonTimeout)

	assert.False(t, r.Available())
	_, ok := r.Value()
	assert.False(t, ok)
	assert.Equal(t, ReasonTimeout, r.Reason())
}

func TestResult_ZeroValue(t *testing.T) {
	var r Result[[]Event]

	assert.False(t, r.Available())
	assert.Equal(t, ReasonUpstreamError, r.Reason())
}

func TestResult_PresentEmptySlice(t *testing.T) {
	// "No events" is a valid present answer, distinct from "could not check".
	r := Present([]Event{})

	assert.True(t, r.Available())
	v, ok := r.Value()
	assert.True(t, ok)
	assert.Empty(t, v)
}

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestClassifyTransportError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want UnavailableReason
	}{
		{"deadline exceeded", context.DeadlineExceeded, ReasonTimeout},
		{"wrapped deadline", fmt.Errorf("request: %w", context.DeadlineExceeded), ReasonTimeout},
		{"net timeout", timeoutErr{}, ReasonTimeout},
		{"wrapped net timeout", fmt.Errorf("request: %w", timeoutErr{}), ReasonTimeout},
		{"plain error", errors.New("connection refused"), ReasonUpstreamError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyTransportError(tt.err))
		})
	}
}

func TestIdentity_HasCoordinates(t *testing.T) {
	id := Identity{Lat: 48.8566, Lon: 2.3522}
	assert.True(t, id.HasCoordinates())

	assert.True(t, Identity{}.HasCoordinates()) // zero coords are finite
}

func TestParseDetailLevel(t *testing.T) {
	assert.Equal(t, DetailBrief, ParseDetailLevel("brief"))
	assert.Equal(t, DetailFull, ParseDetailLevel("full"))
	assert.Equal(t, DetailFull, ParseDetailLevel(""))
	assert.Equal(t, DetailFull, ParseDetailLevel("basic"))
}
