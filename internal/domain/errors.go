package domain

import "fmt"

// GeocodeReason tags why a location query could not be resolved.
type GeocodeReason string

const (
	GeocodeNoMatch       GeocodeReason = "no-match"
	GeocodeUpstreamError GeocodeReason = "upstream-error"
	GeocodeTimeout       GeocodeReason = "timeout"
)

// GeocodeError is returned by a Geocoder when a query cannot be resolved.
// It is the only failure in the pipeline that is fatal to the whole request.
type GeocodeError struct {
	Query  string
	Reason GeocodeReason
}

func (e *GeocodeError) Error() string {
	return fmt.Sprintf("geocode %q: %s", e.Query, e.Reason)
}

// PipelineStage names where a fatal pipeline failure happened.
type PipelineStage string

const (
	StageValidate PipelineStage = "validate"
	StageGeocode  PipelineStage = "geocode"
)

// PipelineError is the single fatal failure type surfaced by the aggregator.
type PipelineError struct {
	Stage   PipelineStage
	Query   string
	Message string
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("%s: %s", e.Stage, e.Message)
}
