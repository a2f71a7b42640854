package analysis

import (
	"errors"
	"fmt"
)

// Stage identifies where an analysis attempt failed.
type Stage string

const (
	// StageRequest covers building the request and the call itself
	// (credentials, network, service errors).
	StageRequest Stage = "request"
	// StageResponse covers a response with no usable text payload.
	StageResponse Stage = "response"
	// StageParse covers text that is not a valid VibeResult document.
	StageParse Stage = "parse"
)

// ErrEmptyResponse is returned when the service answers without text.
var ErrEmptyResponse = errors.New("failed to generate content")

// AnalysisError wraps every failure of a single analysis attempt.
type AnalysisError struct {
	Stage Stage
	Model string
	Err   error
}

// Error implements the error interface
func (e *AnalysisError) Error() string {
	return fmt.Sprintf("vibe analysis %s error (model %s): %v", e.Stage, e.Model, e.Err)
}

// Unwrap returns the underlying error for error chain inspection
func (e *AnalysisError) Unwrap() error {
	return e.Err
}

func newError(stage Stage, model string, err error) *AnalysisError {
	return &AnalysisError{Stage: stage, Model: model, Err: err}
}

// IsEmptyResponse reports whether err is an empty-response failure.
func IsEmptyResponse(err error) bool {
	return errors.Is(err, ErrEmptyResponse)
}

// IsParseError reports whether err came from decoding the response text.
func IsParseError(err error) bool {
	var ae *AnalysisError
	return errors.As(err, &ae) && ae.Stage == StageParse
}

// IsRequestError reports whether err came from building or sending the request.
func IsRequestError(err error) bool {
	var ae *AnalysisError
	return errors.As(err, &ae) && ae.Stage == StageRequest
}
