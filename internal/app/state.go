package app

import "github.com/muurk/vibetagger/internal/vibe"

const (
	// FailureMessage is shown for every failed analysis.
	FailureMessage = "Failed to decode the vibe. The cyber-link might be unstable. Try again?"

	// ReadFailureMessage is shown when a valid image cannot be read.
	ReadFailureMessage = "Could not read the selected image file."
)

// Phase is the view-level state derived from a State.
type Phase string

const (
	PhaseIdle          Phase = "idle"
	PhaseImageSelected Phase = "image_selected"
	PhaseAnalyzing     Phase = "analyzing"
	PhaseResolved      Phase = "resolved"
	PhaseFailed        Phase = "failed"
)

// State is a snapshot of the application state.
//
// Result and Error are never both set by an analysis, with one exception:
// rejecting a non-image file reports the validation message without
// discarding a result already on screen. Loading is true only between
// dispatch of an analysis and its resolution. The zero value is the initial
// state.
type State struct {
	Image   string       // data URL of the selected image
	Loading bool         // an analysis is in flight
	Result  *vibe.Result // last successful analysis
	Error   string       // user-facing error message
}

// Phase derives the current phase from the state fields.
func (s State) Phase() Phase {
	switch {
	case s.Loading:
		return PhaseAnalyzing
	case s.Result != nil:
		return PhaseResolved
	case s.Error != "":
		return PhaseFailed
	case s.Image != "":
		return PhaseImageSelected
	default:
		return PhaseIdle
	}
}

// HasImage reports whether an image is selected.
func (s State) HasImage() bool {
	return s.Image != ""
}
