package app

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/muurk/vibetagger/internal/analysis"
	"github.com/muurk/vibetagger/internal/ingest"
	"github.com/muurk/vibetagger/internal/logging"
	"github.com/muurk/vibetagger/internal/vibe"
)

// ErrAnalysisInFlight is returned when a new image is selected while an
// analysis is running.
var ErrAnalysisInFlight = errors.New("an analysis is already in progress")

// Listener receives a state snapshot after every transition.
type Listener func(State)

// Controller owns the application state and applies the transitions.
// It is safe for concurrent use.
type Controller struct {
	analyzer analysis.Analyzer

	mu    sync.Mutex
	state State
	// epoch changes on Reset and on every accepted SelectImage. Async work
	// captures it at dispatch and is dropped if it changed meanwhile.
	epoch uint64
	// reading is set while the latest accepted image read has not landed.
	reading bool

	listeners map[int]Listener
	nextID    int
}

// NewController creates a Controller in the initial state.
func NewController(analyzer analysis.Analyzer) *Controller {
	return &Controller{
		analyzer:  analyzer,
		listeners: make(map[int]Listener),
	}
}

// State returns a snapshot of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Subscribe registers fn to receive a snapshot after every transition.
// Listeners run synchronously with the controller lock held, in transition
// order, and must not call back into the Controller.
func (c *Controller) Subscribe(fn Listener) (cancel func()) {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.listeners, id)
		c.mu.Unlock()
	}
}

// SelectImage validates f and starts reading it.
//
// A non-image file sets the validation message as the error and returns
// ingest.ErrInvalidFileType; image, result and loading are left alone.
// While an analysis is in flight a valid file is refused with
// ErrAnalysisInFlight. Otherwise the returned channel closes once the read
// has completed and the image has been stored, clearing any previous result
// and error.
func (c *Controller) SelectImage(f ingest.File) (<-chan struct{}, error) {
	if err := ingest.Validate(f); err != nil {
		c.mu.Lock()
		c.transition("select_image_invalid", func(s *State) {
			s.Error = ingest.InvalidFileTypeMessage
		})
		c.mu.Unlock()
		return nil, err
	}

	c.mu.Lock()
	if c.state.Loading {
		c.mu.Unlock()
		return nil, ErrAnalysisInFlight
	}
	c.epoch++
	epoch := c.epoch
	c.reading = true
	c.mu.Unlock()

	done := make(chan struct{})
	err := ingest.Read(f, func(dataURL string, err error) {
		defer close(done)

		c.mu.Lock()
		defer c.mu.Unlock()

		if c.epoch != epoch {
			logging.Debug("Discarding superseded image read", zap.String("name", f.Name()))
			return
		}
		c.reading = false

		if err != nil {
			logging.Warn("Failed to read image", zap.String("name", f.Name()), zap.Error(err))
			c.transition("select_image_failed", func(s *State) {
				s.Error = ReadFailureMessage
			})
			return
		}

		c.transition("select_image", func(s *State) {
			s.Image = dataURL
			s.Result = nil
			s.Error = ""
		})
	})
	if err != nil {
		// Validate already passed; Read can only fail the same way.
		c.mu.Lock()
		if c.epoch == epoch {
			c.reading = false
		}
		c.mu.Unlock()
		return nil, err
	}

	return done, nil
}

// Generate dispatches an analysis of the selected image.
//
// It returns nil and changes nothing when no image is selected, an analysis
// is already running, or a newly selected image is still being read. Otherwise the returned channel closes once
// the attempt has resolved. A response that arrives after Reset (or after a
// new image was selected) is discarded.
func (c *Controller) Generate(ctx context.Context) <-chan struct{} {
	c.mu.Lock()
	if !c.state.HasImage() || c.state.Loading || c.reading {
		c.mu.Unlock()
		return nil
	}

	image := c.state.Image
	epoch := c.epoch
	c.transition("generate", func(s *State) {
		s.Loading = true
		s.Error = ""
		s.Result = nil
	})
	c.mu.Unlock()

	done := make(chan struct{})
	go func() {
		defer close(done)

		result, err := c.analyzer.Analyze(ctx, image)

		c.mu.Lock()
		defer c.mu.Unlock()

		if c.epoch != epoch {
			logging.Debug("Discarding stale analysis response", zap.Bool("failed", err != nil))
			return
		}

		if err != nil {
			c.onAnalysisFailure(err)
			return
		}
		c.onAnalysisSuccess(result)
	}()

	return done
}

// onAnalysisSuccess must be called with c.mu held.
func (c *Controller) onAnalysisSuccess(result *vibe.Result) {
	c.transition("analysis_success", func(s *State) {
		s.Result = result
		s.Loading = false
		s.Error = ""
	})
}

// onAnalysisFailure must be called with c.mu held. The cause is logged; the
// user only sees FailureMessage.
func (c *Controller) onAnalysisFailure(cause error) {
	logging.Error("Failed to decode vibe", zap.Error(cause))
	c.transition("analysis_failure", func(s *State) {
		s.Loading = false
		s.Result = nil
		s.Error = FailureMessage
	})
}

// Reset returns to the initial state unconditionally. In-flight work is not
// cancelled but its outcome will be discarded.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.epoch++
	c.reading = false
	c.transition("reset", func(s *State) {
		*s = State{}
	})
}

// transition applies fn to the state and notifies listeners.
// Must be called with c.mu held.
func (c *Controller) transition(trigger string, fn func(*State)) {
	from := c.state.Phase()
	fn(&c.state)
	logging.LogTransition(string(from), string(c.state.Phase()), trigger)

	snapshot := c.state
	for _, l := range c.listeners {
		l(snapshot)
	}
}
