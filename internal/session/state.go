package session

import (
	"errors"
	"strings"

	"github.com/minicolabs/minutes-flow/internal/capture"
	"github.com/minicolabs/minutes-flow/internal/minutes"
)

// Phase is the coordinator's position in the session lifecycle.
type Phase string

const (
	PhaseIdle          Phase = "idle"
	PhaseCapturing     Phase = "capturing"
	PhaseAwaitingInput Phase = "awaiting_input"
	PhaseStreaming     Phase = "streaming"
	PhaseCompleted     Phase = "completed"
	PhaseExpanding     Phase = "expanding_derivative"
	PhaseFailed        Phase = "failed"
)

// State is the single source of truth for a session. It is a value: every
// mutation goes through reduce, which returns a new State, so transitions
// can be tested deterministically without any I/O.
type State struct {
	Phase        Phase
	Mode         minutes.InputMode
	Text         string
	Clip         *capture.Clip
	Preview      string
	Result       *minutes.Result
	Error        string
	ErrorKind    minutes.ErrorKind
	Recording    bool
	Generating   bool
	LoadingExtra bool
	Version      int
}

// NewState returns the initial session state.
func NewState() State {
	return State{Phase: PhaseIdle, Mode: minutes.ModeText}
}

// CanSubmit is the submission guard: text mode needs non-empty text, the
// other modes need a captured clip, and nothing may already be in flight.
func (s State) CanSubmit() bool {
	if s.Generating || s.LoadingExtra || s.Recording {
		return false
	}
	if s.Mode == minutes.ModeText {
		return strings.TrimSpace(s.Text) != ""
	}
	return s.Clip != nil
}

// CanExpand reports whether a derivative request is permitted: a result must
// be current and no generation may be in flight.
func (s State) CanExpand() bool {
	return s.Result != nil && !s.Generating && !s.LoadingExtra && !s.Recording
}

// Event is a session state transition trigger.
type Event interface{ isEvent() }

type EventSetMode struct{ Mode minutes.InputMode }
type EventSetText struct{ Text string }
type EventCaptureStarted struct{}
type EventCaptureFailed struct{ Err error }
type EventClipReady struct{ Clip *capture.Clip }
type EventStreamStarted struct{}
type EventFragment struct{ Text string }
type EventStreamCompleted struct{ Result *minutes.Result }
type EventStreamFailed struct{ Err error }
type EventDerivativeStarted struct{ Feature minutes.FeatureKind }
type EventDerivativeCompleted struct{ Result *minutes.Result }
type EventDerivativeFailed struct{ Err error }

func (EventSetMode) isEvent()             {}
func (EventSetText) isEvent()             {}
func (EventCaptureStarted) isEvent()      {}
func (EventCaptureFailed) isEvent()       {}
func (EventClipReady) isEvent()           {}
func (EventStreamStarted) isEvent()       {}
func (EventFragment) isEvent()            {}
func (EventStreamCompleted) isEvent()     {}
func (EventStreamFailed) isEvent()        {}
func (EventDerivativeStarted) isEvent()   {}
func (EventDerivativeCompleted) isEvent() {}
func (EventDerivativeFailed) isEvent()    {}

// reduce applies one event to the state. It is pure: no I/O, no clocks.
func reduce(s State, ev Event) State {
	next := s
	next.Version++

	switch e := ev.(type) {
	case EventSetMode:
		// Switching input mode starts a fresh session: captured clip,
		// result, preview and error are all cleared so a stale result can
		// never be shown against a new input mode. The text input survives.
		next.Mode = e.Mode
		next.Clip = nil
		next.Result = nil
		next.Preview = ""
		next.Error = ""
		next.ErrorKind = ""
		next.Recording = false
		next.Generating = false
		next.LoadingExtra = false
		next.Phase = PhaseIdle
		if e.Mode == minutes.ModeText && strings.TrimSpace(next.Text) != "" {
			next.Phase = PhaseAwaitingInput
		}

	case EventSetText:
		next.Text = e.Text
		if next.Mode == minutes.ModeText && !next.Generating && !next.LoadingExtra {
			if strings.TrimSpace(e.Text) != "" {
				next.Phase = PhaseAwaitingInput
			} else if next.Phase == PhaseAwaitingInput {
				next.Phase = PhaseIdle
			}
		}

	case EventCaptureStarted:
		next.Recording = true
		next.Error = ""
		next.ErrorKind = ""
		next.Phase = PhaseCapturing

	case EventCaptureFailed:
		next.Recording = false
		next.Error = errorMessage(e.Err)
		next.ErrorKind = minutes.KindOf(e.Err)
		next.Phase = PhaseFailed

	case EventClipReady:
		next.Clip = e.Clip
		next.Recording = false
		next.Error = ""
		next.ErrorKind = ""
		next.Phase = PhaseAwaitingInput

	case EventStreamStarted:
		// Starting a generation always clears the previous error and
		// result; the preview accumulator is reset for this attempt.
		next.Generating = true
		next.Result = nil
		next.Preview = ""
		next.Error = ""
		next.ErrorKind = ""
		next.Phase = PhaseStreaming

	case EventFragment:
		// Append-only, in arrival order.
		next.Preview += e.Text

	case EventStreamCompleted:
		next.Generating = false
		next.Result = e.Result
		next.Phase = PhaseCompleted

	case EventStreamFailed:
		// The partial preview is discarded; no result is created.
		next.Generating = false
		next.Preview = ""
		next.Error = errorMessage(e.Err)
		next.ErrorKind = minutes.KindOf(e.Err)
		next.Phase = PhaseFailed

	case EventDerivativeStarted:
		next.LoadingExtra = true
		next.Error = ""
		next.ErrorKind = ""
		next.Phase = PhaseExpanding

	case EventDerivativeCompleted:
		// The new result replaces the old one wholesale; no history is kept.
		next.LoadingExtra = false
		next.Result = e.Result
		next.Phase = PhaseCompleted

	case EventDerivativeFailed:
		// Unlike a primary failure there is a result to preserve: only the
		// error is recorded, the displayed document stays current.
		next.LoadingExtra = false
		next.Error = errorMessage(e.Err)
		next.ErrorKind = minutes.KindOf(e.Err)
		next.Phase = PhaseFailed
	}

	return next
}

// errorMessage reduces any error to the single banner message shown to the
// user.
func errorMessage(err error) string {
	if err == nil {
		return ""
	}
	var me *minutes.Error
	if errors.As(err, &me) {
		return me.Message
	}
	return err.Error()
}
