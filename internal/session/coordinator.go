package session

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/minicolabs/minutes-flow/internal/capture"
	"github.com/minicolabs/minutes-flow/internal/generator"
	"github.com/minicolabs/minutes-flow/internal/logger"
	"github.com/minicolabs/minutes-flow/internal/minutes"
)

// Coordinator owns the session state and drives the generator and recorder.
// It is the only component that mutates State; every failure is converted
// into the single banner message before it reaches a caller.
type Coordinator struct {
	mu       sync.Mutex
	state    State
	gen      generator.Generator
	recorder capture.Recorder
	logger   logger.Logger

	now      func() time.Time
	newLogID func() string
}

// NewCoordinator creates a Coordinator in the initial state.
func NewCoordinator(gen generator.Generator, recorder capture.Recorder, log logger.Logger) *Coordinator {
	return &Coordinator{
		state:    NewState(),
		gen:      gen,
		recorder: recorder,
		logger:   log,
		now:      time.Now,
		newLogID: newLogID,
	}
}

// newLogID produces the short display token stamped on each result. It only
// needs to be unique enough for the document footer.
func newLogID() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:9])
}

// State returns a snapshot of the current session state.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Coordinator) dispatch(ev Event) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dispatchLocked(ev)
	return c.state
}

// dispatchLocked applies an event while the caller already holds the mutex.
// A guard check and the transition it protects must land in the same
// critical section, or two concurrent callers can both pass the guard.
func (c *Coordinator) dispatchLocked(ev Event) {
	c.state = reduce(c.state, ev)
}

// SetMode switches the input mode, clearing the captured clip, current
// result, preview and error. An active recording is force-stopped first so
// the device handle is not orphaned; its clip is discarded with the rest.
func (c *Coordinator) SetMode(ctx context.Context, mode minutes.InputMode) error {
	if !mode.Valid() {
		return fmt.Errorf("unknown input mode %q", mode)
	}

	c.mu.Lock()
	recording := c.state.Recording
	c.mu.Unlock()

	if recording {
		c.logger.Info(ctx, "Mode switch during capture, stopping recorder")
		if _, err := c.recorder.Stop(ctx); err != nil {
			c.logger.Warn(ctx, "Force-stop recorder: %v", err)
		}
	}

	c.dispatch(EventSetMode{Mode: mode})
	return nil
}

// SetText updates the text input.
func (c *Coordinator) SetText(text string) {
	c.dispatch(EventSetText{Text: text})
}

// AttachClip makes an uploaded or inbox-delivered clip the session's
// captured payload.
func (c *Coordinator) AttachClip(clip *capture.Clip) {
	c.dispatch(EventClipReady{Clip: clip})
}

// StartRecording acquires the capture device. A device failure moves the
// session to the failed state without touching the rest of it.
func (c *Coordinator) StartRecording(ctx context.Context) error {
	c.mu.Lock()
	if c.state.Recording || c.state.Generating || c.state.LoadingExtra {
		c.mu.Unlock()
		return fmt.Errorf("recording not permitted in the current state")
	}
	// The recording flag goes up before the device is acquired so a
	// concurrent start cannot slip past the guard; a device failure
	// rolls it back below.
	c.dispatchLocked(EventCaptureStarted{})
	c.mu.Unlock()

	if err := c.recorder.Start(ctx); err != nil {
		c.dispatch(EventCaptureFailed{Err: err})
		return err
	}
	return nil
}

// StopRecording releases the capture device and stores the recorded clip.
func (c *Coordinator) StopRecording(ctx context.Context) error {
	c.mu.Lock()
	if !c.state.Recording {
		c.mu.Unlock()
		return fmt.Errorf("no recording in progress")
	}
	c.mu.Unlock()

	clip, err := c.recorder.Stop(ctx)
	if err != nil {
		c.dispatch(EventCaptureFailed{Err: err})
		return err
	}

	c.dispatch(EventClipReady{Clip: clip})
	return nil
}

// Generate runs one primary generation: it builds the payload from the
// current input, streams fragments into the preview accumulator in arrival
// order (forwarding each to sink when one is given), and installs the
// completed result. On failure the partial preview is discarded and no
// result is created.
func (c *Coordinator) Generate(ctx context.Context, additionalInstructions string, sink func(fragment string)) (*minutes.Result, error) {
	c.mu.Lock()
	if c.state.Generating || c.state.LoadingExtra {
		c.mu.Unlock()
		return nil, fmt.Errorf("a generation is already in flight")
	}
	if !c.state.CanSubmit() {
		err := minutes.NewError(minutes.ErrEmptyInput, "no input to generate from", nil)
		c.dispatchLocked(EventStreamFailed{Err: err})
		c.mu.Unlock()
		return nil, err
	}

	payload, err := c.buildPayloadLocked()
	if err != nil {
		c.dispatchLocked(EventStreamFailed{Err: err})
		c.mu.Unlock()
		return nil, err
	}

	// Mark the stream in flight in the same critical section as the guard
	// above, so a second concurrent Generate is rejected rather than
	// interleaving fragments into the same preview.
	c.dispatchLocked(EventStreamStarted{})
	mode := c.state.Mode
	c.mu.Unlock()

	c.logger.Info(ctx, "Primary generation started (mode: %s)", mode)

	fragments, errs := c.gen.StreamMinutes(ctx, payload, additionalInstructions)

	for fragment := range fragments {
		c.dispatch(EventFragment{Text: fragment})
		if sink != nil {
			sink(fragment)
		}
	}

	if err := <-errs; err != nil {
		c.logger.Error(ctx, "Primary generation failed: %v", err)
		c.dispatch(EventStreamFailed{Err: err})
		return nil, err
	}

	c.mu.Lock()
	content := c.state.Preview
	c.mu.Unlock()

	result := &minutes.Result{
		Content:   content,
		Timestamp: c.now(),
		Kind:      minutes.KindStandard,
		LogID:     c.newLogID(),
	}
	c.dispatch(EventStreamCompleted{Result: result})
	c.logger.Info(ctx, "Primary generation completed: %d bytes, log id %s", len(content), result.LogID)

	return result, nil
}

// RequestDerivative transforms the current result into a derivative
// document. On success the new result replaces the old one wholesale; on
// failure the previous result stays current and only the error is recorded.
func (c *Coordinator) RequestDerivative(ctx context.Context, feature minutes.FeatureKind) (*minutes.Result, error) {
	if !feature.Valid() {
		return nil, fmt.Errorf("unknown feature kind %q", feature)
	}

	c.mu.Lock()
	if !c.state.CanExpand() {
		c.mu.Unlock()
		return nil, fmt.Errorf("no completed minutes to expand")
	}
	source := c.state.Result.Content
	c.dispatchLocked(EventDerivativeStarted{Feature: feature})
	c.mu.Unlock()

	c.logger.Info(ctx, "Derivative generation started: %s", feature)

	text, err := c.gen.GenerateDerivative(ctx, source, feature)
	if err != nil {
		c.logger.Error(ctx, "Derivative generation failed (%s): %v", feature, err)
		c.dispatch(EventDerivativeFailed{Err: err})
		return nil, err
	}

	result := &minutes.Result{
		Content:   text,
		Timestamp: c.now(),
		Kind:      minutes.KindFor(feature),
		LogID:     c.newLogID(),
	}
	c.dispatch(EventDerivativeCompleted{Result: result})
	c.logger.Info(ctx, "Derivative generation completed: %s, log id %s", feature, result.LogID)

	return result, nil
}

// buildPayloadLocked constructs the generation payload from the current
// input. Callers hold the mutex.
func (c *Coordinator) buildPayloadLocked() (minutes.Payload, error) {
	if c.state.Mode == minutes.ModeText {
		return minutes.TextPayload(c.state.Text), nil
	}
	if c.state.Clip == nil {
		return minutes.Payload{}, minutes.NewError(minutes.ErrEmptyInput, "no audio captured", nil)
	}
	return minutes.AudioPayload(c.state.Clip.Data, c.state.Clip.MIMEType), nil
}
