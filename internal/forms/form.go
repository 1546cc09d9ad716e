package forms

import (
	"context"
	"sync"

	"atsbuddy/internal/errors"
	"atsbuddy/internal/validate"
)

// Phase is the lifecycle of one remote form.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseValidating
	PhaseSubmitting
	PhaseSuccess
	PhaseFailure
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseValidating:
		return "validating"
	case PhaseSubmitting:
		return "submitting"
	case PhaseSuccess:
		return "success"
	case PhaseFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// ValidateFunc runs the synchronous field rules for an input.
type ValidateFunc[In any] func(In) validate.FieldErrors

// SubmitFunc issues the authenticated backend call for an input.
type SubmitFunc[In, Out any] func(context.Context, In) (Out, error)

// Form is one remote tool form: validate locally, submit remotely, hold the
// last successful result. Each tool instantiates its own; results are never
// shared between forms. Only one submission may be in flight at a time.
type Form[In, Out any] struct {
	name     string
	validate ValidateFunc[In]
	submit   SubmitFunc[In, Out]
	logger   *errors.Logger

	mu          sync.Mutex
	phase       Phase
	fieldErrors validate.FieldErrors
	result      *Out
	prior       *Out
	lastErr     error
}

// New creates an idle form for one tool.
func New[In, Out any](name string, validateFn ValidateFunc[In], submitFn SubmitFunc[In, Out], logger *errors.Logger) *Form[In, Out] {
	return &Form[In, Out]{
		name:     name,
		validate: validateFn,
		submit:   submitFn,
		logger:   logger,
		phase:    PhaseIdle,
	}
}

// Submit runs one full cycle: validate, then issue the backend call.
// Validation failures return to idle with field errors attached and make no
// network call. A failure during submission restores the previously
// displayed result; only a new submitting phase clears it for good.
func (f *Form[In, Out]) Submit(ctx context.Context, in In) (Out, error) {
	var zero Out

	f.mu.Lock()
	if f.phase == PhaseSubmitting {
		f.mu.Unlock()
		return zero, errors.NewInternalError(errors.ErrCodeSubmitInFlight,
			"a submission is already in flight", nil)
	}
	f.phase = PhaseValidating
	f.mu.Unlock()

	if errs := f.validate(in); len(errs) > 0 {
		f.mu.Lock()
		f.phase = PhaseIdle
		f.fieldErrors = errs
		f.mu.Unlock()
		f.logger.Debug("Form blocked by validation", "form", f.name, "fields", len(errs))
		return zero, errs
	}

	f.mu.Lock()
	f.phase = PhaseSubmitting
	f.fieldErrors = nil
	f.prior = f.result
	f.result = nil
	f.mu.Unlock()

	out, err := f.submit(ctx, in)

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		f.phase = PhaseFailure
		f.lastErr = err
		f.result = f.prior
		return zero, err
	}
	f.phase = PhaseSuccess
	f.lastErr = nil
	f.result = &out
	f.prior = nil
	return out, nil
}

// Phase returns the current lifecycle phase.
func (f *Form[In, Out]) Phase() Phase {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.phase
}

// FieldErrors returns the failures from the last blocked submission.
func (f *Form[In, Out]) FieldErrors() validate.FieldErrors {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fieldErrors
}

// ClearFieldError drops the failure attached to one field, for inputs
// corrected out of band (for example a resume filled from extraction).
func (f *Form[In, Out]) ClearFieldError(field string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fieldErrors = f.fieldErrors.Clear(field)
}

// Result returns the last successful result, or nil while none is held.
func (f *Form[In, Out]) Result() *Out {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.result
}

// Err returns the error surfaced by the last failed submission.
func (f *Form[In, Out]) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastErr
}
