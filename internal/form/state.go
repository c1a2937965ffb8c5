// internal/form/state.go
//
// Onboard – Forms subsystem: form state holder.
//
// Context
//   Form owns the draft Values, the per-field error slots, whole-form
//   validity, and the submission status of one signup form.  Front-ends
//   (web handlers, terminal UI) only feed it Events and call Submit; they
//   render whatever Snapshot returns.
//
// Workflow
//   •  Change runs one synchronous pass per event: normalize the raw input,
//      store it, validate that field, and recompute whole-form validity from
//      the same snapshot.  Both derived values are always consistent.
//   •  Submit is gated twice: the form must be valid, and no other
//      submission may be in flight.  The remote call runs without holding
//      the lock.  On success the captured draft is appended to Users and
//      the form returns to its initial state.  On failure the draft is kept
//      and the failure lands in the SubmitError slot.
//
//------------------------------------------------------------------------------

package form

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/yanizio/onboard/internal/logger"
	"github.com/yanizio/onboard/internal/metrics"
)

// submitFailedMsg is the user-facing text stored after a failed submission.
const submitFailedMsg = "Signup failed.  Please try again."

// Status is the submission state of a Form.
type Status int

const (
	StatusIdle Status = iota
	StatusSubmitting
)

func (s Status) String() string {
	if s == StatusSubmitting {
		return "submitting"
	}
	return "idle"
}

// FieldState is the outcome of one Change.
type FieldState struct {
	Field         string
	Error         string // empty when the field is valid
	Valid         bool   // whole-form validity after the change
	SubmitEnabled bool
}

// State is a point-in-time copy of a Form for rendering.
type State struct {
	Values        Values
	Errors        map[string]string
	Valid         bool
	SubmitEnabled bool
	Status        Status
	LastResponse  *ServerRecord
	SubmitError   string
}

// Form is the state holder of one signup form.  It is safe for concurrent
// use; the zero value is not usable, call New.
type Form struct {
	validator *Validator
	submitter Submitter
	users     Users

	mu        sync.Mutex
	values    Values
	errors    map[string]string
	valid     bool
	status    Status
	last      *ServerRecord
	submitErr string
}

// New returns a Form in its initial state.  users may be nil when the caller
// does not track accepted drafts.
func New(v *Validator, s Submitter, users Users) *Form {
	f := &Form{
		validator: v,
		submitter: s,
		users:     users,
	}
	f.resetLocked()
	return f
}

// Schema returns the schema the form validates against.
func (f *Form) Schema() *Schema { return f.validator.Schema() }

// Change applies one input event.  Only the changed field's error slot is
// touched; validity and submit enablement are recomputed from the same
// draft.  Unknown fields return ErrUnknownField, and a value of the wrong
// kind for a known field returns ErrFieldKind; both leave the form as is.
func (f *Form) Change(ev Event) (FieldState, error) {
	def, ok := f.validator.Schema().Field(ev.Name)
	if !ok {
		return FieldState{}, fmt.Errorf("%w: %q", ErrUnknownField, ev.Name)
	}
	val := ev.normalize()

	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.values.set(ev.Name, val) {
		return FieldState{}, fmt.Errorf("%w: %q got %T", ErrFieldKind, ev.Name, val)
	}
	msg := messageOf(check(def, val))
	f.errors[ev.Name] = msg
	f.valid = f.validator.ValidateAll(f.values)

	result := metrics.ResultValid
	if msg != "" {
		result = metrics.ResultInvalid
	}
	metrics.FieldChangesTotal.WithLabelValues(ev.Name, result).Inc()

	return FieldState{
		Field:         ev.Name,
		Error:         msg,
		Valid:         f.valid,
		SubmitEnabled: f.submitEnabledLocked(),
	}, nil
}

// Submit sends the current draft.  It returns ErrSubmitInFlight while a
// previous call is pending and ErrSubmitBlocked while the draft is invalid;
// both are no-ops.  Remote failures are logged, stored in the SubmitError
// slot, and returned as *SubmissionError.
func (f *Form) Submit(ctx context.Context) (ServerRecord, error) {
	f.mu.Lock()
	if f.status == StatusSubmitting {
		f.mu.Unlock()
		metrics.SubmissionsTotal.WithLabelValues(metrics.ResultInFlight).Inc()
		return ServerRecord{}, ErrSubmitInFlight
	}
	if !f.validator.ValidateAll(f.values) {
		f.valid = false
		f.mu.Unlock()
		metrics.SubmissionsTotal.WithLabelValues(metrics.ResultBlocked).Inc()
		return ServerRecord{}, ErrSubmitBlocked
	}
	captured := f.values
	f.status = StatusSubmitting
	f.submitErr = ""
	f.mu.Unlock()

	metrics.SubmissionsInFlight.Inc()
	start := time.Now()
	rec, err := f.submitter.Submit(ctx, captured)
	metrics.SubmitDuration.Observe(time.Since(start).Seconds())
	metrics.SubmissionsInFlight.Dec()

	f.mu.Lock()
	defer f.mu.Unlock()
	f.status = StatusIdle

	if err != nil {
		f.submitErr = submitFailedMsg
		metrics.SubmissionsTotal.WithLabelValues(metrics.ResultError).Inc()
		logger.FromContext(ctx).Errorw("signup submission failed",
			"form", f.validator.Schema().ID, "email", captured.Email, "err", err)
		return ServerRecord{}, &SubmissionError{Err: err}
	}

	stored := rec
	stored.Data = append([]byte(nil), rec.Data...)
	f.last = &stored
	if f.users != nil {
		f.users.Append(captured)
	}
	f.resetLocked()

	metrics.SubmissionsTotal.WithLabelValues(metrics.ResultOK).Inc()
	logger.FromContext(ctx).Infow("signup submitted",
		"form", f.validator.Schema().ID, "email", captured.Email, "status", rec.Status)
	return rec, nil
}

// Snapshot returns a copy of the current state.  LastResponse.Data is a
// fresh slice; callers may modify it.
func (f *Form) Snapshot() State {
	f.mu.Lock()
	defer f.mu.Unlock()

	errs := make(map[string]string, len(f.errors))
	for k, v := range f.errors {
		errs[k] = v
	}
	var last *ServerRecord
	if f.last != nil {
		cp := *f.last
		cp.Data = append([]byte(nil), f.last.Data...)
		last = &cp
	}
	return State{
		Values:        f.values,
		Errors:        errs,
		Valid:         f.valid,
		SubmitEnabled: f.submitEnabledLocked(),
		Status:        f.status,
		LastResponse:  last,
		SubmitError:   f.submitErr,
	}
}

// Reset discards the draft and every error.  LastResponse and a pending
// submission are kept.
func (f *Form) Reset() {
	f.mu.Lock()
	f.resetLocked()
	f.mu.Unlock()
}

func (f *Form) resetLocked() {
	f.values = Values{}
	f.errors = make(map[string]string, len(fieldOrder))
	for _, name := range fieldOrder {
		f.errors[name] = ""
	}
	f.valid = f.validator.ValidateAll(f.values)
	f.submitErr = ""
}

func (f *Form) submitEnabledLocked() bool {
	return f.valid && f.status == StatusIdle
}
