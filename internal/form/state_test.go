// internal/form/state_test.go
//
// Unit-tests for the Form state holder.
//
// Context
// -------
// A fake Submitter stands in for the remote API so every transition can be
// checked without the network:
//
//   • per-field error slots change only for the field that changed,
//   • whole-form validity gates Submit,
//   • success resets the draft and appends the pre-reset draft to Users,
//   • failure keeps the draft and fills the SubmitError slot,
//   • a second Submit during a pending one is refused.

package form

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type fakeSubmitter struct {
	mu    sync.Mutex
	calls []Values
	rec   ServerRecord
	err   error
}

func (f *fakeSubmitter) Submit(_ context.Context, v Values) (ServerRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, v)
	return f.rec, f.err
}

// blockingSubmitter parks inside Submit until release is closed.
type blockingSubmitter struct {
	started chan struct{}
	release chan struct{}
}

func (b *blockingSubmitter) Submit(ctx context.Context, _ Values) (ServerRecord, error) {
	close(b.started)
	select {
	case <-b.release:
		return ServerRecord{Status: 201}, nil
	case <-ctx.Done():
		return ServerRecord{}, ctx.Err()
	}
}

func newTestForm(s Submitter) (*Form, *MemoryUsers) {
	users := &MemoryUsers{}
	return New(NewValidator(DefaultSchema()), s, users), users
}

func fill(t *testing.T, f *Form, v Values) {
	t.Helper()
	events := []Event{
		{Name: FieldName, Type: "text", Value: v.Name},
		{Name: FieldEmail, Type: "text", Value: v.Email},
		{Name: FieldPassword, Type: "password", Value: v.Password},
		{Name: FieldTOS, Type: "checkbox", Checked: v.TOS},
	}
	for _, ev := range events {
		if _, err := f.Change(ev); err != nil {
			t.Fatalf("Change(%s): %v", ev.Name, err)
		}
	}
}

func TestForm_InitialState(t *testing.T) {
	f, _ := newTestForm(&fakeSubmitter{})
	st := f.Snapshot()

	want := State{
		Errors: map[string]string{FieldName: "", FieldEmail: "", FieldPassword: "", FieldTOS: ""},
		Status: StatusIdle,
	}
	if diff := cmp.Diff(want, st); diff != "" {
		t.Fatalf("initial state mismatch (-want +got):\n%s", diff)
	}
}

func TestForm_SubmitAllowedTable(t *testing.T) {
	cases := []struct {
		name    string
		vals    Values
		allowed bool
		errKey  string
	}{
		{"name empty", Values{Email: "a@b.com", Password: "x", TOS: true}, false, FieldName},
		{"email invalid", Values{Name: "A", Email: "not-an-email", Password: "x", TOS: true}, false, FieldEmail},
		{"tos false", Values{Name: "A", Email: "a@b.com", Password: "x"}, false, FieldTOS},
		{"all valid", Values{Name: "A", Email: "a@b.com", Password: "x", TOS: true}, true, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f, _ := newTestForm(&fakeSubmitter{})
			fill(t, f, tc.vals)
			st := f.Snapshot()
			if st.SubmitEnabled != tc.allowed || st.Valid != tc.allowed {
				t.Fatalf("SubmitEnabled = %v, Valid = %v, want %v", st.SubmitEnabled, st.Valid, tc.allowed)
			}
			if tc.errKey != "" && st.Errors[tc.errKey] == "" {
				t.Fatalf("error slot %q empty", tc.errKey)
			}
		})
	}
}

func TestForm_ChangeClearsOnlyThatField(t *testing.T) {
	f, _ := newTestForm(&fakeSubmitter{})

	f.Change(Event{Name: FieldName, Value: ""})
	f.Change(Event{Name: FieldEmail, Value: "bad"})

	fs, err := f.Change(Event{Name: FieldEmail, Value: "a@b.com"})
	if err != nil {
		t.Fatalf("Change: %v", err)
	}
	if fs.Error != "" {
		t.Fatalf("email error = %q, want cleared", fs.Error)
	}

	st := f.Snapshot()
	if st.Errors[FieldName] != "Name is required" {
		t.Fatalf("name error = %q, want untouched", st.Errors[FieldName])
	}
	if st.Errors[FieldPassword] != "" || st.Errors[FieldTOS] != "" {
		t.Fatalf("untouched fields gained errors: %+v", st.Errors)
	}
}

func TestForm_ChangeNormalizesCheckbox(t *testing.T) {
	f, _ := newTestForm(&fakeSubmitter{})

	fs, _ := f.Change(Event{Name: FieldTOS, Type: "checkbox", Value: "on", Checked: false})
	if fs.Error != "TOS is required" {
		t.Fatalf("tos error = %q", fs.Error)
	}
	fs, _ = f.Change(Event{Name: FieldTOS, Type: "checkbox", Checked: true})
	if fs.Error != "" || !f.Snapshot().Values.TOS {
		t.Fatalf("tos not accepted: %+v", fs)
	}
}

func TestForm_ChangeUnknownField(t *testing.T) {
	f, _ := newTestForm(&fakeSubmitter{})
	before := f.Snapshot()

	if _, err := f.Change(Event{Name: "terms", Checked: true}); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("want ErrUnknownField, got %v", err)
	}
	if diff := cmp.Diff(before, f.Snapshot()); diff != "" {
		t.Fatalf("state changed (-before +after):\n%s", diff)
	}
}

func TestForm_ChangeWrongKind(t *testing.T) {
	f, _ := newTestForm(&fakeSubmitter{})
	fill(t, f, Values{Name: "Ada"})
	before := f.Snapshot()

	_, err := f.Change(Event{Name: FieldName, Type: "checkbox", Checked: true})
	if !errors.Is(err, ErrFieldKind) {
		t.Fatalf("want ErrFieldKind, got %v", err)
	}
	if errors.Is(err, ErrUnknownField) {
		t.Fatalf("known field reported as unknown: %v", err)
	}
	if diff := cmp.Diff(before, f.Snapshot()); diff != "" {
		t.Fatalf("state changed (-before +after):\n%s", diff)
	}
}

func TestForm_SnapshotCopiesResponse(t *testing.T) {
	sub := &fakeSubmitter{rec: ServerRecord{Status: 201, Data: []byte(`{"id":"7"}`)}}
	f, _ := newTestForm(sub)
	fill(t, f, validValues())

	rec, err := f.Submit(context.Background())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	rec.Data[2] = 'X'
	sub.rec.Data[3] = 'Y'

	st := f.Snapshot()
	st.LastResponse.Data[0] = '['
	if got := string(f.Snapshot().LastResponse.Data); got != `{"id":"7"}` {
		t.Fatalf("stored response mutated through a copy: %s", got)
	}
}

func TestForm_SubmitBlocked(t *testing.T) {
	sub := &fakeSubmitter{}
	f, users := newTestForm(sub)
	fill(t, f, Values{Name: "A", Email: "a@b.com", Password: "x"})

	if _, err := f.Submit(context.Background()); !errors.Is(err, ErrSubmitBlocked) {
		t.Fatalf("want ErrSubmitBlocked, got %v", err)
	}
	if len(sub.calls) != 0 || users.Len() != 0 {
		t.Fatalf("blocked submit reached the submitter")
	}
}

func TestForm_SubmitSuccess(t *testing.T) {
	sub := &fakeSubmitter{rec: ServerRecord{Status: 201, Data: []byte(`{"id":"7"}`)}}
	f, users := newTestForm(sub)
	draft := validValues()
	fill(t, f, draft)

	rec, err := f.Submit(context.Background())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if rec.Status != 201 {
		t.Fatalf("status = %d", rec.Status)
	}

	if diff := cmp.Diff([]Values{draft}, sub.calls); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]Values{draft}, users.All()); diff != "" {
		t.Fatalf("users mismatch (-want +got):\n%s", diff)
	}

	st := f.Snapshot()
	if st.Values != (Values{}) {
		t.Fatalf("values not reset: %+v", st.Values)
	}
	if st.SubmitEnabled || st.Status != StatusIdle {
		t.Fatalf("post-submit gate = %v/%v", st.SubmitEnabled, st.Status)
	}
	if st.LastResponse == nil || string(st.LastResponse.Data) != `{"id":"7"}` {
		t.Fatalf("LastResponse = %+v", st.LastResponse)
	}
}

func TestForm_SubmitFailureKeepsDraft(t *testing.T) {
	sub := &fakeSubmitter{err: &StatusError{Code: 500}}
	f, users := newTestForm(sub)
	draft := validValues()
	fill(t, f, draft)

	_, err := f.Submit(context.Background())
	if !IsSubmissionError(err) {
		t.Fatalf("want *SubmissionError, got %v", err)
	}
	var se *StatusError
	if !errors.As(err, &se) || se.Code != 500 {
		t.Fatalf("want wrapped *StatusError 500, got %v", err)
	}

	st := f.Snapshot()
	if st.Values != draft {
		t.Fatalf("draft lost: %+v", st.Values)
	}
	if st.SubmitError == "" || !st.SubmitEnabled {
		t.Fatalf("SubmitError = %q, SubmitEnabled = %v", st.SubmitError, st.SubmitEnabled)
	}
	if users.Len() != 0 || st.LastResponse != nil {
		t.Fatalf("failure recorded a user or response")
	}

	// The next attempt clears the slot.
	sub.err = nil
	if _, err := f.Submit(context.Background()); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if f.Snapshot().SubmitError != "" {
		t.Fatalf("SubmitError not cleared")
	}
}

func TestForm_SubmitInFlight(t *testing.T) {
	sub := &blockingSubmitter{started: make(chan struct{}), release: make(chan struct{})}
	f, users := newTestForm(sub)
	fill(t, f, validValues())

	done := make(chan error, 1)
	go func() {
		_, err := f.Submit(context.Background())
		done <- err
	}()
	<-sub.started

	st := f.Snapshot()
	if st.Status != StatusSubmitting || st.SubmitEnabled {
		t.Fatalf("pending state = %v, SubmitEnabled = %v", st.Status, st.SubmitEnabled)
	}
	if _, err := f.Submit(context.Background()); !errors.Is(err, ErrSubmitInFlight) {
		t.Fatalf("second Submit: want ErrSubmitInFlight, got %v", err)
	}

	close(sub.release)
	if err := <-done; err != nil {
		t.Fatalf("first Submit: %v", err)
	}
	if users.Len() != 1 {
		t.Fatalf("users = %d, want 1", users.Len())
	}
}

func TestForm_Reset(t *testing.T) {
	f, _ := newTestForm(&fakeSubmitter{})
	fill(t, f, Values{Name: "A", Email: "bad"})
	f.Reset()

	st := f.Snapshot()
	if st.Values != (Values{}) || st.Errors[FieldEmail] != "" {
		t.Fatalf("Reset left %+v", st)
	}
}
