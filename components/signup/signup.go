// components/signup/signup.go
//
// Onboard signup component – web front-end of the signup form.
//
// Context
//   Every browser session owns one *form.Form (see internal/session).  The
//   page renders that form's snapshot; the embedded script posts each input
//   change to /signup/field and mirrors the answer (field error, submit
//   button state) into the DOM.  The button posts the whole form to
//   /signup, which applies every field, submits, and redirects back.
//
// Routes
//   GET  /signup          full page: form, last response, accepted users
//   GET  /signup/form.js  live-validation script
//   POST /signup/field    one change event → JSON field state
//   POST /signup          whole-form submit → 303, or re-render on failure
//   GET  /signup/state    JSON snapshot of the session's form
//   GET  /signup/users    JSON list of accepted users
//
//------------------------------------------------------------------------------

package signup

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"
	"github.com/samber/lo"

	"github.com/yanizio/onboard/internal/form"
	"github.com/yanizio/onboard/internal/logger"
	"github.com/yanizio/onboard/internal/session"
	"github.com/yanizio/onboard/internal/view"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static/form.js
var formJS []byte

// Absolute URLs the rendered page points at.
const (
	pathPage  = "/signup"
	pathField = "/signup/field"
)

// Component serves the signup pages and APIs.
type Component struct {
	store *session.Store
	users *form.MemoryUsers
	csrf  *form.CSRF
	views *view.Engine
}

// New wires the component.  users is the caller-owned list every session's
// form appends to.
func New(store *session.Store, users *form.MemoryUsers, csrf *form.CSRF) *Component {
	return &Component{
		store: store,
		users: users,
		csrf:  csrf,
		views: view.New(templatesFS, "templates/*.html"),
	}
}

/*──────────────────────────── routing ──────────────────────────────────────*/

// Name returns the canonical component key.
func (c *Component) Name() string { return "signup" }

// Routes builds and returns the router mounted at “/signup”.
func (c *Component) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", c.handlePage)
	r.Post("/", c.handleSubmit)
	r.Get("/form.js", c.handleScript)
	r.Post("/field", c.handleField)
	r.Get("/state", c.handleState)
	r.Get("/users", c.handleUsers)
	return r
}

/*──────────────────────────── handlers ─────────────────────────────────────*/

func (c *Component) handlePage(w http.ResponseWriter, r *http.Request) {
	id, f := c.store.Form(w, r)
	c.renderPage(w, r, id, f, http.StatusOK)
}

func (c *Component) handleScript(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/javascript; charset=utf-8")
	_, _ = w.Write(formJS)
}

func (c *Component) handleField(w http.ResponseWriter, r *http.Request) {
	id, f, ok := c.authorize(w, r)
	if !ok {
		return
	}

	st, err := f.Change(form.Event{
		Name:    r.PostForm.Get("field"),
		Type:    r.PostForm.Get("type"),
		Value:   r.PostForm.Get("value"),
		Checked: r.PostForm.Get("checked") == "true",
	})
	if err != nil {
		logger.FromContext(r.Context()).Debugw("field change rejected", "session", id, "err", err)
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, fieldResponse{
		Field:         st.Field,
		Error:         st.Error,
		Valid:         st.Valid,
		SubmitEnabled: st.SubmitEnabled,
	})
}

func (c *Component) handleSubmit(w http.ResponseWriter, r *http.Request) {
	id, f, ok := c.authorize(w, r)
	if !ok {
		return
	}

	// A plain form post carries every field; checkboxes are absent when
	// unchecked.
	for _, fd := range f.Schema().Fields {
		ev := form.Event{Name: fd.Name, Type: fd.Type, Value: r.PostForm.Get(fd.Name)}
		if fd.Type == "checkbox" {
			ev.Checked = r.PostForm.Has(fd.Name)
		}
		if _, err := f.Change(ev); err != nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
	}

	// The remote call outlives a navigating browser.
	_, err := f.Submit(context.WithoutCancel(r.Context()))
	switch {
	case err == nil:
		http.Redirect(w, r, pathPage, http.StatusSeeOther)
	case errors.Is(err, form.ErrSubmitBlocked):
		c.renderPage(w, r, id, f, http.StatusUnprocessableEntity)
	case errors.Is(err, form.ErrSubmitInFlight):
		c.renderPage(w, r, id, f, http.StatusConflict)
	case form.IsSubmissionError(err):
		// Already logged by the form; the page shows the SubmitError slot.
		c.renderPage(w, r, id, f, http.StatusBadGateway)
	default:
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (c *Component) handleState(w http.ResponseWriter, r *http.Request) {
	_, f := c.store.Form(w, r)
	writeJSON(w, http.StatusOK, newStateResponse(f.Snapshot()))
}

func (c *Component) handleUsers(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, lo.Map(c.users.All(), func(v form.Values, _ int) userResponse {
		return userResponse{Name: v.Name, Email: v.Email}
	}))
}

/*──────────────────────────── helpers ──────────────────────────────────────*/

// authorize parses the POST body and checks the session and CSRF token.  It
// writes the error response itself and returns ok == false on failure.
func (c *Component) authorize(w http.ResponseWriter, r *http.Request) (string, *form.Form, bool) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return "", nil, false
	}
	id, f, ok := c.store.Lookup(r)
	if !ok || !c.csrf.Verify(r.PostForm.Get("csrf_token"), id) {
		logger.FromContext(r.Context()).Warnw("signup post rejected", "session_found", ok)
		http.Error(w, "Session expired.  Please reload the page.", http.StatusForbidden)
		return "", nil, false
	}
	return id, f, true
}

type pageData struct {
	Title    string
	Form     template.HTML
	Response string
	Users    []form.Values
}

func (c *Component) renderPage(w http.ResponseWriter, r *http.Request, id string, f *form.Form, status int) {
	log := logger.FromContext(r.Context())

	token, err := c.csrf.Generate(id)
	if err != nil {
		log.Errorw("csrf token generation failed", "err", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	st := f.Snapshot()
	markup, err := form.RenderForm(f.Schema(), st, form.RenderOptions{
		Action:    pathPage,
		FieldURL:  pathField,
		CSRFToken: token,
	})
	if err != nil {
		log.Errorw("form render failed", "err", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	data := pageData{
		Title: f.Schema().Title,
		Form:  markup,
		Users: c.users.All(),
	}
	if st.LastResponse != nil {
		data.Response = st.LastResponse.Pretty()
	}

	page, err := c.views.RenderToString("signup", data)
	if err != nil {
		log.Errorw("page render failed", "err", err)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(page))
}

type fieldResponse struct {
	Field         string `json:"field"`
	Error         string `json:"error"`
	Valid         bool   `json:"valid"`
	SubmitEnabled bool   `json:"submit_enabled"`
}

type userResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// stateResponse mirrors form.State without the password.
type stateResponse struct {
	Values struct {
		Name  string `json:"name"`
		Email string `json:"email"`
		TOS   bool   `json:"tos"`
	} `json:"values"`
	Errors        map[string]string `json:"errors"`
	Valid         bool              `json:"valid"`
	SubmitEnabled bool              `json:"submit_enabled"`
	Status        string            `json:"status"`
	SubmitError   string            `json:"submit_error,omitempty"`
	LastResponse  json.RawMessage   `json:"last_response,omitempty"`
}

func newStateResponse(st form.State) stateResponse {
	var out stateResponse
	out.Values.Name = st.Values.Name
	out.Values.Email = st.Values.Email
	out.Values.TOS = st.Values.TOS
	out.Errors = st.Errors
	out.Valid = st.Valid
	out.SubmitEnabled = st.SubmitEnabled
	out.Status = st.Status.String()
	out.SubmitError = st.SubmitError
	if st.LastResponse != nil && json.Valid(st.LastResponse.Data) {
		out.LastResponse = st.LastResponse.Data
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
