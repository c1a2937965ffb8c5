// internal/tui/model.go
//
// Onboard – terminal front-end of the signup form.
//
// Context
//   The terminal UI is a second renderer over the same *form.Form the web
//   component uses.  Every keystroke that changes an input becomes one
//   form.Event; the view is drawn from Form.Snapshot, so error slots, the
//   submit gate, and the accepted-user list behave exactly as on the web.
//
// Workflow
//   •  tab / shift+tab (or ↓ / ↑) move focus across the inputs, the
//      checkboxes, and the submit button.
//   •  space toggles a focused checkbox.
//   •  enter on the button submits when the gate is open.  The call runs in
//      a tea.Cmd; its submitResultMsg refreshes the view.
//   •  esc or ctrl+c quits.
//
//------------------------------------------------------------------------------

package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/yanizio/onboard/internal/form"
)

// field is one focusable row of the form.
type field struct {
	def     form.FieldDef
	input   textinput.Model // unused for checkboxes
	checked bool
}

func (f field) isCheckbox() bool { return f.def.Type == "checkbox" }

// submitResultMsg carries the outcome of one Form.Submit.
type submitResultMsg struct {
	rec form.ServerRecord
	err error
}

// Model is the bubbletea model of the signup form.
type Model struct {
	ctx    context.Context
	form   *form.Form
	users  *form.MemoryUsers
	fields []field
	focus  int // len(fields) is the submit button
	state  form.State
	styles Styles
}

// New builds a model over f.  users is the list f appends to; it may be nil.
func New(ctx context.Context, f *form.Form, users *form.MemoryUsers) Model {
	m := Model{
		ctx:    ctx,
		form:   f,
		users:  users,
		styles: DefaultStyles(),
	}
	for _, def := range f.Schema().Fields {
		fl := field{def: def}
		if !fl.isCheckbox() {
			in := textinput.New()
			in.Placeholder = def.Placeholder
			in.CharLimit = 256
			in.Width = 40
			in.Prompt = ""
			if def.Type == "password" {
				in.EchoMode = textinput.EchoPassword
				in.EchoCharacter = '•'
			}
			fl.input = in
		}
		m.fields = append(m.fields, fl)
	}
	m.state = f.Snapshot()
	m.setFocus(0)
	return m
}

// Run starts the program and blocks until the user quits or ctx ends.
func Run(ctx context.Context, f *form.Form, users *form.MemoryUsers) error {
	_, err := tea.NewProgram(New(ctx, f, users), tea.WithContext(ctx)).Run()
	return err
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case submitResultMsg:
		m.state = m.form.Snapshot()
		if msg.err == nil {
			m.syncInputs()
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "tab", "down":
			m.setFocus((m.focus + 1) % (len(m.fields) + 1))
			return m, nil
		case "shift+tab", "up":
			m.setFocus((m.focus + len(m.fields)) % (len(m.fields) + 1))
			return m, nil
		case "enter":
			if m.onButton() {
				cmd := m.submit()
				return m, cmd
			}
			m.setFocus(m.focus + 1)
			return m, nil
		case " ":
			if !m.onButton() && m.fields[m.focus].isCheckbox() {
				fl := &m.fields[m.focus]
				fl.checked = !fl.checked
				m.change(form.Event{Name: fl.def.Name, Type: "checkbox", Checked: fl.checked})
				return m, nil
			}
		}
	}

	if m.onButton() || m.fields[m.focus].isCheckbox() {
		return m, nil
	}

	// Route everything else to the focused text input.
	fl := &m.fields[m.focus]
	before := fl.input.Value()
	var cmd tea.Cmd
	fl.input, cmd = fl.input.Update(msg)
	if v := fl.input.Value(); v != before {
		m.change(form.Event{Name: fl.def.Name, Type: fl.def.Type, Value: v})
	}
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	s := m.styles
	var b strings.Builder

	b.WriteString(s.Title.Render(m.form.Schema().Title))
	b.WriteString("\n")

	for i, fl := range m.fields {
		label := s.Label
		if i == m.focus {
			label = s.FocusedLabel
		}
		b.WriteString(label.Render(fl.def.Label))
		if fl.isCheckbox() {
			box := "[ ]"
			if fl.checked {
				box = "[x]"
			}
			b.WriteString(box)
		} else {
			b.WriteString(fl.input.View())
		}
		b.WriteString("\n")
		if msg := m.state.Errors[fl.def.Name]; msg != "" {
			b.WriteString(s.Error.Render(msg))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(m.buttonView())
	b.WriteString("\n")
	if m.state.SubmitError != "" {
		b.WriteString(s.Error.UnsetPaddingLeft().Render(m.state.SubmitError))
		b.WriteString("\n")
	}

	if m.state.LastResponse != nil {
		b.WriteString(s.Section.Render("Last response"))
		b.WriteString("\n")
		b.WriteString(s.Response.Render(m.state.LastResponse.Pretty()))
		b.WriteString("\n")
	}

	if m.users != nil {
		if all := m.users.All(); len(all) > 0 {
			b.WriteString(s.Section.Render("Users"))
			b.WriteString("\n")
			for _, u := range all {
				b.WriteString("  " + u.Name + " <" + u.Email + ">\n")
			}
		}
	}

	b.WriteString(s.Help.Render("tab/shift+tab move • space toggle • enter submit • esc quit"))
	return b.String()
}

//
// helpers
//

func (m Model) onButton() bool { return m.focus >= len(m.fields) }

func (m Model) buttonView() string {
	s := m.styles
	switch {
	case m.state.Status == form.StatusSubmitting:
		return s.DisabledButton.Strikethrough(false).Render("Submitting…")
	case !m.state.SubmitEnabled:
		return s.DisabledButton.Render("Submit")
	case m.onButton():
		return s.FocusedButton.Render("Submit")
	default:
		return s.Button.Render("Submit")
	}
}

func (m *Model) setFocus(i int) {
	if i > len(m.fields) {
		i = len(m.fields)
	}
	m.focus = i
	for j := range m.fields {
		if m.fields[j].isCheckbox() {
			continue
		}
		if j == i {
			m.fields[j].input.Focus()
		} else {
			m.fields[j].input.Blur()
		}
	}
}

func (m *Model) change(ev form.Event) {
	// Names come from the schema, so Change cannot reject them.
	_, _ = m.form.Change(ev)
	m.state = m.form.Snapshot()
}

// submit returns the command running Form.Submit, or nil while the gate is
// closed.
func (m *Model) submit() tea.Cmd {
	if !m.state.SubmitEnabled {
		return nil
	}
	m.state.Status = form.StatusSubmitting
	m.state.SubmitEnabled = false

	f, ctx := m.form, m.ctx
	return func() tea.Msg {
		rec, err := f.Submit(ctx)
		return submitResultMsg{rec: rec, err: err}
	}
}

// syncInputs copies the form's values back into the widgets after a reset.
func (m *Model) syncInputs() {
	for i := range m.fields {
		fl := &m.fields[i]
		v, _ := m.state.Values.Get(fl.def.Name)
		switch x := v.(type) {
		case bool:
			fl.checked = x
		case string:
			fl.input.SetValue(x)
		}
	}
}
