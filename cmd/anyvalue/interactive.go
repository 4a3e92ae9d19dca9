package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/wippyai/anyvalue"
	"github.com/wippyai/anyvalue/functor"
	"github.com/wippyai/anyvalue/guest"
	"github.com/wippyai/anyvalue/value"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	funcStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// InteractiveCmd runs the terminal UI.
type InteractiveCmd struct {
	ConfigFlag
}

func (c *InteractiveCmd) Execute(_ []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("interactive mode needs a terminal on stdout")
	}
	ctx, stop := interruptContext()
	defer stop()
	s, err := openSession(ctx, c.Config)
	if err != nil {
		return err
	}
	defer s.Close(ctx)

	m := newInteractiveModel(ctx, s)
	defer m.release()
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

type modelState int

const (
	stateSelectFunc modelState = iota
	stateInput
	stateShowResult
)

// bound is an export bound on first use. Calls run as tea commands on their
// own goroutines, so the functor is only reached through the decorator.
type bound struct {
	fn   *guest.Functor
	safe anyvalue.Functor
}

type interactiveModel struct {
	ctx      context.Context
	err      error
	session  *session
	result   *value.Value
	bound    map[string]*bound
	funcs    []guest.Export
	input    textinput.Model
	selected int
	state    modelState
}

type callResultMsg struct {
	err    error
	result *value.Value
}

func newInteractiveModel(ctx context.Context, s *session) *interactiveModel {
	funcs := s.module.Exports()
	for i, e := range funcs {
		if sig, err := s.signatureFor(e.Name); err == nil && sig != nil {
			funcs[i].Signature = *sig
		}
	}
	return &interactiveModel{
		ctx:     ctx,
		session: s,
		funcs:   funcs,
		bound:   make(map[string]*bound),
		state:   stateSelectFunc,
	}
}

func (m *interactiveModel) Init() tea.Cmd {
	return nil
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "q":
			if m.state != stateInput {
				return m, tea.Quit
			}

		case "up", "k":
			if m.state == stateSelectFunc && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateSelectFunc && m.selected < len(m.funcs)-1 {
				m.selected++
			}

		case "enter":
			switch m.state {
			case stateSelectFunc:
				if len(m.funcs) == 0 {
					return m, nil
				}
				if len(m.funcs[m.selected].Signature.Params) == 0 {
					return m, m.callFunction("")
				}
				m.prepareInput()
				m.state = stateInput
				return m, nil

			case stateInput:
				return m, m.callFunction(m.input.Value())

			case stateShowResult:
				m.reset()
				return m, nil
			}

		case "esc":
			if m.state != stateSelectFunc {
				m.reset()
				return m, nil
			}
		}

	case callResultMsg:
		m.result = msg.result
		m.err = msg.err
		m.state = stateShowResult
		return m, nil
	}

	if m.state == stateInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *interactiveModel) reset() {
	m.state = stateSelectFunc
	m.result = nil
	m.err = nil
}

func (m *interactiveModel) prepareInput() {
	sig := m.funcs[m.selected].Signature
	ti := textinput.New()
	ti.Placeholder = kindList(sig)
	ti.Prompt = "input: "
	ti.Width = 40
	ti.Focus()
	m.input = ti
}

func (m *interactiveModel) bind(e guest.Export) (*bound, error) {
	if b, ok := m.bound[e.Name]; ok {
		return b, nil
	}
	sig := e.Signature
	f, err := m.session.module.Functor(m.ctx, e.Name, &sig)
	if err != nil {
		return nil, err
	}
	b := &bound{fn: f, safe: functor.NewThreadsafe(f)}
	m.bound[e.Name] = b
	return b, nil
}

func (m *interactiveModel) callFunction(text string) tea.Cmd {
	e := m.funcs[m.selected]
	b, err := m.bind(e)
	if err != nil {
		return func() tea.Msg { return callResultMsg{err: err} }
	}
	return func() tea.Msg {
		in, err := e.Signature.ParseInput(text)
		if err != nil {
			return callResultMsg{err: err}
		}
		out, err := b.safe.Call(in)
		return callResultMsg{result: out, err: err}
	}
}

func (m *interactiveModel) release() {
	for name, b := range m.bound {
		if err := anyvalue.Release(b.fn); err != nil {
			m.session.logger.Sugar().Warnf("close functor %s: %v", name, err)
		}
	}
	m.bound = nil
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("AnyValue"))
	b.WriteString(" ")
	b.WriteString(m.session.module.Name())
	b.WriteString("\n\n")

	if len(m.funcs) == 0 {
		b.WriteString("Module exports no callable functions.\n\n")
		b.WriteString(helpStyle.Render("q quit"))
		return b.String()
	}

	switch m.state {
	case stateSelectFunc:
		b.WriteString("Select a function to call:\n\n")
		for i, f := range m.funcs {
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + f.Name))
				b.WriteString(" " + typeStyle.Render(f.Signature.WIT()))
			} else {
				b.WriteString("  " + funcStyle.Render(f.Name) + " " + typeStyle.Render(f.Signature.WIT()))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter call • q quit"))

	case stateInput:
		f := m.funcs[m.selected]
		b.WriteString(fmt.Sprintf("Calling %s %s\n\n", funcStyle.Render(f.Name), typeStyle.Render(f.Signature.String())))
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("comma separates values • enter call • esc back"))

	case stateShowResult:
		f := m.funcs[m.selected]
		b.WriteString(fmt.Sprintf("Result of %s:\n\n", funcStyle.Render(f.Name)))
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		} else {
			b.WriteString(resultStyle.Render(m.result.String()))
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter continue • q quit"))
	}

	return b.String()
}

func kindList(sig guest.Signature) string {
	names := make([]string, len(sig.Params))
	for i, k := range sig.Params {
		names[i] = k.String()
	}
	return strings.Join(names, ", ")
}
