package main

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const historySize = 20

type interactiveModel struct {
	err     error
	session *session
	cfg     sessionConfig
	history []historyEntry
	input   textinput.Model
}

type historyEntry struct {
	err error
	cmd string
	out string
}

type sessionMsg struct {
	err     error
	session *session
}

func newInteractiveModel(cfg sessionConfig) *interactiveModel {
	ti := textinput.New()
	ti.Placeholder = "push 1; push 2; show"
	ti.Prompt = "> "
	ti.Width = 60
	ti.Focus()
	return &interactiveModel{cfg: cfg, input: ti}
}

func (m *interactiveModel) Init() tea.Cmd {
	return tea.Batch(m.openSession, textinput.Blink)
}

func (m *interactiveModel) openSession() tea.Msg {
	s, err := newSession(context.Background(), m.cfg)
	return sessionMsg{session: s, err: err}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			if m.session != nil {
				_ = m.session.Close()
			}
			return m, tea.Quit

		case "enter":
			if m.session == nil {
				return m, nil
			}
			for _, cmd := range splitScript(m.input.Value()) {
				out, err := m.session.Exec(cmd)
				m.history = append(m.history, historyEntry{cmd: cmd, out: out, err: err})
			}
			if n := len(m.history); n > historySize {
				m.history = m.history[n-historySize:]
			}
			m.input.SetValue("")
			return m, nil
		}

	case sessionMsg:
		m.err = msg.err
		m.session = msg.session
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *interactiveModel) View() string {
	if m.err != nil {
		return errorStyle.Render("Error: "+m.err.Error()) + "\n\nPress esc to quit."
	}
	if m.session == nil {
		return "Opening session..."
	}

	var b strings.Builder
	p := printer{w: &b, styled: true}

	b.WriteString(titleStyle.Render("vectrace"))
	b.WriteString(" alloc=")
	b.WriteString(m.session.backend)
	b.WriteString(" ")
	b.WriteString(m.session.Status())
	b.WriteString("\n\n")

	for _, h := range m.history {
		p.step(h.cmd, h.out, h.err)
	}
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render(formatStats(m.session.Stats())))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter run • esc quit"))

	return b.String()
}

func runInteractive(cfg sessionConfig) error {
	p := tea.NewProgram(newInteractiveModel(cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
