// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package ui

import (
	"strings"

	"better-naming/internal/host"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// inputBoxModel is a single-line prompt. Enter runs the validator; a
// rejected value keeps the prompt open with the validation message shown.
type inputBoxModel struct {
	opts       host.InputBoxOptions
	input      textinput.Model
	validation string
	state      state
	keymap     KeyMap
	width      int
}

func newInputBoxModel(opts host.InputBoxOptions) inputBoxModel {
	t := textinput.New()
	t.Placeholder = opts.Placeholder
	t.CharLimit = inputCharLimit
	t.Width = inputWidth
	if opts.Password {
		t.EchoMode = textinput.EchoPassword
		t.EchoCharacter = '*'
	}
	t.Focus()

	return inputBoxModel{
		opts:   opts,
		input:  t,
		keymap: DefaultKeyMap,
	}
}

func (m inputBoxModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m inputBoxModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tea.BlurMsg:
		// Losing terminal focus dismisses the prompt unless told otherwise.
		if !m.opts.IgnoreFocusOut {
			m.state = stateDismissed
			return m, tea.Quit
		}
		return m, nil
	case tea.KeyMsg:
		if cmd, handled := m.handleInputBoxKeys(msg); handled {
			return m, cmd
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit validates the current value and either accepts it or records the
// validation message.
func (m *inputBoxModel) submit() tea.Cmd {
	value := m.input.Value()
	if m.opts.ValidateInput != nil {
		if msg := m.opts.ValidateInput(value); msg != "" {
			m.validation = msg
			return nil
		}
	}
	m.validation = ""
	m.state = stateAccepted
	return tea.Quit
}

// value returns the accepted value.
func (m inputBoxModel) value() (string, bool) {
	if m.state != stateAccepted {
		return "", false
	}
	return m.input.Value(), true
}

func (m inputBoxModel) View() string {
	if m.state != stateEditing {
		return ""
	}
	body, footer := m.renderInputBoxView()
	return lipgloss.JoinVertical(lipgloss.Left,
		mainContentBorderStyle.Render(strings.TrimRight(body, "\n")),
		footer,
	) + "\n"
}
