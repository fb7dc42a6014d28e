// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package ui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// handleQuickPickKeys handles key presses while the list is shown.
func (m *quickPickModel) handleQuickPickKeys(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keymap.Quit), key.Matches(msg, m.keymap.Esc):
		m.state = stateDismissed
		return tea.Quit
	case key.Matches(msg, m.keymap.Enter):
		if len(m.items) == 0 {
			m.state = stateDismissed
		} else {
			m.state = stateAccepted
		}
		return tea.Quit
	case key.Matches(msg, m.keymap.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keymap.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keymap.PgUp):
		m.moveCursor(-maxVisibleItems)
	case key.Matches(msg, m.keymap.PgDown):
		m.moveCursor(maxVisibleItems)
	case key.Matches(msg, m.keymap.Home):
		m.moveCursor(-len(m.items))
	case key.Matches(msg, m.keymap.End):
		m.moveCursor(len(m.items))
	default:
		// 1-9 accept the numbered item directly.
		if s := msg.String(); len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
			if idx := int(s[0] - '1'); idx < len(m.items) {
				m.cursor = idx
				m.state = stateAccepted
				return tea.Quit
			}
		}
	}
	return nil
}

// moveCursor moves the cursor by delta, clamped to the list, and scrolls the
// visible window to keep it in view.
func (m *quickPickModel) moveCursor(delta int) {
	if len(m.items) == 0 {
		return
	}
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor > len(m.items)-1 {
		m.cursor = len(m.items) - 1
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+maxVisibleItems {
		m.offset = m.cursor - maxVisibleItems + 1
	}
}

// handleInputBoxKeys handles the keys the text input does not consume. It
// reports whether the key was handled.
func (m *inputBoxModel) handleInputBoxKeys(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keymap.Quit), key.Matches(msg, m.keymap.Esc):
		m.state = stateDismissed
		return tea.Quit, true
	case key.Matches(msg, m.keymap.Enter):
		return m.submit(), true
	case m.opts.Password && key.Matches(msg, m.keymap.Reveal):
		if m.input.EchoMode == textinput.EchoPassword {
			m.input.EchoMode = textinput.EchoNormal
		} else {
			m.input.EchoMode = textinput.EchoPassword
		}
		return nil, true
	}
	// Typing clears a stale validation message.
	m.validation = ""
	return nil, false
}
