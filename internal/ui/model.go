// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package ui

import (
	"strings"

	"better-naming/internal/host"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// quickPickModel is a single-select list of suggested names.
type quickPickModel struct {
	title       string
	placeholder string
	items       []string
	cursor      int
	offset      int // first visible row
	state       state
	keymap      KeyMap
	width       int
}

func newQuickPickModel(items []string, opts host.QuickPickOptions) quickPickModel {
	return quickPickModel{
		title:       opts.Title,
		placeholder: opts.Placeholder,
		items:       items,
		keymap:      DefaultKeyMap,
	}
}

func (m quickPickModel) Init() tea.Cmd {
	return nil
}

func (m quickPickModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tea.KeyMsg:
		if cmd := m.handleQuickPickKeys(msg); cmd != nil {
			return m, cmd
		}
	}
	return m, nil
}

// picked returns the accepted item.
func (m quickPickModel) picked() (string, bool) {
	if m.state != stateAccepted || len(m.items) == 0 {
		return "", false
	}
	return m.items[m.cursor], true
}

func (m quickPickModel) View() string {
	if m.state != stateEditing {
		return ""
	}
	body, footer := m.renderQuickPickView()
	return lipgloss.JoinVertical(lipgloss.Left,
		mainContentBorderStyle.Render(strings.TrimRight(body, "\n")),
		footer,
	) + "\n"
}
