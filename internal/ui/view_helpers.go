// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// --- View Helpers ---
// These functions generate the body and footer content for each prompt.

// renderHelp joins key bindings into a footer line.
func renderHelp(width int, bindings ...key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, footerKeyStyle.Render(h.Key)+footerDescStyle.Render(": "+h.Desc))
	}
	line := strings.Join(parts, footerSeparatorStyle.Render(" | "))
	if width > 0 {
		return lipgloss.NewStyle().Width(width).Render(line)
	}
	return line
}

func (m *quickPickModel) renderQuickPickView() (string, string) {
	b := strings.Builder{}
	if m.title != "" {
		b.WriteString(titleStyle.Render(m.title) + "\n")
	}
	if m.placeholder != "" {
		b.WriteString(placeholderStyle.Render(firstLine(m.placeholder)) + "\n")
	}
	b.WriteString("\n")

	if len(m.items) == 0 {
		b.WriteString(promptStyle.Render("(no items)") + "\n")
	}

	end := min(m.offset+maxVisibleItems, len(m.items))
	for i := m.offset; i < end; i++ {
		cursor := "  "
		label := m.items[i]
		if m.cursor == i {
			cursor = cursorStyle.Render("> ")
			label = selectedStyle.Render(label)
		}
		number := "   "
		if i < 9 {
			number = promptStyle.Render(fmt.Sprintf("%d. ", i+1))
		}
		b.WriteString(cursor + number + label + "\n")
	}
	if len(m.items) > maxVisibleItems {
		b.WriteString(promptStyle.Render(fmt.Sprintf("(%d/%d)", m.cursor+1, len(m.items))) + "\n")
	}

	footer := renderHelp(m.width, m.keymap.Up, m.keymap.Down, m.keymap.Enter, m.keymap.Esc)
	return b.String(), footer
}

func (m *inputBoxModel) renderInputBoxView() (string, string) {
	b := strings.Builder{}
	if m.opts.Title != "" {
		b.WriteString(titleStyle.Render(m.opts.Title) + "\n")
	}
	b.WriteString(m.input.View() + "\n")
	if m.validation != "" {
		b.WriteString(errorStyle.Render(m.validation) + "\n")
	} else if m.opts.Prompt != "" {
		b.WriteString(promptStyle.Render(m.opts.Prompt) + "\n")
	}

	bindings := []key.Binding{m.keymap.Enter, m.keymap.Esc}
	if m.opts.Password {
		bindings = append(bindings, m.keymap.Reveal)
	}
	return b.String(), renderHelp(m.width, bindings...)
}

// firstLine shortens multi-line text to its first line for use as a caption.
func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + " …"
	}
	return s
}
