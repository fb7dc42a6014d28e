// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package ui implements the host UI primitives on a terminal: colored
// notifications, Bubble Tea prompts for text input and quick picks, an
// output channel backed by the structured log, and a busy spinner.
package ui

import (
	"fmt"
	"io"
	"os"
	"time"

	"better-naming/internal/host"
	"better-naming/internal/logger"

	"github.com/briandowns/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

var (
	infoColor  = color.New(color.FgCyan)
	errorColor = color.New(color.FgRed)
)

// TerminalUI draws prompts on the terminal. Prompts and notifications go to
// stderr so that stdout stays free for filter output.
type TerminalUI struct {
	in      io.Reader
	out     io.Writer
	notify  io.Writer
	closeIn func() error
}

// NewTerminalUI returns a UI bound to the process terminal. When stdin is
// not a terminal (the selection is being piped in) keyboard input is read
// from /dev/tty instead.
func NewTerminalUI() *TerminalUI {
	u := &TerminalUI{out: os.Stderr, notify: os.Stderr}
	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		if tty, err := os.Open("/dev/tty"); err == nil {
			u.in = tty
			u.closeIn = tty.Close
		} else {
			logger.Warn("no terminal available for prompts", "error", err)
		}
	}
	return u
}

// NewTerminalUIWith returns a UI reading keys from in, drawing on out and
// printing notifications to notify.
func NewTerminalUIWith(in io.Reader, out, notify io.Writer) *TerminalUI {
	return &TerminalUI{in: in, out: out, notify: notify}
}

// Close releases the terminal opened by NewTerminalUI, if any.
func (u *TerminalUI) Close() error {
	if u.closeIn != nil {
		return u.closeIn()
	}
	return nil
}

func (u *TerminalUI) programOptions() []tea.ProgramOption {
	opts := []tea.ProgramOption{tea.WithOutput(u.out), tea.WithReportFocus()}
	if u.in != nil {
		opts = append(opts, tea.WithInput(u.in))
	}
	return opts
}

func (u *TerminalUI) ShowInformationMessage(msg string) {
	infoColor.Fprintln(u.notify, msg)
}

func (u *TerminalUI) ShowErrorMessage(msg string) {
	errorColor.Fprintln(u.notify, msg)
}

// ShowInputBox runs an input prompt until the user accepts a value that
// passes validation or dismisses it.
func (u *TerminalUI) ShowInputBox(opts host.InputBoxOptions) (string, bool, error) {
	final, err := tea.NewProgram(newInputBoxModel(opts), u.programOptions()...).Run()
	if err != nil {
		return "", false, fmt.Errorf("input prompt failed: %w", err)
	}
	m, ok := final.(inputBoxModel)
	if !ok {
		return "", false, fmt.Errorf("input prompt returned unexpected model %T", final)
	}
	value, accepted := m.value()
	return value, accepted, nil
}

// ShowQuickPick runs a list prompt. OnDidSelectItem is called with the
// accepted item before ShowQuickPick returns.
func (u *TerminalUI) ShowQuickPick(items []string, opts host.QuickPickOptions) (string, bool, error) {
	final, err := tea.NewProgram(newQuickPickModel(items, opts), u.programOptions()...).Run()
	if err != nil {
		return "", false, fmt.Errorf("quick pick failed: %w", err)
	}
	m, ok := final.(quickPickModel)
	if !ok {
		return "", false, fmt.Errorf("quick pick returned unexpected model %T", final)
	}
	item, picked := m.picked()
	if picked && opts.OnDidSelectItem != nil {
		opts.OnDidSelectItem(item)
	}
	return item, picked, nil
}

// Busy starts a spinner on f with the given suffix and returns a function
// that stops it. Nothing is drawn unless f is a terminal.
func Busy(f *os.File) func(message string) func() {
	return func(message string) func() {
		s := spinner.New(spinner.CharSets[14], pendingSpinnerMs*time.Millisecond, spinner.WithWriterFile(f))
		s.Suffix = message
		_ = s.Color("cyan")
		s.Start()
		return s.Stop
	}
}
