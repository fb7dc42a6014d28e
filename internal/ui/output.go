// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package ui

import (
	"fmt"
	"io"
	"sync"

	"better-naming/internal/logger"
)

// OutputChannel collects lines in memory and in the structured log. Show
// prints the lines appended since the last Show.
type OutputChannel struct {
	mu      sync.Mutex
	name    string
	w       io.Writer
	lines   []string
	printed int
}

func NewOutputChannel(name string, w io.Writer) *OutputChannel {
	return &OutputChannel{name: name, w: w}
}

func (o *OutputChannel) AppendLine(line string) {
	o.mu.Lock()
	o.lines = append(o.lines, line)
	o.mu.Unlock()
	logger.Info(line, "channel", o.name)
}

// Show writes unseen lines under a channel header. preserveFocus has no
// meaning on a terminal.
func (o *OutputChannel) Show(preserveFocus bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.printed == len(o.lines) {
		return
	}
	for _, line := range o.lines[o.printed:] {
		fmt.Fprintf(o.w, "%s %s\n", channelStyle.Render("["+o.name+"]"), line)
	}
	o.printed = len(o.lines)
}

// Lines returns every line appended so far.
func (o *OutputChannel) Lines() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]string(nil), o.lines...)
}
