// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package editor provides terminal-side implementations of host.Editor: a
// file on disk with a line:column selection, and a filter that reads the
// selection from stdin and writes the edited text to stdout.
package editor

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	"better-naming/internal/host"
)

// ErrDocumentChanged is returned by Replace when the selected text is no
// longer at the selected range.
var ErrDocumentChanged = errors.New("document changed since the selection was read")

// ParseRange parses a 1-based "line:col-line:col" range as typed on the
// command line into a zero-based host.Range. A bare "line-line" selects
// whole lines, end line included.
func ParseRange(s string) (host.Range, error) {
	startStr, endStr, ok := strings.Cut(strings.TrimSpace(s), "-")
	if !ok {
		return host.Range{}, fmt.Errorf("invalid range %q: expected start-end", s)
	}
	start, startHasCol, err := parsePosition(startStr)
	if err != nil {
		return host.Range{}, fmt.Errorf("invalid range start %q: %w", startStr, err)
	}
	end, endHasCol, err := parsePosition(endStr)
	if err != nil {
		return host.Range{}, fmt.Errorf("invalid range end %q: %w", endStr, err)
	}
	if startHasCol != endHasCol {
		return host.Range{}, fmt.Errorf("invalid range %q: give columns on both ends or neither", s)
	}
	if !startHasCol {
		// whole lines: end at the start of the following line
		end = host.Position{Line: end.Line + 1}
	}
	if end.Before(start) {
		return host.Range{}, fmt.Errorf("invalid range %q: end before start", s)
	}
	return host.Range{Start: start, End: end}, nil
}

func parsePosition(s string) (host.Position, bool, error) {
	lineStr, colStr, hasCol := strings.Cut(s, ":")
	line, err := strconv.Atoi(lineStr)
	if err != nil || line < 1 {
		return host.Position{}, false, fmt.Errorf("line must be a positive number")
	}
	pos := host.Position{Line: line - 1}
	if hasCol {
		col, err := strconv.Atoi(colStr)
		if err != nil || col < 1 {
			return host.Position{}, false, fmt.Errorf("column must be a positive number")
		}
		pos.Character = col - 1
	}
	return pos, hasCol, nil
}

// offset converts a position to a byte offset in text. Characters count
// runes. Positions past the end of a line or of the text are clamped.
func offset(text string, p host.Position) int {
	off := 0
	for line := 0; line < p.Line; line++ {
		i := strings.IndexByte(text[off:], '\n')
		if i < 0 {
			return len(text)
		}
		off += i + 1
	}
	lineEnd := len(text)
	if i := strings.IndexByte(text[off:], '\n'); i >= 0 {
		lineEnd = off + i
	}
	for ch := 0; ch < p.Character && off < lineEnd; ch++ {
		_, size := utf8.DecodeRuneInString(text[off:])
		off += size
	}
	return off
}

// endPosition returns the position just past the last character of text.
func endPosition(text string) host.Position {
	line := strings.Count(text, "\n")
	last := text[strings.LastIndexByte(text, '\n')+1:]
	return host.Position{Line: line, Character: len([]rune(last))}
}

// FileEditor edits a file on disk.
type FileEditor struct {
	mu   sync.Mutex
	path string
	rng  *host.Range
	perm os.FileMode
	// last selection handed out, used to detect concurrent edits
	selected *host.Selection
}

// NewFileEditor returns an editor for path. A nil rng selects the whole file.
func NewFileEditor(path string, rng *host.Range) *FileEditor {
	return &FileEditor{path: path, rng: rng}
}

func (e *FileEditor) read() (string, error) {
	info, err := os.Stat(e.path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", e.path, err)
	}
	e.perm = info.Mode().Perm()
	data, err := os.ReadFile(e.path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", e.path, err)
	}
	return string(data), nil
}

// Selection returns the configured range of the file and its text.
func (e *FileEditor) Selection() (host.Selection, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	text, err := e.read()
	if err != nil {
		return host.Selection{}, err
	}
	rng := host.Range{End: endPosition(text)}
	if e.rng != nil {
		rng = *e.rng
	}
	start, end := offset(text, rng.Start), offset(text, rng.End)
	if end < start {
		return host.Selection{}, fmt.Errorf("invalid range %s", rng)
	}
	sel := host.Selection{Range: rng, Text: text[start:end]}
	e.selected = &sel
	return sel, nil
}

// Replace swaps the text covered by r and rewrites the file atomically. When
// r is the range last returned by Selection, the file must still hold the
// selected text there.
func (e *FileEditor) Replace(r host.Range, replacement string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	text, err := e.read()
	if err != nil {
		return err
	}
	start, end := offset(text, r.Start), offset(text, r.End)
	if end < start {
		return fmt.Errorf("invalid range %s", r)
	}
	if e.selected != nil && e.selected.Range == r && text[start:end] != e.selected.Text {
		return ErrDocumentChanged
	}
	updated := text[:start] + replacement + text[end:]
	return writeFileAtomic(e.path, []byte(updated), e.perm)
}

func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	if perm == 0 {
		perm = 0644
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", path, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close %s: %w", tmpName, err)
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to set permissions on %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

// StreamEditor treats all of its input as the selection and writes the
// edited text to its output. Flush must be called once the command has
// finished so that the original text is echoed when nothing was picked.
type StreamEditor struct {
	mu       sync.Mutex
	in       io.Reader
	out      io.Writer
	text     *string
	replaced bool
}

func NewStreamEditor(in io.Reader, out io.Writer) *StreamEditor {
	return &StreamEditor{in: in, out: out}
}

func (e *StreamEditor) load() (string, error) {
	if e.text != nil {
		return *e.text, nil
	}
	data, err := io.ReadAll(e.in)
	if err != nil {
		return "", fmt.Errorf("failed to read selection: %w", err)
	}
	s := string(data)
	e.text = &s
	return s, nil
}

// Selection reads the input once and returns it as the selection.
func (e *StreamEditor) Selection() (host.Selection, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	text, err := e.load()
	if err != nil {
		return host.Selection{}, err
	}
	return host.Selection{Range: host.Range{End: endPosition(text)}, Text: text}, nil
}

// Replace writes the edited input to the output.
func (e *StreamEditor) Replace(r host.Range, replacement string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	text, err := e.load()
	if err != nil {
		return err
	}
	start, end := offset(text, r.Start), offset(text, r.End)
	if end < start {
		return fmt.Errorf("invalid range %s", r)
	}
	if _, err := io.WriteString(e.out, text[:start]+replacement+text[end:]); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}
	e.replaced = true
	return nil
}

// Flush echoes the original input if no replacement was written.
func (e *StreamEditor) Flush() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.replaced || e.text == nil {
		return nil
	}
	_, err := io.WriteString(e.out, *e.text)
	return err
}
