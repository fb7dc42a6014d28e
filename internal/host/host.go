// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package host defines the narrow interfaces the naming commands use to talk
// to whatever is hosting them: a secret store, an editor surface, UI
// primitives and an output channel. The terminal implementations live in the
// editor, secrets and ui packages; tests provide their own fakes.
package host

import "fmt"

// Position is a zero-based line/character location in a document.
type Position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

// Before reports whether p comes strictly before other.
func (p Position) Before(other Position) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}
	return p.Character < other.Character
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Character)
}

// Range is a half-open span [Start, End) in a document.
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// IsEmpty reports whether the range covers no characters.
func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

func (r Range) String() string {
	return r.Start.String() + "-" + r.End.String()
}

// Selection is the user-highlighted range in the active document and the
// text it covers.
type Selection struct {
	Range Range
	Text  string
}

// IsEmpty reports whether nothing is highlighted.
func (s Selection) IsEmpty() bool {
	return s.Range.IsEmpty() || s.Text == ""
}

// SecretStore persists opaque strings by key.
type SecretStore interface {
	Get(key string) (string, error)
	Store(key, value string) error
	Delete(key string) error
}

// Editor exposes the active document's selection and an edit primitive.
type Editor interface {
	// Selection returns the current selection. A missing editor is reported
	// as an error; an empty selection is not.
	Selection() (Selection, error)
	// Replace swaps the text covered by r with text.
	Replace(r Range, text string) error
}

// InputBoxOptions configures ShowInputBox.
type InputBoxOptions struct {
	Title          string
	Placeholder    string
	Prompt         string
	Password       bool
	IgnoreFocusOut bool
	// ValidateInput returns a non-empty message when value is rejected; the
	// user is then asked again.
	ValidateInput func(value string) string
}

// QuickPickOptions configures ShowQuickPick.
type QuickPickOptions struct {
	Title       string
	Placeholder string
	// OnDidSelectItem is called with the item the user accepted.
	OnDidSelectItem func(item string)
}

// UI is the set of notification and prompt primitives.
type UI interface {
	ShowInformationMessage(msg string)
	ShowErrorMessage(msg string)
	// ShowInputBox returns ok=false when the user dismissed the prompt.
	ShowInputBox(opts InputBoxOptions) (value string, ok bool, err error)
	// ShowQuickPick returns ok=false when the user dismissed the list.
	ShowQuickPick(items []string, opts QuickPickOptions) (picked string, ok bool, err error)
}

// OutputChannel is an append-only log surface the user can reveal.
type OutputChannel interface {
	AppendLine(line string)
	Show(preserveFocus bool)
}

// PrintChannelOutput appends content to ch and reveals the channel when
// reveal is set.
func PrintChannelOutput(ch OutputChannel, content string, reveal bool) {
	ch.AppendLine(content)
	if reveal {
		ch.Show(true)
	}
}
