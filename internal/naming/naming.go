// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package naming builds the completion prompt for a code selection, parses
// candidate names out of the completion text and computes the replacement
// text once a name is picked.
package naming

import (
	"errors"
	"regexp"
	"strings"
	"sync"
)

// ErrNoSuggestions is returned when the completion text is empty.
var ErrNoSuggestions = errors.New("no suggestions found")

const (
	firstPrompt = "Suggest names for this code block and give me a comma separated list - "
	morePrompt  = "Suggest a few more names for this code block and give me a comma separated list - "
)

// Session remembers the previous selection so that asking again for the
// same code requests different names.
type Session struct {
	mu            sync.Mutex
	previousInput string
}

// NewSession returns a session with no previous input.
func NewSession() *Session {
	return &Session{}
}

// Prompt returns the prompt for input. It does not record input.
func (s *Session) Prompt(input string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return BuildPrompt(input, s.previousInput)
}

// Remember records input as the previous selection.
func (s *Session) Remember(input string) {
	s.mu.Lock()
	s.previousInput = input
	s.mu.Unlock()
}

// PreviousInput returns the last remembered selection.
func (s *Session) PreviousInput() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.previousInput
}

// BuildPrompt picks the "a few more" phrasing when input repeats previous.
func BuildPrompt(input, previous string) string {
	if previous == input {
		return morePrompt + input
	}
	return firstPrompt + input
}

// Bare words, or double-quoted phrases of letters and whitespace.
var candidatePattern = regexp.MustCompile(`([a-zA-Z]+|"[a-zA-Z\s\p{Zs}]+")`)

// ParseResult extracts candidate names from completion text in order of
// appearance. It never returns nil.
func ParseResult(text string) []string {
	matches := candidatePattern.FindAllString(text, -1)
	if matches == nil {
		return []string{}
	}
	return matches
}

// Parse is ParseResult that reports ErrNoSuggestions for blank text.
func Parse(text string) ([]string, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrNoSuggestions
	}
	return ParseResult(text), nil
}

var placeholderPattern = regexp.MustCompile(`(foo|Foo)`)

// ApplyName returns input with its first foo/Foo placeholder replaced by
// name. Input without a placeholder is returned unchanged.
func ApplyName(input, name string) string {
	loc := placeholderPattern.FindStringIndex(input)
	if loc == nil {
		return input
	}
	return input[:loc[0]] + name + input[loc[1]:]
}
