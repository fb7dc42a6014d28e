// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package ui

// state represents the lifecycle of a prompt model.
type state int

const (
	stateEditing state = iota
	stateAccepted
	stateDismissed
)

const (
	inputCharLimit   = 256 // API keys are well under this.
	inputWidth       = 60
	maxVisibleItems  = 10 // Quick pick rows shown before scrolling.
	pendingSpinnerMs = 100
)
