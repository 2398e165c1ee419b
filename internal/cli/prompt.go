// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"strings"

	"github.com/peterh/liner"
)

// ErrAborted is returned when the user cancels a prompt with Ctrl+C.
var ErrAborted = errors.New("aborted")

// Prompter reads single lines from the user.
type Prompter interface {
	Prompt(prompt string) (string, error)
	Close() error
}

// linePrompter provides line editing for interactive prompts.
type linePrompter struct {
	line *liner.State
}

// newLinePrompter takes over the terminal until Close is called.
func newLinePrompter() (Prompter, error) {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	return &linePrompter{line: line}, nil
}

// Prompt reads a line. Ctrl+C returns ErrAborted.
func (p *linePrompter) Prompt(prompt string) (string, error) {
	input, err := p.line.Prompt(prompt)
	if errors.Is(err, liner.ErrPromptAborted) {
		return "", ErrAborted
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(input), nil
}

// Close restores the terminal.
func (p *linePrompter) Close() error {
	return p.line.Close()
}
