// Package prompt provides interactive terminal input for snipd commands.
package prompt

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"
)

// ErrCancelled is returned when the user aborts an interactive prompt.
var ErrCancelled = errors.New("cancelled by user")

// Prompter interface wraps basic prompting functionality for testability
type Prompter interface {
	Prompt(string) (string, error)
	Close() error
}

// LinerPrompter wraps liner.State to implement Prompter interface
type LinerPrompter struct {
	*liner.State
}

// NewLinerPrompter creates a new liner-based prompter
func NewLinerPrompter() Prompter {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	return &LinerPrompter{State: line}
}

// TextInput provides simple text input with colored prompt
func TextInput(prompt string) (string, error) {
	prompter := NewLinerPrompter()
	defer func() { _ = prompter.Close() }()

	return TextInputWithPrompter(prompter, prompt)
}

// TextInputWithPrompter provides simple text input using a custom prompter
func TextInputWithPrompter(prompter Prompter, prompt string) (string, error) {
	coloredPrompt := color.CyanString(prompt + " ")
	result, err := prompter.Prompt(coloredPrompt)
	if err != nil {
		if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
			return "", ErrCancelled
		}
		return "", fmt.Errorf("text input failed: %w", err)
	}
	return result, nil
}

// Confirm asks a yes/no question on the terminal; an empty answer picks the
// default.
func Confirm(prompt string, defaultYes bool) (bool, error) {
	prompter := NewLinerPrompter()
	defer func() { _ = prompter.Close() }()

	return ConfirmWithPrompter(prompter, prompt, defaultYes)
}

// ConfirmWithPrompter asks a yes/no question; an empty answer picks the
// default.
func ConfirmWithPrompter(prompter Prompter, prompt string, defaultYes bool) (bool, error) {
	suffix := " [y/N]"
	if defaultYes {
		suffix = " [Y/n]"
	}

	answer, err := prompter.Prompt(color.CyanString(prompt + suffix + " "))
	if err != nil {
		if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
			return false, ErrCancelled
		}
		return false, fmt.Errorf("confirm input failed: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "":
		return defaultYes, nil
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
