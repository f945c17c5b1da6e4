// Package prompt asks the user questions during interactive flows such as
// first-time setup and orphan cleanup.
package prompt

import (
	stderrors "errors"
	"os"
	"strings"

	"github.com/arthur-debert/hyprlayer/pkg/errors"
	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
)

// Prompter is the set of questions the thoughts flows can ask
type Prompter interface {
	// Input asks for a line of text. An empty answer yields def. validate
	// may be nil.
	Input(title, def string, validate func(string) error) (string, error)
	// Confirm asks a yes/no question
	Confirm(title string, def bool) (bool, error)
	// Select asks the user to pick one option and returns its index
	Select(title string, options []string) (int, error)
}

// Huh implements Prompter with charmbracelet/huh forms. Without a terminal
// on stdin the forms fall back to huh's accessible line mode.
type Huh struct {
	Accessible bool
	Theme      *huh.Theme
}

// NewHuh creates a Prompter suitable for the current terminal
func NewHuh() *Huh {
	fd := os.Stdin.Fd()
	return &Huh{
		Accessible: !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd),
		Theme:      huh.ThemeCharm(),
	}
}

func (h *Huh) run(field huh.Field) error {
	form := huh.NewForm(huh.NewGroup(field)).
		WithAccessible(h.Accessible).
		WithTheme(h.Theme)
	if err := form.Run(); err != nil {
		if stderrors.Is(err, huh.ErrUserAborted) {
			return errors.New(errors.ErrCancelled, "cancelled")
		}
		return errors.Wrap(err, errors.ErrInternal, "prompt failed")
	}
	return nil
}

// Input implements Prompter
func (h *Huh) Input(title, def string, validate func(string) error) (string, error) {
	value := def
	field := huh.NewInput().
		Title(title).
		Placeholder(def).
		Value(&value).
		Validate(func(s string) error {
			if validate == nil {
				return nil
			}
			return validate(orDefault(s, def))
		})
	if err := h.run(field); err != nil {
		return "", err
	}
	return orDefault(value, def), nil
}

// Confirm implements Prompter
func (h *Huh) Confirm(title string, def bool) (bool, error) {
	value := def
	field := huh.NewConfirm().
		Title(title).
		Affirmative("Yes").
		Negative("No").
		Value(&value)
	if err := h.run(field); err != nil {
		return false, err
	}
	return value, nil
}

// Select implements Prompter
func (h *Huh) Select(title string, options []string) (int, error) {
	if len(options) == 0 {
		return 0, errors.New(errors.ErrInvalidInput, "nothing to select from")
	}

	opts := make([]huh.Option[int], len(options))
	for i, label := range options {
		opts[i] = huh.NewOption(label, i)
	}

	var choice int
	field := huh.NewSelect[int]().
		Title(title).
		Options(opts...).
		Value(&choice)
	if err := h.run(field); err != nil {
		return 0, err
	}
	return choice, nil
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return strings.TrimSpace(s)
}
