package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/sadopc/pomodoro/internal/session"
)

// configFields holds the form values as strings. huh binds to pointers, so
// the struct is always used through a pointer.
type configFields struct {
	focus          string
	shortBreak     string
	cycles         string
	longBreak      string
	longBreakEvery string
}

func newConfigFields(cfg session.Config) *configFields {
	return &configFields{
		focus:          strconv.Itoa(cfg.FocusMinutes),
		shortBreak:     strconv.Itoa(cfg.BreakMinutes),
		cycles:         strconv.Itoa(cfg.Cycles),
		longBreak:      strconv.Itoa(cfg.LongBreakMinutes),
		longBreakEvery: strconv.Itoa(cfg.LongBreakEvery),
	}
}

func (f *configFields) config() (session.Config, error) {
	var cfg session.Config
	fields := []struct {
		name string
		raw  string
		dst  *int
	}{
		{"focus", f.focus, &cfg.FocusMinutes},
		{"break", f.shortBreak, &cfg.BreakMinutes},
		{"cycles", f.cycles, &cfg.Cycles},
		{"long-break", f.longBreak, &cfg.LongBreakMinutes},
		{"long-break-every", f.longBreakEvery, &cfg.LongBreakEvery},
	}
	for _, fld := range fields {
		n, err := strconv.Atoi(strings.TrimSpace(fld.raw))
		if err != nil {
			return cfg, fmt.Errorf("%w: %s is not a whole number: %q", session.ErrInvalidConfig, fld.name, fld.raw)
		}
		*fld.dst = n
	}
	return cfg, cfg.Validate()
}

func validateNonNegative(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return errors.New("enter a whole number")
	}
	if n < 0 {
		return errors.New("must not be negative")
	}
	return nil
}

func validatePositive(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return errors.New("enter a whole number")
	}
	if n < 1 {
		return errors.New("must be at least 1")
	}
	return nil
}

func (f *configFields) form() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Focus (min)").Value(&f.focus).Validate(validateNonNegative),
			huh.NewInput().Title("Break (min)").Value(&f.shortBreak).Validate(validateNonNegative),
			huh.NewInput().Title("Focus sessions").Value(&f.cycles).Validate(validateNonNegative),
			huh.NewInput().Title("Long break (min)").Value(&f.longBreak).Validate(validateNonNegative),
			huh.NewInput().Title("Long break every N sessions").Value(&f.longBreakEvery).Validate(validatePositive),
		).Title("Pomodoro"),
	).WithShowHelp(true).WithShowErrors(true)
}

// EditConfig asks for the run options, pre-filled with cfg. Aborting the
// form returns huh.ErrUserAborted.
func EditConfig(ctx context.Context, cfg session.Config) (session.Config, error) {
	fields := newConfigFields(cfg)
	if err := fields.form().RunWithContext(ctx); err != nil {
		return cfg, err
	}
	return fields.config()
}
