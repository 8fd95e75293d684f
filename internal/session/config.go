package session

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrInvalidConfig is returned for a configuration the sequencer must not
// run, such as a negative duration or a zero long-break period.
var ErrInvalidConfig = errors.New("invalid configuration")

// MaxMinutes is the longest interval whose length still fits in a
// time.Duration, and so in the seconds count of an Interval.
const MaxMinutes = int(math.MaxInt64 / int64(time.Minute))

// MaxCycles bounds the plan size.
const MaxCycles = 10000

// Config is the validated input of one run. Durations are in minutes.
type Config struct {
	FocusMinutes     int
	BreakMinutes     int
	Cycles           int
	LongBreakMinutes int
	LongBreakEvery   int
}

// Default returns the conventional 25/5 Pomodoro with a 15 minute long
// break every fourth session.
func Default() Config {
	return Config{
		FocusMinutes:     25,
		BreakMinutes:     5,
		Cycles:           4,
		LongBreakMinutes: 15,
		LongBreakEvery:   4,
	}
}

func (c Config) Validate() error {
	checks := []struct {
		name  string
		value int
		max   int
	}{
		{"focus", c.FocusMinutes, MaxMinutes},
		{"break", c.BreakMinutes, MaxMinutes},
		{"cycles", c.Cycles, MaxCycles},
		{"long-break", c.LongBreakMinutes, MaxMinutes},
	}
	for _, chk := range checks {
		if chk.value < 0 {
			return fmt.Errorf("%w: %s must not be negative, got %d", ErrInvalidConfig, chk.name, chk.value)
		}
		if chk.value > chk.max {
			return fmt.Errorf("%w: %s must be at most %d, got %d", ErrInvalidConfig, chk.name, chk.max, chk.value)
		}
	}
	if c.LongBreakEvery < 1 {
		return fmt.Errorf("%w: long-break-every must be at least 1, got %d", ErrInvalidConfig, c.LongBreakEvery)
	}
	return nil
}

func (c Config) String() string {
	return fmt.Sprintf("focus=%dm, break=%dm, cycles=%d, long-break=%dm, long-break-every=%d",
		c.FocusMinutes, c.BreakMinutes, c.Cycles, c.LongBreakMinutes, c.LongBreakEvery)
}
