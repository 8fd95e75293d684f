package session

// Kind tells focus time apart from the two kinds of break.
type Kind int

const (
	Focus Kind = iota
	ShortBreak
	LongBreak
)

var kindNames = map[Kind]string{
	Focus:      "focus",
	ShortBreak: "short_break",
	LongBreak:  "long_break",
}

var kindLabels = map[Kind]string{
	Focus:      "Focus",
	ShortBreak: "Break",
	LongBreak:  "Long break",
}

// String returns the stable identifier used in the history journal.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Label is the text shown next to the countdown.
func (k Kind) Label() string { return kindLabels[k] }

func (k Kind) IsBreak() bool { return k == ShortBreak || k == LongBreak }

// Interval is one countdown of the plan.
type Interval struct {
	Kind    Kind
	Seconds int
	Label   string
	// Session is the 1-based focus session the interval belongs to. A break
	// carries the index of the focus session before it.
	Session int
}

// BuildPlan returns the ordered intervals of a run: a focus interval per
// cycle, each followed by a break except the last. The break after focus
// session n is long when n is a multiple of LongBreakEvery.
func BuildPlan(cfg Config) ([]Interval, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Cycles == 0 {
		return nil, nil
	}

	plan := make([]Interval, 0, 2*cfg.Cycles-1)
	for n := 1; n <= cfg.Cycles; n++ {
		plan = append(plan, newInterval(Focus, cfg.FocusMinutes, n))
		if n == cfg.Cycles {
			break
		}
		if n%cfg.LongBreakEvery == 0 {
			plan = append(plan, newInterval(LongBreak, cfg.LongBreakMinutes, n))
		} else {
			plan = append(plan, newInterval(ShortBreak, cfg.BreakMinutes, n))
		}
	}
	return plan, nil
}

func newInterval(k Kind, minutes, session int) Interval {
	return Interval{
		Kind:    k,
		Seconds: minutes * 60,
		Label:   k.Label(),
		Session: session,
	}
}
