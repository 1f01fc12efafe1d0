// Package param declares simulation inputs and gates raw user text before it
// reaches a model.
//
// A [Set] holds the committed value of every declared [Spec]. Commits either
// succeed completely or leave the set exactly as it was.
package param

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

type Spec struct {
	Key     string
	Label   string
	Unit    string
	Min     float64
	Max     float64
	Default float64

	// Integer specs reject fractional input.
	Integer bool

	// Options turns the spec into a choice; the committed value is the index.
	Options []string

	// LockedWhileRunning specs can only be committed while a session is paused.
	LockedWhileRunning bool
}

// Choice builds an option spec whose range is the option index range.
func Choice(key, label string, def int, options ...string) Spec {
	return Spec{
		Key:     key,
		Label:   label,
		Min:     0,
		Max:     float64(len(options) - 1),
		Default: float64(def),
		Integer: true,
		Options: options,
	}
}

func (s Spec) IsChoice() bool { return len(s.Options) > 0 }

// Contains reports whether v lies in [Min, Max].
func (s Spec) Contains(v float64) bool {
	return v >= s.Min && v <= s.Max
}

// Clamp limits v to [Min, Max] and rounds integer specs.
func (s Spec) Clamp(v float64) float64 {
	if s.Integer {
		v = math.Round(v)
	}
	return math.Min(s.Max, math.Max(s.Min, v))
}

// Option returns the option name for a committed choice value.
func (s Spec) Option(v float64) string {
	i := int(math.Round(v))
	if i < 0 || i >= len(s.Options) {
		return ""
	}
	return s.Options[i]
}

// Format renders a committed value the way a user would type it back.
func (s Spec) Format(v float64) string {
	if s.IsChoice() {
		return s.Option(v)
	}
	if s.Integer {
		return strconv.Itoa(int(math.Round(v)))
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Range describes the accepted input for error messages.
func (s Spec) Range() string {
	if s.IsChoice() {
		return "one of " + strings.Join(s.Options, ", ")
	}
	return fmt.Sprintf("between %s and %s", trim(s.Min), trim(s.Max))
}

func (s Spec) name() string {
	if s.Label != "" {
		return s.Label
	}
	return s.Key
}

func (s Spec) validate() error {
	if s.Key == "" {
		return fmt.Errorf("param: spec without key")
	}
	if s.Min > s.Max {
		return fmt.Errorf("param: %s has min %g > max %g", s.Key, s.Min, s.Max)
	}
	if !s.Contains(s.Default) {
		return fmt.Errorf("param: %s default %g outside [%g, %g]", s.Key, s.Default, s.Min, s.Max)
	}
	return nil
}

func trim(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
