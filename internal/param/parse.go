package param

import (
	"math"
	"strconv"
	"strings"
)

// Parse converts raw text into a value for spec without range checking.
func Parse(spec Spec, raw string) (float64, error) {
	text := strings.TrimSpace(raw)
	if spec.IsChoice() {
		for i, opt := range spec.Options {
			if strings.EqualFold(opt, text) {
				return float64(i), nil
			}
		}
	}

	v, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &InputError{Spec: spec, Raw: raw, Err: ErrParse}
	}
	if spec.Integer && v != math.Trunc(v) {
		return 0, &InputError{Spec: spec, Raw: raw, Err: ErrParse}
	}
	return v, nil
}

// Check parses raw and verifies it lies in the spec's range.
func Check(spec Spec, raw string) (float64, error) {
	v, err := Parse(spec, raw)
	if err != nil {
		return 0, err
	}
	if !spec.Contains(v) {
		return 0, &InputError{Spec: spec, Raw: raw, Err: ErrOutOfRange}
	}
	return v, nil
}
