package param

import (
	"errors"
	"strings"
	"testing"
)

func pendulumSet(t *testing.T) *Set {
	t.Helper()
	s, err := NewSet(
		Spec{Key: "length", Label: "length", Unit: "cm", Min: 50, Max: 300, Default: 200},
		Spec{Key: "damping", Min: 0.95, Max: 1, Default: 0.99},
		Choice("type", "collision type", 0, "elastic", "inelastic"),
		Spec{Key: "level", Min: 1, Max: 4, Default: 1, Integer: true},
	)
	if err != nil {
		t.Fatalf("NewSet failed: %v", err)
	}
	return s
}

func TestNewSetDefaults(t *testing.T) {
	s := pendulumSet(t)
	if s.Get("length") != 200 {
		t.Errorf("expected default length 200, got %f", s.Get("length"))
	}
	if s.Get("damping") != 0.99 {
		t.Errorf("expected default damping 0.99, got %f", s.Get("damping"))
	}
}

func TestNewSetRejectsBadSpecs(t *testing.T) {
	tests := []struct {
		name  string
		specs []Spec
	}{
		{"min above max", []Spec{{Key: "a", Min: 2, Max: 1, Default: 1}}},
		{"default outside", []Spec{{Key: "a", Min: 0, Max: 1, Default: 5}}},
		{"duplicate", []Spec{{Key: "a", Max: 1}, {Key: "a", Max: 1}}},
		{"missing key", []Spec{{Max: 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewSet(tt.specs...); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestCommitRejectsOutOfRange(t *testing.T) {
	s := pendulumSet(t)

	for _, raw := range []string{"49.9", "300.1", "-10"} {
		_, err := s.Commit("length", raw)
		if !errors.Is(err, ErrOutOfRange) {
			t.Errorf("%s: expected ErrOutOfRange, got %v", raw, err)
		}
		if s.Get("length") != 200 {
			t.Errorf("%s: committed value changed to %f", raw, s.Get("length"))
		}
	}
}

func TestCommitRangeMessageNamesBounds(t *testing.T) {
	s := pendulumSet(t)
	_, err := s.Commit("length", "1000")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "between 50 and 300") {
		t.Errorf("message should name the range, got %q", err.Error())
	}
}

func TestCommitRejectsUnparseable(t *testing.T) {
	s := pendulumSet(t)

	for _, raw := range []string{"", "abc", "NaN", "Inf", "12abc"} {
		_, err := s.Commit("length", raw)
		if !errors.Is(err, ErrParse) {
			t.Errorf("%q: expected ErrParse, got %v", raw, err)
		}
	}
	if s.Get("length") != 200 {
		t.Error("parse failure changed committed value")
	}
}

func TestCommitAcceptsBoundsAndWhitespace(t *testing.T) {
	s := pendulumSet(t)

	v, err := s.Commit("length", " 50 ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 50 || s.Get("length") != 50 {
		t.Errorf("expected 50, got %f", s.Get("length"))
	}

	if _, err := s.Commit("length", "300"); err != nil {
		t.Fatalf("upper bound rejected: %v", err)
	}
}

func TestCommitChoice(t *testing.T) {
	s := pendulumSet(t)

	if _, err := s.Commit("type", "Inelastic"); err != nil {
		t.Fatalf("option name rejected: %v", err)
	}
	if s.Get("type") != 1 {
		t.Errorf("expected index 1, got %f", s.Get("type"))
	}

	if _, err := s.Commit("type", "sticky"); !errors.Is(err, ErrParse) {
		t.Errorf("expected ErrParse for unknown option, got %v", err)
	}
	if _, err := s.Commit("type", "2"); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange for index 2, got %v", err)
	}
	if _, err := s.Commit("type", "0"); err != nil {
		t.Errorf("index input rejected: %v", err)
	}
}

func TestCommitInteger(t *testing.T) {
	s := pendulumSet(t)
	if _, err := s.Commit("level", "2.5"); !errors.Is(err, ErrParse) {
		t.Errorf("expected ErrParse for fractional level, got %v", err)
	}
	if _, err := s.Commit("level", "3"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestCommitUnknown(t *testing.T) {
	s := pendulumSet(t)
	if _, err := s.Commit("mass", "1"); !errors.Is(err, ErrUnknownParam) {
		t.Errorf("expected ErrUnknownParam, got %v", err)
	}
}

func TestCommitAllIsAtomic(t *testing.T) {
	s := pendulumSet(t)

	_, err := s.CommitAll(map[string]string{
		"length":  "100",
		"damping": "2",
	})
	if !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange, got %v", err)
	}
	if s.Get("length") != 200 {
		t.Errorf("partial commit leaked: length=%f", s.Get("length"))
	}

	got, err := s.CommitAll(map[string]string{"length": "100", "damping": "1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got["length"] != 100 || s.Get("damping") != 1 {
		t.Errorf("values not committed: %v", s.Values())
	}
}

func TestResetAndDescribe(t *testing.T) {
	s := pendulumSet(t)
	s.Commit("length", "120")
	s.Reset()
	if s.Get("length") != 200 {
		t.Errorf("reset did not restore default")
	}

	want := "length=200 damping=0.99 type=elastic level=1"
	if got := s.Describe(); got != want {
		t.Errorf("Describe() = %q, want %q", got, want)
	}
}

func TestValuesIsCopy(t *testing.T) {
	s := pendulumSet(t)
	v := s.Values()
	v["length"] = 1
	if s.Get("length") != 200 {
		t.Error("Values exposed internal map")
	}
}
