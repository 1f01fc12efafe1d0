package dynamo

import (
	"errors"
	"math"
	"testing"
)

func TestStateArithmetic(t *testing.T) {
	a := State{1, 2, 3}
	b := State{0.5, 0.5}

	sum := a.Add(b)
	if sum[0] != 1.5 || sum[1] != 2.5 || sum[2] != 3 {
		t.Errorf("unexpected sum %v", sum)
	}

	diff := a.Sub(b)
	if diff[0] != 0.5 || diff[2] != 3 {
		t.Errorf("unexpected diff %v", diff)
	}

	scaled := a.Scale(2)
	if scaled[2] != 6 {
		t.Errorf("unexpected scale %v", scaled)
	}

	if a[0] != 1 {
		t.Error("arithmetic must not mutate the receiver")
	}
}

func TestStateValidity(t *testing.T) {
	tests := []struct {
		name  string
		s     State
		valid bool
	}{
		{"finite", State{1, -2}, true},
		{"nan", State{math.NaN()}, false},
		{"inf", State{0, math.Inf(-1)}, false},
		{"empty", State{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.s.IsValid(); got != tt.valid {
				t.Errorf("IsValid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestStateNormAndMaxAbs(t *testing.T) {
	s := State{3, -4}
	if s.Norm() != 5 {
		t.Errorf("expected norm 5, got %f", s.Norm())
	}
	if s.MaxAbs() != 4 {
		t.Errorf("expected max abs 4, got %f", s.MaxAbs())
	}
}

func TestCloneIsIndependent(t *testing.T) {
	s := State{1, 2}
	c := s.Clone()
	c[0] = 9
	if s[0] != 1 {
		t.Error("clone shares backing array")
	}
}

func TestUnknownParamWraps(t *testing.T) {
	err := UnknownParam("mass")
	if !errors.Is(err, ErrUnknownParam) {
		t.Errorf("expected ErrUnknownParam, got %v", err)
	}
}
