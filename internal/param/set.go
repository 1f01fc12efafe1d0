package param

import (
	"fmt"
	"sort"
	"strings"
)

type Set struct {
	specs  []Spec
	index  map[string]int
	values map[string]float64
}

func NewSet(specs ...Spec) (*Set, error) {
	s := &Set{
		specs:  make([]Spec, 0, len(specs)),
		index:  make(map[string]int, len(specs)),
		values: make(map[string]float64, len(specs)),
	}
	for _, spec := range specs {
		if err := spec.validate(); err != nil {
			return nil, err
		}
		if _, dup := s.index[spec.Key]; dup {
			return nil, fmt.Errorf("param: duplicate key %s", spec.Key)
		}
		s.index[spec.Key] = len(s.specs)
		s.specs = append(s.specs, spec)
		s.values[spec.Key] = spec.Default
	}
	return s, nil
}

// MustSet is NewSet for statically declared specs.
func MustSet(specs ...Spec) *Set {
	s, err := NewSet(specs...)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Set) Specs() []Spec {
	out := make([]Spec, len(s.specs))
	copy(out, s.specs)
	return out
}

func (s *Set) Spec(key string) (Spec, bool) {
	i, ok := s.index[key]
	if !ok {
		return Spec{}, false
	}
	return s.specs[i], true
}

func (s *Set) Get(key string) float64 { return s.values[key] }

// Values returns a copy of every committed value.
func (s *Set) Values() map[string]float64 {
	out := make(map[string]float64, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// Validate checks raw against the spec for key without committing.
func (s *Set) Validate(key, raw string) (float64, error) {
	spec, ok := s.Spec(key)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownParam, key)
	}
	return Check(spec, raw)
}

// Commit validates raw and stores it; a rejected value leaves the set unchanged.
func (s *Set) Commit(key, raw string) (float64, error) {
	v, err := s.Validate(key, raw)
	if err != nil {
		return 0, err
	}
	spec, _ := s.Spec(key)
	v = spec.Clamp(v)
	s.values[key] = v
	return v, nil
}

// CommitAll replaces several values at once. Nothing is stored unless every
// entry validates.
func (s *Set) CommitAll(raw map[string]string) (map[string]float64, error) {
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return s.order(keys[i]) < s.order(keys[j]) })

	staged := make(map[string]float64, len(raw))
	for _, k := range keys {
		v, err := s.Validate(k, raw[k])
		if err != nil {
			return nil, err
		}
		spec, _ := s.Spec(k)
		staged[k] = spec.Clamp(v)
	}
	for k, v := range staged {
		s.values[k] = v
	}
	return staged, nil
}

// Reset restores every default.
func (s *Set) Reset() {
	for _, spec := range s.specs {
		s.values[spec.Key] = spec.Default
	}
}

// Describe renders "key=value" pairs in declaration order.
func (s *Set) Describe() string {
	parts := make([]string, 0, len(s.specs))
	for _, spec := range s.specs {
		parts = append(parts, spec.Key+"="+spec.Format(s.values[spec.Key]))
	}
	return strings.Join(parts, " ")
}

func (s *Set) order(key string) int {
	if i, ok := s.index[key]; ok {
		return i
	}
	return len(s.specs)
}
