package metrics

import (
	"math"

	"github.com/san-kum/physlab/internal/dynamo"
)

// Momentum tracks the largest deviation of total momentum from the first
// frame, relative when the initial momentum is non-zero and absolute
// otherwise.
type Momentum struct {
	name    string
	src     MomentumReporter
	initial float64
	maxDev  float64
	samples int
}

func NewMomentum(src MomentumReporter) *Momentum {
	return &Momentum{name: "momentum_drift", src: src}
}

func (m *Momentum) Name() string { return m.name }

func (m *Momentum) Observe(x dynamo.State, t float64) {
	p := m.src.Momentum(x)
	if m.samples == 0 {
		m.initial = p
	}
	m.samples++

	dev := math.Abs(p - m.initial)
	if m.initial != 0 {
		dev /= math.Abs(m.initial)
	}
	m.maxDev = math.Max(m.maxDev, dev)
}

func (m *Momentum) Value() float64 { return m.maxDev }

func (m *Momentum) Reset() {
	m.initial = 0
	m.maxDev = 0
	m.samples = 0
}
