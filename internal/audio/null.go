package audio

// Null is a Tone with no device. It keeps an Oscillator so callers can pull
// the samples it would have played.
type Null struct {
	*Oscillator
	playing bool
	starts  int
}

func NewNull() *Null {
	return &Null{Oscillator: NewOscillator(SampleRate)}
}

func (n *Null) Start() error {
	if !n.playing {
		n.starts++
	}
	n.playing = true
	return nil
}

func (n *Null) Stop() error {
	n.playing = false
	return nil
}

func (n *Null) Playing() bool { return n.playing }

// Starts counts transitions into the playing state.
func (n *Null) Starts() int { return n.starts }

// Render returns the next n samples, or silence when stopped.
func (n *Null) Render(samples int) []float32 {
	out := make([]float32, samples)
	if n.playing {
		n.Fill(out)
	}
	return out
}
