package audio

import "log/slog"

// Binding forwards session events to a Tone: frequency and amplitude
// commits retune it and run state starts or stops it.
type Binding struct {
	Tone Tone
	Log  *slog.Logger
}

func NewBinding(t Tone, log *slog.Logger) *Binding {
	if log == nil {
		log = slog.Default()
	}
	return &Binding{Tone: t, Log: log}
}

func (b *Binding) ParamChanged(key string, v float64) {
	switch key {
	case "frequency":
		if err := b.Tone.SetFrequency(v); err != nil {
			b.Log.Warn("tone frequency rejected", "hz", v, "err", err)
		}
	case "amplitude":
		b.Tone.SetGain(v)
	}
}

func (b *Binding) RunningChanged(running bool) {
	var err error
	if running {
		err = b.Tone.Start()
	} else {
		err = b.Tone.Stop()
	}
	if err != nil {
		b.Log.Error("tone", "running", running, "err", err)
	}
}
