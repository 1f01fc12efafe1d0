package config

import "sort"

var Presets = map[string]map[string]*Config{
	"pendulum": {
		"small": {
			Simulation: "pendulum", Dt: 0.016, Duration: 20,
			Params: map[string]string{"angle": "5", "damping": "1"},
		},
		"large": {
			Simulation: "pendulum", Dt: 0.016, Duration: 20,
			Params: map[string]string{"angle": "85", "damping": "1"},
		},
		"heavy-damping": {
			Simulation: "pendulum", Dt: 0.016, Duration: 15,
			Params: map[string]string{"angle": "45", "damping": "0.95"},
		},
		"moon": {
			Simulation: "pendulum", Dt: 0.016, Duration: 30,
			Params: map[string]string{"gravity": "1.62", "damping": "1"},
		},
	},
	"pendulum-lab": {
		"period": {
			Simulation: "pendulum-lab", Dt: 0.016, Duration: 30,
			Params: map[string]string{"angle": "10", "damping": "1"},
		},
		"long": {
			Simulation: "pendulum-lab", Dt: 0.016, Duration: 40,
			Params: map[string]string{"length": "300", "damping": "1"},
		},
	},
	"collisions": {
		"head-on": {
			Simulation: "collisions", Dt: 0.016, Duration: 10,
			Params: map[string]string{"velocity1": "5", "velocity2": "-5"},
		},
		"sticky": {
			Simulation: "collisions", Dt: 0.016, Duration: 10,
			Params: map[string]string{"type": "inelastic", "mass1": "3"},
		},
		"heavy-light": {
			Simulation: "collisions", Dt: 0.016, Duration: 10,
			Params: map[string]string{"mass1": "3", "mass2": "0.5", "velocity2": "0"},
		},
	},
	"projectile-motion": {
		"max-range": {
			Simulation: "projectile-motion", Dt: 0.016, Duration: 20,
			Params: map[string]string{"angle": "45", "velocity": "50"},
		},
		"lob": {
			Simulation: "projectile-motion", Dt: 0.016, Duration: 20,
			Params: map[string]string{"angle": "75", "velocity": "40"},
		},
	},
	"energy-conservation": {
		"drop": {
			Simulation: "energy-conservation", Dt: 0.016, Duration: 5,
			Params: map[string]string{"height": "3.5"},
		},
	},
	"heat-transfer": {
		"slow": {
			Simulation: "heat-transfer", Dt: 0.016, Duration: 20,
			Params: map[string]string{"conductivity": "0.05"},
		},
		"fast": {
			Simulation: "heat-transfer", Dt: 0.016, Duration: 10,
			Params: map[string]string{"conductivity": "0.25"},
		},
	},
	"simple-harmonic-motion": {
		"slow": {
			Simulation: "simple-harmonic-motion", Dt: 0.016, Duration: 10,
			Params: map[string]string{"frequency": "0.5", "amplitude": "100"},
		},
	},
	"sound-waves": {
		"concert-a": {
			Simulation: "sound-waves", Dt: 0.016, Duration: 2,
			Params: map[string]string{"frequency": "440", "amplitude": "0.3"},
		},
		"low-hum": {
			Simulation: "sound-waves", Dt: 0.016, Duration: 2,
			Params: map[string]string{"frequency": "60", "amplitude": "0.5"},
		},
	},
	"wave-interference": {
		"beats": {
			Simulation: "wave-interference", Dt: 0.016, Duration: 10,
			Params: map[string]string{"f1": "1", "f2": "1.2"},
		},
		"cancel": {
			Simulation: "wave-interference", Dt: 0.016, Duration: 5,
			Params: map[string]string{"phase": "3.14159"},
		},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(simulation, preset string) *Config {
	byName, ok := Presets[simulation]
	if !ok {
		return nil
	}
	cfg, ok := byName[preset]
	if !ok {
		return nil
	}
	out := DefaultConfig()
	out.Merge(cfg)
	return out
}

// ListPresets returns the preset names for simulation in sorted order.
func ListPresets(simulation string) []string {
	byName, ok := Presets[simulation]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Simulations lists every simulation with presets.
func Simulations() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
