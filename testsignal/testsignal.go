// Package testsignal holds simplified free-running oscillators and
// modulation rigs used to exercise the audio host path. They are not
// hardware accurate; the apu package is the emulated sound hardware.
package testsignal

const (
	maxAmplitude = 32767

	squareMinFreq = 220
	squareMaxFreq = 880
	sawMinFreq    = 80
	sawMaxFreq    = 880
)

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Toggler is implemented by signals with a secondary mode switch (duty
// pattern, LFSR width or sweep direction).
type Toggler interface {
	Toggle()
}

// Resetter is implemented by signals that can restart from their
// initial state.
type Resetter interface {
	Reset()
}

// PeriodControl is implemented by signals that step at a fixed sample
// period rather than a pitch.
type PeriodControl interface {
	AdjustPeriod(delta int)
	Period() int
}
