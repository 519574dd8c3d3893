package testsignal

// Saw is a free-running triangle-shaped wave built from four linear
// quarter periods: falling positive, falling negative, rising negative,
// rising positive.
type Saw struct {
	amplitude int
	frequency int
	ticks     int
}

// NewSaw creates a saw wave. The initial pitch may sit below the
// adjustable range so the wave can serve as a low frequency modulator.
func NewSaw(amplitude, frequency int) *Saw {
	return &Saw{
		amplitude: clamp(amplitude, 0, maxAmplitude),
		frequency: clamp(frequency, 1, sawMaxFreq),
	}
}

// Next returns the next sample at sampleRate.
func (s *Saw) Next(sampleRate int) int16 {
	period := sampleRate / s.frequency
	quarter := period / 4
	if quarter <= 0 {
		return 0
	}
	ticks := s.ticks
	if ticks >= period {
		ticks -= period
	}
	s.ticks = ticks + 1

	amp := s.amplitude
	switch {
	case ticks < quarter:
		return int16(amp * (quarter - ticks) / quarter)
	case ticks < 2*quarter:
		return int16(-amp * (ticks - quarter) / quarter)
	case ticks < 3*quarter:
		return int16(-amp * (quarter - (ticks - 2*quarter)) / quarter)
	default:
		return int16(amp * (ticks - 3*quarter) / quarter)
	}
}

// AdjustAmplitude changes the amplitude, clamped to 0-32767.
func (s *Saw) AdjustAmplitude(delta int) {
	s.amplitude = clamp(s.amplitude+delta, 0, maxAmplitude)
}

// Amplitude returns the amplitude.
func (s *Saw) Amplitude() int {
	return s.amplitude
}

// AdjustFrequency changes the pitch, clamped to 80-880 Hz.
func (s *Saw) AdjustFrequency(delta int) {
	s.frequency = clamp(s.frequency+delta, sawMinFreq, sawMaxFreq)
}

// Frequency returns the pitch in Hz.
func (s *Saw) Frequency() int {
	return s.frequency
}
