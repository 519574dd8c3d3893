package testsignal

// LFSR is a free-running 15-bit shift register noise source stepped every
// period output samples, independent of the APU clock.
type LFSR struct {
	amplitude int
	width     bool // also feed back into bit 6
	period    int

	tick int
	reg  uint16
	last bool
}

// NewLFSR creates a noise source. period is in output samples, minimum 1.
func NewLFSR(amplitude int, width bool, period int) *LFSR {
	return &LFSR{
		amplitude: clamp(amplitude, 0, maxAmplitude),
		width:     width,
		period:    max(period, 1),
		reg:       1,
	}
}

// Next returns the current inverted output bit and steps the register
// once the period elapses. The rate is unused.
func (l *LFSR) Next(int) int16 {
	if l.reg == 0 {
		l.reg = 1
	}

	out := int16(l.amplitude)
	if l.last {
		out = -out
	}

	l.tick++
	if l.tick >= l.period {
		l.tick -= l.period
	}
	if l.tick == 0 {
		bit0 := l.reg & 0x01
		feedback := bit0 ^ (l.reg>>1)&0x01
		reg := l.reg>>1 | feedback<<14
		if l.width {
			reg |= feedback << 6
		}
		l.reg = reg
		l.last = bit0 == 1
	}
	return out
}

// AdjustAmplitude changes the amplitude, clamped to 0-32767.
func (l *LFSR) AdjustAmplitude(delta int) {
	l.amplitude = clamp(l.amplitude+delta, 0, maxAmplitude)
}

// Amplitude returns the amplitude.
func (l *LFSR) Amplitude() int {
	return l.amplitude
}

// AdjustPeriod changes the step period, minimum 1.
func (l *LFSR) AdjustPeriod(delta int) {
	l.period = max(l.period+delta, 1)
	l.tick %= l.period
}

// Period returns the step period in output samples.
func (l *LFSR) Period() int {
	return l.period
}

// Toggle switches between the 15-bit and 7-bit feedback.
func (l *LFSR) Toggle() {
	l.width = !l.width
}

// Register returns the shift register state.
func (l *LFSR) Register() uint16 {
	return l.reg
}
