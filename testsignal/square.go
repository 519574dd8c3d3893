package testsignal

import "github.com/user-none/gbaudio/apu"

// dutySteps is the number of eighths of the period spent low for each
// duty pattern.
var dutySteps = [4]int{1, 2, 4, 6}

// Square is a free-running square wave with a selectable duty pattern.
type Square struct {
	amplitude int
	frequency int
	duty      apu.Duty
	ticks     int
}

// NewSquare creates a square wave. Only AdjustFrequency enforces the
// 220-880 Hz range.
func NewSquare(amplitude, frequency int, duty apu.Duty) *Square {
	return &Square{
		amplitude: clamp(amplitude, 0, maxAmplitude),
		frequency: clamp(frequency, 1, squareMaxFreq),
		duty:      duty & 0x03,
	}
}

// Next returns the next sample at sampleRate. The low portion of the
// period comes first.
func (s *Square) Next(sampleRate int) int16 {
	period := sampleRate / s.frequency
	if period <= 0 {
		return 0
	}
	ticks := s.ticks
	if ticks >= period {
		ticks -= period
	}
	s.ticks = ticks + 1

	if ticks < period/8*dutySteps[s.duty] {
		return int16(-s.amplitude)
	}
	return int16(s.amplitude)
}

// AdjustAmplitude changes the amplitude, clamped to 0-32767.
func (s *Square) AdjustAmplitude(delta int) {
	s.amplitude = clamp(s.amplitude+delta, 0, maxAmplitude)
}

// Amplitude returns the amplitude.
func (s *Square) Amplitude() int {
	return s.amplitude
}

// AdjustFrequency changes the pitch, clamped to 220-880 Hz.
func (s *Square) AdjustFrequency(delta int) {
	s.frequency = clamp(s.frequency+delta, squareMinFreq, squareMaxFreq)
}

// Frequency returns the pitch in Hz.
func (s *Square) Frequency() int {
	return s.frequency
}

// Toggle cycles to the next duty pattern.
func (s *Square) Toggle() {
	s.duty = (s.duty + 1) & 0x03
}

// Duty returns the duty pattern.
func (s *Square) Duty() apu.Duty {
	return s.duty
}
