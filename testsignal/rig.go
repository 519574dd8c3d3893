package testsignal

import "github.com/user-none/gbaudio/adapter"

const (
	// sweepRate is the sweep step clock in Hz.
	sweepRate = 128

	// fmScale maps modulator output to the -1..1 range of frequency
	// change per sample.
	fmScale = 16384
)

// Sweep steps an inner generator's pitch by freq>>shift once per time
// ticks of a 128 Hz clock, for nSweep steps, then goes silent until
// Reset. The inner generator is borrowed per call and never stored.
type Sweep struct {
	increase bool
	time     int // 0-7, in 128 Hz steps
	nSweep   int // 0-7
	shift    int // 0-7
	tick     int
}

// NewSweep creates a sweep rig. All counts are clamped to 0-7.
func NewSweep(increase bool, time, nSweep, shift int) *Sweep {
	return &Sweep{
		increase: increase,
		time:     clamp(time, 0, 7),
		nSweep:   clamp(nSweep, 0, 7),
		shift:    clamp(shift, 0, 7),
	}
}

// Next advances the sweep by one output sample and returns inner's next
// sample, or silence once the sweep has finished.
func (s *Sweep) Next(inner *adapter.Generator, sampleRate int) int16 {
	step := sampleRate / sweepRate * s.time
	total := step * s.nSweep

	s.tick++
	if s.tick >= total {
		return 0
	}
	if s.tick%step == 0 {
		change := inner.Frequency() >> s.shift
		if !s.increase {
			change = -change
		}
		inner.AdjustFrequency(change)
	}
	return inner.Next(sampleRate)
}

// Reset restarts the sweep.
func (s *Sweep) Reset() {
	s.tick = 0
}

// Toggle flips the sweep direction.
func (s *Sweep) Toggle() {
	s.increase = !s.increase
}

// Increase reports the sweep direction.
func (s *Sweep) Increase() bool {
	return s.increase
}

// Bind pairs the rig with inner for the lifetime of the returned source.
// Amplitude and frequency controls pass through to inner.
func (s *Sweep) Bind(inner *adapter.Generator) *BoundSweep {
	return &BoundSweep{rig: s, inner: inner}
}

// BoundSweep is a Sweep bound to its inner generator.
type BoundSweep struct {
	rig   *Sweep
	inner *adapter.Generator
}

func (b *BoundSweep) Next(sampleRate int) int16 { return b.rig.Next(b.inner, sampleRate) }
func (b *BoundSweep) AdjustAmplitude(delta int) { b.inner.AdjustAmplitude(delta) }
func (b *BoundSweep) Amplitude() int { return b.inner.Amplitude() }
func (b *BoundSweep) AdjustFrequency(delta int) { b.inner.AdjustFrequency(delta) }
func (b *BoundSweep) Frequency() int { return b.inner.Frequency() }
func (b *BoundSweep) Toggle() { b.rig.Toggle() }
func (b *BoundSweep) Reset() { b.rig.Reset() }

// Delta outputs the difference between consecutive samples of a source.
type Delta struct {
	last int16
}

// Seed primes the previous sample from src.
func (d *Delta) Seed(src *adapter.Generator, sampleRate int) {
	d.last = src.Next(sampleRate)
}

// Next returns src's next sample minus the previous one.
func (d *Delta) Next(src *adapter.Generator, sampleRate int) int16 {
	next := src.Next(sampleRate)
	out := next - d.last
	d.last = next
	return out
}

// FreqMod modulates a carrier's pitch by the slope of a modulator: each
// sample the carrier frequency moves by freq*delta/16384.
type FreqMod struct {
	delta Delta
}

// NewFreqMod prepares modulator for use: its amplitude is set to half the
// modulation scale and the slope tracker is seeded from it.
func NewFreqMod(modulator *adapter.Generator, sampleRate int) *FreqMod {
	modulator.AdjustAmplitude(fmScale/2 - modulator.Amplitude())
	fm := &FreqMod{}
	fm.delta.Seed(modulator, sampleRate)
	return fm
}

// Next applies one modulation step to carrier and returns its sample.
func (f *FreqMod) Next(carrier, modulator *adapter.Generator, sampleRate int) int16 {
	if d := int(f.delta.Next(modulator, sampleRate)); d != 0 {
		carrier.AdjustFrequency(carrier.Frequency() * d / fmScale)
	}
	return carrier.Next(sampleRate)
}

// Bind pairs the rig with its carrier and modulator for the lifetime of
// the returned source. Amplitude controls the carrier and frequency
// controls the modulator.
func (f *FreqMod) Bind(carrier, modulator *adapter.Generator) *BoundFreqMod {
	return &BoundFreqMod{rig: f, carrier: carrier, modulator: modulator}
}

// BoundFreqMod is a FreqMod bound to its carrier and modulator.
type BoundFreqMod struct {
	rig       *FreqMod
	carrier   *adapter.Generator
	modulator *adapter.Generator
}

func (b *BoundFreqMod) Next(sampleRate int) int16 {
	return b.rig.Next(b.carrier, b.modulator, sampleRate)
}
func (b *BoundFreqMod) AdjustAmplitude(delta int) { b.carrier.AdjustAmplitude(delta) }
func (b *BoundFreqMod) Amplitude() int { return b.carrier.Amplitude() }
func (b *BoundFreqMod) AdjustFrequency(delta int) { b.modulator.AdjustFrequency(delta) }
func (b *BoundFreqMod) Frequency() int { return b.modulator.Frequency() }
