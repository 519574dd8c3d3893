package apu

const maxShiftClock = 14

// NoiseChannel emulates channel 4: a 15-bit (or 7-bit) LFSR clocked
// through a prescale divider and a (1<<shift) divider, with the same
// length counter and volume envelope as the tone channels.
//
//	APU clock 1 MiHz ──┬── prescale ── 1<<shift ── LFSR ──┐
//	                   └── sequencer 512 Hz ─┬─ length 256 Hz ──┤
//	                                         └─ envelope 64 Hz ─┴── DAC
type NoiseChannel struct {
	running bool

	seq      Clock
	length   lengthCounter
	envelope envelope

	prescaleCount   uint32
	shiftClockCount uint32

	prescale   uint8 // 0-7
	shiftClock uint8 // 0-14
	smallStep  bool  // 7-bit LFSR when set

	// LFSR state, never zero
	lfsr uint16
	// Last bit shifted out of the LFSR
	last uint8

	scaleAmplitude int
}

// NewNoiseChannel creates a noise channel in its power-on state.
func NewNoiseChannel() *NoiseChannel {
	n := &NoiseChannel{}
	n.Init()
	return n
}

// Init resets the channel to power-on defaults. The output scale is
// preserved.
func (n *NoiseChannel) Init() {
	scale := n.scaleAmplitude
	*n = NoiseChannel{
		seq:            sequencerClock(),
		length:         newLengthCounter(),
		envelope:       newEnvelope(),
		lfsr:           1,
		scaleAmplitude: scale,
	}
}

// Sample returns the current output. The LFSR output bit is inverted:
// a shifted-out 0 produces +volume.
func (n *NoiseChannel) Sample() int8 {
	if !n.running {
		return 0
	}
	amplitude := int8(n.envelope.amplitude)
	if n.last == 0 {
		return amplitude
	}
	return -amplitude
}

// Tick advances the channel by one APU clock. A stopped channel does not
// advance and outputs 0.
func (n *NoiseChannel) Tick() int8 {
	if !n.running {
		return 0
	}
	sample := n.Sample()

	seq := n.seq.Step(1)
	n.tickLFSR()
	if n.length.tick(seq) {
		n.running = false
	}
	n.envelope.tick(seq)

	return sample
}

func (n *NoiseChannel) tickLFSR() {
	prescaled := counterTick(&n.prescaleCount, uint32(n.prescale), 1)
	if !counterTick(&n.shiftClockCount, 1<<n.shiftClock, b2u(prescaled)) {
		return
	}
	n.stepLFSR()
}

// stepLFSR shifts the register once, feeding bit0^bit1 into bit 14 (and
// bit 6 in 7-bit mode).
func (n *NoiseChannel) stepLFSR() {
	if n.lfsr == 0 {
		n.lfsr = 1
	}
	bit0 := n.lfsr & 0x01
	bit1 := (n.lfsr >> 1) & 0x01
	feedback := bit0 ^ bit1

	lfsr := n.lfsr>>1 | feedback<<14
	if n.smallStep {
		lfsr |= feedback << 6
	}
	n.lfsr = lfsr
	n.last = uint8(bit0)
}

// Next ticks the channel for one output sample period at sampleRate and
// returns the last tick's sample scaled by the output scale.
func (n *NoiseChannel) Next(sampleRate int) int16 {
	period := TicksPerSample(sampleRate)
	if period == 0 {
		return 0
	}
	var sample int8
	for ; period > 0; period-- {
		sample = n.Tick()
	}
	return scaleSample(int32(sample), n.scaleAmplitude, channelFullScale)
}

// Length sets the NR41 length field (0-63).
func (n *NoiseChannel) Length(length uint8) {
	n.length.length = length & 0x3F
}

// VolumeEnvelope sets the NR42 fields and loads the initial volume.
func (n *NoiseChannel) VolumeEnvelope(initial uint8, increase bool, period uint8) {
	n.envelope.set(initial, increase, period)
}

// PolynomialCounter sets the NR43 fields.
// shiftClock: 0-15, values above 14 are clamped to 14
// smallStep: 7-bit (true) or 15-bit LFSR
// prescale: 0-7
func (n *NoiseChannel) PolynomialCounter(shiftClock uint8, smallStep bool, prescale uint8) {
	shiftClock &= 0x0F
	if shiftClock > maxShiftClock {
		shiftClock = maxShiftClock
	}
	n.shiftClock = shiftClock
	n.smallStep = smallStep
	n.prescale = prescale & 0x07
}

// Trigger restarts the channel when trigger is set, reseeding the LFSR
// and clearing every divider. single selects whether the channel stops
// once the length counter expires.
func (n *NoiseChannel) Trigger(trigger, single bool) {
	if trigger {
		n.running = true
		n.prescaleCount = 0
		n.shiftClockCount = 0
		n.length.count = 0
		n.envelope.count = 0
		n.lfsr = 1
		n.last = 0
	}
	n.length.repeat = !single
}

// Running returns true while the channel produces sound.
func (n *NoiseChannel) Running() bool {
	return n.running
}

// LFSR returns the shift register state.
func (n *NoiseChannel) LFSR() uint16 {
	return n.lfsr
}

// Volume returns the current envelope volume (0-15).
func (n *NoiseChannel) Volume() uint8 {
	return n.envelope.amplitude
}

// SetAmplitude sets the output scale used by Next.
func (n *NoiseChannel) SetAmplitude(amplitude int) {
	n.scaleAmplitude = amplitude
}

// AdjustAmplitude changes the output scale used by Next.
func (n *NoiseChannel) AdjustAmplitude(delta int) {
	n.scaleAmplitude = clampScale(n.scaleAmplitude + delta)
}

// Amplitude returns the output scale used by Next.
func (n *NoiseChannel) Amplitude() int {
	return n.scaleAmplitude
}

func b2u(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}
