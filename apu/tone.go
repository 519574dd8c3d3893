package apu

// Duty selects the fraction of the waveform period spent high.
type Duty uint8

const (
	Duty12 Duty = iota // 12.5%
	Duty25             // 25%
	Duty50             // 50%
	Duty75             // 75%
)

// dutyHigh is the number of the eight duty steps that output high.
var dutyHigh = [4]uint32{1, 2, 4, 6}

const (
	maxGBFreq = 2047

	// channelFullScale is the amplitude that maps to a channel's full
	// output scale (maxVolume+1).
	channelFullScale = 16
)

// GBFreqToFreq converts an 11-bit frequency register value to Hz using
// 131072/(2048-gbfreq). Values above 2047 are clamped.
func GBFreqToFreq(gbfreq uint16) uint32 {
	if gbfreq > maxGBFreq {
		gbfreq = maxGBFreq
	}
	return 131072 / (2048 - uint32(gbfreq))
}

// FreqToGBFreq converts Hz to the nearest register value at or below the
// requested pitch. 0 Hz is treated as 1 Hz and the result is clamped to
// [0, 2047]. The conversion truncates so it is only an approximate
// inverse of GBFreqToFreq.
func FreqToGBFreq(freq uint32) uint16 {
	if freq == 0 {
		freq = 1
	}
	div := 131072 / freq
	if div >= 2048 {
		return 0
	}
	if div == 0 {
		return maxGBFreq
	}
	return uint16(2048 - div)
}

type sweepUnit struct {
	clock Clock
	count uint32

	enabled  bool
	time     uint8 // 0-7, in 128 Hz pulses
	addition bool
	shift    uint8 // 0-7
}

// ToneChannel emulates one of the two square wave channels: duty
// waveform, frequency sweep, length counter and volume envelope. It is
// ticked at the 1 MiHz APU clock.
type ToneChannel struct {
	running bool

	apu      Clock // 4 MiHz master -> APU clock, used by Cycle
	seq      Clock // APU clock -> 512 Hz frame sequencer
	sweep    sweepUnit
	length   lengthCounter
	envelope envelope

	// The phase counter advances dutyCount every (2048-gbfreq) ticks
	phaseCount uint32
	dutyCount  uint32 // 0-7
	duty       Duty

	gbfreq    uint16 // 0-2047
	frequency uint32 // Hz, derived from gbfreq

	// Output scale used by Next
	scaleAmplitude int
}

// NewToneChannel creates a tone channel in its power-on state.
func NewToneChannel() *ToneChannel {
	ch := &ToneChannel{}
	ch.Init()
	return ch
}

// Init resets the channel to power-on defaults: not running, gbfreq 0,
// volume 0. The output scale is host configuration and is preserved.
func (ch *ToneChannel) Init() {
	scale := ch.scaleAmplitude
	*ch = ToneChannel{
		apu:            masterClock(),
		seq:            sequencerClock(),
		sweep:          sweepUnit{clock: sweepClock()},
		length:         newLengthCounter(),
		envelope:       newEnvelope(),
		scaleAmplitude: scale,
	}
	ch.updateFrequency()
}

// Sample returns the value the channel currently outputs: +volume while
// in the high part of the duty cycle, -volume otherwise, 0 when stopped.
func (ch *ToneChannel) Sample() int8 {
	if !ch.running {
		return 0
	}
	amplitude := int8(ch.envelope.amplitude)
	if ch.dutyCount < dutyHigh[ch.duty&0x03] {
		return amplitude
	}
	return -amplitude
}

// Tick advances the channel by one APU clock and returns the sample that
// was output during that clock.
func (ch *ToneChannel) Tick() int8 {
	sample := ch.Sample()

	ch.tickDuty()

	seq := ch.seq.Step(1)
	ch.tickSweep(seq)
	if ch.length.tick(seq) {
		ch.running = false
	}
	ch.envelope.tick(seq)

	return sample
}

func (ch *ToneChannel) tickDuty() {
	period := 2048 - uint32(ch.gbfreq)
	if counterTick(&ch.phaseCount, period, 1) {
		ch.dutyCount = (ch.dutyCount + 1) & 0x07
	}
}

func (ch *ToneChannel) tickSweep(seqPulses uint32) {
	pulses := ch.sweep.clock.Step(seqPulses)
	if !ch.sweep.enabled || ch.sweep.time == 0 {
		return
	}
	if !counterTick(&ch.sweep.count, uint32(ch.sweep.time), pulses) {
		return
	}

	freq := ch.gbfreq
	delta := freq >> ch.sweep.shift
	if ch.sweep.addition {
		if freq+delta > maxGBFreq {
			// Overflow silences the channel and keeps the old frequency
			ch.sweep.enabled = false
			ch.running = false
			return
		}
		freq += delta
	} else if delta < freq {
		freq -= delta
	}
	ch.gbfreq = freq
	ch.updateFrequency()
}

// Cycle advances the channel by a number of 4 MiHz master clock cycles
// and returns the last sample output. If the cycles do not complete an
// APU clock the current sample is returned unchanged.
func (ch *ToneChannel) Cycle(masterCycles uint32) int8 {
	ticks := ch.apu.Step(masterCycles)
	sample := ch.Sample()
	for ; ticks > 0; ticks-- {
		sample = ch.Tick()
	}
	return sample
}

// Next ticks the channel for one output sample period at sampleRate and
// returns the last tick's sample scaled by the output scale. This is
// nearest-neighbour decimation; no anti-aliasing is applied.
func (ch *ToneChannel) Next(sampleRate int) int16 {
	period := TicksPerSample(sampleRate)
	if period == 0 {
		return 0
	}
	var sample int8
	for ; period > 0; period-- {
		sample = ch.Tick()
	}
	return scaleSample(int32(sample), ch.scaleAmplitude, channelFullScale)
}

// Fill writes len(dst) consecutive samples at sampleRate.
func (ch *ToneChannel) Fill(sampleRate int, dst []int16) {
	for i := range dst {
		dst[i] = ch.Next(sampleRate)
	}
}

// Sweep sets the NR10 fields.
// time: 0-7, sweep period in 128 Hz pulses (0 disables sweeping)
// addition: increase (true) or decrease the frequency
// shift: 0-7, frequency change is gbfreq>>shift
func (ch *ToneChannel) Sweep(time uint8, addition bool, shift uint8) {
	ch.sweep.time = time & 0x07
	ch.sweep.addition = addition
	ch.sweep.shift = shift & 0x07
}

// LengthDuty sets the NRx1 fields.
// length: 0-63, sound length is (64-length)/256 seconds
func (ch *ToneChannel) LengthDuty(length uint8, duty Duty) {
	ch.length.length = length & 0x3F
	ch.duty = duty & 0x03
}

// VolumeEnvelope sets the NRx2 fields and loads the initial volume.
// initial: 0-15, n: 0-7 envelope period in 64 Hz pulses (0 = fixed volume)
func (ch *ToneChannel) VolumeEnvelope(initial uint8, increase bool, n uint8) {
	ch.envelope.set(initial, increase, n)
}

// GBFreqLow sets the low 8 bits of gbfreq, preserving the high bits.
func (ch *ToneChannel) GBFreqLow(low uint8) {
	ch.gbfreq = ch.gbfreq&0x0700 | uint16(low)
	ch.updateFrequency()
}

// GBFreqHigh sets bits 8-10 of gbfreq, preserving the low bits.
func (ch *ToneChannel) GBFreqHigh(high uint8) {
	ch.gbfreq = uint16(high&0x07)<<8 | ch.gbfreq&0x00FF
	ch.updateFrequency()
}

// SetGBFreq sets the full 11-bit frequency register.
func (ch *ToneChannel) SetGBFreq(gbfreq uint16) {
	ch.gbfreq = gbfreq & maxGBFreq
	ch.updateFrequency()
}

// SetFrequency sets the channel pitch in Hz, rounded to a register value.
func (ch *ToneChannel) SetFrequency(hz uint32) {
	ch.SetGBFreq(FreqToGBFreq(hz))
}

func (ch *ToneChannel) updateFrequency() {
	ch.frequency = GBFreqToFreq(ch.gbfreq)
}

// Trigger restarts the channel when trigger is set. single selects
// whether the channel stops once the length counter expires.
func (ch *ToneChannel) Trigger(trigger, single bool) {
	if trigger {
		ch.running = true
		ch.sweep.count = 0
		ch.length.count = 0
		ch.envelope.count = 0
		if ch.sweep.time != 0 {
			ch.sweep.enabled = true
		}
	}
	ch.length.repeat = !single
}

// TriggerFreqHigh applies an NRx4 write: high frequency bits then trigger.
func (ch *ToneChannel) TriggerFreqHigh(trigger, single bool, high uint8) {
	ch.GBFreqHigh(high)
	ch.Trigger(trigger, single)
}

// Running returns true while the channel produces sound.
func (ch *ToneChannel) Running() bool {
	return ch.running
}

// GBFreq returns the 11-bit frequency register.
func (ch *ToneChannel) GBFreq() uint16 {
	return ch.gbfreq
}

// Frequency returns the channel pitch in Hz.
func (ch *ToneChannel) Frequency() int {
	return int(ch.frequency)
}

// Volume returns the current envelope volume (0-15).
func (ch *ToneChannel) Volume() uint8 {
	return ch.envelope.amplitude
}

// Duty returns the selected duty pattern.
func (ch *ToneChannel) Duty() Duty {
	return ch.duty
}

// SetAmplitude sets the output scale used by Next.
func (ch *ToneChannel) SetAmplitude(amplitude int) {
	ch.scaleAmplitude = amplitude
}

// AdjustAmplitude changes the output scale used by Next.
func (ch *ToneChannel) AdjustAmplitude(delta int) {
	ch.scaleAmplitude = clampScale(ch.scaleAmplitude + delta)
}

// Amplitude returns the output scale used by Next.
func (ch *ToneChannel) Amplitude() int {
	return ch.scaleAmplitude
}
