package apu

// Channel indices for output routing.
const (
	Channel1 = iota // tone with sweep
	Channel2        // tone
	Channel3        // wave (silent)
	Channel4        // noise
	channelCount
)

// Terminal is a channel's output routing bitmask.
type Terminal uint8

const (
	TerminalNone  Terminal = 0x00
	TerminalRight Terminal = 0x01
	TerminalLeft  Terminal = 0x02
	TerminalBoth  Terminal = TerminalRight | TerminalLeft
)

// mixerFullScale is the theoretical maximum mixed magnitude:
// 4 channels x amplitude 16 x volume 8.
const mixerFullScale = channelCount * channelFullScale * 8

// Stereo is one left/right pair of mixed samples.
type Stereo struct {
	Left  int16
	Right int16
}

// Mono averages the pair.
func (s Stereo) Mono() int16 {
	return int16((int32(s.Left) + int32(s.Right)) / 2)
}

// Mixer owns the channels, ticks them in lockstep and routes each
// channel's mono output to the left and right terminals.
type Mixer struct {
	enabled bool

	tone1 ToneChannel
	tone2 ToneChannel
	wave  WaveChannel
	noise NoiseChannel

	output [channelCount]Terminal

	volumeRight uint8 // 0-7
	volumeLeft  uint8 // 0-7

	// Output PCM scale applied by Next and NextStereo
	scaleAmplitude int

	master Clock // 4 MiHz master -> APU clock, used by Cycle
}

// NewMixer creates a powered-off mixer with all channels at power-on
// defaults. amplitude is the output PCM scale.
func NewMixer(amplitude int) *Mixer {
	m := &Mixer{scaleAmplitude: amplitude}
	m.Init()
	return m
}

// Init resets the mixer and every channel to power-on defaults. The
// output scale is preserved.
func (m *Mixer) Init() {
	m.enabled = false
	m.tone1.Init()
	m.tone2.Init()
	m.noise.Init()
	m.output = [channelCount]Terminal{}
	m.volumeRight = 0
	m.volumeLeft = 0
	m.master = masterClock()
}

// Tick advances every channel by one APU clock and returns the routed,
// volume-scaled stereo pair. A disabled mixer does not tick its channels
// and returns silence.
func (m *Mixer) Tick() Stereo {
	if !m.enabled {
		return Stereo{}
	}

	mono := [channelCount]int8{
		Channel1: m.tone1.Tick(),
		Channel2: m.tone2.Tick(),
		Channel3: m.wave.Tick(),
		Channel4: m.noise.Tick(),
	}

	var left, right int32
	for ch, s := range mono {
		if m.output[ch]&TerminalRight != 0 {
			right += int32(s)
		}
		if m.output[ch]&TerminalLeft != 0 {
			left += int32(s)
		}
	}

	return Stereo{
		Left:  int16(left * (int32(m.volumeLeft) + 1)),
		Right: int16(right * (int32(m.volumeRight) + 1)),
	}
}

// Cycle advances the mixer by a number of 4 MiHz master clock cycles and
// returns the last stereo pair produced.
func (m *Mixer) Cycle(masterCycles uint32) Stereo {
	var out Stereo
	for ticks := m.master.Step(masterCycles); ticks > 0; ticks-- {
		out = m.Tick()
	}
	return out
}

// tickPeriod ticks for one output sample period and returns the last pair.
func (m *Mixer) tickPeriod(sampleRate int) (Stereo, bool) {
	period := TicksPerSample(sampleRate)
	if period == 0 {
		return Stereo{}, false
	}
	var out Stereo
	for ; period > 0; period-- {
		out = m.Tick()
	}
	return out, true
}

// Next ticks for one output sample period at sampleRate and returns the
// last pair averaged to mono, scaled to the host PCM range.
func (m *Mixer) Next(sampleRate int) int16 {
	out, ok := m.tickPeriod(sampleRate)
	if !ok {
		return 0
	}
	return m.Scale(out.Mono())
}

// NextStereo is Next without the mono fold-down.
func (m *Mixer) NextStereo(sampleRate int) (left, right int16) {
	out, ok := m.tickPeriod(sampleRate)
	if !ok {
		return 0, 0
	}
	return m.Scale(out.Left), m.Scale(out.Right)
}

// Scale converts a mixed sample to the host PCM range:
// sample * scaleAmplitude / 512.
func (m *Mixer) Scale(sample int16) int16 {
	return scaleSample(int32(sample), m.scaleAmplitude, mixerFullScale)
}

// Enable sets the sound controller power flag.
func (m *Mixer) Enable(enable bool) {
	m.enabled = enable
}

// Enabled returns the power flag.
func (m *Mixer) Enabled() bool {
	return m.enabled
}

// SetOutput routes channel ch (Channel1..Channel4) to the given terminals.
// Unknown channels are ignored.
func (m *Mixer) SetOutput(ch int, t Terminal) {
	if ch < 0 || ch >= channelCount {
		return
	}
	m.output[ch] = t & TerminalBoth
}

// Output returns the routing of channel ch.
func (m *Mixer) Output(ch int) Terminal {
	if ch < 0 || ch >= channelCount {
		return TerminalNone
	}
	return m.output[ch]
}

// SetVolume sets the master volume per terminal (0-7 each).
func (m *Mixer) SetVolume(right, left uint8) {
	m.volumeRight = right & 0x07
	m.volumeLeft = left & 0x07
}

// Volume returns the master volume per terminal.
func (m *Mixer) Volume() (right, left uint8) {
	return m.volumeRight, m.volumeLeft
}

// Tone1 returns channel 1.
func (m *Mixer) Tone1() *ToneChannel { return &m.tone1 }

// Tone2 returns channel 2.
func (m *Mixer) Tone2() *ToneChannel { return &m.tone2 }

// Wave returns the channel 3 stub.
func (m *Mixer) Wave() *WaveChannel { return &m.wave }

// Noise returns channel 4.
func (m *Mixer) Noise() *NoiseChannel { return &m.noise }

// SetAmplitude sets the output PCM scale.
func (m *Mixer) SetAmplitude(amplitude int) {
	m.scaleAmplitude = amplitude
}

// AdjustAmplitude changes the output PCM scale.
func (m *Mixer) AdjustAmplitude(delta int) {
	m.scaleAmplitude = clampScale(m.scaleAmplitude + delta)
}

// Amplitude returns the output PCM scale.
func (m *Mixer) Amplitude() int {
	return m.scaleAmplitude
}
