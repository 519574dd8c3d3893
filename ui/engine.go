package ui

import (
	"fmt"
	"sync"

	"github.com/golang/glog"

	"github.com/user-none/gbaudio/adapter"
	"github.com/user-none/gbaudio/apu"
	"github.com/user-none/gbaudio/replay"
	"github.com/user-none/gbaudio/testsignal"
)

// Source names in cycling order.
const (
	SourceMixer  = "mixer"
	SourceTone   = "tone"
	SourceNoise  = "noise"
	SourceSquare = "square"
	SourceSaw    = "saw"
	SourceLFSR   = "lfsr"
	SourceSweep  = "sweep"
	SourceFM     = "fm"
)

var sourceOrder = []string{
	SourceMixer,
	SourceTone,
	SourceNoise,
	SourceSquare,
	SourceSaw,
	SourceLFSR,
	SourceSweep,
	SourceFM,
}

// Sources returns the selectable source names in cycling order.
func Sources() []string {
	return append([]string(nil), sourceOrder...)
}

// demoProgram powers the mixer on with channel 1 at 440 Hz and channel 2
// a fifth above at half volume, both routed to both sides.
var demoProgram = []replay.Event{
	{Addr: apu.NR52, Value: 0x80},
	{Addr: apu.NR50, Value: 0x77},
	{Addr: apu.NR51, Value: 0x33},
	{Addr: apu.NR11, Value: 0x80},
	{Addr: apu.NR12, Value: 0xF0},
	{Addr: apu.NR13, Value: 0xD6},
	{Addr: apu.NR14, Value: 0x86},
	{Addr: apu.NR21, Value: 0x40},
	{Addr: apu.NR22, Value: 0x80},
	{Addr: apu.NR23, Value: 0x3A},
	{Addr: apu.NR24, Value: 0x87},
}

// EngineConfig configures NewEngine.
type EngineConfig struct {
	SampleRate int
	// Output scale for the mixer and channels, and peak amplitude for
	// the test signals
	Amplitude int
	// Register writes to replay on the mixer; nil plays the built-in
	// demo program once
	Events []replay.Event
	// Replay loop length in APU ticks, 0 plays once
	LoopTicks uint64
}

// Engine is the application context shared by the sample producer and
// the UI thread. Every register write, control change and sample pull
// takes the same lock.
type Engine struct {
	mu         sync.Mutex
	sampleRate int

	mixer   *apu.Mixer
	player  *replay.Player
	sources map[string]*adapter.Generator
	active  string
}

// NewEngine builds the mixer, the standalone channels and the test
// signals, and selects the mixer as the active source.
func NewEngine(cfg EngineConfig) *Engine {
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = defaultSampleRate
	}
	amp := cfg.Amplitude

	e := &Engine{
		sampleRate: cfg.SampleRate,
		mixer:      apu.NewMixer(amp),
		sources:    make(map[string]*adapter.Generator, len(sourceOrder)),
		active:     SourceMixer,
	}

	events := cfg.Events
	loopTicks := cfg.LoopTicks
	if events == nil {
		events = demoProgram
		loopTicks = 0
	}
	e.player = replay.NewPlayer(e.mixer, events, loopTicks)
	e.sources[SourceMixer] = adapter.New(SourceMixer, e.player)

	tone := apu.NewToneChannel()
	tone.SetAmplitude(amp)
	tone.SetFrequency(440)
	tone.LengthDuty(0, apu.Duty50)
	tone.VolumeEnvelope(0x0F, false, 0)
	tone.Trigger(true, false)
	e.sources[SourceTone] = adapter.New(SourceTone, tone)

	noise := apu.NewNoiseChannel()
	noise.SetAmplitude(amp)
	noise.PolynomialCounter(2, false, 1)
	noise.VolumeEnvelope(0x0F, false, 0)
	noise.Trigger(true, false)
	e.sources[SourceNoise] = adapter.New(SourceNoise, noise)

	square := adapter.New(SourceSquare, testsignal.NewSquare(amp, 440, apu.Duty50))
	e.sources[SourceSquare] = square
	e.sources[SourceSaw] = adapter.New(SourceSaw, testsignal.NewSaw(amp, 440))
	e.sources[SourceLFSR] = adapter.New(SourceLFSR, testsignal.NewLFSR(amp, false, 8))

	// The sweep rig drives the square source's pitch
	sweep := testsignal.NewSweep(true, 2, 7, 4)
	e.sources[SourceSweep] = adapter.New(SourceSweep, sweep.Bind(square))

	carrier := adapter.New("carrier", testsignal.NewSaw(amp, 440))
	modulator := adapter.New("modulator", testsignal.NewSaw(amp, 20))
	fm := testsignal.NewFreqMod(modulator, cfg.SampleRate)
	e.sources[SourceFM] = adapter.New(SourceFM, fm.Bind(carrier, modulator))

	return e
}

// SampleRate returns the output sample rate.
func (e *Engine) SampleRate() int {
	return e.sampleRate
}

// Write applies a register write to the mixer.
func (e *Engine) Write(addr uint16, value uint8) {
	e.mu.Lock()
	e.mixer.Write(addr, value)
	e.mu.Unlock()
}

// Fill writes interleaved left/right samples from the active source.
// A trailing odd element is zeroed.
func (e *Engine) Fill(dst []int16) {
	e.mu.Lock()
	defer e.mu.Unlock()

	gen := e.sources[e.active]
	i := 0
	for ; i+1 < len(dst); i += 2 {
		dst[i], dst[i+1] = gen.NextStereo(e.sampleRate)
	}
	if i < len(dst) {
		dst[i] = 0
	}
}

// SetSource selects the active source by name.
func (e *Engine) SetSource(name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.sources[name]; !ok {
		return fmt.Errorf("unknown source %q", name)
	}
	e.selectLocked(name)
	return nil
}

// NextSource cycles to the next source and returns its name.
func (e *Engine) NextSource() string {
	e.mu.Lock()
	defer e.mu.Unlock()

	idx := 0
	for i, name := range sourceOrder {
		if name == e.active {
			idx = i
			break
		}
	}
	e.selectLocked(sourceOrder[(idx+1)%len(sourceOrder)])
	return e.active
}

func (e *Engine) selectLocked(name string) {
	e.active = name
	if r, ok := e.sources[name].Source().(testsignal.Resetter); ok {
		r.Reset()
	}
	glog.V(1).Infof("source: %s", name)
}

// AdjustAmplitude changes the active source's amplitude if supported.
func (e *Engine) AdjustAmplitude(delta int) {
	e.mu.Lock()
	e.sources[e.active].AdjustAmplitude(delta)
	e.mu.Unlock()
}

// AdjustFrequency changes the active source's pitch if supported. Sources
// stepped by a sample period adjust that period instead.
func (e *Engine) AdjustFrequency(delta int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	gen := e.sources[e.active]
	if p, ok := gen.Source().(testsignal.PeriodControl); ok {
		// A longer period is a lower pitch
		step := 1
		if delta > 0 {
			step = -1
		}
		p.AdjustPeriod(step)
		return
	}
	gen.AdjustFrequency(delta)
}

// Toggle switches the active source's secondary mode if it has one.
func (e *Engine) Toggle() {
	e.mu.Lock()
	if t, ok := e.sources[e.active].Source().(testsignal.Toggler); ok {
		t.Toggle()
	}
	e.mu.Unlock()
}

// Restart rewinds the replay on the mixer source or resets a rig.
func (e *Engine) Restart() {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch src := e.sources[e.active].Source().(type) {
	case *replay.Player:
		src.Rewind()
	case testsignal.Resetter:
		src.Reset()
	}
}

// Status is a snapshot of the active source for display.
type Status struct {
	Source       string
	Amplitude    int
	Frequency    int
	Period       int
	Capabilities adapter.Capability
	MixerEnabled bool
	ReplayTick   uint64
	ReplayDone   bool
}

// Status returns a snapshot of the active source.
func (e *Engine) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()

	gen := e.sources[e.active]
	s := Status{
		Source:       e.active,
		Amplitude:    gen.Amplitude(),
		Frequency:    gen.Frequency(),
		Capabilities: gen.Capabilities(),
		MixerEnabled: e.mixer.Enabled(),
		ReplayTick:   e.player.Position(),
		ReplayDone:   e.player.Done(),
	}
	if p, ok := gen.Source().(testsignal.PeriodControl); ok {
		s.Period = p.Period()
	}
	return s
}
