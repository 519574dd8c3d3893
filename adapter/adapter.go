// Package adapter exposes every sound source behind one small dispatch
// surface so a host loop can drive channels, the mixer and test signals
// without inspecting their concrete types.
package adapter

import (
	"strings"

	"github.com/user-none/gbaudio/apu"
)

// Source produces one sample per call at the requested output rate.
type Source interface {
	Next(sampleRate int) int16
}

// AmplitudeControl is implemented by sources with an adjustable output scale.
type AmplitudeControl interface {
	AdjustAmplitude(delta int)
	Amplitude() int
}

// FrequencyReader is implemented by sources that report a pitch in Hz.
type FrequencyReader interface {
	Frequency() int
}

// FrequencyControl is implemented by sources with an adjustable pitch.
type FrequencyControl interface {
	FrequencyReader
	AdjustFrequency(delta int)
}

// StereoSource is implemented by sources that produce a left/right pair.
type StereoSource interface {
	NextStereo(sampleRate int) (left, right int16)
}

// Compile-time interface checks.
var (
	_ Source           = (*apu.ToneChannel)(nil)
	_ AmplitudeControl = (*apu.ToneChannel)(nil)
	_ FrequencyReader  = (*apu.ToneChannel)(nil)
	_ Source           = (*apu.NoiseChannel)(nil)
	_ AmplitudeControl = (*apu.NoiseChannel)(nil)
	_ Source           = (*apu.Mixer)(nil)
	_ AmplitudeControl = (*apu.Mixer)(nil)
	_ StereoSource     = (*apu.Mixer)(nil)
)

// Capability flags reported by Generator.Capabilities.
type Capability uint8

const (
	CapNext Capability = 1 << iota
	CapAmplitude
	CapFrequencyRead
	CapFrequencyAdjust
	CapStereo
)

// Generator wraps a Source and dispatches the optional operations to it.
// Operations the source does not support are no-ops returning zero, so the
// sample path never fails.
type Generator struct {
	name string
	src  Source
}

// New wraps src under a display name.
func New(name string, src Source) *Generator {
	return &Generator{name: name, src: src}
}

// Name returns the display name.
func (g *Generator) Name() string {
	if g == nil {
		return ""
	}
	return g.name
}

// Source returns the wrapped source.
func (g *Generator) Source() Source {
	if g == nil {
		return nil
	}
	return g.src
}

// Next returns the next sample, or silence without a source.
func (g *Generator) Next(sampleRate int) int16 {
	if g == nil || g.src == nil {
		return 0
	}
	return g.src.Next(sampleRate)
}

// NextStereo returns the next stereo pair. Mono sources are duplicated to
// both sides.
func (g *Generator) NextStereo(sampleRate int) (left, right int16) {
	if g == nil || g.src == nil {
		return 0, 0
	}
	if s, ok := g.src.(StereoSource); ok {
		return s.NextStereo(sampleRate)
	}
	v := g.src.Next(sampleRate)
	return v, v
}

// AdjustAmplitude changes the output scale if supported.
func (g *Generator) AdjustAmplitude(delta int) {
	if a, ok := g.Source().(AmplitudeControl); ok {
		a.AdjustAmplitude(delta)
	}
}

// Amplitude returns the output scale, or 0 if unsupported.
func (g *Generator) Amplitude() int {
	if a, ok := g.Source().(AmplitudeControl); ok {
		return a.Amplitude()
	}
	return 0
}

// AdjustFrequency changes the pitch if supported.
func (g *Generator) AdjustFrequency(delta int) {
	if f, ok := g.Source().(FrequencyControl); ok {
		f.AdjustFrequency(delta)
	}
}

// Frequency returns the pitch in Hz, or 0 if unsupported.
func (g *Generator) Frequency() int {
	if f, ok := g.Source().(FrequencyReader); ok {
		return f.Frequency()
	}
	return 0
}

// Capabilities reports which operations the wrapped source supports.
func (g *Generator) Capabilities() Capability {
	src := g.Source()
	if src == nil {
		return 0
	}
	c := CapNext
	if _, ok := src.(AmplitudeControl); ok {
		c |= CapAmplitude
	}
	if _, ok := src.(FrequencyReader); ok {
		c |= CapFrequencyRead
	}
	if _, ok := src.(FrequencyControl); ok {
		c |= CapFrequencyAdjust
	}
	if _, ok := src.(StereoSource); ok {
		c |= CapStereo
	}
	return c
}

// Has reports whether all flags in c are set.
func (c Capability) Has(flags Capability) bool {
	return c&flags == flags
}

var capabilityNames = []struct {
	flag Capability
	name string
}{
	{CapNext, "next"},
	{CapAmplitude, "amplitude"},
	{CapFrequencyRead, "frequency"},
	{CapFrequencyAdjust, "tune"},
	{CapStereo, "stereo"},
}

// String lists the set flags separated by '|', or "none".
func (c Capability) String() string {
	var names []string
	for _, cn := range capabilityNames {
		if c&cn.flag != 0 {
			names = append(names, cn.name)
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "|")
}
