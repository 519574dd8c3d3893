package replay

import (
	"github.com/golang/glog"

	"github.com/user-none/gbaudio/apu"
)

// Player applies a list of register writes to a mixer while pulling
// samples from it. Writes due at a tick are applied before that tick's
// mixer clock, so a multi-register update is never observed half done.
type Player struct {
	mixer  *apu.Mixer
	events []Event
	index  int
	tick   uint64
	length uint64 // loop length in ticks, 0 plays once
}

// NewPlayer creates a player over mixer. A non-zero loopTicks resets the
// mixer and restarts playback from tick 0 every loopTicks ticks. The loop
// is never shorter than the tick after the final write, so every write
// is applied once per pass.
func NewPlayer(mixer *apu.Mixer, events []Event, loopTicks uint64) *Player {
	if loopTicks != 0 {
		loopTicks = max(loopTicks, Duration(events)+1)
	}
	return &Player{
		mixer:  mixer,
		events: events,
		length: loopTicks,
	}
}

// Tick applies due writes and advances the mixer one APU clock.
func (p *Player) Tick() apu.Stereo {
	for p.index < len(p.events) && p.events[p.index].Tick <= p.tick {
		ev := p.events[p.index]
		if glog.V(2) {
			glog.Infof("replay: tick 0x%X write 0x%04X=0x%02X", p.tick, ev.Addr, ev.Value)
		}
		p.mixer.Write(ev.Addr, ev.Value)
		p.index++
	}

	out := p.mixer.Tick()
	p.tick++

	if p.length != 0 && p.tick >= p.length {
		glog.V(1).Infof("replay: loop at tick 0x%X", p.tick)
		p.Rewind()
	}
	return out
}

func (p *Player) tickPeriod(sampleRate int) (apu.Stereo, bool) {
	period := apu.TicksPerSample(sampleRate)
	if period == 0 {
		return apu.Stereo{}, false
	}
	var out apu.Stereo
	for ; period > 0; period-- {
		out = p.Tick()
	}
	return out, true
}

// Next plays one output sample period and returns the mixer's mono sample
// scaled to the host range.
func (p *Player) Next(sampleRate int) int16 {
	out, ok := p.tickPeriod(sampleRate)
	if !ok {
		return 0
	}
	return p.mixer.Scale(out.Mono())
}

// NextStereo is Next without the mono fold-down.
func (p *Player) NextStereo(sampleRate int) (left, right int16) {
	out, ok := p.tickPeriod(sampleRate)
	if !ok {
		return 0, 0
	}
	return p.mixer.Scale(out.Left), p.mixer.Scale(out.Right)
}

// Rewind resets the mixer and restarts playback at tick 0.
func (p *Player) Rewind() {
	p.mixer.Init()
	p.index = 0
	p.tick = 0
}

// Done reports whether every write has been applied.
func (p *Player) Done() bool {
	return p.index >= len(p.events)
}

// Position returns the current tick.
func (p *Player) Position() uint64 {
	return p.tick
}

// LoopTicks returns the loop length, 0 when playing once.
func (p *Player) LoopTicks() uint64 {
	return p.length
}

// Len returns the number of writes.
func (p *Player) Len() int {
	return len(p.events)
}

// AdjustAmplitude changes the mixer output scale.
func (p *Player) AdjustAmplitude(delta int) {
	p.mixer.AdjustAmplitude(delta)
}

// Amplitude returns the mixer output scale.
func (p *Player) Amplitude() int {
	return p.mixer.Amplitude()
}
