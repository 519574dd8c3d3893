package apu

const maxVolume = 15

// envelope ramps a channel's volume by one step every n envelope pulses
// (64 Hz). A period of zero freezes the volume.
type envelope struct {
	clock Clock
	count uint32

	initial  uint8 // 0-15
	increase bool
	n        uint8 // 0-7

	// Current output volume, 0-15
	amplitude uint8
}

func newEnvelope() envelope {
	return envelope{clock: envelopeClock()}
}

// set loads the NRx2 fields. The current volume restarts at initial.
func (e *envelope) set(initial uint8, increase bool, n uint8) {
	e.initial = initial & 0x0F
	e.increase = increase
	e.n = n & 0x07
	e.amplitude = e.initial
}

func (e *envelope) tick(seqPulses uint32) {
	pulses := e.clock.Step(seqPulses)
	if e.n == 0 {
		return
	}
	if !counterTick(&e.count, uint32(e.n), pulses) {
		return
	}

	if e.increase {
		if e.amplitude < maxVolume {
			e.amplitude++
		}
	} else if e.amplitude > 0 {
		e.amplitude--
	}
}
