package apu

// Clock rates expressed as powers of two.
const (
	masterRateExp    = 22 // 4 MiHz system clock
	apuRateExp       = 20 // 1 MiHz APU clock
	sequencerRateExp = 9  // 512 Hz frame sequencer
	sweepRateExp     = 7  // 128 Hz
	lengthRateExp    = 8  // 256 Hz
	envelopeRateExp  = 6  // 64 Hz
)

// APUClockHz is the internal tick rate of every channel.
const APUClockHz = 1 << apuRateExp

// Clock divides a 2^in tick stream down to a 2^out pulse stream. The
// remainder carries between steps so no ticks are ever lost.
type Clock struct {
	remainder uint32
	shift     uint32
}

// NewClock creates a divider from 2^inExp Hz to 2^outExp Hz. An output
// rate above the input rate is clamped to a 1:1 divider.
func NewClock(inExp, outExp uint32) Clock {
	var shift uint32
	if inExp >= outExp {
		shift = inExp - outExp
	}
	return Clock{shift: shift}
}

func sequencerClock() Clock { return NewClock(apuRateExp, sequencerRateExp) }
func sweepClock() Clock     { return NewClock(sequencerRateExp, sweepRateExp) }
func lengthClock() Clock    { return NewClock(sequencerRateExp, lengthRateExp) }
func envelopeClock() Clock  { return NewClock(sequencerRateExp, envelopeRateExp) }
func masterClock() Clock    { return NewClock(masterRateExp, apuRateExp) }

// Step advances the divider by ticks input clocks and returns the number
// of output pulses fired.
func (c *Clock) Step(ticks uint32) uint32 {
	ticks += c.remainder
	fired := ticks >> c.shift
	c.remainder = ticks & (1<<c.shift - 1)
	return fired
}

// Shift returns the divider exponent (in - out).
func (c *Clock) Shift() uint32 {
	return c.shift
}

// Remainder returns the input ticks carried toward the next pulse.
func (c *Clock) Remainder() uint32 {
	return c.remainder
}

// counterTick adds val to counter and reports whether threshold was
// reached, carrying any excess. A zero val never fires.
func counterTick(counter *uint32, threshold, val uint32) bool {
	if val == 0 {
		return false
	}
	*counter += val
	if *counter < threshold {
		return false
	}
	if threshold == 0 {
		*counter = 0
	} else {
		*counter -= threshold
	}
	return true
}
