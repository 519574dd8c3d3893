package apu

// lengthCounter silences a channel after (64-length) length pulses
// (256 Hz) unless the channel is in repeat mode.
type lengthCounter struct {
	clock Clock
	count uint32

	length uint8 // 0-63
	repeat bool
}

func newLengthCounter() lengthCounter {
	return lengthCounter{clock: lengthClock()}
}

// tick reports true when the length expired and the channel must stop.
// In repeat mode the counter wraps and keeps counting from zero.
func (l *lengthCounter) tick(seqPulses uint32) bool {
	pulses := l.clock.Step(seqPulses)
	if !counterTick(&l.count, 64-uint32(l.length), pulses) {
		return false
	}
	return !l.repeat
}
