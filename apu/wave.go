package apu

// WaveChannel stands in for channel 3. Wave sample playback is not
// emulated; the channel always outputs silence and ignores its registers.
type WaveChannel struct{}

// Tick returns silence.
func (WaveChannel) Tick() int8 {
	return 0
}
