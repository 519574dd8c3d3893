package apu

// maxScale bounds the host output scale so a full-scale sample fits in
// an int16.
const maxScale = 32767

// TicksPerSample returns the number of APU ticks per output sample at
// sampleRate. Rates above the APU clock still tick once per sample.
func TicksPerSample(sampleRate int) uint32 {
	if sampleRate <= 0 {
		return 0
	}
	period := APUClockHz / sampleRate
	if period == 0 {
		period = 1
	}
	return uint32(period)
}

// scaleSample returns v*scale/full clamped to the int16 range.
func scaleSample(v int32, scale int, full int32) int16 {
	s := int64(v) * int64(scale) / int64(full)
	if s > 32767 {
		return 32767
	}
	if s < -32768 {
		return -32768
	}
	return int16(s)
}

func clampScale(v int) int {
	if v < 0 {
		return 0
	}
	if v > maxScale {
		return maxScale
	}
	return v
}
