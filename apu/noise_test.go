package apu

import "testing"

func newNoise(shift uint8, smallStep bool, prescale uint8) *NoiseChannel {
	n := NewNoiseChannel()
	n.VolumeEnvelope(0x0F, false, 0)
	n.PolynomialCounter(shift, smallStep, prescale)
	n.Trigger(true, false)
	return n
}

func TestNoise_PowerOn(t *testing.T) {
	n := NewNoiseChannel()
	if n.Running() {
		t.Error("new channel running")
	}
	if n.LFSR() != 1 {
		t.Errorf("lfsr = 0x%04X, want 0x0001", n.LFSR())
	}
	if s := n.Tick(); s != 0 {
		t.Errorf("stopped sample = %d, want 0", s)
	}
	if n.LFSR() != 1 {
		t.Errorf("stopped channel advanced lfsr to 0x%04X", n.LFSR())
	}
}

func TestNoise_LFSRStep(t *testing.T) {
	tests := []struct {
		smallStep bool
		want      uint16
	}{
		{false, 0x4000},
		{true, 0x4040},
	}
	for _, tc := range tests {
		n := newNoise(0, tc.smallStep, 0)

		// Sample is taken before the register shifts
		if s := n.Tick(); s != 15 {
			t.Errorf("smallStep=%v: first sample = %d, want 15", tc.smallStep, s)
		}
		if n.LFSR() != tc.want {
			t.Errorf("smallStep=%v: lfsr = 0x%04X, want 0x%04X", tc.smallStep, n.LFSR(), tc.want)
		}
		if n.last != 1 {
			t.Errorf("smallStep=%v: last = %d, want 1", tc.smallStep, n.last)
		}
		if s := n.Sample(); s != -15 {
			t.Errorf("smallStep=%v: sample after shift = %d, want -15", tc.smallStep, s)
		}
	}
}

func TestNoise_LFSRSequence(t *testing.T) {
	n := newNoise(0, false, 0)
	n.Tick()
	n.Tick()
	// 0x4000: bit0=0 bit1=0, feedback 0
	if n.LFSR() != 0x2000 {
		t.Errorf("lfsr = 0x%04X after two shifts, want 0x2000", n.LFSR())
	}
	if n.last != 0 {
		t.Errorf("last = %d, want 0", n.last)
	}
}

func TestNoise_Dividers(t *testing.T) {
	tests := []struct {
		name     string
		shift    uint8
		prescale uint8
		period   int
	}{
		{"prescale 0 shift 0", 0, 0, 1},
		{"prescale 1 shift 0", 0, 1, 1},
		{"prescale 2 shift 0", 0, 2, 2},
		{"prescale 0 shift 1", 1, 0, 2},
		{"prescale 3 shift 2", 2, 3, 12},
	}
	for _, tc := range tests {
		n := newNoise(tc.shift, false, tc.prescale)
		for i := 0; i < tc.period-1; i++ {
			n.Tick()
		}
		if n.LFSR() != 1 {
			t.Errorf("%s: lfsr advanced before %d ticks", tc.name, tc.period)
		}
		n.Tick()
		if n.LFSR() != 0x4000 {
			t.Errorf("%s: lfsr = 0x%04X after %d ticks, want 0x4000", tc.name, n.LFSR(), tc.period)
		}
	}
}

func TestNoise_TriggerReseed(t *testing.T) {
	n := newNoise(0, false, 0)
	for i := 0; i < 10; i++ {
		n.Tick()
	}
	n.prescaleCount = 3
	n.shiftClockCount = 2
	n.Trigger(true, true)

	if n.LFSR() != 1 || n.last != 0 {
		t.Errorf("after trigger lfsr = 0x%04X last = %d, want 0x0001 and 0", n.LFSR(), n.last)
	}
	if n.prescaleCount != 0 || n.shiftClockCount != 0 || n.length.count != 0 || n.envelope.count != 0 {
		t.Error("trigger did not clear counters")
	}
	if n.length.repeat {
		t.Error("repeat set for single trigger")
	}
}

func TestNoise_ZeroReseed(t *testing.T) {
	n := newNoise(0, false, 0)
	n.lfsr = 0
	n.Tick()
	if n.LFSR() != 0x4000 {
		t.Errorf("lfsr = 0x%04X after shifting from zero, want 0x4000", n.LFSR())
	}
}

func TestNoise_PolynomialCounter(t *testing.T) {
	n := NewNoiseChannel()
	n.PolynomialCounter(15, true, 0xFF)
	if n.shiftClock != maxShiftClock {
		t.Errorf("shift = %d, want %d", n.shiftClock, maxShiftClock)
	}
	if !n.smallStep {
		t.Error("smallStep not set")
	}
	if n.prescale != 7 {
		t.Errorf("prescale = %d, want 7", n.prescale)
	}
}

func TestNoise_LengthExpiry(t *testing.T) {
	n := newNoise(0, false, 0)
	n.Length(62)
	n.Trigger(true, true)

	for i := 0; i < 2*ticksPerLengthPulse-1; i++ {
		n.Tick()
	}
	if !n.Running() {
		t.Fatal("stopped before second length pulse")
	}
	n.Tick()
	if n.Running() {
		t.Error("running after length expiry")
	}
	lfsr := n.LFSR()
	if s := n.Tick(); s != 0 {
		t.Errorf("sample = %d after expiry, want 0", s)
	}
	if n.LFSR() != lfsr {
		t.Error("lfsr advanced after expiry")
	}
}

func TestNoise_Envelope(t *testing.T) {
	n := NewNoiseChannel()
	n.VolumeEnvelope(8, false, 1)
	n.Trigger(true, false)
	for i := 0; i < ticksPerEnvelopePulse; i++ {
		n.Tick()
	}
	if n.Volume() != 7 {
		t.Errorf("volume = %d after one envelope pulse, want 7", n.Volume())
	}
}

func TestNoise_Next(t *testing.T) {
	n := newNoise(0, false, 0)
	n.SetAmplitude(1600)
	// One tick per sample above the APU clock rate
	if s := n.Next(2 * APUClockHz); s != 1500 {
		t.Errorf("Next = %d, want 1500", s)
	}
	if s := n.Next(2 * APUClockHz); s != -1500 {
		t.Errorf("Next = %d, want -1500", s)
	}
	if s := n.Next(-1); s != 0 {
		t.Errorf("Next(-1) = %d, want 0", s)
	}
}
