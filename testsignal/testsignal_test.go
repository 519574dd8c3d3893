package testsignal

import (
	"testing"

	"github.com/user-none/gbaudio/adapter"
	"github.com/user-none/gbaudio/apu"
)

// seqSource replays a fixed sample sequence.
type seqSource struct {
	vals []int16
	i    int
	amp  int
	freq int
}

func (s *seqSource) Next(int) int16 {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v
}
func (s *seqSource) AdjustAmplitude(d int) { s.amp += d }
func (s *seqSource) Amplitude() int { return s.amp }
func (s *seqSource) AdjustFrequency(d int) { s.freq += d }
func (s *seqSource) Frequency() int { return s.freq }

func TestSquare_Waveform(t *testing.T) {
	sq := NewSquare(100, 440, apu.Duty50)
	// 44000 / 440 = 100 samples per period, low for the first 48
	for i := 0; i < 100; i++ {
		want := int16(100)
		if i < 48 {
			want = -100
		}
		if got := sq.Next(44000); got != want {
			t.Fatalf("sample %d = %d, want %d", i, got, want)
		}
	}
	if got := sq.Next(44000); got != -100 {
		t.Errorf("period wrap sample = %d, want -100", got)
	}
}

func TestSquare_Controls(t *testing.T) {
	sq := NewSquare(100, 440, apu.Duty50)
	sq.AdjustFrequency(1000)
	if sq.Frequency() != squareMaxFreq {
		t.Errorf("frequency = %d, want %d", sq.Frequency(), squareMaxFreq)
	}
	sq.AdjustFrequency(-1000)
	if sq.Frequency() != squareMinFreq {
		t.Errorf("frequency = %d, want %d", sq.Frequency(), squareMinFreq)
	}
	sq.AdjustAmplitude(-500)
	if sq.Amplitude() != 0 {
		t.Errorf("amplitude = %d, want 0", sq.Amplitude())
	}
	sq.AdjustAmplitude(99999)
	if sq.Amplitude() != maxAmplitude {
		t.Errorf("amplitude = %d, want %d", sq.Amplitude(), maxAmplitude)
	}

	sq.Toggle()
	if sq.Duty() != apu.Duty75 {
		t.Errorf("duty = %d, want %d", sq.Duty(), apu.Duty75)
	}
	sq.Toggle()
	if sq.Duty() != apu.Duty12 {
		t.Errorf("duty = %d, want %d (wrap)", sq.Duty(), apu.Duty12)
	}
}

func TestSaw_Waveform(t *testing.T) {
	saw := NewSaw(100, 440)
	samples := make([]int16, 100)
	for i := range samples {
		samples[i] = saw.Next(44000)
	}

	tests := []struct {
		i    int
		want int16
	}{
		{0, 100},
		{24, 4},
		{25, 0},
		{49, -96},
		{50, -100},
		{75, 0},
		{99, 96},
	}
	for _, tc := range tests {
		if samples[tc.i] != tc.want {
			t.Errorf("sample %d = %d, want %d", tc.i, samples[tc.i], tc.want)
		}
	}
}

func TestSaw_LowFrequency(t *testing.T) {
	saw := NewSaw(100, 20)
	if saw.Frequency() != 20 {
		t.Errorf("initial frequency = %d, want 20", saw.Frequency())
	}
	saw.AdjustFrequency(0)
	if saw.Frequency() != sawMinFreq {
		t.Errorf("adjusted frequency = %d, want %d", saw.Frequency(), sawMinFreq)
	}
	// Period too short for four quarters
	fast := NewSaw(100, 880)
	if fast.Next(1000) != 0 {
		t.Error("degenerate period produced sound")
	}
}

func TestLFSR_Step(t *testing.T) {
	l := NewLFSR(10, false, 1)
	if got := l.Next(0); got != 10 {
		t.Errorf("first sample = %d, want 10", got)
	}
	if l.Register() != 0x4000 {
		t.Errorf("register = 0x%04X, want 0x4000", l.Register())
	}
	if got := l.Next(0); got != -10 {
		t.Errorf("second sample = %d, want -10", got)
	}

	w := NewLFSR(10, true, 1)
	w.Next(0)
	if w.Register() != 0x4040 {
		t.Errorf("7-bit register = 0x%04X, want 0x4040", w.Register())
	}
}

func TestLFSR_Period(t *testing.T) {
	l := NewLFSR(10, false, 3)
	l.Next(0)
	l.Next(0)
	if l.Register() != 1 {
		t.Errorf("register stepped before period: 0x%04X", l.Register())
	}
	l.Next(0)
	if l.Register() != 0x4000 {
		t.Errorf("register = 0x%04X after period, want 0x4000", l.Register())
	}

	l.AdjustPeriod(-10)
	if l.Period() != 1 {
		t.Errorf("period = %d, want 1", l.Period())
	}
	l.Toggle()
	if !l.width {
		t.Error("toggle did not select 7-bit mode")
	}
}

func TestSweep_Steps(t *testing.T) {
	tests := []struct {
		name     string
		increase bool
		want     int
	}{
		{"increase", true, 660},
		{"decrease", false, 220},
	}
	for _, tc := range tests {
		inner := adapter.New("square", NewSquare(100, 440, apu.Duty50))
		s := NewSweep(tc.increase, 1, 2, 1)

		// 12800 / 128 = 100 samples per step, two steps
		for i := 1; i < 100; i++ {
			s.Next(inner, 12800)
		}
		if inner.Frequency() != 440 {
			t.Errorf("%s: frequency = %d before first step, want 440", tc.name, inner.Frequency())
		}
		if v := s.Next(inner, 12800); v == 0 {
			t.Errorf("%s: silent during sweep", tc.name)
		}
		if inner.Frequency() != tc.want {
			t.Errorf("%s: frequency = %d after step, want %d", tc.name, inner.Frequency(), tc.want)
		}
		for i := 101; i < 200; i++ {
			s.Next(inner, 12800)
		}
		if v := s.Next(inner, 12800); v != 0 {
			t.Errorf("%s: sample = %d after sweep end, want 0", tc.name, v)
		}

		s.Reset()
		if v := s.Next(inner, 12800); v == 0 {
			t.Errorf("%s: silent after reset", tc.name)
		}
	}
}

func TestSweep_ZeroTime(t *testing.T) {
	inner := adapter.New("square", NewSquare(100, 440, apu.Duty50))
	s := NewSweep(true, 0, 7, 1)
	if v := s.Next(inner, 48000); v != 0 {
		t.Errorf("zero time sweep sample = %d, want 0", v)
	}
}

func TestSweep_Bind(t *testing.T) {
	sq := NewSquare(100, 440, apu.Duty50)
	rig := NewSweep(true, 2, 7, 4)
	g := adapter.New("sweep", rig.Bind(adapter.New("square", sq)))

	g.AdjustAmplitude(16)
	g.AdjustFrequency(10)
	if sq.Amplitude() != 116 || g.Amplitude() != 116 {
		t.Errorf("amplitude = %d, want 116", sq.Amplitude())
	}
	if g.Frequency() != 450 {
		t.Errorf("frequency = %d, want 450", g.Frequency())
	}

	bound := g.Source().(*BoundSweep)
	bound.Toggle()
	if rig.Increase() {
		t.Error("toggle did not flip direction")
	}
}

func TestDelta(t *testing.T) {
	src := adapter.New("seq", &seqSource{vals: []int16{0, 5, 15, 10}})
	var d Delta
	d.Seed(src, 48000)

	want := []int16{5, 10, -5}
	for i, w := range want {
		if got := d.Next(src, 48000); got != w {
			t.Errorf("delta %d = %d, want %d", i, got, w)
		}
	}
}

func TestFreqMod(t *testing.T) {
	carrierSrc := &seqSource{vals: []int16{7}, freq: 1000}
	modSrc := &seqSource{vals: []int16{0, 8192, 8192}, amp: 100}
	carrier := adapter.New("carrier", carrierSrc)
	modulator := adapter.New("modulator", modSrc)

	fm := NewFreqMod(modulator, 48000)
	if modSrc.amp != fmScale/2 {
		t.Errorf("modulator amplitude = %d, want %d", modSrc.amp, fmScale/2)
	}

	if v := fm.Next(carrier, modulator, 48000); v != 7 {
		t.Errorf("sample = %d, want 7", v)
	}
	// 1000 * 8192 / 16384
	if carrierSrc.freq != 1500 {
		t.Errorf("carrier frequency = %d, want 1500", carrierSrc.freq)
	}
	fm.Next(carrier, modulator, 48000)
	if carrierSrc.freq != 1500 {
		t.Errorf("flat modulator changed carrier to %d", carrierSrc.freq)
	}

	g := adapter.New("fm", fm.Bind(carrier, modulator))
	g.AdjustFrequency(3)
	g.AdjustAmplitude(2)
	if modSrc.freq != 3 || carrierSrc.amp != 2 {
		t.Errorf("bound controls routed to modulator freq %d carrier amp %d", modSrc.freq, carrierSrc.amp)
	}
}
