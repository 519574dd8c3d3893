package apu

import "testing"

func TestRegisters_Power(t *testing.T) {
	m := NewMixer(512)
	m.Write(NR52, 0x80)
	if !m.Enabled() {
		t.Error("NR52=0x80 did not enable")
	}
	m.Write(NR52, 0x7F)
	if m.Enabled() {
		t.Error("NR52=0x7F did not disable")
	}
}

func TestRegisters_Sweep(t *testing.T) {
	m := NewMixer(512)
	// time 7, bit3 set = subtraction, shift 1
	m.Write(NR10, 0x79)
	s := m.Tone1().sweep
	if s.time != 7 || s.addition || s.shift != 1 {
		t.Errorf("NR10=0x79: time=%d addition=%v shift=%d, want 7 false 1", s.time, s.addition, s.shift)
	}
	m.Write(NR10, 0x12)
	s = m.Tone1().sweep
	if s.time != 1 || !s.addition || s.shift != 2 {
		t.Errorf("NR10=0x12: time=%d addition=%v shift=%d, want 1 true 2", s.time, s.addition, s.shift)
	}
}

func TestRegisters_LengthDuty(t *testing.T) {
	m := NewMixer(512)
	m.Write(NR11, 0xBF)
	if m.Tone1().Duty() != Duty50 || m.Tone1().length.length != 63 {
		t.Errorf("NR11=0xBF: duty=%d length=%d, want 2 63", m.Tone1().Duty(), m.Tone1().length.length)
	}
	m.Write(NR21, 0x45)
	if m.Tone2().Duty() != Duty25 || m.Tone2().length.length != 5 {
		t.Errorf("NR21=0x45: duty=%d length=%d, want 1 5", m.Tone2().Duty(), m.Tone2().length.length)
	}
	m.Write(NR41, 0xFF)
	if m.Noise().length.length != 63 {
		t.Errorf("NR41=0xFF: length=%d, want 63", m.Noise().length.length)
	}
}

func TestRegisters_Envelope(t *testing.T) {
	m := NewMixer(512)
	m.Write(NR12, 0xF3)
	e := m.Tone1().envelope
	if e.initial != 15 || e.increase || e.n != 3 || e.amplitude != 15 {
		t.Errorf("NR12=0xF3: %+v", e)
	}
	m.Write(NR22, 0x19)
	e = m.Tone2().envelope
	if e.initial != 1 || !e.increase || e.n != 1 {
		t.Errorf("NR22=0x19: %+v", e)
	}
	m.Write(NR42, 0xA8)
	if m.Noise().Volume() != 10 || !m.Noise().envelope.increase || m.Noise().envelope.n != 0 {
		t.Errorf("NR42=0xA8: %+v", m.Noise().envelope)
	}
}

func TestRegisters_FrequencyTrigger(t *testing.T) {
	m := NewMixer(512)
	m.Write(NR13, 0xD6)
	m.Write(NR14, 0x86)
	tone := m.Tone1()
	if tone.GBFreq() != 1750 {
		t.Errorf("gbfreq = %d, want 1750", tone.GBFreq())
	}
	if !tone.Running() || !tone.length.repeat {
		t.Errorf("NR14=0x86: running=%v repeat=%v, want true true", tone.Running(), tone.length.repeat)
	}

	m.Write(NR23, 0x00)
	m.Write(NR24, 0x47)
	tone = m.Tone2()
	if tone.GBFreq() != 0x700 {
		t.Errorf("gbfreq = 0x%03X, want 0x700", tone.GBFreq())
	}
	if tone.Running() || tone.length.repeat {
		t.Errorf("NR24=0x47: running=%v repeat=%v, want false false", tone.Running(), tone.length.repeat)
	}
}

func TestRegisters_Noise(t *testing.T) {
	m := NewMixer(512)
	m.Write(NR43, 0xFB)
	n := m.Noise()
	if n.shiftClock != 14 || !n.smallStep || n.prescale != 3 {
		t.Errorf("NR43=0xFB: shift=%d smallStep=%v prescale=%d, want 14 true 3",
			n.shiftClock, n.smallStep, n.prescale)
	}
	m.Write(NR44, 0xC0)
	if !n.Running() || n.length.repeat {
		t.Errorf("NR44=0xC0: running=%v repeat=%v, want true false", n.Running(), n.length.repeat)
	}
}

func TestRegisters_MasterVolume(t *testing.T) {
	m := NewMixer(512)
	m.Write(NR50, 0xB5)
	right, left := m.Volume()
	if right != 3 || left != 5 {
		t.Errorf("NR50=0xB5: right=%d left=%d, want 3 5", right, left)
	}
}

func TestRegisters_Routing(t *testing.T) {
	tests := []struct {
		value uint8
		want  [channelCount]Terminal
	}{
		{0x00, [channelCount]Terminal{}},
		{0xFF, [channelCount]Terminal{TerminalBoth, TerminalBoth, TerminalBoth, TerminalBoth}},
		{0x21, [channelCount]Terminal{TerminalRight, TerminalLeft, TerminalNone, TerminalNone}},
		{0x88, [channelCount]Terminal{TerminalNone, TerminalNone, TerminalNone, TerminalBoth}},
		{0x14, [channelCount]Terminal{TerminalLeft, TerminalNone, TerminalRight, TerminalNone}},
	}
	for _, tc := range tests {
		m := NewMixer(512)
		m.Write(NR51, tc.value)
		for ch := 0; ch < channelCount; ch++ {
			if m.Output(ch) != tc.want[ch] {
				t.Errorf("NR51=0x%02X channel %d: terminal %d, want %d", tc.value, ch+1, m.Output(ch), tc.want[ch])
			}
		}
	}
}

func TestRegisters_Ignored(t *testing.T) {
	m := NewMixer(512)
	before := *m

	for _, addr := range []uint16{NR30, NR31, NR32, NR33, NR34, WaveRAMStart, WaveRAMEnd, 0xFF15, 0xFF27, 0x0000, 0xFFFF} {
		m.Write(addr, 0xFF)
	}
	if *m != before {
		t.Error("ignored register writes changed state")
	}
}

func TestIsRegister(t *testing.T) {
	tests := []struct {
		addr uint16
		want bool
	}{
		{NR10, true},
		{NR34, true},
		{NR52, true},
		{0xFF35, true},
		{0xFF15, false},
		{0xFF1F, false},
		{0xFF27, false},
		{0xFF40, false},
	}
	for _, tc := range tests {
		if got := IsRegister(tc.addr); got != tc.want {
			t.Errorf("IsRegister(0x%04X) = %v, want %v", tc.addr, got, tc.want)
		}
	}
	for name, addr := range RegisterNames {
		if !IsRegister(addr) {
			t.Errorf("%s (0x%04X) not decoded", name, addr)
		}
	}
}

func TestRegisters_PlayNote(t *testing.T) {
	m := NewMixer(512)
	m.Write(NR52, 0x80)
	m.Write(NR50, 0x77)
	m.Write(NR51, 0x11)
	m.Write(NR11, 0x80)
	m.Write(NR12, 0xF0)
	m.Write(NR13, 0xD6)
	m.Write(NR14, 0x86)

	s := m.Tick()
	if s.Left != 120 || s.Right != 120 {
		t.Errorf("first tick = %+v, want {Left:120 Right:120}", s)
	}
}
