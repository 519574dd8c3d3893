package apu

// Sound register addresses.
const (
	NR10 uint16 = 0xFF10 // channel 1 sweep
	NR11 uint16 = 0xFF11 // channel 1 length / duty
	NR12 uint16 = 0xFF12 // channel 1 envelope
	NR13 uint16 = 0xFF13 // channel 1 frequency low
	NR14 uint16 = 0xFF14 // channel 1 frequency high / trigger

	NR21 uint16 = 0xFF16
	NR22 uint16 = 0xFF17
	NR23 uint16 = 0xFF18
	NR24 uint16 = 0xFF19

	NR30 uint16 = 0xFF1A
	NR31 uint16 = 0xFF1B
	NR32 uint16 = 0xFF1C
	NR33 uint16 = 0xFF1D
	NR34 uint16 = 0xFF1E

	NR41 uint16 = 0xFF20
	NR42 uint16 = 0xFF21
	NR43 uint16 = 0xFF22
	NR44 uint16 = 0xFF23

	NR50 uint16 = 0xFF24 // master volume
	NR51 uint16 = 0xFF25 // output routing
	NR52 uint16 = 0xFF26 // power

	WaveRAMStart uint16 = 0xFF30
	WaveRAMEnd   uint16 = 0xFF3F
)

// RegisterNames maps register names to addresses for scripting.
var RegisterNames = map[string]uint16{
	"NR10": NR10, "NR11": NR11, "NR12": NR12, "NR13": NR13, "NR14": NR14,
	"NR21": NR21, "NR22": NR22, "NR23": NR23, "NR24": NR24,
	"NR30": NR30, "NR31": NR31, "NR32": NR32, "NR33": NR33, "NR34": NR34,
	"NR41": NR41, "NR42": NR42, "NR43": NR43, "NR44": NR44,
	"NR50": NR50, "NR51": NR51, "NR52": NR52,
}

type registerWrite func(m *Mixer, v uint8)

func noWrite(*Mixer, uint8) {}

func lengthDuty(ch *ToneChannel, v uint8) {
	ch.LengthDuty(v&0x3F, Duty(v>>6))
}

func volumeEnvelope(v uint8) (initial uint8, increase bool, n uint8) {
	return v >> 4, v&0x08 != 0, v & 0x07
}

func triggerBits(v uint8) (trigger, single bool) {
	return v&0x80 != 0, v&0x40 != 0
}

// registers decodes each write into the matching channel or mixer setter.
var registers = map[uint16]registerWrite{
	NR10: func(m *Mixer, v uint8) {
		m.tone1.Sweep((v>>4)&0x07, v&0x08 == 0, v&0x07)
	},
	NR11: func(m *Mixer, v uint8) { lengthDuty(&m.tone1, v) },
	NR12: func(m *Mixer, v uint8) { m.tone1.VolumeEnvelope(volumeEnvelope(v)) },
	NR13: func(m *Mixer, v uint8) { m.tone1.GBFreqLow(v) },
	NR14: func(m *Mixer, v uint8) {
		trigger, single := triggerBits(v)
		m.tone1.TriggerFreqHigh(trigger, single, v&0x07)
	},

	NR21: func(m *Mixer, v uint8) { lengthDuty(&m.tone2, v) },
	NR22: func(m *Mixer, v uint8) { m.tone2.VolumeEnvelope(volumeEnvelope(v)) },
	NR23: func(m *Mixer, v uint8) { m.tone2.GBFreqLow(v) },
	NR24: func(m *Mixer, v uint8) {
		trigger, single := triggerBits(v)
		m.tone2.TriggerFreqHigh(trigger, single, v&0x07)
	},

	// Channel 3 is not emulated
	NR30: noWrite,
	NR31: noWrite,
	NR32: noWrite,
	NR33: noWrite,
	NR34: noWrite,

	NR41: func(m *Mixer, v uint8) { m.noise.Length(v & 0x3F) },
	NR42: func(m *Mixer, v uint8) { m.noise.VolumeEnvelope(volumeEnvelope(v)) },
	NR43: func(m *Mixer, v uint8) {
		m.noise.PolynomialCounter(v>>4, v&0x08 != 0, v&0x07)
	},
	NR44: func(m *Mixer, v uint8) { m.noise.Trigger(triggerBits(v)) },

	NR50: func(m *Mixer, v uint8) { m.SetVolume((v>>4)&0x07, v&0x07) },
	NR51: func(m *Mixer, v uint8) {
		for ch := 0; ch < channelCount; ch++ {
			right := (v >> ch) & 0x01
			left := (v >> (ch + 4)) & 0x01
			m.SetOutput(ch, Terminal(right|left<<1))
		}
	},
	NR52: func(m *Mixer, v uint8) { m.Enable(v&0x80 != 0) },
}

func init() {
	for addr := WaveRAMStart; addr <= WaveRAMEnd; addr++ {
		registers[addr] = noWrite
	}
}

// Write applies a register write. Unknown addresses are ignored and
// values are masked to each field's width.
func (m *Mixer) Write(addr uint16, value uint8) {
	if w, ok := registers[addr]; ok {
		w(m, value)
	}
}

// IsRegister reports whether addr is a decoded sound register.
func IsRegister(addr uint16) bool {
	_, ok := registers[addr]
	return ok
}
