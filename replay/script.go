package replay

import (
	"context"
	"fmt"
	"os"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/user-none/gbaudio/apu"
)

const (
	// scriptTimeout bounds script execution so a runaway loop cannot hang
	// startup.
	scriptTimeout = 5 * time.Second

	maxScriptEvents = 1 << 20
)

// ParseScript runs a Lua script that describes a register sequence and
// returns the writes it produced. The script sees:
//
//	write(addr, value)  queue a register write at the current tick
//	wait(ticks)         advance the current tick
//	tick()              current tick
//	NR10 ... NR52       register addresses
//	TICKS_PER_SECOND    APU clock rate
func ParseScript(name, src string) ([]Event, error) {
	L := lua.NewState()
	defer L.Close()

	ctx, cancel := context.WithTimeout(context.Background(), scriptTimeout)
	defer cancel()
	L.SetContext(ctx)

	var events []Event
	var now uint64

	L.SetGlobal("write", L.NewFunction(func(L *lua.LState) int {
		addr := L.CheckInt(1)
		value := L.CheckInt(2)
		if addr < 0 || addr > 0xFFFF {
			L.ArgError(1, "address out of range")
		}
		if len(events) >= maxScriptEvents {
			L.RaiseError("more than %d writes", maxScriptEvents)
		}
		// Values are truncated to a byte like a bus write
		events = append(events, Event{Tick: now, Addr: uint16(addr), Value: uint8(value)})
		return 0
	}))
	L.SetGlobal("wait", L.NewFunction(func(L *lua.LState) int {
		ticks := L.CheckInt(1)
		if ticks < 0 {
			L.ArgError(1, "negative wait")
		}
		now += uint64(ticks)
		return 0
	}))
	L.SetGlobal("tick", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LNumber(now))
		return 1
	}))
	for reg, addr := range apu.RegisterNames {
		L.SetGlobal(reg, lua.LNumber(addr))
	}
	L.SetGlobal("TICKS_PER_SECOND", lua.LNumber(apu.APUClockHz))

	if err := L.DoString(src); err != nil {
		return nil, fmt.Errorf("script %s: %w", name, err)
	}
	if len(events) == 0 {
		return nil, fmt.Errorf("script %s: %w", name, ErrEmptyLog)
	}
	return events, nil
}

// LoadScript runs the Lua script at path.
func LoadScript(path string) ([]Event, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return ParseScript(path, string(src))
}
