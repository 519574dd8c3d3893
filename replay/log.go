// Package replay feeds recorded or scripted register writes into the
// sound engine at their APU tick timestamps.
package replay

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

var (
	// ErrEmptyLog is returned when a log or script produces no writes.
	ErrEmptyLog = errors.New("replay: no register writes")

	// ErrMalformed is returned for a line that is not a tick/addr/value triplet.
	ErrMalformed = errors.New("replay: expected tick addr value")

	// ErrOutOfOrder is returned when a timestamp is earlier than the one
	// before it.
	ErrOutOfOrder = errors.New("replay: tick out of order")
)

// Event is one register write at an APU tick (2^20 Hz) timestamp.
type Event struct {
	Tick  uint64
	Addr  uint16
	Value uint8
}

// Parse reads a replay log: one "tick addr value" triplet of hex fields
// per line with an optional 0x prefix. Blank lines and text after '#' are
// ignored. Ticks must not decrease.
func Parse(r io.Reader) ([]Event, error) {
	var events []Event
	var last uint64

	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 3 {
			return nil, fmt.Errorf("line %d: %w", line, ErrMalformed)
		}

		tick, err := parseHex(fields[0], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: tick: %w", line, err)
		}
		addr, err := parseHex(fields[1], 16)
		if err != nil {
			return nil, fmt.Errorf("line %d: addr: %w", line, err)
		}
		value, err := parseHex(fields[2], 8)
		if err != nil {
			return nil, fmt.Errorf("line %d: value: %w", line, err)
		}
		if tick < last {
			return nil, fmt.Errorf("line %d: 0x%X after 0x%X: %w", line, tick, last, ErrOutOfOrder)
		}
		last = tick

		events = append(events, Event{Tick: tick, Addr: uint16(addr), Value: uint8(value)})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}
	if len(events) == 0 {
		return nil, ErrEmptyLog
	}
	return events, nil
}

// Load parses the replay log at path.
func Load(path string) ([]Event, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open replay log: %w", err)
	}
	defer f.Close()

	events, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return events, nil
}

func parseHex(field string, bits int) (uint64, error) {
	field = strings.TrimPrefix(strings.ToLower(field), "0x")
	return strconv.ParseUint(field, 16, bits)
}

// Duration returns the tick of the final event.
func Duration(events []Event) uint64 {
	if len(events) == 0 {
		return 0
	}
	return events[len(events)-1].Tick
}
