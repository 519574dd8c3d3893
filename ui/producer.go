package ui

import (
	"sync"
)

// ScopeSize is the number of mono samples kept for the oscilloscope view.
const ScopeSize = 1024

// SharedScope holds the most recent output samples, written by the
// producer goroutine and read by Ebiten's Draw. Samples are kept in a
// circular write buffer and copied out in time order on Read.
type SharedScope struct {
	mu       sync.Mutex
	write    []int16 // Circular, written under lock
	read     []int16 // Snapshot returned by Read
	writePos int
	filled   int
}

// NewSharedScope creates a scope buffer of ScopeSize samples.
func NewSharedScope() *SharedScope {
	return &SharedScope{
		write: make([]int16, ScopeSize),
		read:  make([]int16, ScopeSize),
	}
}

// Update appends interleaved stereo samples, keeping their mono average.
func (ss *SharedScope) Update(stereo []int16) {
	ss.mu.Lock()
	for i := 0; i+1 < len(stereo); i += 2 {
		ss.write[ss.writePos] = int16((int32(stereo[i]) + int32(stereo[i+1])) / 2)
		ss.writePos = (ss.writePos + 1) % len(ss.write)
		if ss.filled < len(ss.write) {
			ss.filled++
		}
	}
	ss.mu.Unlock()
}

// Read returns the buffered samples oldest first. The returned slice is
// reused by the next Read.
func (ss *SharedScope) Read() []int16 {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	start := ss.writePos - ss.filled
	if start < 0 {
		start += len(ss.write)
	}
	for i := 0; i < ss.filled; i++ {
		ss.read[i] = ss.write[(start+i)%len(ss.write)]
	}
	return ss.read[:ss.filled]
}

// AudioSink is the playback side paused together with the producer.
type AudioSink interface {
	Pause()
	Resume()
}

type producerState int

const (
	producerRunning producerState = iota
	producerPausing               // requested, waiting for the producer
	producerPaused
	producerStopped
)

// ProducerControl gates the sample producer goroutine. The UI thread
// requests pause, resume or stop; the producer calls CheckPause between
// chunks and parks there while paused. The audio sink, if any, stops
// pulling once the producer has parked and restarts on resume.
type ProducerControl struct {
	mu    sync.Mutex
	cond  *sync.Cond
	state producerState
	sink  AudioSink
}

// NewProducerControl creates a running control. sink may be nil.
func NewProducerControl(sink AudioSink) *ProducerControl {
	pc := &ProducerControl{sink: sink}
	pc.cond = sync.NewCond(&pc.mu)
	return pc
}

// RequestPause blocks until the producer has parked, then pauses the sink.
// It is a no-op unless running.
func (pc *ProducerControl) RequestPause() {
	pc.mu.Lock()
	if pc.state != producerRunning {
		pc.mu.Unlock()
		return
	}
	pc.state = producerPausing
	for pc.state == producerPausing {
		pc.cond.Wait()
	}
	parked := pc.state == producerPaused
	pc.mu.Unlock()

	if parked && pc.sink != nil {
		pc.sink.Pause()
	}
}

// RequestResume releases a paused producer and restarts the sink.
func (pc *ProducerControl) RequestResume() {
	pc.mu.Lock()
	if pc.state != producerPaused && pc.state != producerPausing {
		pc.mu.Unlock()
		return
	}
	pc.state = producerRunning
	pc.cond.Broadcast()
	pc.mu.Unlock()

	if pc.sink != nil {
		pc.sink.Resume()
	}
}

// CheckPause is called by the producer before each chunk. It parks while
// paused and returns false once stopped.
func (pc *ProducerControl) CheckPause() bool {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	if pc.state == producerPausing {
		pc.state = producerPaused
		pc.cond.Broadcast()
	}
	for pc.state == producerPaused {
		pc.cond.Wait()
	}
	return pc.state != producerStopped
}

// Stop makes the producer exit at its next CheckPause, including one
// parked there.
func (pc *ProducerControl) Stop() {
	pc.mu.Lock()
	pc.state = producerStopped
	pc.cond.Broadcast()
	pc.mu.Unlock()
}

// ShouldRun reports whether Stop has not been called.
func (pc *ProducerControl) ShouldRun() bool {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	return pc.state != producerStopped
}

// IsPaused reports whether the producer is parked.
func (pc *ProducerControl) IsPaused() bool {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	return pc.state == producerPaused
}
