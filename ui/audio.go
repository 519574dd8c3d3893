package ui

import (
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

const defaultSampleRate = 48000

// ringBufferMillis sizes the ring buffer in milliseconds of stereo audio.
const ringBufferMillis = 170

// AudioPlayer plays interleaved int16 stereo samples through oto. Samples
// are queued into a ring buffer which oto's player reads in a pull model.
type AudioPlayer struct {
	player     *oto.Player
	ringBuffer *AudioRingBuffer
	audioBytes []byte // Pre-allocated buffer for int16-to-byte conversion
	sampleRate int
}

// oto allows one context per process
var (
	otoCtx      *oto.Context
	otoRate     int
	otoInitOnce sync.Once
	otoInitErr  error
)

// ensureOtoContext initializes the oto audio context on first use. Later
// calls must request the same sample rate.
func ensureOtoContext(sampleRate int) (*oto.Context, error) {
	otoInitOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: 2,
			Format:       oto.FormatSignedInt16LE,
			BufferSize:   50 * time.Millisecond,
		}
		var readyChan chan struct{}
		otoCtx, readyChan, otoInitErr = oto.NewContext(op)
		if otoInitErr != nil {
			return
		}
		otoRate = sampleRate
		<-readyChan
	})
	if otoInitErr != nil {
		return nil, otoInitErr
	}
	if otoRate != sampleRate {
		return nil, fmt.Errorf("audio context already running at %d Hz", otoRate)
	}
	return otoCtx, nil
}

// bytesPerSecond is the stereo s16le byte rate at sampleRate.
func bytesPerSecond(sampleRate int) int {
	return sampleRate * 2 * 2
}

// NewAudioPlayer creates and starts audio playback at sampleRate.
func NewAudioPlayer(sampleRate int, volume float64) (*AudioPlayer, error) {
	ctx, err := ensureOtoContext(sampleRate)
	if err != nil {
		return nil, fmt.Errorf("oto audio not available: %w", err)
	}

	// Keep the frame size aligned to a stereo sample
	capacity := bytesPerSecond(sampleRate) * ringBufferMillis / 1000 &^ 3
	rb := NewAudioRingBuffer(capacity)
	player := ctx.NewPlayer(rb)
	player.SetBufferSize(bytesPerSecond(sampleRate) / 10)
	player.SetVolume(volume)
	player.Play()

	return &AudioPlayer{
		player:     player,
		ringBuffer: rb,
		audioBytes: make([]byte, 0, 4096),
		sampleRate: sampleRate,
	}, nil
}

// QueueSamples converts interleaved int16 stereo samples to bytes and
// writes them to the ring buffer for oto to consume.
func (a *AudioPlayer) QueueSamples(samples []int16) {
	if len(samples) == 0 {
		return
	}
	a.audioBytes = appendPCM(a.audioBytes[:0], samples)
	a.ringBuffer.Write(a.audioBytes)
}

// appendPCM appends samples to dst as little-endian bytes.
func appendPCM(dst []byte, samples []int16) []byte {
	for _, sample := range samples {
		dst = append(dst, byte(sample), byte(sample>>8))
	}
	return dst
}

// GetBufferLevel returns the total bytes of audio data currently buffered
// (ring buffer + oto player internal buffer). Used for producer pacing.
func (a *AudioPlayer) GetBufferLevel() int {
	return a.ringBuffer.Buffered() + a.player.BufferedSize()
}

// SampleRate returns the playback rate.
func (a *AudioPlayer) SampleRate() int {
	return a.sampleRate
}

// SetVolume sets the playback volume (0.0 = silent, 1.0 = full).
func (a *AudioPlayer) SetVolume(vol float64) {
	a.player.SetVolume(vol)
}

// Pause stops the device pulling samples.
func (a *AudioPlayer) Pause() {
	a.player.Pause()
}

// Resume restarts playback after Pause.
func (a *AudioPlayer) Resume() {
	a.player.Play()
}

// Close cleans up audio resources.
func (a *AudioPlayer) Close() {
	if a.ringBuffer != nil {
		a.ringBuffer.Close()
	}
	if a.player != nil {
		a.player.Close()
	}
}
