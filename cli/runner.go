// Package cli provides the windowed and headless front ends for the APU.
// The sample producer runs on its own goroutine paced by the audio buffer
// level; the Ebiten thread handles keys and draws the shared scope.
package cli

import (
	"time"

	"github.com/golang/glog"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	scopebridge "github.com/user-none/gbaudio/bridge/ebiten"
	"github.com/user-none/gbaudio/ui"
)

const (
	// producerChunksPerSecond sets the producer's nominal wake rate.
	producerChunksPerSecond = 60

	amplitudeStep = 16
	frequencyStep = 10
)

// Runner drives an Engine in a window.
type Runner struct {
	engine      *ui.Engine
	audioPlayer *ui.AudioPlayer
	scope       *scopebridge.Scope

	// Producer goroutine control
	control      *ui.ProducerControl
	sharedScope  *ui.SharedScope
	producerDone chan struct{}

	// ADT buffer thresholds in bytes
	minBuffer int
	maxBuffer int
}

// NewRunner creates a runner and starts the sample producer. Audio
// initialization failure is non-fatal; the scope still runs.
func NewRunner(e *ui.Engine, volume float64) *Runner {
	player, err := ui.NewAudioPlayer(e.SampleRate(), volume)
	if err != nil {
		glog.Warningf("audio initialization failed, running silent: %v", err)
		player = nil
	}

	// A nil *AudioPlayer must not become a non-nil sink
	var sink ui.AudioSink
	if player != nil {
		sink = player
	}

	// 50 ms and 100 ms of stereo s16le audio
	bytesPerSecond := e.SampleRate() * 4
	r := &Runner{
		engine:       e,
		audioPlayer:  player,
		scope:        scopebridge.NewScope(),
		control:      ui.NewProducerControl(sink),
		sharedScope:  ui.NewSharedScope(),
		producerDone: make(chan struct{}),
		minBuffer:    bytesPerSecond / 20,
		maxBuffer:    bytesPerSecond / 10,
	}

	go r.produceLoop()

	return r
}

// Close stops the producer and releases audio.
func (r *Runner) Close() {
	if r.control != nil {
		r.control.Stop()
		<-r.producerDone
	}

	if r.audioPlayer != nil {
		r.audioPlayer.Close()
		r.audioPlayer = nil
	}
}

// produceLoop fills one chunk per wake, queues it for playback and
// updates the scope. Sleep time is stretched or shrunk to keep the audio
// buffer between the thresholds.
func (r *Runner) produceLoop() {
	defer close(r.producerDone)

	frames := max(r.engine.SampleRate()/producerChunksPerSecond, 1)
	samples := make([]int16, frames*2)
	chunkTime := time.Second / producerChunksPerSecond
	lastChunk := time.Now()

	for {
		if !r.control.CheckPause() {
			return
		}

		r.engine.Fill(samples)
		if r.audioPlayer != nil {
			r.audioPlayer.QueueSamples(samples)
		}
		r.sharedScope.Update(samples)

		// ADT sleep
		sleepTime := chunkTime - time.Since(lastChunk)
		if r.audioPlayer != nil {
			level := r.audioPlayer.GetBufferLevel()
			if level < r.minBuffer {
				sleepTime = time.Duration(float64(sleepTime) * 0.9)
			} else if level > r.maxBuffer {
				sleepTime = time.Duration(float64(sleepTime) * 1.1)
			}
		}

		if sleepTime > time.Millisecond {
			time.Sleep(sleepTime)
		}

		lastChunk = time.Now()
	}
}

// Update implements ebiten.Game.
func (r *Runner) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if !ebiten.IsFocused() {
		return nil
	}

	r.pollKeys()
	return nil
}

// pollKeys applies one control change per key press.
func (r *Runner) pollKeys() {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyU), inpututil.IsKeyJustPressed(ebiten.KeyArrowUp):
		r.engine.AdjustAmplitude(amplitudeStep)
	case inpututil.IsKeyJustPressed(ebiten.KeyD), inpututil.IsKeyJustPressed(ebiten.KeyArrowDown):
		r.engine.AdjustAmplitude(-amplitudeStep)
	case inpututil.IsKeyJustPressed(ebiten.KeyL), inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft):
		r.engine.AdjustFrequency(-frequencyStep)
	case inpututil.IsKeyJustPressed(ebiten.KeyR), inpututil.IsKeyJustPressed(ebiten.KeyArrowRight):
		r.engine.AdjustFrequency(frequencyStep)
	case inpututil.IsKeyJustPressed(ebiten.KeyA):
		glog.Infof("source: %s", r.engine.NextSource())
	case inpututil.IsKeyJustPressed(ebiten.KeyW):
		r.engine.Toggle()
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		r.engine.Restart()
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		r.control.RequestPause()
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		r.control.RequestResume()
	}
}

// Draw implements ebiten.Game.
func (r *Runner) Draw(screen *ebiten.Image) {
	r.scope.Draw(screen, r.sharedScope.Read())

	st := r.engine.Status()
	paused := r.control.IsPaused()
	ebitenutil.DebugPrint(screen, FormatStatus(st, paused))
}

// Layout implements ebiten.Game.
func (r *Runner) Layout(outsideWidth, outsideHeight int) (int, int) {
	return r.scope.Layout(outsideWidth, outsideHeight)
}
