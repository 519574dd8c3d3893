package main

import (
	"flag"

	"github.com/golang/glog"
	"github.com/hajimehoshi/ebiten/v2"

	scopebridge "github.com/user-none/gbaudio/bridge/ebiten"
	"github.com/user-none/gbaudio/cli"
	"github.com/user-none/gbaudio/replay"
	"github.com/user-none/gbaudio/ui"
)

const name = "gbaudio"

func main() {
	logPath := flag.String("log", "", "register write log to replay on the mixer")
	scriptPath := flag.String("script", "", "Lua script producing register writes")
	rate := flag.Int("rate", 48000, "output sample rate in Hz")
	volume := flag.Float64("volume", 1.0, "player volume, 0.0 to 1.0")
	amplitude := flag.Int("amplitude", 4096, "mixer output scale")
	headless := flag.Bool("headless", false, "render to a file instead of opening a window")
	seconds := flag.Float64("seconds", 5, "seconds to render in headless mode")
	outPath := flag.String("out", "out.pcm", "headless output path for raw s16le stereo, - for stdout")
	source := flag.String("source", ui.SourceMixer, "initial source: mixer, tone, noise, square, saw, lfsr, sweep or fm")
	loopTicks := flag.Uint64("loop-ticks", 0, "replay loop length in APU ticks (1048576 per second), 0 plays once")
	flag.Parse()
	defer glog.Flush()

	if *logPath != "" && *scriptPath != "" {
		glog.Fatalf("-log and -script are mutually exclusive")
	}

	var events []replay.Event
	var err error
	switch {
	case *logPath != "":
		events, err = replay.Load(*logPath)
	case *scriptPath != "":
		events, err = replay.LoadScript(*scriptPath)
	}
	if err != nil {
		glog.Fatalf("Failed to load register writes: %v", err)
	}
	if events != nil {
		glog.Infof("loaded %d register writes spanning 0x%X ticks", len(events), replay.Duration(events))
	}

	engine := ui.NewEngine(ui.EngineConfig{
		SampleRate: *rate,
		Amplitude:  *amplitude,
		Events:     events,
		LoopTicks:  *loopTicks,
	})
	if err := engine.SetSource(*source); err != nil {
		glog.Fatalf("Invalid source: %v", err)
	}

	if *headless {
		if err := cli.RunHeadless(engine, *outPath, *seconds); err != nil {
			glog.Fatalf("Headless render failed: %v", err)
		}
		return
	}

	ebiten.SetWindowSize(scopebridge.ScreenWidth*2, scopebridge.ScreenHeight*2)
	ebiten.SetWindowTitle(name)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSizeLimits(scopebridge.ScreenWidth, scopebridge.ScreenHeight, -1, -1)
	ebiten.SetTPS(60)

	runner := cli.NewRunner(engine, *volume)
	defer runner.Close()

	if err := ebiten.RunGame(runner); err != nil {
		glog.Fatalf("%v", err)
	}
}
