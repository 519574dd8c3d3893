package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/golang/glog"

	"github.com/user-none/gbaudio/ui"
)

// RunHeadless renders seconds of audio from the engine to path as raw
// interleaved s16le stereo, then prints the final status to stdout. A
// path of "-" writes the audio to stdout.
func RunHeadless(e *ui.Engine, path string, seconds float64) error {
	w := io.Writer(os.Stdout)
	status := io.Writer(os.Stdout)
	if path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		w = f
	} else {
		status = os.Stderr
	}

	frames, err := Render(w, e, seconds)
	if err != nil {
		return err
	}
	glog.Infof("rendered %d frames at %d Hz to %s", frames, e.SampleRate(), path)

	PrintStatus(status, e.Status(), false)
	return nil
}

// Render writes seconds of audio to w and returns the frame count.
func Render(w io.Writer, e *ui.Engine, seconds float64) (int, error) {
	if seconds < 0 {
		return 0, fmt.Errorf("negative duration %g", seconds)
	}
	frames := int(seconds * float64(e.SampleRate()))
	if err := ui.RenderPCM(w, e, frames, nil); err != nil {
		return 0, err
	}
	return frames, nil
}
