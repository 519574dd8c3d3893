package ui

import (
	"fmt"
	"io"
)

// renderChunkFrames is the number of stereo frames rendered per write.
const renderChunkFrames = 1024

// RenderPCM renders frames stereo frames from the engine's active source
// to w as interleaved s16le. The scope, if non-nil, sees every chunk.
func RenderPCM(w io.Writer, e *Engine, frames int, scope *SharedScope) error {
	samples := make([]int16, renderChunkFrames*2)
	buf := make([]byte, 0, len(samples)*2)

	for frames > 0 {
		n := min(frames, renderChunkFrames)
		chunk := samples[:n*2]
		e.Fill(chunk)
		if scope != nil {
			scope.Update(chunk)
		}

		buf = appendPCM(buf[:0], chunk)
		if _, err := w.Write(buf); err != nil {
			return fmt.Errorf("write pcm: %w", err)
		}
		frames -= n
	}
	return nil
}
