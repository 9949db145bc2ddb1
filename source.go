package clim

import "github.com/bestplayermmiii/climenc/internal/pixel"

// Pixel is a single RGB color.
type Pixel = pixel.Pixel

// Frame is a single width*height picture of pixels in row-major order.
type Frame = pixel.Frame

// ChunkSource iterates over ordered runs of frames, in the shape of
// bufio.Scanner: call Next until it returns false, reading Chunk after
// each successful Next, then check Err. Frame acquisition, decoding, and
// resampling to the target dimensions/FPS happen entirely on the caller's
// side of this interface.
type ChunkSource interface {
	Next() bool
	Chunk() []Frame
	Err() error
}

// AudioExtractor produces the raw audio payload appended after the last
// frame block. speedPercentage is round(fps)/fps (§6.5): the caller is
// expected to time-stretch the audio by that factor so playback duration
// matches MSBF*frame_count, and to reject factors outside [0.5, 2.0].
// A failing AudioExtractor is non-fatal to Encode: the resulting file is
// still valid up to its last frame block.
type AudioExtractor interface {
	ExtractAudio(speedPercentage float64) ([]byte, error)
}
