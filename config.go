package clim

import "github.com/bestplayermmiii/climenc/internal/encoding"

// Options configures an Encode call. Every field corresponds to a
// recognized configuration option (§6.6); there is no global mutable
// configuration state.
type Options struct {
	// Width and Height are the frame dimensions written into the file
	// header. The caller's ChunkSource is responsible for producing
	// frames already at this resolution.
	Width, Height int

	// FPS is the source frame rate; MSBF is derived from it as
	// round(1000/FPS).
	FPS float64

	// MaxChunkSize bounds how many frames a single ChunkSource.Chunk()
	// call is expected to return. Encode neither splits chunks nor checks
	// their length against it; validate only requires it to be positive.
	MaxChunkSize int

	// Preprocess mirrors the core format's preprocessing flag; Encode
	// does not perform any preprocessing itself (that is out of scope,
	// left to the ChunkSource), but the option is retained for callers
	// that branch their own pipeline on it.
	Preprocess bool

	// MaxColorsPerPalette is P, the cap on palette size per cluster.
	MaxColorsPerPalette int

	// AudioExtension is advisory metadata for callers wiring an
	// AudioExtractor; Encode does not interpret it.
	AudioExtension string

	// ClusterMaxSegmentsPct caps the clustering engine's estimated
	// cluster count K at max(1, floor(ClusterMaxSegmentsPct*N)).
	ClusterMaxSegmentsPct float64

	// Align controls where the per-frame encoding selector inserts
	// padding bits.
	Align encoding.AlignPolicy

	// OnAudioFailure, if set, is called with an *AudioExtractionFailure
	// when the AudioExtractor fails. The failure is non-fatal to Encode
	// either way; this is the caller's only way to observe it, since
	// Encode itself returns nil in that case.
	OnAudioFailure func(error)
}

// DefaultOptions returns the recognized defaults from §6.6.
func DefaultOptions() Options {
	return Options{
		Width:                 103,
		Height:                29,
		FPS:                   12,
		MaxChunkSize:          256,
		Preprocess:            true,
		MaxColorsPerPalette:   255,
		AudioExtension:        ".mp3",
		ClusterMaxSegmentsPct: 1.0,
		Align:                 encoding.DefaultAlignPolicy(),
	}
}

func (o Options) validate() error {
	if o.Width <= 0 || o.Height <= 0 {
		return &InputError{Err: ErrInvalidDimensions}
	}
	if o.FPS <= 0 {
		return &InputError{Err: ErrInvalidFPS}
	}
	if o.MaxChunkSize <= 0 {
		return &InputError{Err: ErrInvalidMaxChunk}
	}
	if o.MaxColorsPerPalette <= 0 || o.MaxColorsPerPalette > 256 {
		return &InputError{Err: ErrInvalidMaxColors}
	}
	return nil
}
