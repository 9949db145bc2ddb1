package clim

import (
	"errors"
	"fmt"

	"github.com/bestplayermmiii/climenc/internal/encoding"
	"github.com/bestplayermmiii/climenc/internal/huffman"
)

// Sentinel errors wrapped by the typed kinds below.
var (
	ErrNoFrames          = errors.New("no frames to encode")
	ErrIFBAOverflow      = errors.New("IFBA exceeds the 40-bit field width")
	ErrInvalidDimensions = errors.New("width and height must be positive")
	ErrInvalidFPS        = errors.New("fps must be positive")
	ErrInvalidMaxChunk   = errors.New("max chunk size must be positive")
	ErrInvalidMaxColors  = errors.New("max colors per palette must be in [1, 256]")
	ErrEmptyFrequencies  = huffman.ErrEmptyFrequencies
	ErrMissingCode       = encoding.ErrMissingCode
)

// InputError wraps a failure caused by the caller's input: an unreadable
// source, zero frames, invalid dimensions, or an unsupported speed
// factor.
type InputError struct{ Err error }

func (e *InputError) Error() string { return fmt.Sprintf("clim: input error: %v", e.Err) }
func (e *InputError) Unwrap() error { return e.Err }

// EncodingInvariantError wraps a violated internal invariant (empty
// frequency map, zero-size palette, zero-size cluster). It indicates a
// bug in the encoder rather than a problem with the caller's input.
type EncodingInvariantError struct{ Err error }

func (e *EncodingInvariantError) Error() string {
	return fmt.Sprintf("clim: encoding invariant violated: %v", e.Err)
}
func (e *EncodingInvariantError) Unwrap() error { return e.Err }

// IOError wraps a failure writing a scratch file or the final container
// file.
type IOError struct{ Err error }

func (e *IOError) Error() string { return fmt.Sprintf("clim: io error: %v", e.Err) }
func (e *IOError) Unwrap() error { return e.Err }

// AudioExtractionFailure wraps a failed AudioExtractor call. It is
// non-fatal: Encode logs nothing itself but returns normally with the
// container file already written up to its last frame block, leaving the
// caller free to decide whether the missing audio trailer matters.
type AudioExtractionFailure struct{ Err error }

func (e *AudioExtractionFailure) Error() string {
	return fmt.Sprintf("clim: audio extraction failed: %v", e.Err)
}
func (e *AudioExtractionFailure) Unwrap() error { return e.Err }
