// Package clusterencode emits a cluster's palette header followed by its
// frames' encoded bitstreams.
package clusterencode

import (
	"bytes"
	"errors"

	"github.com/bestplayermmiii/climenc/internal/bitio"
	"github.com/bestplayermmiii/climenc/internal/encoding"
	"github.com/bestplayermmiii/climenc/internal/huffman"
	"github.com/bestplayermmiii/climenc/internal/pixel"
	"github.com/bestplayermmiii/climenc/internal/rle"
)

// ErrEmptyCluster is returned when a cluster has no frames or its pixel
// frequency tally is empty.
var ErrEmptyCluster = errors.New("clusterencode: empty cluster")

// ErrInvalidPaletteSize is returned when a palette has 0 or more than 256
// colors.
var ErrInvalidPaletteSize = errors.New("clusterencode: invalid palette size")

// Cluster is one temporal segment: its quantized palette and its
// already-indexed frames.
type Cluster struct {
	Palette pixel.Palette
	Frames  []pixel.IndexedFrame
}

// EncodeCluster emits the palette header (§6.2) followed by each frame's
// selected encoding, back to back, each ending on a byte boundary.
// maxCodeLength is bitlength(P), the configured max-colors-per-palette
// cap, not this cluster's actual palette size — it bounds the 3-bit
// code-length fields in the palette header regardless of how many colors
// this particular cluster actually uses.
func EncodeCluster(c Cluster, maxCodeLength int, policy encoding.AlignPolicy) ([]byte, error) {
	if len(c.Frames) == 0 {
		return nil, ErrEmptyCluster
	}
	if len(c.Palette) == 0 || len(c.Palette) > 256 {
		return nil, ErrInvalidPaletteSize
	}

	freq := tallyFrequencies(c.Frames)
	if len(freq) == 0 {
		return nil, ErrEmptyCluster
	}
	codes, err := huffman.Build(freq, maxCodeLength)
	if err != nil {
		return nil, err
	}

	out := &bytes.Buffer{}
	header, err := encodePaletteHeader(c.Palette, codes)
	if err != nil {
		return nil, err
	}
	out.Write(header)

	for _, f := range c.Frames {
		runs := rle.Scan(f.Indices)
		result, err := encoding.SelectBest(runs, codes, policy)
		if err != nil {
			return nil, err
		}
		out.Write(result.Bytes)
	}
	return out.Bytes(), nil
}

func tallyFrequencies(frames []pixel.IndexedFrame) map[int]int {
	freq := map[int]int{}
	for _, f := range frames {
		for _, idx := range f.Indices {
			freq[int(idx)]++
		}
	}
	return freq
}

// encodePaletteHeader implements §6.2: a byte of palette_size-1, the raw
// RGB triples, the packed 3-bit code-length fields (byte-aligned), then
// the concatenated Huffman codes (byte-aligned).
func encodePaletteHeader(palette pixel.Palette, codes huffman.Codebook) ([]byte, error) {
	buf := make([]byte, 0, 1+3*len(palette))
	buf = append(buf, byte(len(palette)-1))
	for _, c := range palette {
		buf = append(buf, c.R, c.G, c.B)
	}

	lw := bitio.NewWriter()
	for i := range palette {
		code, ok := codes[i]
		if !ok {
			return nil, encoding.ErrMissingCode
		}
		if code.Bits < 1 || code.Bits > 8 {
			return nil, ErrInvalidPaletteSize
		}
		if err := lw.WriteUint(uint64(code.Bits-1), 3); err != nil {
			return nil, err
		}
	}
	lengthBytes, err := lw.Bytes()
	if err != nil {
		return nil, err
	}
	buf = append(buf, lengthBytes...)

	cw := bitio.NewWriter()
	for i := range palette {
		code := codes[i]
		if err := cw.WriteUint(uint64(code.Value), code.Bits); err != nil {
			return nil, err
		}
	}
	codeBytes, err := cw.Bytes()
	if err != nil {
		return nil, err
	}
	buf = append(buf, codeBytes...)

	return buf, nil
}
