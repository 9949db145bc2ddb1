package clim

import (
	"math"

	"github.com/bestplayermmiii/climenc/internal/bitio"
)

// fileHeaderSize is the fixed file header's byte length (§6.1): mode(1) +
// width(2) + height(2) + MSBF(2) + IFBA(5).
const fileHeaderSize = 12

// maxIFBA is the largest value the 40-bit IFBA field can hold.
const maxIFBA = (1 << 40) - 1

// buildFileHeader emits the fixed 12-byte file header. ifba is the value
// the §4.6 accumulation formula computes: the byte offset of the audio
// trailer (fileHeaderSize + clustering header length + sum of chunk
// bytes), not the offset of the first frame byte the field's name and the
// glossary suggest — see DESIGN.md for why this implementation follows
// the literal formula rather than the name.
func buildFileHeader(width, height int, fps float64, ifba uint64) ([]byte, error) {
	if ifba > maxIFBA {
		return nil, ErrIFBAOverflow
	}
	msbf := uint16(math.Round(1000 / fps))

	w := bitio.NewWriter()
	if err := w.WriteUint(0x01, 8); err != nil {
		return nil, err
	}
	if err := w.WriteUint(uint64(uint16(width)), 16); err != nil {
		return nil, err
	}
	if err := w.WriteUint(uint64(uint16(height)), 16); err != nil {
		return nil, err
	}
	if err := w.WriteUint(uint64(msbf), 16); err != nil {
		return nil, err
	}
	if err := w.WriteUint(ifba, 40); err != nil {
		return nil, err
	}
	return w.Bytes()
}

// buildClusteringHeader emits §6.3: a self-describing bit-packed list of
// cluster sizes.
func buildClusteringHeader(clusterSizes []int) ([]byte, error) {
	if len(clusterSizes) == 0 {
		return nil, &EncodingInvariantError{Err: ErrNoFrames}
	}

	clusterCount := len(clusterSizes)
	maxSize := 0
	for _, s := range clusterSizes {
		if s < 1 {
			return nil, &EncodingInvariantError{Err: ErrNoFrames}
		}
		if s > maxSize {
			maxSize = s
		}
	}

	countBits := bitLength(clusterCount)
	sizeBits := bitLength(maxSize)

	w := bitio.NewWriter()
	if err := w.WriteUint(uint64(countBits-1), 5); err != nil {
		return nil, err
	}
	if err := w.WriteUint(uint64(clusterCount-1), countBits); err != nil {
		return nil, err
	}
	if err := w.WriteUint(uint64(sizeBits-1), 5); err != nil {
		return nil, err
	}
	for _, s := range clusterSizes {
		if err := w.WriteUint(uint64(s-1), sizeBits); err != nil {
			return nil, err
		}
	}
	return w.Bytes()
}

// bitLength returns the number of bits needed to represent n (0 for
// n==0), matching Python's int.bit_length().
func bitLength(n int) int {
	bits := 0
	for n > 0 {
		bits++
		n >>= 1
	}
	return bits
}
