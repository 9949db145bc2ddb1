// Package encoding builds the three candidate per-frame bitstream
// encodings and selects the smallest.
package encoding

import (
	"errors"
	"sort"

	"github.com/bestplayermmiii/climenc/internal/bitio"
	"github.com/bestplayermmiii/climenc/internal/huffman"
	"github.com/bestplayermmiii/climenc/internal/rle"
)

// ErrMissingCode is returned when a run references a palette index with no
// assigned Huffman code.
var ErrMissingCode = errors.New("encoding: run references a symbol with no assigned code")

// AlignPolicy controls where zero-padding is inserted when building a
// candidate. Header pads after the candidate's header and Sequence pads
// after its pixel sequence. Combined is not read by this package: every
// candidate is extracted with internal/bitio.Writer.Bytes, which always
// completes the trailing byte, so each candidate ends byte-aligned whether
// Combined is set or not.
type AlignPolicy struct {
	Header   bool
	Sequence bool
	Combined bool
}

// DefaultAlignPolicy matches the core format's defaults: only the combined
// (final) alignment is applied.
func DefaultAlignPolicy() AlignPolicy {
	return AlignPolicy{Header: false, Sequence: false, Combined: true}
}

// Method identifies which of the three candidates was selected.
type Method int

const (
	MethodHuffman Method = iota
	MethodRLE
	MethodRLEHuffman
)

// Result is a selected candidate encoding.
type Result struct {
	Bytes  []byte
	Method Method
}

// SelectBest builds all three candidates for runs under the palette
// codebook codes and returns the smallest, breaking ties in the fixed
// order Huffman < RLE < RLE+Huffman.
func SelectBest(runs []rle.Run, codes huffman.Codebook, policy AlignPolicy) (Result, error) {
	huff, err := encodeHuffmanOnly(runs, codes, policy)
	if err != nil {
		return Result{}, err
	}
	rleFixed, err := encodeRLEFixed(runs, codes, policy)
	if err != nil {
		return Result{}, err
	}
	rleHuff, err := encodeRLEHuffman(runs, codes, policy)
	if err != nil {
		return Result{}, err
	}

	candidates := []Result{
		{huff, MethodHuffman},
		{rleFixed, MethodRLE},
		{rleHuff, MethodRLEHuffman},
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if len(c.Bytes) < len(best.Bytes) {
			best = c
		}
	}
	return best, nil
}

func encodeHuffmanOnly(runs []rle.Run, codes huffman.Codebook, policy AlignPolicy) ([]byte, error) {
	w := bitio.NewWriter()
	if err := w.WriteUint(0, 1); err != nil {
		return nil, err
	}
	if policy.Header {
		if err := w.Align(); err != nil {
			return nil, err
		}
	}
	for _, r := range runs {
		c, ok := codes[int(r.Index)]
		if !ok {
			return nil, ErrMissingCode
		}
		for i := 0; i < r.Count; i++ {
			if err := w.WriteUint(uint64(c.Value), c.Bits); err != nil {
				return nil, err
			}
		}
	}
	if policy.Sequence {
		if err := w.Align(); err != nil {
			return nil, err
		}
	}
	return w.Bytes()
}

func encodeRLEFixed(runs []rle.Run, codes huffman.Codebook, policy AlignPolicy) ([]byte, error) {
	l := rleBitLength(runs)
	w := bitio.NewWriter()
	if err := w.WriteUint(0b10, 2); err != nil {
		return nil, err
	}
	if err := w.WriteUint(uint64(l-1), 5); err != nil {
		return nil, err
	}
	if policy.Header {
		if err := w.Align(); err != nil {
			return nil, err
		}
	}
	for _, r := range runs {
		c, ok := codes[int(r.Index)]
		if !ok {
			return nil, ErrMissingCode
		}
		if err := w.WriteUint(uint64(c.Value), c.Bits); err != nil {
			return nil, err
		}
		if err := w.WriteUint(uint64(r.Count-1), l); err != nil {
			return nil, err
		}
	}
	if policy.Sequence {
		if err := w.Align(); err != nil {
			return nil, err
		}
	}
	return w.Bytes()
}

func encodeRLEHuffman(runs []rle.Run, codes huffman.Codebook, policy AlignPolicy) ([]byte, error) {
	countFreq := map[int]int{}
	for _, r := range runs {
		countFreq[r.Count-1] = 1
	}
	countCodes, err := huffman.Build(countFreq, 16)
	if err != nil {
		return nil, err
	}

	w := bitio.NewWriter()
	if err := writeRLEHuffmanHeader(w, countCodes); err != nil {
		return nil, err
	}
	if policy.Header {
		if err := w.Align(); err != nil {
			return nil, err
		}
	}
	for _, r := range runs {
		pc, ok := codes[int(r.Index)]
		if !ok {
			return nil, ErrMissingCode
		}
		if err := w.WriteUint(uint64(pc.Value), pc.Bits); err != nil {
			return nil, err
		}
		cc, ok := countCodes[r.Count-1]
		if !ok {
			return nil, ErrMissingCode
		}
		if err := w.WriteUint(uint64(cc.Value), cc.Bits); err != nil {
			return nil, err
		}
	}
	if policy.Sequence {
		if err := w.Align(); err != nil {
			return nil, err
		}
	}
	return w.Bytes()
}

type countEntry struct {
	value int
	code  huffman.Code
}

func writeRLEHuffmanHeader(w *bitio.Writer, cb huffman.Codebook) error {
	if err := w.WriteUint(0b11, 2); err != nil {
		return err
	}

	entries := make([]countEntry, 0, len(cb))
	for v, c := range cb {
		entries = append(entries, countEntry{value: v, code: c})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].value < entries[j].value })

	numEntries := len(entries)
	numEntriesBits := bitLengthAtLeastOne(numEntries)
	if err := w.WriteUint(uint64(numEntriesBits), 4); err != nil {
		return err
	}
	if err := w.WriteUint(uint64(numEntries), numEntriesBits); err != nil {
		return err
	}

	maxValue := entries[len(entries)-1].value
	maxValueBits := bitLengthAtLeastOne(maxValue)
	if err := w.WriteUint(uint64(maxValueBits), 4); err != nil {
		return err
	}

	for _, e := range entries {
		if err := w.WriteUint(uint64(e.value), maxValueBits); err != nil {
			return err
		}
		if err := w.WriteUint(uint64(e.code.Bits-1), 4); err != nil {
			return err
		}
		if err := w.WriteUint(uint64(e.code.Value), e.code.Bits); err != nil {
			return err
		}
	}
	return nil
}

func rleBitLength(runs []rle.Run) int {
	max := 0
	for _, r := range runs {
		if bl := bitLength(r.Count - 1); bl > max {
			max = bl
		}
	}
	if max < 1 {
		max = 1
	}
	return max
}

// bitLength returns the number of bits needed to represent n (0 for n==0),
// matching Python's int.bit_length().
func bitLength(n int) int {
	bits := 0
	for n > 0 {
		bits++
		n >>= 1
	}
	return bits
}

func bitLengthAtLeastOne(n int) int {
	if bl := bitLength(n); bl > 0 {
		return bl
	}
	return 1
}
