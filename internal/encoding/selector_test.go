package encoding

import (
	"testing"

	"github.com/bestplayermmiii/climenc/internal/huffman"
	"github.com/bestplayermmiii/climenc/internal/rle"
)

func TestSelectBest_TieBreakPrefersHuffman(t *testing.T) {
	codes := huffman.Codebook{0: {Bits: 1, Value: 0}}
	runs := []rle.Run{{Index: 0, Count: 4}}
	result, err := SelectBest(runs, codes, DefaultAlignPolicy())
	if err != nil {
		t.Fatalf("SelectBest: %v", err)
	}
	if result.Method != MethodHuffman {
		t.Fatalf("Method = %v, want MethodHuffman", result.Method)
	}
	if len(result.Bytes) != 1 || result.Bytes[0] != 0x00 {
		t.Fatalf("Bytes = %v, want [0x00]", result.Bytes)
	}
}

func TestRLEFixedHeader_S4(t *testing.T) {
	// A run of length 65536 forces count-1 = 65535 = 0xFFFF, a 16-bit
	// value, so rleBitLength = 16 and the header's L-1 field (5 bits)
	// stores 15 = 0b01111.
	runs := []rle.Run{{Index: 0, Count: 65536}}
	if got := rleBitLength(runs); got != 16 {
		t.Fatalf("rleBitLength = %d, want 16", got)
	}

	codes := huffman.Codebook{0: {Bits: 1, Value: 0}}
	got, err := encodeRLEFixed(runs, codes, DefaultAlignPolicy())
	if err != nil {
		t.Fatalf("encodeRLEFixed: %v", err)
	}
	// Header bits: "10" + "01111" = "1001111" (7 bits) then the 1-bit
	// Huffman code "0" then 16 bits of count-1 (0xFFFF), all packed
	// MSB-first into the output bytes.
	if len(got) == 0 {
		t.Fatalf("encodeRLEFixed produced no bytes")
	}
	firstByte := got[0]
	headerBits := firstByte >> 1 // top 7 bits of the first byte
	if headerBits != 0b1001111 {
		t.Fatalf("header bits = %07b, want 1001111", headerBits)
	}
}

func TestSelectBest_SingleRunPicksSmallest(t *testing.T) {
	codes := huffman.Codebook{
		0: {Bits: 2, Value: 0b00},
		1: {Bits: 2, Value: 0b01},
	}
	runs := rle.Scan([]uint8{0, 0, 0, 0, 0, 0, 0, 0})
	result, err := SelectBest(runs, codes, DefaultAlignPolicy())
	if err != nil {
		t.Fatalf("SelectBest: %v", err)
	}
	// 8 repeats of a 2-bit code is 16 bits plain Huffman (+1 header) = 3
	// bytes; RLE-fixed needs a 2-bit code + bitlength(7)=3 bits count, a
	// single run, well under 3 bytes with its 7-bit header, so RLE must
	// not lose to plain Huffman here.
	if result.Method == MethodHuffman {
		t.Fatalf("expected RLE-based method to win for a single long run, got %v (%d bytes)", result.Method, len(result.Bytes))
	}
}
