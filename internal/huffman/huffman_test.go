package huffman

import "testing"

func TestBuild_SingleSymbol(t *testing.T) {
	cb, err := Build(map[int]int{7: 42}, 8)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	code, ok := cb[7]
	if !ok {
		t.Fatalf("missing symbol 7")
	}
	if code.Bits != 1 || code.Value != 0 {
		t.Fatalf("degenerate code = %+v, want {1 0}", code)
	}
}

func TestBuild_EmptyFrequencies(t *testing.T) {
	if _, err := Build(map[int]int{}, 8); err != ErrEmptyFrequencies {
		t.Fatalf("err = %v, want ErrEmptyFrequencies", err)
	}
	if _, err := Build(map[int]int{1: 0}, 8); err != ErrEmptyFrequencies {
		t.Fatalf("zero-frequency symbol should not count: err = %v", err)
	}
}

func TestBuild_PrefixFree(t *testing.T) {
	freq := map[int]int{0: 5, 1: 1, 2: 6, 3: 3, 4: 2}
	cb, err := Build(freq, 8)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(cb) != len(freq) {
		t.Fatalf("codebook has %d entries, want %d", len(cb), len(freq))
	}
	assertPrefixFree(t, cb)
}

func TestBuild_LengthLimitFallsBackToFixedWidth(t *testing.T) {
	// Fibonacci-like weights (1,1,2,4) over exactly 2^maxLength=4 symbols
	// force an unbalanced tree three levels deep, past maxLength=2.
	freq := map[int]int{0: 1, 1: 1, 2: 2, 3: 4}
	cb, err := Build(freq, 2)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	for sym, code := range cb {
		if code.Bits != 2 {
			t.Fatalf("symbol %d has %d bits, want fixed width 2", sym, code.Bits)
		}
	}
	seen := map[uint32]bool{}
	for _, code := range cb {
		if seen[code.Value] {
			t.Fatalf("duplicate fixed-width code value %d", code.Value)
		}
		seen[code.Value] = true
	}
}

func TestBuild_TieBreakDeterministic(t *testing.T) {
	freq := map[int]int{10: 1, 20: 1, 30: 1, 40: 1}
	cb1, err := Build(freq, 0)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	cb2, err := Build(freq, 0)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	for sym, c1 := range cb1 {
		c2 := cb2[sym]
		if c1 != c2 {
			t.Fatalf("non-deterministic codebook: symbol %d got %+v then %+v", sym, c1, c2)
		}
	}
}

func assertPrefixFree(t *testing.T, cb Codebook) {
	t.Helper()
	type entry struct {
		bits  string
		value uint32
		n     int
	}
	var entries []entry
	for _, c := range cb {
		entries = append(entries, entry{value: c.Value, n: c.Bits})
	}
	for i := range entries {
		for j := range entries {
			if i == j {
				continue
			}
			a, b := entries[i], entries[j]
			if a.n > b.n {
				continue
			}
			// a is a prefix of b if the top a.n bits of b match a's value.
			shift := uint(b.n - a.n)
			if a.value == b.value>>shift {
				t.Fatalf("code %d (%d bits) is a prefix of %d (%d bits)", a.value, a.n, b.value, b.n)
			}
		}
	}
}
