// Package huffman builds canonical prefix codes from symbol frequencies.
package huffman

import (
	"container/heap"
	"errors"
	"sort"
)

// ErrEmptyFrequencies is returned by Build when freq has no symbol with a
// strictly positive count.
var ErrEmptyFrequencies = errors.New("huffman: empty frequency map")

// Code is a symbol's assigned bit string: the low Bits bits of Value,
// most-significant-bit first.
type Code struct {
	Bits  int
	Value uint32
}

// Codebook maps a symbol to its assigned Code.
type Codebook map[int]Code

// Build constructs a canonical prefix code for freq using the classical
// two-minimum merge over a min-heap keyed by weight. Ties among equal
// weights are broken deterministically by ascending symbol value, both
// during tree construction and during final canonical code assignment;
// this rule is internal to the builder, since every codebook this package
// produces is serialized alongside the data it encodes and a decoder never
// needs to reconstruct it independently.
//
// If maxLength is positive and the unconstrained tree would produce a code
// longer than maxLength for any symbol, the optimal tree is discarded and
// every symbol instead receives a canonical fixed-width code of exactly
// maxLength bits, assigned in order of ascending original code length
// (ties broken by symbol). A maxLength of 0 means unlimited.
func Build(freq map[int]int, maxLength int) (Codebook, error) {
	symbols := sortedSymbols(freq)
	if len(symbols) == 0 {
		return nil, ErrEmptyFrequencies
	}
	if len(symbols) == 1 {
		return Codebook{symbols[0]: {Bits: 1, Value: 0}}, nil
	}

	lengths := treeLengths(symbols, freq)
	items := sortedByLengthThenSymbol(symbols, lengths)

	if maxLength > 0 && items[len(items)-1].length > maxLength {
		return fixedWidthCodes(items, maxLength), nil
	}
	return canonicalCodes(items), nil
}

func sortedSymbols(freq map[int]int) []int {
	s := make([]int, 0, len(freq))
	for sym, f := range freq {
		if f > 0 {
			s = append(s, sym)
		}
	}
	sort.Ints(s)
	return s
}

// treeNode is an entry in the Huffman tree's node pool. symbol is -1 for
// internal nodes. Indices into the pool (not pointers) are used so the
// heap can hold plain ints.
type treeNode struct {
	weight    int
	minSymbol int
	symbol    int
	left      int
	right     int
}

type idxHeap struct {
	pool *[]treeNode
	idx  []int
}

func (h idxHeap) Len() int { return len(h.idx) }
func (h idxHeap) Less(i, j int) bool {
	p := *h.pool
	a, b := p[h.idx[i]], p[h.idx[j]]
	if a.weight != b.weight {
		return a.weight < b.weight
	}
	return a.minSymbol < b.minSymbol
}
func (h idxHeap) Swap(i, j int) { h.idx[i], h.idx[j] = h.idx[j], h.idx[i] }
func (h *idxHeap) Push(x any)   { h.idx = append(h.idx, x.(int)) }
func (h *idxHeap) Pop() any {
	old := h.idx
	n := len(old)
	v := old[n-1]
	h.idx = old[:n-1]
	return v
}

// treeLengths builds the Huffman tree over symbols (len(symbols) >= 2) and
// returns each symbol's leaf depth.
func treeLengths(symbols []int, freq map[int]int) map[int]int {
	pool := make([]treeNode, 0, 2*len(symbols))
	h := &idxHeap{pool: &pool}
	for _, s := range symbols {
		idx := len(pool)
		pool = append(pool, treeNode{weight: freq[s], minSymbol: s, symbol: s, left: -1, right: -1})
		h.idx = append(h.idx, idx)
	}
	heap.Init(h)

	for h.Len() > 1 {
		li := heap.Pop(h).(int)
		ri := heap.Pop(h).(int)
		l, r := pool[li], pool[ri]
		minSym := l.minSymbol
		if r.minSymbol < minSym {
			minSym = r.minSymbol
		}
		pool = append(pool, treeNode{weight: l.weight + r.weight, minSymbol: minSym, symbol: -1, left: li, right: ri})
		heap.Push(h, len(pool)-1)
	}

	root := h.idx[0]
	lengths := make(map[int]int, len(symbols))
	var walk func(i, depth int)
	walk = func(i, depth int) {
		n := pool[i]
		if n.symbol >= 0 {
			lengths[n.symbol] = depth
			return
		}
		walk(n.left, depth+1)
		walk(n.right, depth+1)
	}
	walk(root, 0)
	return lengths
}

type item struct {
	symbol, length int
}

func sortedByLengthThenSymbol(symbols []int, lengths map[int]int) []item {
	items := make([]item, len(symbols))
	for i, s := range symbols {
		items[i] = item{symbol: s, length: lengths[s]}
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].length != items[j].length {
			return items[i].length < items[j].length
		}
		return items[i].symbol < items[j].symbol
	})
	return items
}

// canonicalCodes assigns sequential binary codes in (length, symbol)
// order, doubling the running code value each time the length increases.
func canonicalCodes(items []item) Codebook {
	cb := make(Codebook, len(items))
	var code uint32
	prevLen := 0
	for _, it := range items {
		code <<= uint(it.length - prevLen)
		cb[it.symbol] = Code{Bits: it.length, Value: code}
		code++
		prevLen = it.length
	}
	return cb
}

// fixedWidthCodes assigns every symbol the same width, sequential values
// in (original length, symbol) order.
func fixedWidthCodes(items []item, width int) Codebook {
	cb := make(Codebook, len(items))
	for i, it := range items {
		cb[it.symbol] = Code{Bits: width, Value: uint32(i)}
	}
	return cb
}
