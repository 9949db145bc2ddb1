package rle

import (
	"math/rand"
	"reflect"
	"testing"
)

func TestScan_Basic(t *testing.T) {
	got := Scan([]uint8{1, 1, 1, 2, 2, 3})
	want := []Run{{1, 3}, {2, 2}, {3, 1}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Scan = %+v, want %+v", got, want)
	}
}

func TestScan_Empty(t *testing.T) {
	if got := Scan(nil); got != nil {
		t.Fatalf("Scan(nil) = %+v, want nil", got)
	}
}

func TestScan_Idempotent(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	indices := make([]uint8, 500)
	for i := range indices {
		indices[i] = uint8(r.Intn(4))
	}
	first := Scan(indices)
	expanded := Expand(first)
	second := Scan(expanded)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("RLE not idempotent: %+v != %+v", first, second)
	}
}
