// Package pixel holds the leaf data types shared across the encoder's
// internal packages. It has no dependency on any sibling internal package
// so that both the root package and every internal package can import it
// without creating an import cycle.
package pixel

// Pixel is a single RGB color channel triple.
type Pixel struct {
	R, G, B uint8
}

// SquaredDistance returns the sum of squared per-channel differences
// between two pixels.
func (p Pixel) SquaredDistance(q Pixel) int {
	dr := int(p.R) - int(q.R)
	dg := int(p.G) - int(q.G)
	db := int(p.B) - int(q.B)
	return dr*dr + dg*dg + db*db
}

// Frame is a single picture: a width*height grid of pixels in row-major
// order.
type Frame struct {
	Width, Height int
	Pixels        []Pixel
}

// IndexedFrame is a quantized frame: each pixel has been replaced by its
// index into a Palette. Produced by the palette builder instead of
// mutating the caller's Frame in place.
type IndexedFrame struct {
	Width, Height int
	Indices       []uint8
}

// Palette is an ordered list of colors; its position in the slice is the
// palette index used by an IndexedFrame.
type Palette []Pixel
