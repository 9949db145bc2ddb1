// Package colorutil provides small color-comparison helpers ported from
// the original encoder's color utilities. The core encode pipeline never
// calls these directly; cmd/climenc uses them to offer a
// closest-palette-color preview.
package colorutil

import "github.com/bestplayermmiii/climenc/internal/pixel"

// MaxSquaredDistance is the largest possible SquaredDistance between two
// 8-bit RGB colors (three channels at maximum difference 255).
const MaxSquaredDistance = 3 * 255 * 255

// SquaredDistance returns the sum of squared per-channel differences
// between a and b.
func SquaredDistance(a, b pixel.Pixel) int {
	return a.SquaredDistance(b)
}

// IsSimilar reports whether a and b are within the given squared-distance
// threshold of each other.
func IsSimilar(a, b pixel.Pixel, thresholdSqr int) bool {
	return SquaredDistance(a, b) <= thresholdSqr
}

// Average returns the per-channel rounded mean of colors. It returns the
// zero Pixel for an empty input.
func Average(colors []pixel.Pixel) pixel.Pixel {
	if len(colors) == 0 {
		return pixel.Pixel{}
	}
	var rSum, gSum, bSum int
	for _, c := range colors {
		rSum += int(c.R)
		gSum += int(c.G)
		bSum += int(c.B)
	}
	n := len(colors)
	return pixel.Pixel{
		R: uint8((rSum + n/2) / n),
		G: uint8((gSum + n/2) / n),
		B: uint8((bSum + n/2) / n),
	}
}

// ClosestIndex returns the index into palette of the color nearest to
// target, and -1 if palette is empty.
func ClosestIndex(target pixel.Pixel, palette pixel.Palette) int {
	best, bestDist := -1, 0
	for i, c := range palette {
		d := SquaredDistance(target, c)
		if best == -1 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}
