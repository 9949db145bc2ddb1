package palette

import (
	"testing"

	"github.com/bestplayermmiii/climenc/internal/pixel"
)

func frameOf(w, h int, px ...pixel.Pixel) pixel.Frame {
	return pixel.Frame{Width: w, Height: h, Pixels: px}
}

func TestBuild_SingleColorCluster(t *testing.T) {
	c := pixel.Pixel{R: 10, G: 20, B: 30}
	frames := []pixel.Frame{frameOf(2, 2, c, c, c, c)}
	palettes, indexed, err := Build(frames, []int{0}, 255)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(palettes) != 1 || len(palettes[0]) != 1 {
		t.Fatalf("palette = %+v, want exactly one color", palettes)
	}
	if palettes[0][0] != c {
		t.Fatalf("palette color = %+v, want %+v", palettes[0][0], c)
	}
	for _, idx := range indexed[0][0].Indices {
		if idx != 0 {
			t.Fatalf("index = %d, want 0", idx)
		}
	}
}

func TestBuild_PaletteCoversUsedColors(t *testing.T) {
	red := pixel.Pixel{R: 255}
	blue := pixel.Pixel{B: 255}
	frames := []pixel.Frame{frameOf(2, 1, red, blue), frameOf(2, 1, blue, red)}
	palettes, indexed, err := Build(frames, []int{0}, 2)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	used := map[uint8]bool{}
	for _, f := range indexed[0] {
		for _, idx := range f.Indices {
			used[idx] = true
		}
	}
	if len(used) != len(palettes[0]) {
		t.Fatalf("used %d of %d palette entries; every entry must be used", len(used), len(palettes[0]))
	}
}

func TestBuild_MultipleClusters(t *testing.T) {
	c1 := pixel.Pixel{R: 1}
	c2 := pixel.Pixel{R: 200}
	frames := []pixel.Frame{frameOf(1, 1, c1), frameOf(1, 1, c1), frameOf(1, 1, c2)}
	palettes, indexed, err := Build(frames, []int{0, 2}, 255)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(palettes) != 2 {
		t.Fatalf("got %d clusters, want 2", len(palettes))
	}
	if len(indexed[0]) != 2 || len(indexed[1]) != 1 {
		t.Fatalf("cluster frame counts = %d,%d, want 2,1", len(indexed[0]), len(indexed[1]))
	}
}

func TestBuild_EmptyClusterErrors(t *testing.T) {
	if _, _, err := Build(nil, []int{0}, 255); err != ErrEmptyCluster {
		t.Fatalf("err = %v, want ErrEmptyCluster", err)
	}
}

// TestBuild_MoreColorsThanMaxForcesIterativeKMeans exercises the iterative
// weightedKMeans path (maxColors < unique colors), not just the k>=n
// early-return. The three color groups are far apart relative to their own
// spread, so convergence must keep each group under one palette entry and
// every entry must end up used.
func TestBuild_MoreColorsThanMaxForcesIterativeKMeans(t *testing.T) {
	black := []pixel.Pixel{{R: 0, G: 0, B: 0}, {R: 1, G: 1, B: 2}, {R: 2, G: 0, B: 1}}
	white := []pixel.Pixel{{R: 250, G: 250, B: 250}, {R: 251, G: 249, B: 250}, {R: 249, G: 251, B: 251}}
	green := []pixel.Pixel{{R: 0, G: 200, B: 0}, {R: 1, G: 201, B: 2}, {R: 2, G: 199, B: 1}}
	groups := [][]pixel.Pixel{black, white, green}

	var pixels []pixel.Pixel
	for _, g := range groups {
		for _, c := range g {
			// Repeat each color so weighted averaging (not a single point)
			// drives every cluster's centroid.
			pixels = append(pixels, c, c, c)
		}
	}
	frames := []pixel.Frame{{Width: len(pixels), Height: 1, Pixels: pixels}}

	const maxColors = 3
	palettes, indexed, err := Build(frames, []int{0}, maxColors)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(palettes[0]) != maxColors {
		t.Fatalf("palette size = %d, want %d", len(palettes[0]), maxColors)
	}

	indices := indexed[0][0].Indices
	labelOf := func(c pixel.Pixel) uint8 {
		for i, p := range pixels {
			if p == c {
				return indices[i]
			}
		}
		t.Fatalf("color %+v not found in pixel list", c)
		return 0
	}

	used := map[uint8]bool{}
	for _, idx := range indices {
		used[idx] = true
	}
	if len(used) != maxColors {
		t.Fatalf("used %d of %d palette entries; every entry must be used after convergence", len(used), maxColors)
	}

	for _, g := range groups {
		want := labelOf(g[0])
		for _, c := range g[1:] {
			if got := labelOf(c); got != want {
				t.Fatalf("group %+v split across palette entries: %+v got %d, want %d", g, c, got, want)
			}
		}
	}
	if labelOf(black[0]) == labelOf(white[0]) || labelOf(black[0]) == labelOf(green[0]) || labelOf(white[0]) == labelOf(green[0]) {
		t.Fatalf("distinct color groups collapsed onto the same palette entry: black=%d white=%d green=%d",
			labelOf(black[0]), labelOf(white[0]), labelOf(green[0]))
	}
}

// TestFarthestPoint_ReseedsEmptyClusterToOwnFarthestPoint exercises the
// empty-cluster reseed directly: all points are assigned to cluster 0, so
// cluster 1's centroid must be reseeded to the point farthest from whatever
// centroid it is (incorrectly) still reading as its own.
func TestFarthestPoint_ReseedsEmptyClusterToOwnFarthestPoint(t *testing.T) {
	points := []pixel.Pixel{
		{R: 0, G: 0, B: 0},
		{R: 10, G: 0, B: 0},
		{R: 200, G: 0, B: 0},
	}
	centersF := [][3]float64{{0, 0, 0}, {0, 0, 0}}
	labels := []int{0, 0, 0}

	got := farthestPoint(points, centersF, labels)
	want := [3]float64{200, 0, 0}
	if got != want {
		t.Fatalf("farthestPoint = %v, want %v", got, want)
	}
}
