// Package palette quantizes each cluster's colors into a small palette via
// weighted k-means and rewrites its frames as palette indices.
package palette

import (
	"errors"
	"math"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/bestplayermmiii/climenc/internal/pixel"
)

// ErrEmptyCluster is returned when a cluster's frame range is empty.
var ErrEmptyCluster = errors.New("palette: empty cluster")

// kmeansSeed is the encoder's fixed deterministic random seed for
// reproducible palette construction.
const kmeansSeed = 42

// Build computes one palette and one quantized IndexedFrame per frame for
// every cluster named by segments (segments[i] is the first frame index of
// cluster i; the last cluster runs to the end of frames). maxColors is the
// configured cap P on palette size (default 255).
func Build(frames []pixel.Frame, segments []int, maxColors int) ([]pixel.Palette, [][]pixel.IndexedFrame, error) {
	n := len(frames)
	clusters := len(segments)
	palettes := make([]pixel.Palette, clusters)
	indexed := make([][]pixel.IndexedFrame, clusters)

	for ci := 0; ci < clusters; ci++ {
		start := segments[ci]
		end := n
		if ci+1 < clusters {
			end = segments[ci+1]
		}
		pal, idx, err := buildCluster(frames[start:end], maxColors)
		if err != nil {
			return nil, nil, err
		}
		palettes[ci] = pal
		indexed[ci] = idx
	}
	return palettes, indexed, nil
}

func buildCluster(frames []pixel.Frame, maxColors int) (pixel.Palette, []pixel.IndexedFrame, error) {
	if len(frames) == 0 {
		return nil, nil, ErrEmptyCluster
	}

	counts := map[pixel.Pixel]int{}
	for _, f := range frames {
		for _, p := range f.Pixels {
			counts[p]++
		}
	}
	unique := make([]pixel.Pixel, 0, len(counts))
	for p := range counts {
		unique = append(unique, p)
	}
	sort.Slice(unique, func(i, j int) bool { return lessPixel(unique[i], unique[j]) })

	k := maxColors
	if len(unique) < k {
		k = len(unique)
	}
	if k < 1 {
		k = 1
	}

	weights := make([]float64, len(unique))
	for i, p := range unique {
		weights[i] = float64(counts[p])
	}

	centers, labels := weightedKMeans(unique, weights, k)

	palette := make(pixel.Palette, len(centers))
	copy(palette, centers)

	labelOf := make(map[pixel.Pixel]int, len(unique))
	for i, p := range unique {
		labelOf[p] = labels[i]
	}

	out := make([]pixel.IndexedFrame, len(frames))
	for fi, f := range frames {
		idxs := make([]uint8, len(f.Pixels))
		for pi, p := range f.Pixels {
			idxs[pi] = uint8(labelOf[p])
		}
		out[fi] = pixel.IndexedFrame{Width: f.Width, Height: f.Height, Indices: idxs}
	}
	return palette, out, nil
}

// weightedKMeans clusters points into k groups using occurrence counts as
// per-point weights, with deterministic initialization.
func weightedKMeans(points []pixel.Pixel, weights []float64, k int) ([]pixel.Pixel, []int) {
	n := len(points)
	if k >= n {
		centers := make([]pixel.Pixel, n)
		labels := make([]int, n)
		for i, p := range points {
			centers[i] = p
			labels[i] = i
		}
		return centers, labels
	}

	rng := rand.New(rand.NewSource(kmeansSeed))
	order := rng.Perm(n)
	centersF := make([][3]float64, k)
	for i := 0; i < k; i++ {
		p := points[order[i]]
		centersF[i] = [3]float64{float64(p.R), float64(p.G), float64(p.B)}
	}

	labels := make([]int, n)
	const maxIter = 30
	for iter := 0; iter < maxIter; iter++ {
		changed := assignLabels(points, centersF, labels)

		rVals := make([][]float64, k)
		gVals := make([][]float64, k)
		bVals := make([][]float64, k)
		wVals := make([][]float64, k)
		for i, p := range points {
			c := labels[i]
			rVals[c] = append(rVals[c], float64(p.R))
			gVals[c] = append(gVals[c], float64(p.G))
			bVals[c] = append(bVals[c], float64(p.B))
			wVals[c] = append(wVals[c], weights[i])
		}

		newCenters := make([][3]float64, k)
		for c := 0; c < k; c++ {
			if len(wVals[c]) == 0 {
				newCenters[c] = farthestPoint(points, centersF, labels)
				continue
			}
			newCenters[c] = [3]float64{
				stat.Mean(rVals[c], wVals[c]),
				stat.Mean(gVals[c], wVals[c]),
				stat.Mean(bVals[c], wVals[c]),
			}
		}
		centersF = newCenters
		if !changed && iter > 0 {
			break
		}
	}

	centers := make([]pixel.Pixel, k)
	for c, cf := range centersF {
		centers[c] = pixel.Pixel{
			R: clampChannel(cf[0]),
			G: clampChannel(cf[1]),
			B: clampChannel(cf[2]),
		}
	}
	return centers, labels
}

func assignLabels(points []pixel.Pixel, centersF [][3]float64, labels []int) bool {
	changed := false
	for i, p := range points {
		best, bestDist := 0, math.Inf(1)
		for c, cf := range centersF {
			dr := float64(p.R) - cf[0]
			dg := float64(p.G) - cf[1]
			db := float64(p.B) - cf[2]
			d := dr*dr + dg*dg + db*db
			if d < bestDist {
				bestDist, best = d, c
			}
		}
		if labels[i] != best {
			changed = true
		}
		labels[i] = best
	}
	return changed
}

// farthestPoint re-seeds an empty cluster's centroid at the point farthest
// from its own currently-assigned centroid.
func farthestPoint(points []pixel.Pixel, centersF [][3]float64, labels []int) [3]float64 {
	bestIdx, bestDist := 0, -1.0
	for i, p := range points {
		cf := centersF[labels[i]]
		dr := float64(p.R) - cf[0]
		dg := float64(p.G) - cf[1]
		db := float64(p.B) - cf[2]
		d := dr*dr + dg*dg + db*db
		if d > bestDist {
			bestDist, bestIdx = d, i
		}
	}
	p := points[bestIdx]
	return [3]float64{float64(p.R), float64(p.G), float64(p.B)}
}

func clampChannel(v float64) uint8 {
	v = math.Round(v)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

func lessPixel(a, b pixel.Pixel) bool {
	if a.R != b.R {
		return a.R < b.R
	}
	if a.G != b.G {
		return a.G < b.G
	}
	return a.B < b.B
}
