// Package cluster groups consecutive frames within a chunk into temporal
// segments, each destined for its own palette.
package cluster

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/bestplayermmiii/climenc/internal/pixel"
)

// Config controls the clustering engine's tunable knobs.
type Config struct {
	// MaxSegmentsPercent caps the estimated cluster count K at
	// max(1, floor(MaxSegmentsPercent * N)). The original system's default
	// is effectively "no cap" (1.0, i.e. at most N segments).
	MaxSegmentsPercent float64
}

// DefaultConfig returns the no-effective-cap configuration.
func DefaultConfig() Config {
	return Config{MaxSegmentsPercent: 1.0}
}

// SegmentStarts computes the cluster boundaries for a chunk of frames. The
// result is strictly increasing, begins with 0, and its last element is
// less than len(frames).
func SegmentStarts(frames []pixel.Frame, cfg Config) []int {
	n := len(frames)
	if n < 2 {
		return []int{0}
	}

	neighbor := neighborDistances(frames)
	k := estimateClusterCount(neighbor)
	if cap := maxSegments(cfg, n); k > cap {
		k = cap
	}
	if k < 1 {
		k = 1
	}

	condensed := pairwiseMSE(frames)
	labels := wardCluster(n, condensed, k)
	return boundariesFromLabels(labels)
}

// neighborDistances computes, for each adjacent frame pair, the mean over
// pixels of the L2 norm between corresponding RGB vectors.
func neighborDistances(frames []pixel.Frame) []float64 {
	d := make([]float64, len(frames)-1)
	for i := range d {
		d[i] = meanL2(frames[i].Pixels, frames[i+1].Pixels)
	}
	return d
}

func meanL2(a, b []pixel.Pixel) float64 {
	if len(a) == 0 {
		return 0
	}
	va := make([]float64, 3)
	vb := make([]float64, 3)
	sum := 0.0
	for i := range a {
		va[0], va[1], va[2] = float64(a[i].R), float64(a[i].G), float64(a[i].B)
		vb[0], vb[1], vb[2] = float64(b[i].R), float64(b[i].G), float64(b[i].B)
		sum += floats.Distance(va, vb, 2)
	}
	return sum / float64(len(a))
}

// estimateClusterCount starts at 1 and increments for every neighbor
// distance exceeding the population standard deviation of all neighbor
// distances. PopStdDev (not the sample-variance StdDev) is used
// deliberately: StdDev divides by n-1 and returns NaN for a single-element
// slice (a two-frame chunk), whereas PopStdDev matches NumPy's np.std
// default and returns 0 for a single value.
func estimateClusterCount(d []float64) int {
	sigma := stat.PopStdDev(d, nil)
	n := 1
	for _, v := range d {
		if v > sigma {
			n++
		}
	}
	return n
}

func maxSegments(cfg Config, n int) int {
	m := int(cfg.MaxSegmentsPercent * float64(n))
	if m < 1 {
		m = 1
	}
	return m
}

// pairwiseMSE computes the full symmetric matrix of mean-squared-error
// distances between every ordered pair of frames.
func pairwiseMSE(frames []pixel.Frame) [][]float64 {
	n := len(frames)
	m := make([][]float64, n)
	for i := range m {
		m[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := meanSquaredError(frames[i].Pixels, frames[j].Pixels)
			m[i][j] = d
			m[j][i] = d
		}
	}
	return m
}

func meanSquaredError(a, b []pixel.Pixel) float64 {
	if len(a) == 0 {
		return 0
	}
	sum := 0.0
	for i := range a {
		dr := float64(a[i].R) - float64(b[i].R)
		dg := float64(a[i].G) - float64(b[i].G)
		db := float64(a[i].B) - float64(b[i].B)
		sum += dr*dr + dg*dg + db*db
	}
	return sum / float64(len(a)*3)
}

// wardCluster partitions n items into exactly k groups using agglomerative
// clustering with Ward linkage, implemented via the Lance-Williams
// recurrence (the update rule scipy's linkage(..., method='ward') uses
// internally). It returns a label per original index; two indices share a
// label iff they ended up in the same final cluster. Label values
// themselves carry no meaning beyond equality.
func wardCluster(n int, dist [][]float64, k int) []int {
	size := make([]int, n)
	alive := make([]bool, n)
	members := make([][]int, n)
	d := make([][]float64, n)
	for i := range d {
		d[i] = append([]float64(nil), dist[i]...)
		size[i] = 1
		alive[i] = true
		members[i] = []int{i}
	}

	aliveCount := n
	for aliveCount > k {
		a, b := -1, -1
		best := math.Inf(1)
		for i := 0; i < n; i++ {
			if !alive[i] {
				continue
			}
			for j := i + 1; j < n; j++ {
				if !alive[j] {
					continue
				}
				if d[i][j] < best {
					best, a, b = d[i][j], i, j
				}
			}
		}

		ni, nj, dab := float64(size[a]), float64(size[b]), d[a][b]
		for c := 0; c < n; c++ {
			if !alive[c] || c == a || c == b {
				continue
			}
			nc := float64(size[c])
			dac, dbc := d[a][c], d[b][c]
			newD := math.Sqrt(((ni+nc)*dac*dac + (nj+nc)*dbc*dbc - nc*dab*dab) / (ni + nj + nc))
			d[a][c], d[c][a] = newD, newD
		}

		members[a] = append(members[a], members[b]...)
		size[a] += size[b]
		alive[b] = false
		aliveCount--
	}

	labels := make([]int, n)
	label := 0
	for i := 0; i < n; i++ {
		if !alive[i] {
			continue
		}
		for _, m := range members[i] {
			labels[m] = label
		}
		label++
	}
	return labels
}

// boundariesFromLabels walks the label sequence in original frame order
// and emits a boundary at each label change. Non-contiguous repeats of the
// same label therefore become separate segments, by construction of the
// walk, not by any constraint inside the clustering step itself.
func boundariesFromLabels(labels []int) []int {
	starts := []int{0}
	for i := 1; i < len(labels); i++ {
		if labels[i] != labels[i-1] {
			starts = append(starts, i)
		}
	}
	return starts
}
