package clim

import (
	"github.com/bestplayermmiii/climenc/internal/cluster"
	"github.com/bestplayermmiii/climenc/internal/clusterencode"
	"github.com/bestplayermmiii/climenc/internal/palette"
	"github.com/bestplayermmiii/climenc/internal/pixel"
)

// chunkRecord is one chunk's persisted result: its scratch-file path and
// byte length, and the sizes of the clusters it contributed.
type chunkRecord struct {
	path         string
	size         int64
	clusterSizes []int
}

// encodeChunk runs clustering, palette building, and cluster encoding for
// one chunk of frames (§4.6 step 1), returning the concatenated encoded
// bytes for every cluster in the chunk and each cluster's frame count.
func encodeChunk(frames []pixel.Frame, opts Options) ([]int, []byte, error) {
	if len(frames) == 0 {
		return nil, nil, &EncodingInvariantError{Err: ErrNoFrames}
	}

	starts := cluster.SegmentStarts(frames, cluster.Config{MaxSegmentsPercent: opts.ClusterMaxSegmentsPct})

	palettes, indexed, err := palette.Build(frames, starts, opts.MaxColorsPerPalette)
	if err != nil {
		return nil, nil, &EncodingInvariantError{Err: err}
	}

	maxCodeLength := bitLength(opts.MaxColorsPerPalette)
	if maxCodeLength < 1 {
		maxCodeLength = 1
	}
	if maxCodeLength > 8 {
		maxCodeLength = 8
	}

	sizes := make([]int, len(starts))
	var encoded []byte
	for i := range starts {
		end := len(frames)
		if i+1 < len(starts) {
			end = starts[i+1]
		}
		sizes[i] = end - starts[i]

		c := clusterencode.Cluster{Palette: palettes[i], Frames: indexed[i]}
		bytesOut, err := clusterencode.EncodeCluster(c, maxCodeLength, opts.Align)
		if err != nil {
			return nil, nil, &EncodingInvariantError{Err: err}
		}
		encoded = append(encoded, bytesOut...)
	}
	return sizes, encoded, nil
}
