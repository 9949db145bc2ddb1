package clim

import (
	"io"
	"math"

	"github.com/bestplayermmiii/climenc/internal/scratch"
)

// Encode reads chunks of frames from src, encodes each independently, and
// writes the assembled CLIM container to w. If audio is non-nil, its
// ExtractAudio result is appended as the trailing audio payload; a
// failing extractor does not fail Encode (§7, AudioExtractionFailure is
// non-fatal by design) — the container remains valid up to its last frame
// block.
func Encode(w io.Writer, src ChunkSource, audio AudioExtractor, opts Options) error {
	if err := opts.validate(); err != nil {
		return err
	}

	dir, err := scratch.New()
	if err != nil {
		return &IOError{Err: err}
	}
	defer dir.Close()

	var records []chunkRecord
	totalFrames := 0
	for src.Next() {
		chunk := src.Chunk()
		if len(chunk) == 0 {
			continue
		}
		sizes, encoded, err := encodeChunk(chunk, opts)
		if err != nil {
			return err
		}
		path, size, err := dir.WriteChunk(encoded)
		if err != nil {
			return &IOError{Err: err}
		}
		records = append(records, chunkRecord{path: path, size: size, clusterSizes: sizes})
		totalFrames += len(chunk)
	}
	if err := src.Err(); err != nil {
		return &InputError{Err: err}
	}
	if totalFrames == 0 {
		return &InputError{Err: ErrNoFrames}
	}

	clusterSizes := flattenClusterSizes(records)
	clusteringHeader, err := buildClusteringHeader(clusterSizes)
	if err != nil {
		return err
	}

	var sumChunkBytes int64
	for _, r := range records {
		sumChunkBytes += r.size
	}
	ifba := uint64(fileHeaderSize) + uint64(len(clusteringHeader)) + uint64(sumChunkBytes)

	header, err := buildFileHeader(opts.Width, opts.Height, opts.FPS, ifba)
	if err != nil {
		return &InputError{Err: err}
	}

	if _, err := w.Write(header); err != nil {
		return &IOError{Err: err}
	}
	if _, err := w.Write(clusteringHeader); err != nil {
		return &IOError{Err: err}
	}
	for _, r := range records {
		if err := dir.CopyChunk(w, r.path); err != nil {
			return &IOError{Err: err}
		}
	}

	if audio != nil {
		speed := math.Round(opts.FPS) / opts.FPS
		data, err := audio.ExtractAudio(speed)
		if err != nil {
			if opts.OnAudioFailure != nil {
				opts.OnAudioFailure(&AudioExtractionFailure{Err: err})
			}
			return nil
		}
		if _, err := w.Write(data); err != nil {
			return &IOError{Err: err}
		}
	}
	return nil
}

// flattenClusterSizes concatenates every chunk's local cluster sizes into
// the single cross-chunk clustering index (§4.6 step after-all-chunks 1).
// Cluster boundaries never span a chunk, so no merging across chunk edges
// is needed beyond simple concatenation.
func flattenClusterSizes(records []chunkRecord) []int {
	var out []int
	for _, r := range records {
		out = append(out, r.clusterSizes...)
	}
	return out
}
