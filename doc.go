// Package clim provides a producer-only implementation of the CLIM codec:
// a lossy video format that segments frames into temporal clusters,
// quantizes each cluster's colors into a small palette, and compresses
// palette-indexed pixel streams using per-cluster Huffman codes combined
// with run-length encoding.
//
// The package does not decode source video or extract audio itself;
// callers supply a ChunkSource of already-decoded frames and, optionally,
// an AudioExtractor for the trailing audio payload. cmd/climenc is a
// minimal demonstration CLI that wires a directory of PNG frames to
// Encode.
//
// Basic usage:
//
//	err := clim.Encode(w, chunkSource, audioExtractor, clim.DefaultOptions())
package clim
