// Command climenc is a thin demonstration CLI around the clim library: it
// wires a directory of PNG frames to clim.Encode. It is not a video
// pipeline; frame acquisition, decoding, and resampling stay the
// caller's responsibility, as they are out of scope for the library
// itself.
//
// Usage:
//
//	climenc encode -frames <dir> -out <file.clim> [options]
//	climenc preview -frames <dir> -color R,G,B
package main

import (
	"flag"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	clim "github.com/bestplayermmiii/climenc"
	"github.com/bestplayermmiii/climenc/internal/colorutil"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "encode":
		err = runEncode(os.Args[2:])
	case "preview":
		err = runPreview(os.Args[2:])
	case "-h", "-help", "--help", "help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "climenc: unknown command %q\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "climenc: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage:
  climenc encode -frames <dir> -out <file.clim> [options]   Encode a PNG frame sequence to CLIM
  climenc preview -frames <dir> -color R,G,B                Report the closest color in the first frame's palette

Run "climenc <command> -h" for command-specific options.
`)
}

func runEncode(args []string) error {
	fs := flag.NewFlagSet("encode", flag.ContinueOnError)
	framesDir := fs.String("frames", "", "directory of PNG frames, read in lexical filename order")
	out := fs.String("out", "", "output .clim path")
	width := fs.Int("width", clim.DefaultOptions().Width, "target width")
	height := fs.Int("height", clim.DefaultOptions().Height, "target height")
	fps := fs.Float64("fps", clim.DefaultOptions().FPS, "target frames per second")
	maxChunk := fs.Int("maxchunk", clim.DefaultOptions().MaxChunkSize, "max frames per chunk")
	maxColors := fs.Int("maxcolors", clim.DefaultOptions().MaxColorsPerPalette, "max colors per palette")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *framesDir == "" || *out == "" {
		return fmt.Errorf("encode: -frames and -out are required")
	}

	paths, err := pngFramePaths(*framesDir)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("encode: no PNG frames found in %s", *framesDir)
	}

	opts := clim.DefaultOptions()
	opts.Width, opts.Height, opts.FPS = *width, *height, *fps
	opts.MaxChunkSize, opts.MaxColorsPerPalette = *maxChunk, *maxColors

	src := &pngChunkSource{paths: paths, chunkSize: *maxChunk}

	outFile, err := os.Create(*out)
	if err != nil {
		return err
	}
	if err := clim.Encode(outFile, src, nil, opts); err != nil {
		outFile.Close()
		os.Remove(*out)
		return fmt.Errorf("encode: %w", err)
	}
	if err := outFile.Close(); err != nil {
		os.Remove(*out)
		return err
	}

	fi, _ := os.Stat(*out)
	fmt.Fprintf(os.Stderr, "Encoded %d frames → %s (%d bytes)\n", len(paths), *out, fi.Size())
	return nil
}

func runPreview(args []string) error {
	fs := flag.NewFlagSet("preview", flag.ContinueOnError)
	framesDir := fs.String("frames", "", "directory of PNG frames")
	color := fs.String("color", "", "RGB triple to match, e.g. 128,64,0")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *framesDir == "" || *color == "" {
		return fmt.Errorf("preview: -frames and -color are required")
	}

	target, err := parseColor(*color)
	if err != nil {
		return fmt.Errorf("preview: %w", err)
	}

	paths, err := pngFramePaths(*framesDir)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("preview: no PNG frames found in %s", *framesDir)
	}

	frame, err := decodePNGFrame(paths[0])
	if err != nil {
		return err
	}

	seen := map[clim.Pixel]bool{}
	var palette []clim.Pixel
	for _, p := range frame.Pixels {
		if !seen[p] {
			seen[p] = true
			palette = append(palette, p)
		}
	}

	idx := colorutil.ClosestIndex(target, palette)
	if idx < 0 {
		return fmt.Errorf("preview: first frame has no pixels")
	}
	match := palette[idx]
	fmt.Printf("closest color to (%d,%d,%d): (%d,%d,%d)\n", target.R, target.G, target.B, match.R, match.G, match.B)
	return nil
}

func parseColor(s string) (clim.Pixel, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return clim.Pixel{}, fmt.Errorf("expected R,G,B, got %q", s)
	}
	var vals [3]uint8
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 0 || n > 255 {
			return clim.Pixel{}, fmt.Errorf("invalid channel %q", p)
		}
		vals[i] = uint8(n)
	}
	return clim.Pixel{R: vals[0], G: vals[1], B: vals[2]}, nil
}

func pngFramePaths(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || strings.ToLower(filepath.Ext(e.Name())) != ".png" {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

func decodePNGFrame(path string) (clim.Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return clim.Frame{}, err
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return clim.Frame{}, fmt.Errorf("decoding %s: %w", path, err)
	}

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	pixels := make([]clim.Pixel, 0, w*h)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			pixels = append(pixels, clim.Pixel{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(bl >> 8)})
		}
	}
	return clim.Frame{Width: w, Height: h, Pixels: pixels}, nil
}

// pngChunkSource reads a flat directory of PNG frames, chunkSize at a
// time, in the lexical order pngFramePaths already sorted them into.
type pngChunkSource struct {
	paths     []string
	chunkSize int
	pos       int
	chunk     []clim.Frame
	err       error
}

func (s *pngChunkSource) Next() bool {
	if s.err != nil || s.pos >= len(s.paths) {
		return false
	}
	end := s.pos + s.chunkSize
	if end > len(s.paths) {
		end = len(s.paths)
	}
	chunk := make([]clim.Frame, 0, end-s.pos)
	for _, p := range s.paths[s.pos:end] {
		frame, err := decodePNGFrame(p)
		if err != nil {
			s.err = err
			return false
		}
		chunk = append(chunk, frame)
	}
	s.chunk = chunk
	s.pos = end
	return true
}

func (s *pngChunkSource) Chunk() []clim.Frame { return s.chunk }
func (s *pngChunkSource) Err() error          { return s.err }
