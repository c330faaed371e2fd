// Package imagepipe prepares project screenshots for the web: each source
// image is scaled to cover a fixed frame, centre cropped and re-encoded.
package imagepipe

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	_ "image/png"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/image/draw"
)

// OutputExt replaces the source extension of every processed file.
const OutputExt = ".jpg"

// DefaultFiles are the project screenshots shipped with the site.
var DefaultFiles = []string{
	"healthcare-platform.png",
	"covid-detection.png",
	"insurance-suite.png",
}

// Options controls a pipeline run.
type Options struct {
	SourceDir string
	OutputDir string
	Files     []string
	Width     int
	Height    int
	Quality   int
}

// DefaultOptions returns the 800x450, quality 85 settings used for the site.
func DefaultOptions() Options {
	return Options{
		SourceDir: "scripts/source-images",
		OutputDir: "static/projects",
		Files:     append([]string(nil), DefaultFiles...),
		Width:     800,
		Height:    450,
		Quality:   85,
	}
}

func (o Options) validate() error {
	if o.Width <= 0 || o.Height <= 0 {
		return fmt.Errorf("imagepipe: invalid size %dx%d", o.Width, o.Height)
	}
	if o.Quality < 1 || o.Quality > 100 {
		return fmt.Errorf("imagepipe: quality %d out of range 1-100", o.Quality)
	}
	if o.OutputDir == "" {
		return errors.New("imagepipe: output dir is required")
	}
	return nil
}

// Report lists what a run did.
type Report struct {
	Processed []string
	Skipped   []string
}

// Run processes opts.Files in order. Missing sources are logged and
// skipped; any other error stops the batch.
func Run(ctx context.Context, opts Options, log zerolog.Logger) (Report, error) {
	var rep Report
	if err := opts.validate(); err != nil {
		return rep, err
	}
	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return rep, fmt.Errorf("imagepipe: create output dir: %w", err)
	}

	for _, name := range opts.Files {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		in := filepath.Join(opts.SourceDir, name)
		out := filepath.Join(opts.OutputDir, OutputName(name))

		f, err := os.Open(in)
		if errors.Is(err, fs.ErrNotExist) {
			log.Warn().Str("path", in).Msg("source image not found")
			rep.Skipped = append(rep.Skipped, name)
			continue
		}
		if err != nil {
			return rep, fmt.Errorf("imagepipe: %s: %w", name, err)
		}
		err = processFile(f, out, opts)
		f.Close()
		if err != nil {
			return rep, fmt.Errorf("imagepipe: %s: %w", name, err)
		}
		log.Info().Str("path", out).Msg("processed")
		rep.Processed = append(rep.Processed, out)
	}
	return rep, nil
}

// OutputName maps a source file name to its output name.
func OutputName(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name)) + OutputExt
}

func processFile(r io.Reader, out string, opts Options) error {
	src, _, err := image.Decode(r)
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	dst := Flatten(Cover(src, opts.Width, opts.Height), color.White)

	// Names may carry subdirectories; mirror them under the output dir.
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	w, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create: %w", err)
	}
	if err := jpeg.Encode(w, dst, &jpeg.Options{Quality: opts.Quality}); err != nil {
		w.Close()
		os.Remove(out)
		return fmt.Errorf("encode: %w", err)
	}
	if err := w.Close(); err != nil {
		os.Remove(out)
		return fmt.Errorf("close: %w", err)
	}
	return nil
}

// Flatten composites img over a solid background. JPEG has no alpha
// channel, so transparent regions would otherwise come out black.
func Flatten(img image.Image, bg color.Color) *image.RGBA {
	dst := image.NewRGBA(img.Bounds())
	draw.Draw(dst, dst.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), img, img.Bounds().Min, draw.Over)
	return dst
}

// Cover scales src to fill a w x h frame, keeping its aspect ratio, and
// crops the overflow equally from both sides.
func Cover(src image.Image, w, h int) *image.RGBA {
	b := src.Bounds()
	sw, sh := b.Dx(), b.Dy()

	// Crop a region of src with the target aspect ratio, then scale it.
	cw, ch := sw, max(1, sw*h/w)
	if ch > sh {
		cw, ch = max(1, sh*w/h), sh
	}
	x0 := b.Min.X + (sw-cw)/2
	y0 := b.Min.Y + (sh-ch)/2
	crop := image.Rect(x0, y0, x0+cw, y0+ch)

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, crop, draw.Src, nil)
	return dst
}
