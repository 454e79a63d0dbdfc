package source

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	"golang.org/x/image/draw"

	"github.com/artemk/slidereel/internal/timeline"
)

// MaxEdge caps the long edge of ingested images. Larger uploads are
// downscaled before encoding so the render stage never sees oversized
// frames.
const MaxEdge = 2048

const jpegQuality = 85

// IngestFile normalizes one source image into workDir: decodes it,
// downscales the long edge to MaxEdge when needed, and re-encodes it as
// JPEG under a unique name. The returned ImageRef carries the dimensions
// of the stored copy.
func IngestFile(srcPath, workDir string) (timeline.ImageRef, error) {
	f, err := os.Open(srcPath)
	if err != nil {
		return timeline.ImageRef{}, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return timeline.ImageRef{}, fmt.Errorf("decode %s: %w", filepath.Base(srcPath), err)
	}

	img = capLongEdge(img, MaxEdge)

	name, err := uniqueName()
	if err != nil {
		return timeline.ImageRef{}, err
	}
	dstPath := filepath.Join(workDir, name+".jpg")

	out, err := os.Create(dstPath)
	if err != nil {
		return timeline.ImageRef{}, err
	}
	if err := jpeg.Encode(out, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		out.Close()
		return timeline.ImageRef{}, fmt.Errorf("encode %s: %w", filepath.Base(srcPath), err)
	}
	if err := out.Close(); err != nil {
		return timeline.ImageRef{}, err
	}

	b := img.Bounds()
	return timeline.ImageRef{Path: dstPath, Width: b.Dx(), Height: b.Dy()}, nil
}

// capLongEdge downscales img so its long edge does not exceed maxEdge,
// preserving aspect ratio. Images already within bounds pass through
// untouched.
func capLongEdge(img image.Image, maxEdge int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	long := w
	if h > long {
		long = h
	}
	if long <= maxEdge {
		return img
	}

	scale := float64(maxEdge) / float64(long)
	dw := int(float64(w) * scale)
	dh := int(float64(h) * scale)
	if dw < 1 {
		dw = 1
	}
	if dh < 1 {
		dh = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}

// uniqueName returns a short random hex name, enough to avoid collisions
// within one workspace.
func uniqueName() (string, error) {
	var buf [3]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf[:]), nil
}
