package source

import (
	"path/filepath"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/artemk/slidereel/internal/timeline"
)

// QRSlide writes a QR code for url into workDir and returns it as an
// extra slide, used as an outro link card at the end of a sequence.
func QRSlide(url string, size int, workDir string) (timeline.ImageRef, error) {
	if size <= 0 {
		size = 512
	}

	name, err := uniqueName()
	if err != nil {
		return timeline.ImageRef{}, err
	}
	path := filepath.Join(workDir, "qr_"+name+".png")

	if err := qrcode.WriteFile(url, qrcode.Medium, size, path); err != nil {
		return timeline.ImageRef{}, err
	}
	return timeline.ImageRef{Path: path, Width: size, Height: size}, nil
}
