// Package profile holds the validated encoding parameters handed to a
// render backend.
package profile

import (
	"errors"
	"fmt"
	"sort"
)

// FrameRate is fixed; segment boundaries are frame-aligned against it
// wherever a backend needs integral frame counts.
const FrameRate = 24

type AspectMode string

const (
	// Square renders the source at its native aspect, padded to a
	// square canvas.
	Square AspectMode = "square"
	// Anamorphic stretches the source rectangle to a square canvas of
	// side TargetWidth.
	Anamorphic AspectMode = "anamorphic"
)

var (
	ErrInvalidResolution = errors.New("profile: invalid resolution")
	ErrInvalidBitrate    = errors.New("profile: bitrate preset not recognized")
)

// bitratePresets are the enumerated quality tiers exposed to callers.
var bitratePresets = map[string]bool{
	"350k":  true,
	"500k":  true,
	"750k":  true,
	"1000k": true,
}

// Profile is the normalized encoding configuration. Construct it through
// Normalize or Lookup; a zero Profile is not valid.
type Profile struct {
	TargetWidth   int
	SourceHeight  int
	Mode          AspectMode
	BitratePreset string
	FrameRate     int
}

// resolutions maps the preset keys offered in settings to their source
// geometry. Anamorphic entries stretch WxH up to WxW.
var resolutions = map[string]struct {
	width  int
	height int
	mode   AspectMode
}{
	"512x512":   {512, 512, Square},
	"1024x1024": {1024, 1024, Square},
	"2048x2048": {2048, 2048, Square},
	"1024x512":  {1024, 512, Anamorphic},
	"2048x1024": {2048, 1024, Anamorphic},
}

// Normalize validates the raw encoding parameters and returns a Profile.
func Normalize(targetWidth, sourceHeight int, mode AspectMode, bitratePreset string) (Profile, error) {
	if targetWidth <= 0 || sourceHeight <= 0 {
		return Profile{}, fmt.Errorf("%w: %dx%d", ErrInvalidResolution, targetWidth, sourceHeight)
	}
	if mode != Square && mode != Anamorphic {
		return Profile{}, fmt.Errorf("%w: unknown aspect mode %q", ErrInvalidResolution, mode)
	}
	if !bitratePresets[bitratePreset] {
		return Profile{}, fmt.Errorf("%w: %q", ErrInvalidBitrate, bitratePreset)
	}
	return Profile{
		TargetWidth:   targetWidth,
		SourceHeight:  sourceHeight,
		Mode:          mode,
		BitratePreset: bitratePreset,
		FrameRate:     FrameRate,
	}, nil
}

// Lookup resolves a named resolution preset into a Profile.
func Lookup(resolution, bitratePreset string) (Profile, error) {
	r, ok := resolutions[resolution]
	if !ok {
		return Profile{}, fmt.Errorf("%w: unknown preset %q", ErrInvalidResolution, resolution)
	}
	return Normalize(r.width, r.height, r.mode, bitratePreset)
}

// ResolutionKeys lists the available resolution presets, sorted for
// stable help output.
func ResolutionKeys() []string {
	keys := make([]string, 0, len(resolutions))
	for k := range resolutions {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// CanvasSide is the output square's side length.
func (p Profile) CanvasSide() int {
	return p.TargetWidth
}
