// Package timeline computes the transition schedule for a slideshow:
// which image is on screen when, how segments overlap, and where the
// fade windows sit. The schedule is pure data; rendering it is the
// backend's job.
package timeline

import (
	"errors"
	"time"
)

type TransitionKind string

const (
	None        TransitionKind = "none"
	Crossfade   TransitionKind = "crossfade"
	FadeToBlack TransitionKind = "fade_black"
)

var (
	ErrNoImages             = errors.New("timeline: no images provided")
	ErrNegativeTransition   = errors.New("timeline: transition duration is negative")
	ErrInvalidImageDuration = errors.New("timeline: image duration must be positive")
)

// ImageRef is a handle to one decoded still. The scheduler never touches
// pixels; it only carries the reference through to the segments.
type ImageRef struct {
	Path   string
	Width  int
	Height int
}

// TransitionSpec selects the transition between consecutive images.
// A zero Duration degenerates to None regardless of Kind.
type TransitionSpec struct {
	Kind     TransitionKind
	Duration time.Duration
}

// Segment is one scheduled appearance of an image. FadeIn covers
// [Start, Start+FadeIn), FadeOut covers [End-FadeOut, End); the renderer
// applies linear opacity ramps over those windows.
type Segment struct {
	Image   ImageRef
	Start   time.Duration
	End     time.Duration
	FadeIn  time.Duration
	FadeOut time.Duration
}

// Timeline is the complete schedule. Segments are ordered by Start and
// TotalDuration is the maximum End.
type Timeline struct {
	Segments      []Segment
	TotalDuration time.Duration
}

// Schedule computes the timeline for the given ordered images.
//
// With a positive transition duration the sequence is treated as cyclic:
// the first image is scheduled a second time at the very end so that the
// last transition fades back into the opening frame and a playback loop
// has no visible seam.
func Schedule(images []ImageRef, imageDuration time.Duration, tr TransitionSpec) (Timeline, error) {
	if len(images) == 0 {
		return Timeline{}, ErrNoImages
	}
	if imageDuration <= 0 {
		return Timeline{}, ErrInvalidImageDuration
	}
	if tr.Duration < 0 {
		return Timeline{}, ErrNegativeTransition
	}

	if tr.Duration == 0 || tr.Kind == None {
		return scheduleCuts(images, imageDuration), nil
	}

	// Loop closure: append the first image so the final transition
	// returns to it.
	working := make([]ImageRef, 0, len(images)+1)
	working = append(working, images...)
	working = append(working, images[0])

	switch tr.Kind {
	case FadeToBlack:
		return scheduleFadeBlack(working, imageDuration, tr.Duration), nil
	default:
		return scheduleCrossfade(working, imageDuration, tr.Duration), nil
	}
}

// scheduleCuts places segments back to back with hard cuts and no loop
// closure.
func scheduleCuts(images []ImageRef, d time.Duration) Timeline {
	segs := make([]Segment, len(images))
	for i, img := range images {
		start := time.Duration(i) * d
		segs[i] = Segment{Image: img, Start: start, End: start + d}
	}
	return Timeline{Segments: segs, TotalDuration: time.Duration(len(images)) * d}
}

// scheduleCrossfade starts segment i at i*(D-d) so that consecutive
// segments overlap by exactly d. Only the incoming segment carries a fade
// window: it ramps in over the still-opaque outgoing image, which is what
// a direct blend looks like when the renderer composites top-down.
//
// d >= D is not guarded; the starts then collapse or invert and the
// schedule is produced algebraically. Callers validate the bound upstream
// when they want a stricter contract.
func scheduleCrossfade(working []ImageRef, d, fade time.Duration) Timeline {
	segs := make([]Segment, len(working))
	for i, img := range working {
		start := time.Duration(i) * (d - fade)
		seg := Segment{Image: img, Start: start, End: start + d}
		if i > 0 {
			seg.FadeIn = fade
		}
		segs[i] = seg
	}
	return Timeline{Segments: segs, TotalDuration: segs[len(segs)-1].End}
}

// scheduleFadeBlack gives each boundary a symmetric dip: the outgoing
// segment fades toward black over f while the incoming one fades in from
// black over the same f, with the two windows coinciding. f is clamped to
// half the image duration so a segment is never fading on both edges at
// once.
func scheduleFadeBlack(working []ImageRef, d, fade time.Duration) Timeline {
	f := fade / 2
	if f > d/2 {
		f = d / 2
	}
	segs := make([]Segment, len(working))
	last := len(working) - 1
	for i, img := range working {
		start := time.Duration(i) * (d - f)
		seg := Segment{Image: img, Start: start, End: start + d}
		if i > 0 {
			seg.FadeIn = f
		}
		if i < last {
			seg.FadeOut = f
		}
		segs[i] = seg
	}
	return Timeline{Segments: segs, TotalDuration: segs[last].End}
}

// Overlap reports how long segment i is on screen together with segment
// i-1. It is zero for i == 0 and for hard-cut schedules.
func (t Timeline) Overlap(i int) time.Duration {
	if i <= 0 || i >= len(t.Segments) {
		return 0
	}
	ov := t.Segments[i-1].End - t.Segments[i].Start
	if ov < 0 {
		return 0
	}
	return ov
}
