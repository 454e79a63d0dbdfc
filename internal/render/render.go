// Package render turns a timeline into a video file. The Backend
// contract is what the scheduling core hands its output to; FFmpegBackend
// is the shipped implementation.
package render

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/artemk/slidereel/internal/profile"
	"github.com/artemk/slidereel/internal/timeline"
)

// Backend renders a schedule at the configured profile and writes the
// result to outPath. Implementations must honor each segment's interval
// and fade windows and emit a single muxed file.
type Backend interface {
	Render(ctx context.Context, tl timeline.Timeline, prof profile.Profile, outPath string) error
}

// EncodingError carries the tool invocation and its raw diagnostic
// output.
type EncodingError struct {
	Args   []string
	Stderr string
	Err    error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("render: ffmpeg failed: %v\nargs: %v\nstderr: %s", e.Err, e.Args, e.Stderr)
}

func (e *EncodingError) Unwrap() error {
	return e.Err
}

// FFmpegBackend renders by feeding each segment's still as a looped input
// into one ffmpeg invocation and realizing the overlaps with an xfade
// filter chain whose offsets come straight from the timeline.
type FFmpegBackend struct {
	// FFmpegPath is the ffmpeg binary; empty means "ffmpeg" on PATH.
	FFmpegPath string
	Logger     *slog.Logger
}

func NewFFmpegBackend(ffmpegPath string, logger *slog.Logger) *FFmpegBackend {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &FFmpegBackend{FFmpegPath: ffmpegPath, Logger: logger}
}

func (b *FFmpegBackend) Render(ctx context.Context, tl timeline.Timeline, prof profile.Profile, outPath string) error {
	if len(tl.Segments) == 0 {
		return fmt.Errorf("render: %w", timeline.ErrNoImages)
	}

	args := BuildArgs(tl, prof, outPath)
	b.Logger.Debug("invoking ffmpeg", "args", args, "segments", len(tl.Segments), "total", tl.TotalDuration)

	cmd := exec.CommandContext(ctx, b.FFmpegPath, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("render: cancelled: %w", ctx.Err())
		}
		return &EncodingError{Args: args, Stderr: stderr.String(), Err: err}
	}
	return nil
}

// BuildArgs constructs the full ffmpeg argument list for a schedule. It
// is exported for tests; Render is the entry point.
func BuildArgs(tl timeline.Timeline, prof profile.Profile, outPath string) []string {
	args := []string{"-y"}
	for _, seg := range tl.Segments {
		args = append(args,
			"-loop", "1",
			"-t", secs(seg.End-seg.Start),
			"-i", seg.Image.Path,
		)
	}

	graph, lastOut := buildFilterGraph(tl, prof)
	args = append(args, "-filter_complex", graph, "-map", lastOut)

	// Encoder contract: H.264 baseline, yuv420p, fast-start muxing, no
	// audio, fixed 24 fps.
	args = append(args,
		"-r", fmt.Sprintf("%d", prof.FrameRate),
		"-an",
		"-c:v", "libx264",
		"-profile:v", "baseline",
		"-level", "3.0",
		"-pix_fmt", "yuv420p",
		"-b:v", prof.BitratePreset,
		"-preset", "ultrafast",
		"-tune", "animation",
		"-crf", "30",
		"-movflags", "+faststart",
		"-t", secs(tl.TotalDuration),
		outPath,
	)
	return args
}

// buildFilterGraph scales every input onto the square canvas and then
// chains the segments together: xfade when consecutive segments overlap,
// the concat filter for hard cuts.
func buildFilterGraph(tl timeline.Timeline, prof profile.Profile) (graph, lastOut string) {
	var sb strings.Builder
	n := len(tl.Segments)

	scale := scaleFilter(prof)
	for i := range tl.Segments {
		fmt.Fprintf(&sb, "[%d:v]%s[s%d];", i, scale, i)
	}

	if n == 1 {
		return strings.TrimSuffix(sb.String(), ";"), "[s0]"
	}

	if tl.Overlap(1) > 0 {
		lastOut = "[s0]"
		for i := 1; i < n; i++ {
			out := fmt.Sprintf("[v%d]", i)
			fmt.Fprintf(&sb, "%s[s%d]xfade=transition=%s:duration=%s:offset=%s%s;",
				lastOut, i, transitionName(tl.Segments[i-1], tl.Segments[i]), secs(tl.Overlap(i)), secs(tl.Segments[i].Start), out)
			lastOut = out
		}
	} else {
		for i := 0; i < n; i++ {
			fmt.Fprintf(&sb, "[s%d]", i)
		}
		fmt.Fprintf(&sb, "concat=n=%d:v=1:a=0[vout];", n)
		lastOut = "[vout]"
	}

	return strings.TrimSuffix(sb.String(), ";"), lastOut
}

// transitionName picks the xfade transition for a boundary. When the
// outgoing segment fades out while the incoming one fades in, the pair
// dips through black; an incoming fade over an opaque predecessor is a
// direct blend.
func transitionName(outgoing, incoming timeline.Segment) string {
	if outgoing.FadeOut > 0 && incoming.FadeIn > 0 {
		return "fadeblack"
	}
	return "fade"
}

// scaleFilter maps a profile onto the input normalization chain. Square
// sources keep their aspect and get black padding; anamorphic sources are
// stretched onto the square canvas.
func scaleFilter(prof profile.Profile) string {
	side := prof.CanvasSide()
	if prof.Mode == profile.Anamorphic {
		return fmt.Sprintf("scale=%d:%d,setsar=1,fps=%d,format=yuv420p", side, side, prof.FrameRate)
	}
	return fmt.Sprintf(
		"scale=%d:%d:force_original_aspect_ratio=decrease,pad=%d:%d:(ow-iw)/2:(oh-ih)/2:black,setsar=1,fps=%d,format=yuv420p",
		side, side, side, side, prof.FrameRate,
	)
}

func secs(d time.Duration) string {
	return fmt.Sprintf("%f", d.Seconds())
}
