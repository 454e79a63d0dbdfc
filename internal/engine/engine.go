// Package engine wires the pipeline together: ingest the images into a
// request-scoped workspace, order them, schedule the timeline, and hand
// it to the render backend.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/artemk/slidereel/internal/config"
	"github.com/artemk/slidereel/internal/profile"
	"github.com/artemk/slidereel/internal/render"
	"github.com/artemk/slidereel/internal/sequence"
	"github.com/artemk/slidereel/internal/source"
	"github.com/artemk/slidereel/internal/system"
	"github.com/artemk/slidereel/internal/timeline"
)

// Progress is invoked after each ingested image and once after the final
// render. It runs on pipeline goroutines and must not block.
type Progress func(done, total int)

// Generator runs one slideshow generation per Run call. Each run works
// against a fresh temporary workspace that is removed on every exit path,
// so concurrent runs never share files.
type Generator struct {
	cfg     *config.Config
	backend render.Backend
	log     *slog.Logger

	// OnProgress, when set, receives pipeline progress events.
	OnProgress Progress
	// TimelinePath, when set, dumps the computed schedule as YAML
	// before rendering.
	TimelinePath string
}

func NewGenerator(cfg *config.Config, backend render.Backend, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{cfg: cfg, backend: backend, log: logger}
}

// Run generates a video from the images in inputDir and writes it to
// outDir/<filename>.mp4, returning the output path.
func (g *Generator) Run(ctx context.Context, settings config.Settings, inputDir, outDir string) (string, error) {
	if err := settings.Validate(); err != nil {
		return "", err
	}

	prof, err := profile.Lookup(settings.Resolution, settings.BitratePreset)
	if err != nil {
		return "", err
	}

	paths, err := source.List(inputDir)
	if err != nil {
		return "", err
	}

	workDir, err := os.MkdirTemp(g.cfg.TempDir, "slidereel_")
	if err != nil {
		return "", fmt.Errorf("engine: workspace: %w", err)
	}
	defer os.RemoveAll(workDir)

	total := len(paths) + 1 // +1 for the render step
	if settings.QRLink != "" {
		total++
	}
	var done atomic.Int64
	step := func() {
		if g.OnProgress != nil {
			g.OnProgress(int(done.Add(1)), total)
		}
	}

	g.log.Info("ingesting images", "count", len(paths), "workspace", workDir)

	refs := make([]timeline.ImageRef, len(paths))
	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(system.Workers(g.cfg.Workers))
	for i, p := range paths {
		i, p := i, p
		eg.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			ref, err := source.IngestFile(p, workDir)
			if err != nil {
				return err
			}
			refs[i] = ref
			step()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return "", err
	}

	ordered, err := sequence.Order(refs, settings.Shuffle, settings.Seed)
	if err != nil {
		return "", err
	}

	if settings.QRLink != "" {
		qr, err := source.QRSlide(settings.QRLink, prof.CanvasSide(), workDir)
		if err != nil {
			return "", fmt.Errorf("engine: qr slide: %w", err)
		}
		ordered = append(ordered, qr)
		step()
	}

	tr := timeline.TransitionSpec{
		Kind:     timeline.TransitionKind(settings.TransitionKind),
		Duration: settings.TransitionDur(),
	}
	tl, err := timeline.Schedule(ordered, settings.ImageDur(), tr)
	if err != nil {
		return "", err
	}
	g.log.Info("timeline scheduled",
		"segments", len(tl.Segments),
		"total", tl.TotalDuration,
		"transition", tr.Kind,
	)

	if g.TimelinePath != "" {
		if err := timeline.WriteTimeline(tl, g.TimelinePath); err != nil {
			return "", fmt.Errorf("engine: dump timeline: %w", err)
		}
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return "", err
	}
	outPath := filepath.Join(outDir, settings.Filename+".mp4")

	if err := g.backend.Render(ctx, tl, prof, outPath); err != nil {
		return "", err
	}
	step()

	g.log.Info("video generated", "output", outPath)
	return outPath, nil
}
