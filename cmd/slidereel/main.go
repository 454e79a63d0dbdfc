package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/artemk/slidereel/internal/config"
	"github.com/artemk/slidereel/internal/engine"
	"github.com/artemk/slidereel/internal/profile"
	"github.com/artemk/slidereel/internal/render"
	"github.com/artemk/slidereel/internal/system"
)

func main() {
	inputPtr := flag.String("input", "input", "directory with .jpg/.jpeg/.png images")
	outPtr := flag.String("out", "output", "directory for the generated video")
	namePtr := flag.String("name", "my_slideshow", "output file name without extension")
	durationPtr := flag.Float64("duration", 15.0, "seconds each image is displayed (1-30)")
	transDurPtr := flag.Float64("transition-duration", 3.0, "transition length in seconds (0-10)")
	transitionPtr := flag.String("transition", "crossfade", "transition kind: crossfade, fade_black")
	bitratePtr := flag.String("bitrate", "750k", "bitrate preset: 350k, 500k, 750k, 1000k")
	resolutionPtr := flag.String("resolution", "1024x1024",
		"resolution preset: "+strings.Join(profile.ResolutionKeys(), ", "))
	shufflePtr := flag.Bool("shuffle", true, "randomize image order")
	seedPtr := flag.Int64("seed", -1, "shuffle seed; negative picks a random one")
	qrPtr := flag.String("qr", "", "append an outro slide with a QR code for this URL")
	timelinePtr := flag.String("timeline", "", "dump the computed schedule to this YAML file")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log := cfg.NewLogger()

	if err := system.InitResourceLimits(); err != nil {
		log.Warn("could not raise file limit", "error", err)
	}

	settings := config.Settings{
		Filename:           *namePtr,
		ImageDuration:      *durationPtr,
		TransitionDuration: *transDurPtr,
		TransitionKind:     *transitionPtr,
		BitratePreset:      *bitratePtr,
		Resolution:         *resolutionPtr,
		Shuffle:            *shufflePtr,
		Seed:               *seedPtr,
		QRLink:             *qrPtr,
	}

	backend := render.NewFFmpegBackend(cfg.FFmpegPath, log)
	gen := engine.NewGenerator(cfg, backend, log)
	gen.TimelinePath = *timelinePtr
	gen.OnProgress = func(done, total int) {
		fmt.Printf("[>] %d/%d\n", done, total)
	}

	out, err := gen.Run(ctx, settings, *inputPtr, *outPtr)
	if err != nil {
		log.Error("generation failed", "error", err)
		os.Exit(1)
	}

	fmt.Printf("[+++] Done: %s\n", out)
}
