// Package config provides the per-request generation settings and the
// ambient environment configuration.
package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sethvargo/go-envconfig"
)

// Settings describes one generation request. Field ranges mirror what the
// UI exposes; Validate enforces them before any work starts.
type Settings struct {
	// Filename is the output name without extension.
	Filename string `validate:"required"`
	// ImageDuration is how long each image is displayed, in seconds.
	ImageDuration float64 `validate:"gte=1,lte=30"`
	// TransitionDuration is the transition length in seconds. Zero
	// means hard cuts.
	TransitionDuration float64 `validate:"gte=0,lte=10"`
	// TransitionKind selects the transition effect.
	TransitionKind string `validate:"oneof=crossfade fade_black"`
	// BitratePreset is one of the enumerated quality tiers.
	BitratePreset string `validate:"oneof=350k 500k 750k 1000k"`
	// Resolution is a named resolution preset, resolved by profile.Lookup.
	Resolution string `validate:"required"`
	// Shuffle randomizes image order before scheduling.
	Shuffle bool
	// Seed makes a shuffled order reproducible; negative means unseeded.
	Seed int64
	// QRLink, when set, appends an outro slide carrying a QR code for
	// this URL.
	QRLink string `validate:"omitempty,url"`
}

var validate = validator.New()

// Validate checks the settings against their declared ranges.
func (s Settings) Validate() error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("settings: %w", err)
	}
	return nil
}

// ImageDur returns the per-image display time as a Duration.
func (s Settings) ImageDur() time.Duration {
	return time.Duration(s.ImageDuration * float64(time.Second))
}

// TransitionDur returns the transition length as a Duration.
func (s Settings) TransitionDur() time.Duration {
	return time.Duration(s.TransitionDuration * float64(time.Second))
}

// Config holds the environment-driven configuration shared by all
// requests.
type Config struct {
	// FFmpegPath overrides where the ffmpeg binary is found.
	FFmpegPath string `env:"FFMPEG_PATH, default=ffmpeg"`
	// TempDir is where request workspaces are created; empty uses the
	// system default.
	TempDir string `env:"TEMP_DIR"`
	// Workers caps the ingest worker pool; 0 sizes it from the host.
	Workers int `env:"WORKERS, default=0"`

	LogFormat string `env:"LOG_FORMAT, default=text"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`
}

// Load reads the ambient configuration from environment variables.
func Load(ctx context.Context) (*Config, error) {
	cfg := &Config{}
	if err := envconfig.Process(ctx, cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// NewLogger creates a structured logger from the configuration. The
// "json" format is intended for production; anything else gets
// human-readable text.
func (c *Config) NewLogger() *slog.Logger {
	level := parseLogLevel(c.LogLevel)

	var handler slog.Handler
	if strings.ToLower(c.LogFormat) == "json" {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	} else {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	}
	return slog.New(handler)
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
