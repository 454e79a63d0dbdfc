package timeline

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// The YAML document uses float seconds rather than nanosecond counts so
// a schedule stays readable and hand-editable.
type timelineDoc struct {
	Version       string       `yaml:"version"`
	TotalDuration float64      `yaml:"total_duration"`
	Segments      []segmentDoc `yaml:"segments"`
}

type segmentDoc struct {
	Input   string  `yaml:"input"`
	Width   int     `yaml:"width,omitempty"`
	Height  int     `yaml:"height,omitempty"`
	Start   float64 `yaml:"start"`
	End     float64 `yaml:"end"`
	FadeIn  float64 `yaml:"fade_in,omitempty"`
	FadeOut float64 `yaml:"fade_out,omitempty"`
}

// WriteTimeline writes a schedule to a YAML file.
func WriteTimeline(t Timeline, path string) error {
	doc := timelineDoc{
		Version:       "1.0",
		TotalDuration: t.TotalDuration.Seconds(),
		Segments:      make([]segmentDoc, len(t.Segments)),
	}
	for i, s := range t.Segments {
		doc.Segments[i] = segmentDoc{
			Input:   s.Image.Path,
			Width:   s.Image.Width,
			Height:  s.Image.Height,
			Start:   s.Start.Seconds(),
			End:     s.End.Seconds(),
			FadeIn:  s.FadeIn.Seconds(),
			FadeOut: s.FadeOut.Seconds(),
		}
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadTimeline reads a schedule back from a YAML file.
func ReadTimeline(path string) (Timeline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Timeline{}, err
	}

	var doc timelineDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Timeline{}, err
	}

	t := Timeline{
		TotalDuration: secs(doc.TotalDuration),
		Segments:      make([]Segment, len(doc.Segments)),
	}
	for i, s := range doc.Segments {
		t.Segments[i] = Segment{
			Image:   ImageRef{Path: s.Input, Width: s.Width, Height: s.Height},
			Start:   secs(s.Start),
			End:     secs(s.End),
			FadeIn:  secs(s.FadeIn),
			FadeOut: secs(s.FadeOut),
		}
	}
	return t, nil
}

func secs(v float64) time.Duration {
	return time.Duration(v * float64(time.Second))
}
