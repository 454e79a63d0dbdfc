package timeline

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func refs(n int) []ImageRef {
	out := make([]ImageRef, n)
	for i := range out {
		out[i] = ImageRef{Path: string(rune('a'+i)) + ".jpg", Width: 1024, Height: 1024}
	}
	return out
}

func TestScheduleHardCuts(t *testing.T) {
	tl, err := Schedule(refs(3), 2*time.Second, TransitionSpec{Kind: Crossfade, Duration: 0})
	require.NoError(t, err)

	require.Len(t, tl.Segments, 3, "hard cuts do not append the loop-closing segment")
	assert.Equal(t, 6*time.Second, tl.TotalDuration)

	wantStarts := []time.Duration{0, 2 * time.Second, 4 * time.Second}
	for i, seg := range tl.Segments {
		assert.Equal(t, wantStarts[i], seg.Start, "segment %d start", i)
		assert.Equal(t, seg.Start+2*time.Second, seg.End, "segment %d end", i)
		assert.Zero(t, seg.FadeIn)
		assert.Zero(t, seg.FadeOut)
		assert.Zero(t, tl.Overlap(i), "hard cuts never overlap")
	}
}

func TestScheduleCrossfade(t *testing.T) {
	imgs := refs(3)
	tl, err := Schedule(imgs, 2*time.Second, TransitionSpec{Kind: Crossfade, Duration: 500 * time.Millisecond})
	require.NoError(t, err)

	require.Len(t, tl.Segments, 4, "working sequence appends the first image")
	assert.Equal(t, 6500*time.Millisecond, tl.TotalDuration)

	wantStarts := []time.Duration{0, 1500 * time.Millisecond, 3 * time.Second, 4500 * time.Millisecond}
	for i, seg := range tl.Segments {
		assert.Equal(t, wantStarts[i], seg.Start, "segment %d start", i)
		assert.Equal(t, seg.Start+2*time.Second, seg.End, "segment %d end", i)
	}

	// Loop closure: the schedule ends on the image it opened with.
	assert.Equal(t, imgs[0], tl.Segments[3].Image)

	// Exactly n overlap windows of length d.
	for i := 1; i < len(tl.Segments); i++ {
		assert.Equal(t, 500*time.Millisecond, tl.Overlap(i), "overlap %d", i)
		assert.Equal(t, 500*time.Millisecond, tl.Segments[i].FadeIn)
	}
	assert.Zero(t, tl.Segments[0].FadeIn)
}

func TestScheduleFadeToBlack(t *testing.T) {
	tl, err := Schedule(refs(3), 2*time.Second, TransitionSpec{Kind: FadeToBlack, Duration: time.Second})
	require.NoError(t, err)
	require.Len(t, tl.Segments, 4)

	f := 500 * time.Millisecond // d/2
	last := len(tl.Segments) - 1
	for i, seg := range tl.Segments {
		if i > 0 {
			assert.Equal(t, f, seg.FadeIn, "segment %d fade-in", i)
			assert.Equal(t, f, tl.Overlap(i), "segment %d shares a dip of d/2", i)
		} else {
			assert.Zero(t, seg.FadeIn, "opening segment cuts in")
		}
		if i < last {
			assert.Equal(t, f, seg.FadeOut, "segment %d fade-out", i)
		} else {
			assert.Zero(t, seg.FadeOut, "closing segment holds to the end")
		}
		assert.LessOrEqual(t, seg.FadeIn+seg.FadeOut, seg.End-seg.Start)
	}

	// start_i = i*(D - d/2), total = start_last + D
	assert.Equal(t, 3*(2*time.Second-f)+2*time.Second, tl.TotalDuration)
}

func TestScheduleFadeToBlackClampsToHalfDuration(t *testing.T) {
	// d=10s on 2s images: each edge fade clamps to D/2.
	tl, err := Schedule(refs(2), 2*time.Second, TransitionSpec{Kind: FadeToBlack, Duration: 10 * time.Second})
	require.NoError(t, err)

	for i, seg := range tl.Segments {
		assert.LessOrEqual(t, seg.FadeIn, time.Second, "segment %d", i)
		assert.LessOrEqual(t, seg.FadeOut, time.Second, "segment %d", i)
		assert.LessOrEqual(t, seg.FadeIn+seg.FadeOut, seg.End-seg.Start, "segment %d", i)
	}
}

func TestScheduleErrors(t *testing.T) {
	tests := []struct {
		name    string
		images  []ImageRef
		dur     time.Duration
		tr      TransitionSpec
		wantErr error
	}{
		{"empty input", nil, 2 * time.Second, TransitionSpec{Kind: Crossfade, Duration: time.Second}, ErrNoImages},
		{"negative transition", refs(2), 2 * time.Second, TransitionSpec{Kind: Crossfade, Duration: -time.Second}, ErrNegativeTransition},
		{"zero image duration", refs(2), 0, TransitionSpec{Kind: Crossfade, Duration: time.Second}, ErrInvalidImageDuration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Schedule(tt.images, tt.dur, tt.tr)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestScheduleIsDeterministic(t *testing.T) {
	imgs := refs(5)
	a, err := Schedule(imgs, 3*time.Second, TransitionSpec{Kind: Crossfade, Duration: time.Second})
	require.NoError(t, err)
	b, err := Schedule(imgs, 3*time.Second, TransitionSpec{Kind: Crossfade, Duration: time.Second})
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestScheduleStartsNonDecreasing(t *testing.T) {
	for _, kind := range []TransitionKind{Crossfade, FadeToBlack} {
		tl, err := Schedule(refs(6), 4*time.Second, TransitionSpec{Kind: kind, Duration: 1500 * time.Millisecond})
		require.NoError(t, err)
		for i := 1; i < len(tl.Segments); i++ {
			assert.GreaterOrEqual(t, tl.Segments[i].Start, tl.Segments[i-1].Start, "%s segment %d", kind, i)
		}
		assert.Equal(t, tl.Segments[len(tl.Segments)-1].End, tl.TotalDuration, "%s total", kind)
	}
}

func TestTimelineWriteRead(t *testing.T) {
	tl, err := Schedule(refs(3), 2*time.Second, TransitionSpec{Kind: Crossfade, Duration: 500 * time.Millisecond})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "timeline.yaml")
	require.NoError(t, WriteTimeline(tl, path))

	got, err := ReadTimeline(path)
	require.NoError(t, err)

	assert.Equal(t, tl.TotalDuration, got.TotalDuration)
	require.Len(t, got.Segments, len(tl.Segments))
	for i := range tl.Segments {
		assert.Equal(t, tl.Segments[i], got.Segments[i], "segment %d", i)
	}
}
