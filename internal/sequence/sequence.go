// Package sequence orders the input images before scheduling.
package sequence

import (
	"errors"
	"math/rand"
	"time"

	"github.com/artemk/slidereel/internal/timeline"
)

var ErrNoImages = errors.New("sequence: no images provided")

// UnseededShuffle selects a time-based randomness source; any other seed
// makes the permutation reproducible.
const UnseededShuffle int64 = -1

// Order returns the images in playback order. With shuffle off the input
// order is returned unchanged. The input slice is never mutated.
func Order(images []timeline.ImageRef, shuffle bool, seed int64) ([]timeline.ImageRef, error) {
	if len(images) == 0 {
		return nil, ErrNoImages
	}

	out := make([]timeline.ImageRef, len(images))
	copy(out, images)

	if !shuffle {
		return out, nil
	}

	if seed == UnseededShuffle {
		seed = time.Now().UnixNano()
	}
	r := rand.New(rand.NewSource(seed))
	r.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out, nil
}
