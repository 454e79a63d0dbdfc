package sequence

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artemk/slidereel/internal/timeline"
)

func refs(n int) []timeline.ImageRef {
	out := make([]timeline.ImageRef, n)
	for i := range out {
		out[i] = timeline.ImageRef{Path: fmt.Sprintf("img_%02d.jpg", i)}
	}
	return out
}

func TestOrderKeepsInputOrder(t *testing.T) {
	imgs := refs(5)
	got, err := Order(imgs, false, UnseededShuffle)
	require.NoError(t, err)
	assert.Equal(t, imgs, got)
}

func TestOrderDoesNotMutateInput(t *testing.T) {
	imgs := refs(20)
	snapshot := refs(20)

	_, err := Order(imgs, true, 7)
	require.NoError(t, err)
	assert.Equal(t, snapshot, imgs)
}

func TestOrderSeededShuffleIsReproducible(t *testing.T) {
	imgs := refs(20)

	a, err := Order(imgs, true, 42)
	require.NoError(t, err)
	b, err := Order(imgs, true, 42)
	require.NoError(t, err)
	assert.Equal(t, a, b, "same seed, same permutation")

	c, err := Order(imgs, true, 43)
	require.NoError(t, err)
	assert.NotEqual(t, a, c, "different seed should permute differently for 20 elements")
}

func TestOrderShuffleIsPermutation(t *testing.T) {
	imgs := refs(12)
	got, err := Order(imgs, true, 99)
	require.NoError(t, err)

	require.Len(t, got, len(imgs))
	assert.ElementsMatch(t, imgs, got)
}

func TestOrderEmptyInput(t *testing.T) {
	_, err := Order(nil, true, 1)
	assert.ErrorIs(t, err, ErrNoImages)
}
