package testutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageGroups(t *testing.T) {
	groups := NewRNG(4711).PageGroups(3, 4)

	assert.Len(t, groups, 3)
	for g, pages := range groups {
		assert.Len(t, pages, 4)
		for _, p := range pages {
			assert.Contains(t, p, `class="header"`)
			assert.Contains(t, p, `class="g`+string(rune('0'+g))+`-item"`)
		}
	}
	assert.False(t, strings.Contains(groups[0][0], "g1-item"))
}

func TestPageGroups_Deterministic(t *testing.T) {
	a := NewRNG(1).PageGroups(2, 3)
	b := NewRNG(1).PageGroups(2, 3)
	assert.Equal(t, a, b)
}

func TestBlobs(t *testing.T) {
	points, labels := NewRNG(4711).Blobs(8, 4, 2, 0.01)

	assert.Len(t, points, 8)
	assert.Len(t, points[0], 4)
	assert.Equal(t, []int{0, 1, 0, 1, 0, 1, 0, 1}, labels)
	assert.InDelta(t, points[0][0], points[2][0], 0.1)

	again, _ := NewRNG(4711).Blobs(8, 4, 2, 0.01)
	assert.Equal(t, points, again)
}

func TestIntRange(t *testing.T) {
	rng := NewRNG(1)
	assert.Equal(t, int64(1), rng.Seed())
	for range 100 {
		n := rng.IntRange(3, 5)
		assert.GreaterOrEqual(t, n, 3)
		assert.LessOrEqual(t, n, 5)
	}
}
