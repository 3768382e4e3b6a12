package sprint

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchTagExact(t *testing.T) {
	tag, ok := MatchTag([]string{"cel1"}, []string{"cel1", "cel2"})
	assert.True(t, ok)
	assert.Equal(t, "cel1", tag)
}

func TestMatchTagCaseInsensitive(t *testing.T) {
	tag, ok := MatchTag([]string{"CEL1"}, []string{"cel1"})
	assert.True(t, ok)
	assert.Equal(t, "cel1", tag)
}

func TestMatchTagSeparatorVariants(t *testing.T) {
	for _, label := range []string{"cel-1", "cel_1", "cel 1", "CEL-1"} {
		tag, ok := MatchTag([]string{label}, []string{"cel1"})
		assert.True(t, ok, "label %q should match", label)
		assert.Equal(t, "cel1", tag)
	}
}

func TestMatchTagFirstLabelWins(t *testing.T) {
	tag, ok := MatchTag([]string{"frontend", "cel2", "cel1"}, []string{"cel1", "cel2"})
	assert.True(t, ok)
	assert.Equal(t, "cel2", tag)
}

func TestMatchTagNoMatch(t *testing.T) {
	_, ok := MatchTag([]string{"other"}, []string{"cel1"})
	assert.False(t, ok)

	_, ok = MatchTag(nil, []string{"cel1"})
	assert.False(t, ok)

	_, ok = MatchTag([]string{"cel1"}, nil)
	assert.False(t, ok)
}

func TestMatchTagDoesNotCrossSections(t *testing.T) {
	// A task labeled for a side goal must not match the goals set.
	_, ok := MatchTag([]string{"extra1"}, []string{"cel1", "cel2"})
	assert.False(t, ok)
}
