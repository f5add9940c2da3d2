package migrations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func versions(steps []Migration) []uint {
	out := make([]uint, 0, len(steps))
	for _, s := range steps {
		out = append(out, s.Version)
	}
	return out
}

func TestPendingSkipsApplied(t *testing.T) {
	todo, err := pending([]uint{1}, All)
	require.NoError(t, err)
	assert.Equal(t, []uint{2, 3}, versions(todo))

	todo, err = pending([]uint{1, 2, 3}, All)
	require.NoError(t, err)
	assert.Empty(t, todo)

	todo, err = pending(nil, All)
	require.NoError(t, err)
	assert.Len(t, todo, len(All))
}

func TestPendingRejectsUnorderedSteps(t *testing.T) {
	steps := []Migration{{Version: 2, Name: "b"}, {Version: 1, Name: "a"}}
	_, err := pending(nil, steps)
	assert.ErrorContains(t, err, "out of order")

	_, err = pending(nil, []Migration{{Version: 0, Name: "zero"}})
	assert.Error(t, err)
}

func TestAllVersionsAreUnique(t *testing.T) {
	seen := map[uint]string{}
	for _, step := range All {
		_, dup := seen[step.Version]
		assert.False(t, dup, "duplicate version %d", step.Version)
		seen[step.Version] = step.Name
		assert.NotNil(t, step.Up, step.Name)
	}
}
