package unity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowPath(t *testing.T) {
	tree := map[string]any{
		"health": map[string]any{
			"descriptionIds": []any{"ALRT_OK", "ALRT_DEGRADED"},
		},
		"sp": map[string]any{
			"spa": map[string]any{"state": "ok"},
			"spb": map[string]any{"state": "down"},
		},
	}

	leaves, err := followPath(tree, []string{"health", "descriptionIds", "*"})
	require.NoError(t, err)
	assert.Equal(t, []any{"ALRT_OK", "ALRT_DEGRADED"}, leaves)

	// Object expansion walks values in key order.
	leaves, err = followPath(tree, []string{"sp", "*", "state"})
	require.NoError(t, err)
	assert.Equal(t, []any{"ok", "down"}, leaves)

	leaves, err = followPath(tree, []string{"missing", "deeper"})
	require.NoError(t, err)
	assert.Equal(t, []any{nil}, leaves)

	_, err = followPath(map[string]any{"scalar": 42.0}, []string{"scalar", "*"})
	assert.ErrorContains(t, err, "cannot expand")
}

func TestFollowPathListRoot(t *testing.T) {
	tree := []any{
		map[string]any{"id": "a"},
		map[string]any{"id": "b"},
	}
	leaves, err := followPath(tree, []string{"id"})
	require.NoError(t, err)
	assert.Equal(t, []any{"a", "b"}, leaves)
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			"All components",
			"26:30:15.500",
			"1 years, 1 days, 2 hours, 30 minutes, 15.500000 seconds",
		},
		{
			"Zero components omitted",
			"0:05:30.000",
			"5 minutes, 30.000000 seconds",
		},
		{
			"Hours only",
			"3:00:00.000",
			"3 hours",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatDuration(tt.input))
		})
	}
}

func TestFillRow(t *testing.T) {
	tree := map[string]any{
		"name":          "d0",
		"elapsedTime":   "26:30:15.500",
		"scalar":        1.0,
		"health":        map[string]any{"descriptionIds": []any{"A", "B"}},
		"rawShortValue": "1:02:03.4",
	}

	row := fillRow([]string{"name", "elapsedTime", "health.descriptionIds.*", "scalar.*", "rawShortValue"}, tree)

	name, ok := row["name"].Value()
	require.True(t, ok)
	assert.Equal(t, "d0", name)

	elapsed, ok := row["elapsedTime"].Value()
	require.True(t, ok)
	assert.Equal(t, "1 years, 1 days, 2 hours, 30 minutes, 15.500000 seconds", elapsed)

	joined, ok := row["health.descriptionIds.*"].Value()
	require.True(t, ok)
	assert.Equal(t, "A\nB", joined)

	// A walk failure scopes to its own field only.
	_, failed := row["scalar.*"].Cause()
	assert.True(t, failed)

	// Not duration-shaped (milliseconds too short), passed through.
	raw, ok := row["rawShortValue"].Value()
	require.True(t, ok)
	assert.Equal(t, "1:02:03.4", raw)
}
