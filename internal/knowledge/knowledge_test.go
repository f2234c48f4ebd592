package knowledge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendAndRead(t *testing.T) {
	projectPath := t.TempDir()

	b, err := Open(projectPath)
	require.NoError(t, err)
	defer b.Close()

	require.NoError(t, b.Append(Entry{
		FeatureID:   "user-auth",
		Pattern:     PatternFailure,
		Description: "acceptance tests did not fail initially",
		AgentRole:   "tdd",
		Gate:        "acceptance-test-red",
		Tags:        []string{"tdd", "red"},
	}))
	require.NoError(t, b.Append(Entry{
		FeatureID:   "user-auth",
		Pattern:     PatternSuccess,
		Description: "review passed at iteration 2",
		Gate:        "review",
	}))

	entries, err := Read(projectPath)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, PatternFailure, entries[0].Pattern)
	assert.Equal(t, "acceptance-test-red", entries[0].Gate)
	assert.False(t, entries[0].Timestamp.IsZero())
	assert.Equal(t, PatternSuccess, entries[1].Pattern)
}

func TestEntriesSurviveReopen(t *testing.T) {
	projectPath := t.TempDir()

	b, err := Open(projectPath)
	require.NoError(t, err)
	require.NoError(t, b.Append(Entry{Pattern: PatternGotcha, Description: "first run"}))
	require.NoError(t, b.Close())

	b2, err := Open(projectPath)
	require.NoError(t, err)
	require.NoError(t, b2.Append(Entry{Pattern: PatternGotcha, Description: "second run"}))
	require.NoError(t, b2.Close())

	entries, err := Read(projectPath)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "first run", entries[0].Description)
	assert.Equal(t, "second run", entries[1].Description)
}

func TestReadMissingBaseIsEmpty(t *testing.T) {
	entries, err := Read(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, entries)
}
