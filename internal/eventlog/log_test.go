package eventlog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendAndRead(t *testing.T) {
	projectPath := t.TempDir()

	l, err := Open(projectPath)
	require.NoError(t, err)
	defer l.Close()

	require.NoError(t, l.Append(NewEvent(ActionGateCheck).
		WithRole("tdd").
		WithIO("acceptance-test-red", "passed")))
	require.NoError(t, l.Append(NewEvent(ActionLLMRequest).
		WithRole("reviewer-qa").
		WithTurn(2).
		WithDuration(150*time.Millisecond)))

	events, err := Read(projectPath)
	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, ActionGateCheck, events[0].Action)
	assert.Equal(t, "tdd", events[0].AgentRole)
	assert.Equal(t, "passed", events[0].Output)

	assert.Equal(t, ActionLLMRequest, events[1].Action)
	assert.Equal(t, 2, events[1].AgentTurn)
	assert.Equal(t, int64(150), events[1].DurationMs)
}

func TestAppendFillsIDAndTimestamp(t *testing.T) {
	projectPath := t.TempDir()

	l, err := Open(projectPath)
	require.NoError(t, err)
	defer l.Close()

	require.NoError(t, l.Append(Event{Action: ActionReflection, Output: "boom"}))

	events, err := Read(projectPath)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.NotEmpty(t, events[0].ID)
	assert.False(t, events[0].Timestamp.IsZero())
	assert.Equal(t, "boom", events[0].Output)
}

func TestAppendOnlyOrder(t *testing.T) {
	projectPath := t.TempDir()

	l, err := Open(projectPath)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		require.NoError(t, l.Append(NewEvent(ActionHandoff).WithTurn(i)))
	}
	require.NoError(t, l.Close())

	// Re-open appends, never truncates
	l2, err := Open(projectPath)
	require.NoError(t, err)
	require.NoError(t, l2.Append(NewEvent(ActionHandoff).WithTurn(5)))
	require.NoError(t, l2.Close())

	events, err := Read(projectPath)
	require.NoError(t, err)
	require.Len(t, events, 6)
	for i, event := range events {
		assert.Equal(t, i, event.AgentTurn)
	}
}

func TestReadMissingLogIsEmpty(t *testing.T) {
	events, err := Read(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, events)
}
