package attestation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_CanTransition(t *testing.T) {
	all := []Status{StatusIdle, StatusPreparing, StatusSigning, StatusConfirming, StatusConfirmed, StatusFailed}

	allowed := map[Status][]Status{
		StatusIdle:       {StatusPreparing},
		StatusPreparing:  {StatusSigning, StatusFailed},
		StatusSigning:    {StatusConfirming, StatusFailed},
		StatusConfirming: {StatusConfirmed, StatusFailed},
		StatusConfirmed:  {},
		StatusFailed:     {},
	}

	for _, from := range all {
		for _, to := range all {
			expected := false
			for _, ok := range allowed[from] {
				if ok == to {
					expected = true
				}
			}
			assert.Equal(t, expected, from.CanTransition(to), "%s -> %s", from, to)
		}
	}
}

func TestStatus_Terminal(t *testing.T) {
	assert.True(t, StatusConfirmed.Terminal())
	assert.True(t, StatusFailed.Terminal())
	assert.False(t, StatusIdle.Terminal())
	assert.False(t, StatusConfirming.Terminal())
}

func TestTracker(t *testing.T) {
	log := &transitionLog{}
	tr := NewTracker("attempt-1", log.observe)
	assert.Equal(t, StatusIdle, tr.Status())

	// preparing cannot be skipped
	assert.ErrorIs(t, tr.Transition(StatusSigning), ErrInvalidTransition)
	assert.ErrorIs(t, tr.Transition(StatusFailed), ErrInvalidTransition)

	require.NoError(t, tr.Transition(StatusPreparing))
	require.NoError(t, tr.Transition(StatusSigning))
	require.NoError(t, tr.Transition(StatusFailed))
	assert.Equal(t, StatusFailed, tr.Status())

	// terminal
	assert.ErrorIs(t, tr.Transition(StatusConfirming), ErrInvalidTransition)
	assert.ErrorIs(t, tr.Transition(StatusFailed), ErrInvalidTransition)

	assert.Equal(t, []recordedTransition{
		{"attempt-1", StatusIdle, StatusPreparing},
		{"attempt-1", StatusPreparing, StatusSigning},
		{"attempt-1", StatusSigning, StatusFailed},
	}, log.transitions)
}

func TestTracker_NilObserver(t *testing.T) {
	tr := NewTracker("attempt-2", nil)
	for _, s := range []Status{StatusPreparing, StatusSigning, StatusConfirming, StatusConfirmed} {
		require.NoError(t, tr.Transition(s))
	}
	assert.True(t, tr.Status().Terminal())
}
