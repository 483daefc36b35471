package model

import (
	"errors"
	"fmt"
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestPersistence(t *testing.T) {
	t.Parallel()

	type testCase struct {
		name        string
		err         error
		expectedErr error
		wrapped     bool
	}

	tests := []testCase{
		{
			name:        "storage error is wrapped",
			err:         assert.AnError,
			expectedErr: &PersistenceError{},
			wrapped:     true,
		},
		{
			name:        "insufficient funds passes through",
			err:         &InsufficientFundsError{Msg: "insufficient balance"},
			expectedErr: &InsufficientFundsError{},
		},
		{
			name:        "wrapped invalid state passes through",
			err:         fmt.Errorf("advance: %w", &InvalidStateError{Msg: "no active round"}),
			expectedErr: &InvalidStateError{},
		},
		{
			name:        "already wrapped is not wrapped twice",
			err:         &PersistenceError{Op: "save round", Err: assert.AnError},
			expectedErr: &PersistenceError{},
		},
	}

	for _, tc := range tests {
		tt := tc
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res := Persistence("op", tt.err)

			assert.ErrorIs(t, res, tt.expectedErr)
			if tt.wrapped {
				assert.ErrorIs(t, res, tt.err)
				var pe *PersistenceError
				assert.True(t, errors.As(res, &pe))
				assert.Equal(t, "op", pe.Op)
			} else {
				assert.Equal(t, tt.err, res)
			}
		})
	}

	assert.NoError(t, Persistence("op", nil))
}

func TestOutcome_Finished(t *testing.T) {
	t.Parallel()

	assert.False(t, OutcomeClimbed.Finished())
	assert.False(t, OutcomeTaken.Finished())
	assert.True(t, OutcomeFell.Finished())
	assert.True(t, OutcomeCashedOut.Finished())
	assert.True(t, OutcomeCompleted.Finished())
	assert.True(t, OutcomeAbandoned.Finished())
}
