package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "tenure/pkg/domain"
	dErrors "tenure/pkg/domain-errors"
)

func TestAuthorize(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	contract := newTestContract(t, now)
	owner := id.Identity("bigcorp")

	cases := []struct {
		name    string
		op      Operation
		caller  id.Identity
		allowed bool
	}{
		{"employee executes", OpExecute, "alice", true},
		{"owner cannot execute", OpExecute, "bigcorp", false},
		{"arbitrator cannot execute", OpExecute, "judge", false},
		{"stranger deposits", OpDeposit, "anyone-at-all", true},
		{"employee releases", OpRelease, "alice", true},
		{"owner cannot release", OpRelease, "bigcorp", false},
		{"employee disputes", OpDispute, "alice", true},
		{"owner disputes", OpDispute, "bigcorp", true},
		{"stranger cannot dispute", OpDispute, "mallory", false},
		{"employee terminates", OpTerminate, "alice", true},
		{"owner terminates", OpTerminate, "bigcorp", true},
		{"arbitrator cannot terminate", OpTerminate, "judge", false},
		{"employee completes", OpComplete, "alice", true},
		{"owner completes", OpComplete, "bigcorp", true},
		{"arbitrator resolves", OpResolveDispute, "judge", true},
		{"employee cannot resolve", OpResolveDispute, "alice", false},
		{"owner cannot resolve", OpResolveDispute, "bigcorp", false},
		{"employee reviews", OpSubmitReview, "alice", true},
		{"owner reviews", OpSubmitReview, "bigcorp", true},
		{"stranger cannot review", OpSubmitReview, "mallory", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Authorize(tc.op, contract, owner, tc.caller)
			if tc.allowed {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
			}
		})
	}

	t.Run("empty caller is always rejected", func(t *testing.T) {
		err := Authorize(OpDeposit, contract, owner, "")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	t.Run("unknown operation is rejected", func(t *testing.T) {
		err := Authorize(Operation("mystery"), contract, owner, "alice")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})
}
