package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "tenure/pkg/domain-errors"
)

func TestEscrowDeposit(t *testing.T) {
	t.Run("accumulates balance and deposited total", func(t *testing.T) {
		var e Escrow
		require.NoError(t, e.Deposit(100))
		require.NoError(t, e.Deposit(250))

		assert.Equal(t, int64(350), e.Balance)
		assert.Equal(t, int64(350), e.Deposited)
		assert.Equal(t, int64(0), e.Released)
		assert.True(t, e.Conserved())
	})

	t.Run("rejects zero amount", func(t *testing.T) {
		var e Escrow
		err := e.Deposit(0)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})

	t.Run("rejects negative amount", func(t *testing.T) {
		var e Escrow
		err := e.Deposit(-5)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
		assert.Equal(t, int64(0), e.Balance)
	})
}

func TestEscrowDrain(t *testing.T) {
	t.Run("zeroes balance and records release", func(t *testing.T) {
		var e Escrow
		require.NoError(t, e.Deposit(400))

		amount := e.Drain()

		assert.Equal(t, int64(400), amount)
		assert.Equal(t, int64(0), e.Balance)
		assert.Equal(t, int64(400), e.Released)
		assert.True(t, e.Conserved())
	})

	t.Run("draining an empty escrow releases nothing", func(t *testing.T) {
		var e Escrow
		assert.Equal(t, int64(0), e.Drain())
		assert.True(t, e.Conserved())
	})

	t.Run("second drain pays nothing", func(t *testing.T) {
		var e Escrow
		require.NoError(t, e.Deposit(100))
		e.Drain()
		assert.Equal(t, int64(0), e.Drain())
	})
}

func TestEscrowRestore(t *testing.T) {
	t.Run("undoes a drain after a failed transfer", func(t *testing.T) {
		var e Escrow
		require.NoError(t, e.Deposit(300))
		amount := e.Drain()

		e.Restore(amount)

		assert.Equal(t, int64(300), e.Balance)
		assert.Equal(t, int64(300), e.Deposited)
		assert.Equal(t, int64(0), e.Released)
		assert.True(t, e.Conserved())
	})
}

func TestEscrowConserved(t *testing.T) {
	t.Run("detects a broken ledger equation", func(t *testing.T) {
		e := Escrow{Balance: 10, Deposited: 5, Released: 0}
		assert.False(t, e.Conserved())
	})

	t.Run("detects a negative balance", func(t *testing.T) {
		e := Escrow{Balance: -1, Deposited: 4, Released: 5}
		assert.False(t, e.Conserved())
	})
}
