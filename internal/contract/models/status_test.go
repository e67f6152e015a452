package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusTransitions(t *testing.T) {
	cases := []struct {
		from    Status
		to      Status
		allowed bool
	}{
		{StatusCreated, StatusActive, true},
		{StatusCreated, StatusDisputed, false},
		{StatusCreated, StatusTerminated, false},
		{StatusCreated, StatusCompleted, false},
		{StatusActive, StatusDisputed, true},
		{StatusActive, StatusTerminated, true},
		{StatusActive, StatusCompleted, true},
		{StatusActive, StatusCreated, false},
		{StatusDisputed, StatusTerminated, true},
		{StatusDisputed, StatusActive, false},
		{StatusDisputed, StatusCompleted, false},
		{StatusTerminated, StatusActive, false},
		{StatusTerminated, StatusCompleted, false},
		{StatusCompleted, StatusTerminated, false},
	}
	for _, tc := range cases {
		t.Run(string(tc.from)+"_to_"+string(tc.to), func(t *testing.T) {
			assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to))
		})
	}
}

func TestStatusTerminal(t *testing.T) {
	assert.False(t, StatusCreated.Terminal())
	assert.False(t, StatusActive.Terminal())
	assert.False(t, StatusDisputed.Terminal())
	assert.True(t, StatusTerminated.Terminal())
	assert.True(t, StatusCompleted.Terminal())
}

func TestStatusValid(t *testing.T) {
	assert.True(t, StatusActive.Valid())
	assert.False(t, Status("paused").Valid())
	assert.False(t, Status("").Valid())
}
