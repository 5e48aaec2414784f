package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvent_Remaining(t *testing.T) {
	e := Event{Capacity: 10, CurrentRegistrations: 7}
	assert.Equal(t, 3, e.Remaining())
	assert.False(t, e.IsFull())

	e.CurrentRegistrations = 10
	assert.Equal(t, 0, e.Remaining())
	assert.True(t, e.IsFull())
}

func TestRegistrationID(t *testing.T) {
	assert.Equal(t, "alice#evt-1", RegistrationID("evt-1", "alice"))
}

func TestRegistration_PositionSerialization(t *testing.T) {
	pos := 3
	waitlisted := Registration{Status: StatusWaitlisted, Position: &pos}
	b, err := json.Marshal(waitlisted)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"position":3`)

	registered := Registration{Status: StatusRegistered}
	b, err = json.Marshal(registered)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"position":null`)
}
