package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsDecision(t *testing.T) {
	tests := []struct {
		status string
		want   bool
	}{
		{StatusApproved, true},
		{StatusRejected, true},
		{StatusPending, false},
		{"approved", false}, // statuses are uppercase
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			assert.Equal(t, tt.want, IsDecision(tt.status))
		})
	}
}

func TestBookingBeforeCreateResetsDecision(t *testing.T) {
	approver := uuid.New()
	booking := Booking{
		Status:       StatusApproved,
		ApprovedByID: &approver,
	}

	require.NoError(t, booking.BeforeCreate(nil))

	assert.NotEqual(t, uuid.Nil, booking.ID)
	assert.Equal(t, StatusPending, booking.Status)
	assert.Nil(t, booking.ApprovedByID)
}

func TestStringArrayRoundTrip(t *testing.T) {
	roles := StringArray{RoleUser, RoleApprover}

	value, err := roles.Value()
	require.NoError(t, err)

	var decoded StringArray
	require.NoError(t, decoded.Scan(value.([]byte)))

	assert.Equal(t, roles, decoded)
}

func TestStringArrayScanRejectsNonBytes(t *testing.T) {
	var decoded StringArray
	assert.Error(t, decoded.Scan(42))
}
