package services

import (
	"context"
	"testing"

	"portico/internal/clients/circle"
	"portico/internal/models/request_models"
	"portico/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func userCreatedData() request_models.IdentityUserData {
	return request_models.IdentityUserData{
		ID: "usr_42",
		EmailAddresses: []request_models.IdentityEmail{
			{EmailAddress: "jo@example.com"},
			{EmailAddress: "jo.alt@example.com"},
		},
		FirstName: "Jo",
		LastName:  "Byrne",
	}
}

func TestHandleUserCreatedMirrorsAndInvites(t *testing.T) {
	users := newFakeUserRepository()
	admin := newFakeCircleAdmin()

	svc := NewIdentityService(users, admin)
	err := svc.HandleUserCreated(context.Background(), userCreatedData())

	require.NoError(t, err)

	user := users.users["usr_42"]
	require.NotNil(t, user)
	assert.Equal(t, "jo@example.com", user.Email, "first listed address wins")
	assert.Equal(t, "Jo Byrne", user.Name)
	require.NotNil(t, user.CircleMemberID)

	assert.Equal(t, 1, admin.createCalls)
	assert.False(t, admin.lastCreate.SkipInvitation, "signup-triggered creation keeps the invitation mail")
}

func TestHandleUserCreatedExistingMemberSkipsCreation(t *testing.T) {
	users := newFakeUserRepository()
	admin := newFakeCircleAdmin()
	admin.membersByEmail["jo@example.com"] = &circle.Member{ID: 9100, Email: "jo@example.com"}

	svc := NewIdentityService(users, admin)
	err := svc.HandleUserCreated(context.Background(), userCreatedData())

	require.NoError(t, err)
	assert.Zero(t, admin.createCalls)

	user := users.users["usr_42"]
	require.NotNil(t, user)
	require.NotNil(t, user.CircleMemberID)
	assert.Equal(t, int64(9100), *user.CircleMemberID)
}

func TestHandleUserCreatedRedeliveryIsIdempotent(t *testing.T) {
	users := newFakeUserRepository()
	admin := newFakeCircleAdmin()

	svc := NewIdentityService(users, admin)
	require.NoError(t, svc.HandleUserCreated(context.Background(), userCreatedData()))
	require.NoError(t, svc.HandleUserCreated(context.Background(), userCreatedData()))

	assert.Len(t, users.users, 1)
	assert.Equal(t, 1, admin.createCalls, "redelivery must not create a second member")
}

func TestHandleUserCreatedMissingFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*request_models.IdentityUserData)
	}{
		{
			name:   "missing id",
			mutate: func(d *request_models.IdentityUserData) { d.ID = "" },
		},
		{
			name:   "no email addresses",
			mutate: func(d *request_models.IdentityUserData) { d.EmailAddresses = nil },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := newFakeUserRepository()
			admin := newFakeCircleAdmin()
			data := userCreatedData()
			tt.mutate(&data)

			svc := NewIdentityService(users, admin)
			err := svc.HandleUserCreated(context.Background(), data)

			require.ErrorIs(t, err, utils.ErrInvalidInput)
			assert.Empty(t, users.users)
		})
	}
}

func TestHandleUserCreatedMemberCreateFailureSurfaces(t *testing.T) {
	users := newFakeUserRepository()
	admin := newFakeCircleAdmin()
	admin.createErr = &circle.APIError{Status: 503, Body: "maintenance"}

	svc := NewIdentityService(users, admin)
	err := svc.HandleUserCreated(context.Background(), userCreatedData())

	require.Error(t, err, "platform failure must surface so the delivery is retried")
	assert.NotNil(t, users.users["usr_42"], "local mirror is written before the platform call")
}
