package services

import (
	"context"
	"testing"

	"portico/internal/clients/circle"
	"portico/internal/models/db_models"
	"portico/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func activeSubscription(t *testing.T) *db_models.Subscription {
	t.Helper()
	return &db_models.Subscription{
		ID:                    1,
		UserID:                "usr_42",
		CommunityID:           1,
		Status:                db_models.SubStatusActive,
		PaymentSubscriptionID: "sub_7",
		PlanType:              db_models.PlanMonthly,
		StartedAt:             1000,
		User:                  db_models.User{ID: "usr_42", Email: "jo@example.com"},
		Community:             db_models.Community{ID: 1, Slug: "solas-nua", CircleSpaceID: 2222222},
	}
}

func TestApplyUnknownReferenceIsSilentSuccess(t *testing.T) {
	subs := newFakeSubscriptionRepository()
	admin := newFakeCircleAdmin()

	svc := NewReconciliationService(subs, admin)
	err := svc.Apply(context.Background(), "sub_ghost", db_models.SubStatusPastDue, nil)

	require.NoError(t, err)
	assert.Empty(t, subs.statusWrites, "unknown reference must not write")
	assert.Empty(t, admin.removeCalls)
}

func TestApplyCanceledRevokesSpaceAccess(t *testing.T) {
	subs := newFakeSubscriptionRepository(activeSubscription(t))
	admin := newFakeCircleAdmin()

	svc := NewReconciliationService(subs, admin)
	err := svc.Apply(context.Background(), "sub_7", db_models.SubStatusCanceled, nil)

	require.NoError(t, err)
	require.Len(t, subs.statusWrites, 1)
	assert.Equal(t, db_models.SubStatusCanceled, subs.statusWrites[0].status)
	require.Len(t, admin.removeCalls, 1)
	assert.Equal(t, "jo@example.com", admin.removeCalls[0].email)
	assert.Equal(t, int64(2222222), admin.removeCalls[0].spaceID)
}

func TestApplyUnpaidRevokesSpaceAccess(t *testing.T) {
	subs := newFakeSubscriptionRepository(activeSubscription(t))
	admin := newFakeCircleAdmin()

	svc := NewReconciliationService(subs, admin)
	err := svc.Apply(context.Background(), "sub_7", db_models.SubStatusUnpaid, nil)

	require.NoError(t, err)
	require.Len(t, admin.removeCalls, 1)
}

func TestApplyRedeliveryIssuesNoSecondRevoke(t *testing.T) {
	sub := activeSubscription(t)
	subs := newFakeSubscriptionRepository(sub)
	admin := newFakeCircleAdmin()

	svc := NewReconciliationService(subs, admin)
	require.NoError(t, svc.Apply(context.Background(), "sub_7", db_models.SubStatusCanceled, nil))
	require.Len(t, admin.removeCalls, 1)

	// Identical redelivery: no further writes, no further delete calls.
	require.NoError(t, svc.Apply(context.Background(), "sub_7", db_models.SubStatusCanceled, nil))
	assert.Len(t, subs.statusWrites, 1)
	assert.Len(t, admin.removeCalls, 1, "revoke must fire once per transition, not per delivery")
}

func TestApplyPastDueDoesNotRevoke(t *testing.T) {
	subs := newFakeSubscriptionRepository(activeSubscription(t))
	admin := newFakeCircleAdmin()

	svc := NewReconciliationService(subs, admin)
	err := svc.Apply(context.Background(), "sub_7", db_models.SubStatusPastDue, nil)

	require.NoError(t, err)
	require.Len(t, subs.statusWrites, 1)
	assert.Equal(t, db_models.SubStatusPastDue, subs.statusWrites[0].status)
	assert.Empty(t, admin.removeCalls)
}

func TestApplyEndDateChangeAloneStillWrites(t *testing.T) {
	subs := newFakeSubscriptionRepository(activeSubscription(t))
	admin := newFakeCircleAdmin()

	endedAt := int64(1_800_000_000)
	svc := NewReconciliationService(subs, admin)
	err := svc.Apply(context.Background(), "sub_7", db_models.SubStatusActive, &endedAt)

	require.NoError(t, err)
	require.Len(t, subs.statusWrites, 1)
	require.NotNil(t, subs.statusWrites[0].endedAt)
	assert.Equal(t, endedAt, *subs.statusWrites[0].endedAt)
	assert.Empty(t, admin.removeCalls, "active status must not revoke")
}

func TestApplyRevocationFailureRecordsAndAcks(t *testing.T) {
	subs := newFakeSubscriptionRepository(activeSubscription(t))
	admin := newFakeCircleAdmin()
	admin.removeErr = &circle.APIError{Status: 500, Body: "internal"}

	svc := NewReconciliationService(subs, admin)
	err := svc.Apply(context.Background(), "sub_7", db_models.SubStatusCanceled, nil)

	require.NoError(t, err, "platform failure must not bubble into a webhook retry")
	require.Len(t, subs.statusWrites, 2)
	assert.Equal(t, db_models.SubStatusCanceled, subs.statusWrites[0].status)
	assert.Equal(t, db_models.SubStatusRevocationFailed, subs.statusWrites[1].status)
}

func TestApplyMemberAlreadyGoneCountsAsRevoked(t *testing.T) {
	subs := newFakeSubscriptionRepository(activeSubscription(t))
	admin := newFakeCircleAdmin()
	admin.removeErr = circle.ErrMemberNotFound

	svc := NewReconciliationService(subs, admin)
	err := svc.Apply(context.Background(), "sub_7", db_models.SubStatusCanceled, nil)

	require.NoError(t, err)
	require.Len(t, subs.statusWrites, 1, "absent member must not be recorded as a revocation failure")
	assert.Equal(t, db_models.SubStatusCanceled, subs.statusWrites[0].status)
}

func TestApplyLookupFailurePropagates(t *testing.T) {
	subs := newFakeSubscriptionRepository()
	subs.findErr = assert.AnError
	admin := newFakeCircleAdmin()

	svc := NewReconciliationService(subs, admin)
	err := svc.Apply(context.Background(), "sub_7", db_models.SubStatusCanceled, nil)

	require.ErrorIs(t, err, utils.ErrDatabaseError)
}

func TestApplyPersistFailurePropagates(t *testing.T) {
	subs := newFakeSubscriptionRepository(activeSubscription(t))
	subs.setStatusErr = assert.AnError
	admin := newFakeCircleAdmin()

	svc := NewReconciliationService(subs, admin)
	err := svc.Apply(context.Background(), "sub_7", db_models.SubStatusCanceled, nil)

	require.ErrorIs(t, err, utils.ErrDatabaseError)
	assert.Empty(t, admin.removeCalls, "failed write must not proceed to revocation")
}
