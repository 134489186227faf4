package services

import (
	"context"
	"errors"
	"log/slog"

	"portico/internal/clients/circle"
	"portico/internal/models/db_models"
	"portico/internal/repositories"
	"portico/pkg/utils"
)

type ReconciliationServiceInterface interface {
	// Apply reconciles the local subscription identified by the gateway
	// reference to the given status. Unknown references succeed silently;
	// only local persistence failures return an error, which is the webhook
	// handler's signal to answer 5xx and let the gateway redeliver.
	Apply(ctx context.Context, subscriptionRef string, status db_models.SubscriptionStatus, endedAt *int64) error
}

func NewReconciliationService(
	subscriptionRepo repositories.SubscriptionRepository,
	circleAdmin circle.AdminClient,
) ReconciliationServiceInterface {
	return &ReconciliationService{
		subscriptionRepo: subscriptionRepo,
		circleAdmin:      circleAdmin,
	}
}

type ReconciliationService struct {
	subscriptionRepo repositories.SubscriptionRepository
	circleAdmin      circle.AdminClient
}

func (r *ReconciliationService) Apply(ctx context.Context, subscriptionRef string, status db_models.SubscriptionStatus, endedAt *int64) error {
	sub, err := r.subscriptionRepo.FindByPaymentSubscriptionID(ctx, subscriptionRef)
	if err != nil {
		slog.Error("error loading subscription", "ref", subscriptionRef, "error", err)
		return utils.ErrDatabaseError
	}
	if sub == nil {
		// Events can reference subscriptions this system never provisioned,
		// or arrive for test mode; both are acknowledged without writes.
		slog.Info("ignoring event for unknown subscription", "ref", subscriptionRef)
		return nil
	}

	if sub.Status == status && equalEndedAt(sub.EndedAt, endedAt) {
		slog.Info("subscription already reconciled", "ref", subscriptionRef, "status", status)
		return nil
	}

	if sub.Status != status && !sub.Status.CanTransitionTo(status) {
		// Logged only; the gateway's status is applied regardless.
		slog.Warn("unexpected subscription transition",
			"ref", subscriptionRef, "from", sub.Status, "to", status)
	}

	if err := r.subscriptionRepo.SetStatusAndEndedAt(ctx, sub.ID, status, endedAt); err != nil {
		slog.Error("error persisting subscription status", "ref", subscriptionRef, "status", status, "error", err)
		return utils.ErrDatabaseError
	}

	if status.Ended() {
		r.revokeSpaceAccess(ctx, sub, endedAt)
	}

	return nil
}

// revokeSpaceAccess removes the member from the community space. A failure is
// recorded on the subscription and swallowed; the webhook is still
// acknowledged so the gateway does not retry-storm this endpoint over a
// platform outage.
func (r *ReconciliationService) revokeSpaceAccess(ctx context.Context, sub *db_models.Subscription, endedAt *int64) {
	err := r.circleAdmin.RemoveSpaceMember(ctx, sub.User.Email, sub.Community.CircleSpaceID)
	if err == nil || errors.Is(err, circle.ErrMemberNotFound) {
		return
	}

	slog.Error("space revocation failed",
		"email", sub.User.Email,
		"space_id", sub.Community.CircleSpaceID,
		"error", err,
	)
	if markErr := r.subscriptionRepo.SetStatusAndEndedAt(ctx, sub.ID, db_models.SubStatusRevocationFailed, endedAt); markErr != nil {
		slog.Error("error recording revocation failure", "subscription_id", sub.ID, "error", markErr)
	}
}

func equalEndedAt(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
