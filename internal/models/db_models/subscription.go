package db_models

import (
	"gorm.io/datatypes"
)

type SubscriptionStatus string

const (
	SubStatusActive   SubscriptionStatus = "active"
	SubStatusCanceled SubscriptionStatus = "canceled"
	SubStatusPastDue  SubscriptionStatus = "past_due"
	SubStatusUnpaid   SubscriptionStatus = "unpaid"

	// Local failure states recorded by the provisioning workflow and the
	// deprovisioning step; never reported by the payment gateway.
	SubStatusProvisioningFailed SubscriptionStatus = "provisioning_failed"
	SubStatusRevocationFailed   SubscriptionStatus = "access_revocation_failed"
)

func (s SubscriptionStatus) String() string {
	return string(s)
}

// Valid reports whether s is one of the closed set of status tokens.
func (s SubscriptionStatus) Valid() bool {
	switch s {
	case SubStatusActive, SubStatusCanceled, SubStatusPastDue, SubStatusUnpaid,
		SubStatusProvisioningFailed, SubStatusRevocationFailed:
		return true
	}
	return false
}

// Ended reports whether the member's space access should be revoked.
func (s SubscriptionStatus) Ended() bool {
	return s == SubStatusCanceled || s == SubStatusUnpaid
}

// subscriptionStatusTransitions captures the moves this system itself makes:
// gateway lifecycle updates, re-purchase reactivation through the checkout
// upsert, and the two local failure markers. Reconciliation logs a move
// outside this set but never rejects it.
var subscriptionStatusTransitions = map[SubscriptionStatus][]SubscriptionStatus{
	SubStatusActive:             {SubStatusPastDue, SubStatusUnpaid, SubStatusCanceled, SubStatusProvisioningFailed},
	SubStatusPastDue:            {SubStatusActive, SubStatusUnpaid, SubStatusCanceled},
	SubStatusUnpaid:             {SubStatusActive, SubStatusCanceled, SubStatusRevocationFailed},
	SubStatusCanceled:           {SubStatusActive, SubStatusRevocationFailed},
	SubStatusProvisioningFailed: {SubStatusActive},
	SubStatusRevocationFailed:   {SubStatusActive, SubStatusCanceled, SubStatusUnpaid},
}

func (s SubscriptionStatus) CanTransitionTo(target SubscriptionStatus) bool {
	allowed, ok := subscriptionStatusTransitions[s]
	if !ok {
		return false
	}

	for _, candidate := range allowed {
		if candidate == target {
			return true
		}
	}
	return false
}

// SubscriptionStatusFromGateway maps a gateway-reported subscription status to
// the local token. Only the recognized lifecycle set is accepted; anything
// else (incomplete, trialing, ...) is ignored by the webhook pipeline.
func SubscriptionStatusFromGateway(status string) (SubscriptionStatus, bool) {
	switch SubscriptionStatus(status) {
	case SubStatusActive, SubStatusPastDue, SubStatusUnpaid, SubStatusCanceled:
		return SubscriptionStatus(status), true
	}
	return "", false
}

type PlanType string

const (
	PlanMonthly PlanType = "monthly"
	PlanAnnual  PlanType = "annual"
)

func (p PlanType) Valid() bool {
	return p == PlanMonthly || p == PlanAnnual
}

// Subscription records one user's membership in one community. At most one
// row per (user, community) pair; upserts key off that constraint.
type Subscription struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	UserID      string `gorm:"size:64;not null;uniqueIndex:idx_user_community" json:"user_id"`
	CommunityID uint   `gorm:"not null;uniqueIndex:idx_user_community" json:"community_id"`

	Status SubscriptionStatus `gorm:"size:32;not null;index" json:"status"`

	// Gateway references. PaymentSubscriptionID is the lookup key for webhook
	// reconciliation.
	PaymentSubscriptionID string `gorm:"size:64;not null;uniqueIndex" json:"payment_subscription_id"`
	PaymentCustomerID     string `gorm:"size:64;index" json:"payment_customer_id"`

	PlanType PlanType `gorm:"size:16;not null" json:"plan_type"`

	// Unix seconds. EndedAt stays nil until the gateway schedules or reports
	// an end of the billing relationship.
	StartedAt int64  `gorm:"not null" json:"started_at"`
	EndedAt   *int64 `json:"ended_at"`

	Metadata datatypes.JSON `gorm:"type:jsonb;default:'{}'" json:"-"`

	Timestamps

	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Community Community `gorm:"foreignKey:CommunityID;constraint:OnDelete:CASCADE" json:"-"`
}
