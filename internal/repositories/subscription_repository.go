package repositories

import (
	"context"
	"errors"

	"portico/internal/models/db_models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SubscriptionRepository interface {
	Upsert(ctx context.Context, sub *db_models.Subscription) error
	FindByPaymentSubscriptionID(ctx context.Context, ref string) (*db_models.Subscription, error)
	FindByUserAndCommunity(ctx context.Context, userID string, communityID uint) (*db_models.Subscription, error)
	SetStatusAndEndedAt(ctx context.Context, id uint, status db_models.SubscriptionStatus, endedAt *int64) error
	TransitionStatus(ctx context.Context, id uint, from, to db_models.SubscriptionStatus) error
}

type subscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{
		db: db,
	}
}

// Upsert writes the one subscription row a (user, community) pair may hold.
// A concurrent duplicate confirmation collapses into the same row.
func (s *subscriptionRepository) Upsert(ctx context.Context, sub *db_models.Subscription) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "user_id"},
			{Name: "community_id"},
		},
		DoUpdates: clause.AssignmentColumns([]string{
			"status",
			"payment_subscription_id",
			"payment_customer_id",
			"plan_type",
			"started_at",
			"ended_at",
			"metadata",
			"updated_at",
		}),
	}).Create(sub).Error
}

// FindByPaymentSubscriptionID loads the row for a gateway subscription
// reference with its user and community attached, which reconciliation needs
// for the revocation call.
func (s *subscriptionRepository) FindByPaymentSubscriptionID(ctx context.Context, ref string) (*db_models.Subscription, error) {
	var sub db_models.Subscription
	err := s.db.WithContext(ctx).
		Preload("User").
		Preload("Community").
		First(&sub, "payment_subscription_id = ?", ref).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &sub, nil
}

func (s *subscriptionRepository) FindByUserAndCommunity(ctx context.Context, userID string, communityID uint) (*db_models.Subscription, error) {
	var sub db_models.Subscription
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND community_id = ?", userID, communityID).
		First(&sub).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &sub, nil
}

func (s *subscriptionRepository) SetStatusAndEndedAt(ctx context.Context, id uint, status db_models.SubscriptionStatus, endedAt *int64) error {
	return s.db.WithContext(ctx).
		Model(&db_models.Subscription{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":   status,
			"ended_at": endedAt,
		}).Error
}

// TransitionStatus moves a row from one status to another only if it still
// holds the expected one, so a compensation write never clobbers a more
// specific failure state.
func (s *subscriptionRepository) TransitionStatus(ctx context.Context, id uint, from, to db_models.SubscriptionStatus) error {
	return s.db.WithContext(ctx).
		Model(&db_models.Subscription{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to).Error
}
