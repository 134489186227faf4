package repositories

import (
	"context"
	"errors"

	"portico/internal/models/db_models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository interface {
	Upsert(ctx context.Context, user *db_models.User) error
	FindByID(ctx context.Context, id string) (*db_models.User, error)
	FindByEmail(ctx context.Context, email string) (*db_models.User, error)
	UpdateProfile(ctx context.Context, id, email, name string) error
	SetCircleMemberID(ctx context.Context, id string, memberID int64) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{
		db: db,
	}
}

// Upsert creates or refreshes the row keyed by the identity-provider id.
func (u *userRepository) Upsert(ctx context.Context, user *db_models.User) error {
	return u.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "id"},
		},
		DoUpdates: clause.AssignmentColumns([]string{
			"email",
			"name",
			"payment_customer_id",
			"updated_at",
		}),
	}).Create(user).Error
}

func (u *userRepository) FindByID(ctx context.Context, id string) (*db_models.User, error) {
	var user db_models.User
	err := u.db.WithContext(ctx).First(&user, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &user, nil
}

func (u *userRepository) FindByEmail(ctx context.Context, email string) (*db_models.User, error) {
	var user db_models.User
	err := u.db.WithContext(ctx).First(&user, "email = ?", email).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &user, nil
}

func (u *userRepository) UpdateProfile(ctx context.Context, id, email, name string) error {
	return u.db.WithContext(ctx).
		Model(&db_models.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"email": email,
			"name":  name,
		}).Error
}

func (u *userRepository) SetCircleMemberID(ctx context.Context, id string, memberID int64) error {
	return u.db.WithContext(ctx).
		Model(&db_models.User{}).
		Where("id = ?", id).
		Update("circle_member_id", memberID).Error
}
