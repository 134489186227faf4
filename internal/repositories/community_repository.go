package repositories

import (
	"context"
	"errors"

	"portico/internal/models/db_models"

	"gorm.io/gorm"
)

type CommunityRepository interface {
	ListAll(ctx context.Context) ([]db_models.Community, error)
	FindBySlug(ctx context.Context, slug string) (*db_models.Community, error)
	Create(ctx context.Context, community *db_models.Community) error
	Update(ctx context.Context, community *db_models.Community) error
}

type communityRepository struct {
	db *gorm.DB
}

func NewCommunityRepository(db *gorm.DB) CommunityRepository {
	return &communityRepository{
		db: db,
	}
}

func (c *communityRepository) ListAll(ctx context.Context) ([]db_models.Community, error) {
	var communities []db_models.Community
	err := c.db.WithContext(ctx).Order("name asc").Find(&communities).Error

	if err != nil {
		return nil, err
	}

	return communities, nil
}

func (c *communityRepository) FindBySlug(ctx context.Context, slug string) (*db_models.Community, error) {
	var community db_models.Community
	err := c.db.WithContext(ctx).First(&community, "slug = ?", slug).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &community, nil
}

func (c *communityRepository) Create(ctx context.Context, community *db_models.Community) error {
	return c.db.WithContext(ctx).Create(community).Error
}

func (c *communityRepository) Update(ctx context.Context, community *db_models.Community) error {
	return c.db.WithContext(ctx).Save(community).Error
}
