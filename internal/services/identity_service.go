package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"portico/internal/clients/circle"
	"portico/internal/models/db_models"
	"portico/internal/models/request_models"
	"portico/internal/repositories"
	"portico/pkg/utils"
)

type IdentityServiceInterface interface {
	// HandleUserCreated mirrors a new identity-provider user locally and
	// registers them on the community platform. Errors mean the delivery
	// should be retried; a payload that can never succeed comes back as
	// ErrInvalidInput.
	HandleUserCreated(ctx context.Context, data request_models.IdentityUserData) error
}

func NewIdentityService(userRepo repositories.UserRepository, circleAdmin circle.AdminClient) IdentityServiceInterface {
	return &IdentityService{
		userRepo:    userRepo,
		circleAdmin: circleAdmin,
	}
}

type IdentityService struct {
	userRepo    repositories.UserRepository
	circleAdmin circle.AdminClient
}

func (i *IdentityService) HandleUserCreated(ctx context.Context, data request_models.IdentityUserData) error {
	if data.ID == "" {
		return fmt.Errorf("%w: user event missing id", utils.ErrInvalidInput)
	}
	email := data.PrimaryEmail()
	if email == "" {
		return fmt.Errorf("%w: user event missing email", utils.ErrInvalidInput)
	}
	name := strings.TrimSpace(data.FirstName + " " + data.LastName)

	existing, err := i.userRepo.FindByID(ctx, data.ID)
	if err != nil {
		slog.Error("error loading user", "user_id", data.ID, "error", err)
		return utils.ErrDatabaseError
	}

	if existing == nil {
		if err := i.userRepo.Upsert(ctx, &db_models.User{
			ID:    data.ID,
			Email: email,
			Name:  name,
		}); err != nil {
			slog.Error("user insert failed", "user_id", data.ID, "error", err)
			return utils.ErrDatabaseError
		}
	} else if existing.Email != email || existing.Name != name {
		if err := i.userRepo.UpdateProfile(ctx, data.ID, email, name); err != nil {
			slog.Error("user profile update failed", "user_id", data.ID, "error", err)
			return utils.ErrDatabaseError
		}
	}

	return i.ensureMember(ctx, data.ID, email, name, existing)
}

// ensureMember registers the user on the community platform with the
// invitation mail enabled; signup is the one place the platform should greet
// the member itself.
func (i *IdentityService) ensureMember(ctx context.Context, userID, email, name string, existing *db_models.User) error {
	if existing != nil && existing.CircleMemberID != nil {
		return nil
	}

	var memberID int64
	member, err := i.circleAdmin.SearchMemberByEmail(ctx, email)
	switch {
	case err == nil:
		memberID = member.ID
	case errors.Is(err, circle.ErrMemberNotFound):
		created, createErr := i.circleAdmin.CreateMember(ctx, circle.CreateMemberParams{
			Email:          email,
			Name:           name,
			SkipInvitation: false,
		})
		if createErr != nil {
			slog.Error("member creation failed", "email", email, "error", createErr)
			return createErr
		}
		memberID = created.ID
	default:
		slog.Error("member search failed", "email", email, "error", err)
		return err
	}

	if err := i.userRepo.SetCircleMemberID(ctx, userID, memberID); err != nil {
		slog.Error("member id cache write failed", "user_id", userID, "error", err)
		return utils.ErrDatabaseError
	}
	return nil
}
