package communities_fx

import (
	"portico/internal/api/controllers"
	"portico/internal/clients/circle"
	"portico/internal/repositories"
	"portico/internal/services"

	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Provide(
	provideCommunityRepo, provideCommunityService, provideCommunityController)

func provideCommunityRepo(db *gorm.DB) repositories.CommunityRepository {
	return repositories.NewCommunityRepository(db)
}

func provideCommunityService(
	communityRepo repositories.CommunityRepository,
	circleAdmin circle.AdminClient,
) services.CommunityServiceInterface {
	return services.NewCommunityService(communityRepo, circleAdmin)
}

func provideCommunityController(communityService services.CommunityServiceInterface) *controllers.CommunityController {
	return controllers.NewCommunityController(communityService)
}
