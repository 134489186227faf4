package spaces_fx

import (
	"portico/internal/api/controllers"
	"portico/internal/clients/circle"
	"portico/internal/services"

	"go.uber.org/fx"
)

var Module = fx.Provide(
	provideSpaceService, provideSpaceController)

func provideSpaceService(members circle.MemberClient) services.SpaceServiceInterface {
	return services.NewSpaceService(members)
}

func provideSpaceController(spaceService services.SpaceServiceInterface) *controllers.SpaceController {
	return controllers.NewSpaceController(spaceService)
}
