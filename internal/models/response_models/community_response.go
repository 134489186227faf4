package response_models

type CommunityResponse struct {
	Slug        string   `json:"slug"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	ImageURL    string   `json:"image_url"`
	Benefits    []string `json:"benefits"`
	SpaceID     int64    `json:"space_id"`

	// Plans lists the plan types this community sells, derived from which
	// price references are configured.
	Plans []string `json:"plans"`
}
