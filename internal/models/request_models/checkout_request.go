package request_models

type CreateCheckoutSessionRequest struct {
	Slug     string `json:"slug" binding:"required"`
	PlanType string `json:"plan_type" binding:"required,oneof=monthly annual"`
}

type ConfirmCheckoutRequest struct {
	SessionID     string `json:"session_id" binding:"required"`
	SpaceID       int64  `json:"space_id" binding:"required"`
	CommunitySlug string `json:"community_slug" binding:"required"`
}
