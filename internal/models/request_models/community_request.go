package request_models

type CreateCommunityRequest struct {
	Slug           string   `json:"slug" validate:"required,min=3,max=120"`
	Name           string   `json:"name" validate:"required,max=255"`
	Description    string   `json:"description"`
	ImageURL       string   `json:"image_url" validate:"omitempty,url"`
	Benefits       []string `json:"benefits"`
	CircleSpaceID  int64    `json:"circle_space_id" validate:"required,gt=0"`
	MonthlyPriceID *string  `json:"monthly_price_id" validate:"omitempty,startswith=price_"`
	AnnualPriceID  *string  `json:"annual_price_id" validate:"omitempty,startswith=price_"`
}

// UpdateCommunityRequest carries the editable fields. The slug comes from the
// path and the space mapping is immutable once created.
type UpdateCommunityRequest struct {
	Name           string   `json:"name" validate:"required,max=255"`
	Description    string   `json:"description"`
	ImageURL       string   `json:"image_url" validate:"omitempty,url"`
	Benefits       []string `json:"benefits"`
	MonthlyPriceID *string  `json:"monthly_price_id" validate:"omitempty,startswith=price_"`
	AnnualPriceID  *string  `json:"annual_price_id" validate:"omitempty,startswith=price_"`
}
