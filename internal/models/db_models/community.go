package db_models

import (
	"github.com/lib/pq"
)

// Community is a sellable membership backed by one Circle space. Rows are
// created and edited only through the admin endpoints; everything else treats
// the table as read-only.
type Community struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Slug        string         `gorm:"uniqueIndex;size:120;not null" json:"slug"`
	Name        string         `gorm:"size:255;not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	ImageURL    string         `gorm:"size:512" json:"image_url"`
	Benefits    pq.StringArray `gorm:"type:text[]" json:"benefits"`

	// CircleSpaceID is the space members get attached to on provisioning.
	CircleSpaceID int64 `gorm:"uniqueIndex;not null" json:"circle_space_id"`

	// Gateway price references. A nil price means the billing interval is not
	// offered for this community.
	MonthlyPriceID *string `gorm:"size:64" json:"monthly_price_id"`
	AnnualPriceID  *string `gorm:"size:64" json:"annual_price_id"`

	Timestamps
}

// PriceForPlan returns the configured price reference for a plan type, or ""
// when the community does not offer that interval.
func (c *Community) PriceForPlan(plan PlanType) string {
	switch plan {
	case PlanMonthly:
		if c.MonthlyPriceID != nil {
			return *c.MonthlyPriceID
		}
	case PlanAnnual:
		if c.AnnualPriceID != nil {
			return *c.AnnualPriceID
		}
	}
	return ""
}

// PlanForPrice is the inverse lookup used when confirming a checkout: the
// purchased price must map to exactly one configured interval.
func (c *Community) PlanForPrice(priceID string) (PlanType, bool) {
	if priceID == "" {
		return "", false
	}
	if c.MonthlyPriceID != nil && *c.MonthlyPriceID == priceID {
		return PlanMonthly, true
	}
	if c.AnnualPriceID != nil && *c.AnnualPriceID == priceID {
		return PlanAnnual, true
	}
	return "", false
}
