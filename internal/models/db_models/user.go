package db_models

// User mirrors an identity-provider account locally. Rows are created the
// first time a checkout is provisioned or when the identity provider delivers
// a user.created webhook, whichever happens first.
type User struct {
	// ID is the identity-provider-issued identifier (e.g. "user_2aF..."),
	// never generated locally.
	ID    string `gorm:"primaryKey;size:64" json:"id"`
	Email string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Name  string `gorm:"size:255" json:"name"`

	// PaymentCustomerID links to the payment gateway's customer object.
	PaymentCustomerID string `gorm:"size:64;index" json:"payment_customer_id"`

	// CircleMemberID caches the community-platform member identity. Once set
	// it is trusted without re-verification on later provisioning runs.
	CircleMemberID *int64 `gorm:"uniqueIndex" json:"circle_member_id"`

	Timestamps
}
