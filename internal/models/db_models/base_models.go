package db_models

// Timestamps is embedded by every table. Unix seconds, UTC.
type Timestamps struct {
	CreatedAt int64 `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt int64 `gorm:"autoUpdateTime" json:"updated_at"`
}
