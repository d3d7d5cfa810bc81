package models

import "time"

// APIKey stores only the sha256 of the issued key.
type APIKey struct {
	ID         string     `gorm:"type:varchar(36);primaryKey" json:"id"`
	KeyHash    string     `gorm:"size:64;uniqueIndex;not null" json:"-"`
	Name       string     `gorm:"size:100" json:"name,omitempty"`
	IsActive   bool       `gorm:"not null" json:"isActive"`
	ExpiresAt  *time.Time `json:"expiresAt,omitempty"`
	LastUsedAt *time.Time `json:"lastUsedAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

func (APIKey) TableName() string { return "api_keys" }

func (k *APIKey) Usable(now time.Time) bool {
	return k.IsActive && (k.ExpiresAt == nil || k.ExpiresAt.After(now))
}
