package model

import "time"

// Shop is an installed storefront with its Admin API credentials.
type Shop struct {
	ID            uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	ShopDomain    string     `gorm:"uniqueIndex;size:255;not null" json:"shop_domain"`
	AccessToken   string     `gorm:"size:512" json:"-"`
	Scope         string     `gorm:"size:512" json:"scope"`
	InstalledAt   *time.Time `json:"installed_at"`
	UninstalledAt *time.Time `json:"uninstalled_at"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// OAuthState is a pending OAuth handshake, valid until ExpiresAt.
type OAuthState struct {
	ID         uint      `gorm:"primaryKey;autoIncrement"`
	State      string    `gorm:"uniqueIndex;size:64;not null"`
	ShopDomain string    `gorm:"size:255;not null"`
	ExpiresAt  time.Time `gorm:"not null"`
	CreatedAt  time.Time
}
