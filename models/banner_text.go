package models

import "time"

// BannerTextCollection holds the announcement lines scrolled across the storefront header
const BannerTextCollection = "bannerText"

// BannerText is one announcement line, shown in ascending Order while active
type BannerText struct {
	ID        string    `json:"id,omitempty"`
	Text      string    `json:"text"`
	IsActive  bool      `json:"isActive"`
	Order     int       `json:"order"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
