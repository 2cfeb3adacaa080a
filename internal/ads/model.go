package ads

import "time"

// Ad is a banner image shown on the public site. At most one ad is
// active at a time.
type Ad struct {
	ID           int64     `json:"id"`
	ImageURL     string    `json:"image_url"`
	CloudinaryID string    `json:"cloudinary_id"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	CreatedBy    string    `json:"created_by"`
	UpdatedBy    string    `json:"updated_by"`
}

// ActiveAd is the public projection served to the site banner.
type ActiveAd struct {
	ID       int64  `json:"id"`
	ImageURL string `json:"image_url"`
}

type Stats struct {
	TotalAds  int64 `json:"total_ads"`
	ActiveAds int64 `json:"active_ads"`
}
