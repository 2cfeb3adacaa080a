package news

import "time"

type Article struct {
	ID           int64     `json:"id"`
	ImageURL     string    `json:"image_url"`
	CloudinaryID string    `json:"cloudinary_id"`
	Date         string    `json:"date"`
	Time         string    `json:"time"`
	Description  []string  `json:"description"`
	Tag          string    `json:"tag"`
	Views        int       `json:"views"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	CreatedBy    string    `json:"created_by"`
	UpdatedBy    string    `json:"updated_by"`
}

// PublicArticle is the projection the public site sees: no media id, no
// audit fields, and the image URL renamed to "image".
type PublicArticle struct {
	ID          int64    `json:"id"`
	Image       string   `json:"image"`
	Date        string   `json:"date"`
	Time        string   `json:"time"`
	Description []string `json:"description"`
	Tag         string   `json:"tag"`
	Views       int      `json:"views"`
}

type Stats struct {
	TotalArticles      int64   `json:"total_articles"`
	ActiveArticles     int64   `json:"active_articles"`
	InactiveArticles   int64   `json:"inactive_articles"`
	TotalViews         int64   `json:"total_views"`
	AvgViewsPerArticle float64 `json:"avg_views_per_article"`
}

type TopArticle struct {
	ID    int64  `json:"id"`
	Tag   string `json:"tag"`
	Views int    `json:"views"`
	Date  string `json:"date"`
}

func toPublic(a Article) PublicArticle {
	return PublicArticle{
		ID:          a.ID,
		Image:       a.ImageURL,
		Date:        a.Date,
		Time:        a.Time,
		Description: a.Description,
		Tag:         a.Tag,
		Views:       a.Views,
	}
}
