package testimonials

import "time"

const defaultPrefix = "None"

type Testimonial struct {
	ID           int64     `json:"id"`
	VideoURL     string    `json:"video_url"`
	CloudinaryID string    `json:"cloudinary_id"`
	Name         string    `json:"name"`
	Prefix       string    `json:"prefix"`
	Views        int       `json:"views"`
	IsActive     bool      `json:"is_active"`
	DisplayOrder int       `json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	CreatedBy    string    `json:"created_by"`
	UpdatedBy    string    `json:"updated_by"`
}

// PublicTestimonial is what the public carousel consumes.
type PublicTestimonial struct {
	ID       int64  `json:"id"`
	VideoURL string `json:"video_url"`
	Name     string `json:"name"`
	Prefix   string `json:"prefix"`
	Views    int    `json:"views"`
}

type Stats struct {
	TotalTestimonials      int64   `json:"total_testimonials"`
	ActiveTestimonials     int64   `json:"active_testimonials"`
	InactiveTestimonials   int64   `json:"inactive_testimonials"`
	TotalViews             int64   `json:"total_views"`
	AvgViewsPerTestimonial float64 `json:"avg_views_per_testimonial"`
}

type TopTestimonial struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Prefix string `json:"prefix"`
	Views  int    `json:"views"`
}

type ReorderItem struct {
	ID    int64 `json:"id"`
	Order int   `json:"order"`
}

type ReorderRequest struct {
	Order []ReorderItem `json:"order"`
}
