package models

import "github.com/leadthebusiness/platform-api/internal/offer"

// Category groups courses in the catalog. Slug is unique.
type Category struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	CourseCount int    `json:"course_count,omitempty"`
}

// Course is one catalog entry authored in the CMS. The full set is treated
// as an immutable snapshot per request; slug is unique.
type Course struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Slug             string    `json:"slug"`
	Description      string    `json:"description"`
	Price            float64   `json:"price"`
	OriginalPrice    *float64  `json:"original_price,omitempty"`
	Duration         string    `json:"duration"`
	Level            string    `json:"level"`
	Rating           float64   `json:"rating"`
	StudentsEnrolled int       `json:"students_enrolled"`
	EnrollURL        string    `json:"enroll_url,omitempty"`
	Featured         bool      `json:"featured"`
	Certificate      bool      `json:"certificate"`
	Language         string    `json:"language,omitempty"`
	OfferEndDate     string    `json:"offer_end_date,omitempty"`
	Category         *Category `json:"category,omitempty"`
}

// CourseDetail decorates a course with the live state of its promotional
// offer. Offer is nil when the course carries no usable end timestamp.
type CourseDetail struct {
	Course
	Offer *offer.Snapshot `json:"offer,omitempty"`
}

// CourseFilter captures the catalog page's search and filter controls.
type CourseFilter struct {
	Search    string
	Category  string // "all" or a category slug
	Featured  bool   // restrict to the featured section
	SortBy    string // title | price
	SortOrder string // asc | desc
}

// BlogPost is one published article from the CMS.
type BlogPost struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Excerpt     string    `json:"excerpt"`
	Author      string    `json:"author,omitempty"`
	PublishedAt string    `json:"published_at"`
	Category    *Category `json:"category,omitempty"`
}
