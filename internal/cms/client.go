// Package cms queries the hosted headless content store (Sanity) over its
// HTTP query endpoint. Content is authored externally; this client only ever
// reads published documents.
package cms

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/leadthebusiness/platform-api/internal/models"
	"github.com/leadthebusiness/platform-api/pkg/config"
)

const courseProjection = `{
  "id": _id,
  title,
  "slug": slug.current,
  description,
  price,
  "original_price": originalPrice,
  duration,
  level,
  rating,
  "students_enrolled": studentsEnrolled,
  "enroll_url": enrollUrl,
  featured,
  certificate,
  language,
  "offer_end_date": offerEndDate,
  category->{"id": _id, title, "slug": slug.current}
}`

const postProjection = `{
  "id": _id,
  title,
  "slug": slug.current,
  excerpt,
  "author": author->name,
  "published_at": publishedAt,
  category->{"id": _id, title, "slug": slug.current}
}`

// Observer reports one upstream query's outcome, typically into metrics.
type Observer func(status int, elapsed time.Duration)

// Client talks to the content store's query API.
type Client struct {
	endpoint string
	token    string
	http     *http.Client
	observe  Observer
}

// NewClient builds a client from configuration. cfg.BaseURL overrides the
// per-project endpoint, which tests point at a local server.
func NewClient(cfg config.CMSConfig, observe Observer) *Client {
	base := cfg.BaseURL
	if base == "" {
		base = fmt.Sprintf("https://%s.api.sanity.io", cfg.ProjectID)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		endpoint: fmt.Sprintf("%s/v%s/data/query/%s", base, cfg.APIVersion, cfg.Dataset),
		token:    cfg.Token,
		http:     &http.Client{Timeout: timeout},
		observe:  observe,
	}
}

// Courses returns the full course catalog snapshot.
func (c *Client) Courses(ctx context.Context) ([]models.Course, error) {
	var courses []models.Course
	query := `*[_type == "course"] | order(featured desc, _createdAt desc)` + courseProjection
	if err := c.query(ctx, query, nil, &courses); err != nil {
		return nil, fmt.Errorf("fetch courses: %w", err)
	}
	return courses, nil
}

// CourseBySlug returns one course, or nil when the slug is unknown.
func (c *Client) CourseBySlug(ctx context.Context, slug string) (*models.Course, error) {
	var course *models.Course
	query := `*[_type == "course" && slug.current == $slug][0]` + courseProjection
	if err := c.query(ctx, query, map[string]string{"slug": slug}, &course); err != nil {
		return nil, fmt.Errorf("fetch course %q: %w", slug, err)
	}
	return course, nil
}

// Categories returns all course categories with their course counts.
func (c *Client) Categories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	query := `*[_type == "category"] | order(title asc){
  "id": _id,
  title,
  "slug": slug.current,
  "course_count": count(*[_type == "course" && references(^._id)])
}`
	if err := c.query(ctx, query, nil, &categories); err != nil {
		return nil, fmt.Errorf("fetch categories: %w", err)
	}
	return categories, nil
}

// Posts returns published blog posts, newest first.
func (c *Client) Posts(ctx context.Context) ([]models.BlogPost, error) {
	var posts []models.BlogPost
	query := `*[_type == "blogPost"] | order(publishedAt desc)` + postProjection
	if err := c.query(ctx, query, nil, &posts); err != nil {
		return nil, fmt.Errorf("fetch posts: %w", err)
	}
	return posts, nil
}

// PostBySlug returns one blog post, or nil when the slug is unknown.
func (c *Client) PostBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	var post *models.BlogPost
	query := `*[_type == "blogPost" && slug.current == $slug][0]` + postProjection
	if err := c.query(ctx, query, map[string]string{"slug": slug}, &post); err != nil {
		return nil, fmt.Errorf("fetch post %q: %w", slug, err)
	}
	return post, nil
}

type queryEnvelope struct {
	Result json.RawMessage `json:"result"`
}

// query runs one GROQ query and decodes its result into dest. String
// parameters are passed as $-prefixed JSON literals per the query API.
func (c *Client) query(ctx context.Context, groq string, params map[string]string, dest interface{}) error {
	values := url.Values{}
	values.Set("query", groq)
	for name, value := range params {
		literal, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("encode param %s: %w", name, err)
		}
		values.Set("$"+name, string(literal))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+values.Encode(), nil)
	if err != nil {
		return fmt.Errorf("build query request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if c.observe != nil {
			c.observe(0, time.Since(start))
		}
		return fmt.Errorf("query content store: %w", err)
	}
	defer resp.Body.Close()
	if c.observe != nil {
		c.observe(resp.StatusCode, time.Since(start))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read query response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("content store returned status %d", resp.StatusCode)
	}

	var envelope queryEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return fmt.Errorf("parse query envelope: %w", err)
	}
	if len(envelope.Result) == 0 || string(envelope.Result) == "null" {
		return nil
	}
	if err := json.Unmarshal(envelope.Result, dest); err != nil {
		return fmt.Errorf("parse query result: %w", err)
	}
	return nil
}
