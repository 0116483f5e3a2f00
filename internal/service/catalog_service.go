package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/leadthebusiness/platform-api/internal/models"
	"github.com/leadthebusiness/platform-api/internal/offer"
	appErrors "github.com/leadthebusiness/platform-api/pkg/errors"
	"github.com/leadthebusiness/platform-api/pkg/listing"
)

// catalogSource abstracts the CMS read API.
type catalogSource interface {
	Courses(ctx context.Context) ([]models.Course, error)
	CourseBySlug(ctx context.Context, slug string) (*models.Course, error)
	Categories(ctx context.Context) ([]models.Category, error)
	Posts(ctx context.Context) ([]models.BlogPost, error)
	PostBySlug(ctx context.Context, slug string) (*models.BlogPost, error)
}

// Cache keys for catalog payloads.
const (
	cacheKeyCourses    = "catalog:courses"
	cacheKeyCategories = "catalog:categories"
	cacheKeyPosts      = "catalog:posts"
)

// CatalogService serves the public course catalog and blog. Content comes
// from the CMS; filtering and sorting run in memory over the fetched
// snapshot so one fetch serves every permutation of the page controls.
type CatalogService struct {
	source catalogSource
	cache  *CacheService
	schema listing.Schema[models.Course]
	logger *zap.Logger
	now    func() time.Time
}

// NewCatalogService constructs CatalogService. cache may be nil.
func NewCatalogService(source catalogSource, cache *CacheService, logger *zap.Logger) *CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	schema := listing.Schema[models.Course]{
		SearchFields: []func(models.Course) string{
			func(c models.Course) string { return c.Title },
			func(c models.Course) string { return c.Description },
		},
		Category: func(c models.Course) string {
			if c.Category == nil {
				return ""
			}
			return c.Category.Slug
		},
		SortFields: map[string]listing.SortField[models.Course]{
			"title": {Kind: listing.Text, Text: func(c models.Course) string { return c.Title }},
			"price": {Kind: listing.Numeric, Number: func(c models.Course) float64 { return c.Price }},
		},
	}
	return &CatalogService{source: source, cache: cache, schema: schema, logger: logger, now: time.Now}
}

// Courses returns the catalog filtered and sorted by the page controls. The
// CMS orders the snapshot featured first, newest first; with no sort key that
// order carries through.
func (s *CatalogService) Courses(ctx context.Context, filter models.CourseFilter) ([]models.Course, error) {
	courses, err := s.fetchCourses(ctx)
	if err != nil {
		return nil, err
	}
	if filter.Featured {
		featured := make([]models.Course, 0, len(courses))
		for _, c := range courses {
			if c.Featured {
				featured = append(featured, c)
			}
		}
		courses = featured
	}
	return listing.Apply(courses, s.schema, listing.Criteria{
		Search:   filter.Search,
		Category: filter.Category,
		SortKey:  filter.SortBy,
		Order:    listing.Direction(filter.SortOrder),
	}), nil
}

// CourseBySlug returns one course decorated with the current state of its
// promotional offer. The offer snapshot is computed at read time so the
// payload is accurate the moment it is served.
func (s *CatalogService) CourseBySlug(ctx context.Context, slug string) (*models.CourseDetail, error) {
	course, err := s.source.CourseBySlug(ctx, slug)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "failed to fetch course")
	}
	if course == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
	}
	return &models.CourseDetail{
		Course: *course,
		Offer:  offer.SnapshotFor(course.OfferEndDate, s.now()),
	}, nil
}

// Categories returns all course categories.
func (s *CatalogService) Categories(ctx context.Context) ([]models.Category, error) {
	var cached []models.Category
	if hit, _ := s.cache.Get(ctx, cacheKeyCategories, &cached); hit {
		return cached, nil
	}
	categories, err := s.source.Categories(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "failed to fetch categories")
	}
	if err := s.cache.Set(ctx, cacheKeyCategories, categories, 0); err != nil {
		s.logger.Warn("failed to cache categories", zap.Error(err))
	}
	return categories, nil
}

// Posts returns published blog posts, newest first.
func (s *CatalogService) Posts(ctx context.Context) ([]models.BlogPost, error) {
	var cached []models.BlogPost
	if hit, _ := s.cache.Get(ctx, cacheKeyPosts, &cached); hit {
		return cached, nil
	}
	posts, err := s.source.Posts(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "failed to fetch posts")
	}
	if err := s.cache.Set(ctx, cacheKeyPosts, posts, 0); err != nil {
		s.logger.Warn("failed to cache posts", zap.Error(err))
	}
	return posts, nil
}

// PostBySlug returns one blog post.
func (s *CatalogService) PostBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	post, err := s.source.PostBySlug(ctx, slug)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "failed to fetch post")
	}
	if post == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "post not found")
	}
	return post, nil
}

// InvalidateCache drops cached catalog payloads, typically after a CMS
// publish webhook.
func (s *CatalogService) InvalidateCache(ctx context.Context) error {
	return s.cache.Invalidate(ctx, "catalog:*")
}

func (s *CatalogService) fetchCourses(ctx context.Context) ([]models.Course, error) {
	var cached []models.Course
	if hit, _ := s.cache.Get(ctx, cacheKeyCourses, &cached); hit {
		return cached, nil
	}
	courses, err := s.source.Courses(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "failed to fetch courses")
	}
	if err := s.cache.Set(ctx, cacheKeyCourses, courses, 0); err != nil {
		s.logger.Warn("failed to cache courses", zap.Error(err))
	}
	return courses, nil
}
