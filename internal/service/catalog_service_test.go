package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadthebusiness/platform-api/internal/models"
	appErrors "github.com/leadthebusiness/platform-api/pkg/errors"
)

type mockCatalogSource struct {
	courses    []models.Course
	categories []models.Category
	posts      []models.BlogPost
	coursesErr error
	fetches    int
}

func (m *mockCatalogSource) Courses(ctx context.Context) ([]models.Course, error) {
	m.fetches++
	if m.coursesErr != nil {
		return nil, m.coursesErr
	}
	return m.courses, nil
}

func (m *mockCatalogSource) CourseBySlug(ctx context.Context, slug string) (*models.Course, error) {
	for _, c := range m.courses {
		if c.Slug == slug {
			copied := c
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *mockCatalogSource) Categories(ctx context.Context) ([]models.Category, error) {
	return m.categories, nil
}

func (m *mockCatalogSource) Posts(ctx context.Context) ([]models.BlogPost, error) {
	return m.posts, nil
}

func (m *mockCatalogSource) PostBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	for _, p := range m.posts {
		if p.Slug == slug {
			copied := p
			return &copied, nil
		}
	}
	return nil, nil
}

func seedCourses() []models.Course {
	web := &models.Category{ID: "cat-1", Title: "Web", Slug: "web"}
	data := &models.Category{ID: "cat-2", Title: "Data", Slug: "data"}
	return []models.Course{
		{ID: "c1", Title: "Advanced React", Slug: "advanced-react", Description: "Build production UIs", Price: 99, Featured: true, Category: web},
		{ID: "c2", Title: "Data Engineering", Slug: "data-engineering", Description: "Pipelines at scale", Price: 199, Category: data},
		{ID: "c3", Title: "Go Backends", Slug: "go-backends", Description: "APIs and services", Price: 149, Category: web,
			OfferEndDate: time.Now().Add(48 * time.Hour).UTC().Format(time.RFC3339)},
	}
}

func TestCatalogServiceCoursesFilterByCategory(t *testing.T) {
	svc := NewCatalogService(&mockCatalogSource{courses: seedCourses()}, nil, nil)

	courses, err := svc.Courses(context.Background(), models.CourseFilter{Category: "web"})
	require.NoError(t, err)
	require.Len(t, courses, 2)
	for _, c := range courses {
		assert.Equal(t, "web", c.Category.Slug)
	}
}

func TestCatalogServiceCoursesFeaturedSubset(t *testing.T) {
	svc := NewCatalogService(&mockCatalogSource{courses: seedCourses()}, nil, nil)

	courses, err := svc.Courses(context.Background(), models.CourseFilter{Featured: true})
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, "advanced-react", courses[0].Slug)

	// combines with the other predicates
	courses, err = svc.Courses(context.Background(), models.CourseFilter{Featured: true, Category: "data"})
	require.NoError(t, err)
	assert.Empty(t, courses)
}

func TestCatalogServiceCoursesSearchAndSort(t *testing.T) {
	svc := NewCatalogService(&mockCatalogSource{courses: seedCourses()}, nil, nil)

	courses, err := svc.Courses(context.Background(), models.CourseFilter{SortBy: "price", SortOrder: "desc"})
	require.NoError(t, err)
	require.Len(t, courses, 3)
	assert.Equal(t, 199.0, courses[0].Price)
	assert.Equal(t, 99.0, courses[2].Price)

	courses, err = svc.Courses(context.Background(), models.CourseFilter{Search: "pipelines"})
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, "data-engineering", courses[0].Slug)
}

func TestCatalogServiceCoursesUpstreamFailure(t *testing.T) {
	svc := NewCatalogService(&mockCatalogSource{coursesErr: errors.New("boom")}, nil, nil)

	_, err := svc.Courses(context.Background(), models.CourseFilter{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUpstream.Code, appErrors.FromError(err).Code)
}

func TestCatalogServiceCourseBySlugWithOffer(t *testing.T) {
	svc := NewCatalogService(&mockCatalogSource{courses: seedCourses()}, nil, nil)

	detail, err := svc.CourseBySlug(context.Background(), "go-backends")
	require.NoError(t, err)
	require.NotNil(t, detail.Offer)
	assert.False(t, detail.Offer.Expired())

	detail, err = svc.CourseBySlug(context.Background(), "advanced-react")
	require.NoError(t, err)
	assert.Nil(t, detail.Offer)
}

func TestCatalogServiceCourseBySlugOfferExpiresAtClock(t *testing.T) {
	svc := NewCatalogService(&mockCatalogSource{courses: seedCourses()}, nil, nil)
	svc.now = func() time.Time { return time.Now().Add(72 * time.Hour) }

	detail, err := svc.CourseBySlug(context.Background(), "go-backends")
	require.NoError(t, err)
	require.NotNil(t, detail.Offer)
	assert.True(t, detail.Offer.Expired())
}

func TestCatalogServiceCourseBySlugNotFound(t *testing.T) {
	svc := NewCatalogService(&mockCatalogSource{courses: seedCourses()}, nil, nil)

	_, err := svc.CourseBySlug(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

type mapCacheRepo struct {
	values map[string][]byte
}

func (m *mapCacheRepo) Get(ctx context.Context, key string, dest interface{}) error {
	raw, ok := m.values[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *mapCacheRepo) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if m.values == nil {
		m.values = make(map[string][]byte)
	}
	m.values[key] = raw
	return nil
}

func (m *mapCacheRepo) DeleteByPattern(ctx context.Context, pattern string) error {
	m.values = nil
	return nil
}

func TestCatalogServiceCachesCourses(t *testing.T) {
	source := &mockCatalogSource{courses: seedCourses()}
	cache := NewCacheService(&mapCacheRepo{}, nil, time.Minute, nil, true)
	svc := NewCatalogService(source, cache, nil)

	_, err := svc.Courses(context.Background(), models.CourseFilter{})
	require.NoError(t, err)
	_, err = svc.Courses(context.Background(), models.CourseFilter{Category: "web"})
	require.NoError(t, err)
	assert.Equal(t, 1, source.fetches)

	require.NoError(t, svc.InvalidateCache(context.Background()))
	_, err = svc.Courses(context.Background(), models.CourseFilter{})
	require.NoError(t, err)
	assert.Equal(t, 2, source.fetches)
}

func TestCatalogServiceCacheDisabledRefetches(t *testing.T) {
	source := &mockCatalogSource{courses: seedCourses()}
	cache := NewCacheService(&mapCacheRepo{}, nil, time.Minute, nil, false)
	svc := NewCatalogService(source, cache, nil)

	_, err := svc.Courses(context.Background(), models.CourseFilter{})
	require.NoError(t, err)
	_, err = svc.Courses(context.Background(), models.CourseFilter{})
	require.NoError(t, err)
	assert.Equal(t, 2, source.fetches)
}

func TestCatalogServicePosts(t *testing.T) {
	source := &mockCatalogSource{posts: []models.BlogPost{
		{ID: "p1", Title: "Scaling a mentorship brand", Slug: "scaling"},
	}}
	svc := NewCatalogService(source, nil, nil)

	posts, err := svc.Posts(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 1)

	post, err := svc.PostBySlug(context.Background(), "scaling")
	require.NoError(t, err)
	assert.Equal(t, "p1", post.ID)

	_, err = svc.PostBySlug(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
