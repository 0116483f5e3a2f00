package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/leadthebusiness/platform-api/internal/models"
	"github.com/leadthebusiness/platform-api/internal/service"
	"github.com/leadthebusiness/platform-api/pkg/response"
)

// CatalogHandler exposes the public course catalog and blog endpoints.
type CatalogHandler struct {
	catalog *service.CatalogService
}

// NewCatalogHandler constructs CatalogHandler.
func NewCatalogHandler(catalog *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// Courses godoc
// @Summary List courses
// @Tags Catalog
// @Produce json
// @Param search query string false "Match title or description"
// @Param category query string false "Category slug or all"
// @Param featured query bool false "Only the featured section"
// @Param sort query string false "Sort key: title or price"
// @Param order query string false "asc or desc"
// @Success 200 {object} response.Envelope
// @Router /courses [get]
func (h *CatalogHandler) Courses(c *gin.Context) {
	filter := models.CourseFilter{
		Search:    c.Query("search"),
		Category:  c.DefaultQuery("category", "all"),
		Featured:  c.Query("featured") == "true",
		SortBy:    c.Query("sort"),
		SortOrder: c.DefaultQuery("order", "asc"),
	}
	courses, err := h.catalog.Courses(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, courses, nil)
}

// CourseBySlug godoc
// @Summary Get one course with its live offer state
// @Tags Catalog
// @Produce json
// @Param slug path string true "Course slug"
// @Success 200 {object} response.Envelope
// @Router /courses/{slug} [get]
func (h *CatalogHandler) CourseBySlug(c *gin.Context) {
	detail, err := h.catalog.CourseBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, detail, nil)
}

// Categories godoc
// @Summary List course categories
// @Tags Catalog
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /categories [get]
func (h *CatalogHandler) Categories(c *gin.Context) {
	categories, err := h.catalog.Categories(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, categories, nil)
}

// Posts godoc
// @Summary List blog posts
// @Tags Catalog
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /posts [get]
func (h *CatalogHandler) Posts(c *gin.Context) {
	posts, err := h.catalog.Posts(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, posts, nil)
}

// PostBySlug godoc
// @Summary Get one blog post
// @Tags Catalog
// @Produce json
// @Param slug path string true "Post slug"
// @Success 200 {object} response.Envelope
// @Router /posts/{slug} [get]
func (h *CatalogHandler) PostBySlug(c *gin.Context) {
	post, err := h.catalog.PostBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, post, nil)
}

// Revalidate godoc
// @Summary Drop cached catalog payloads
// @Tags Catalog
// @Produce json
// @Success 204 "No Content"
// @Router /catalog/revalidate [post]
func (h *CatalogHandler) Revalidate(c *gin.Context) {
	if err := h.catalog.InvalidateCache(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
