package handler

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadthebusiness/platform-api/internal/models"
	"github.com/leadthebusiness/platform-api/internal/service"
	"github.com/leadthebusiness/platform-api/pkg/response"
)

type fakeEnrollmentRepo struct {
	enrollments []models.Enrollment
}

func (f *fakeEnrollmentRepo) ListAll(ctx context.Context) ([]models.Enrollment, error) {
	return f.enrollments, nil
}

func (f *fakeEnrollmentRepo) FindByID(ctx context.Context, id int64) (*models.Enrollment, error) {
	for _, e := range f.enrollments {
		if e.ID == id {
			copied := e
			return &copied, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeEnrollmentRepo) FindByEmail(ctx context.Context, email string) (*models.Enrollment, error) {
	for _, e := range f.enrollments {
		if e.Email == email {
			copied := e
			return &copied, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeEnrollmentRepo) ExistsEmail(ctx context.Context, email string) (bool, error) {
	for _, e := range f.enrollments {
		if e.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeEnrollmentRepo) NextID(ctx context.Context) (int64, error) {
	return int64(len(f.enrollments) + 1), nil
}

func (f *fakeEnrollmentRepo) Create(ctx context.Context, e *models.Enrollment) error {
	f.enrollments = append(f.enrollments, *e)
	return nil
}

func (f *fakeEnrollmentRepo) Update(ctx context.Context, e *models.Enrollment) error {
	for i := range f.enrollments {
		if f.enrollments[i].ID == e.ID {
			f.enrollments[i] = *e
			return nil
		}
	}
	return sql.ErrNoRows
}

func (f *fakeEnrollmentRepo) Delete(ctx context.Context, id int64) error {
	for i := range f.enrollments {
		if f.enrollments[i].ID == id {
			f.enrollments = append(f.enrollments[:i], f.enrollments[i+1:]...)
			return nil
		}
	}
	return sql.ErrNoRows
}

func newEnrollmentRouter(repo *fakeEnrollmentRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := service.NewEnrollmentService(repo, time.Local, nil, nil)
	h := NewEnrollmentHandler(svc)
	r := gin.New()
	r.GET("/enrollments", h.List)
	r.POST("/enrollments", h.Create)
	r.GET("/enrollments/stats", h.Stats)
	r.GET("/enrollments/export", h.Export)
	r.GET("/enrollments/:id", h.Get)
	r.PUT("/enrollments/:id", h.Update)
	r.DELETE("/enrollments/:id", h.Delete)
	return r
}

func seedRepo() *fakeEnrollmentRepo {
	date := time.Date(2026, 8, 1, 10, 0, 0, 0, time.Local)
	return &fakeEnrollmentRepo{enrollments: []models.Enrollment{
		{ID: 1, Name: "Asha Verma", Email: "asha@example.com", Phone: "111", Course: "Full Stack Development", Experience: "Fresher", Amount: 500, PaymentStatus: models.PaymentStatusPaid, Status: models.EnrollmentStatusActive, ApplicationDate: date},
		{ID: 2, Name: "Bilal Khan", Email: "bilal@example.com", Phone: "222", Course: "Data Science", Experience: "Beginner", Amount: 1500, PaymentStatus: models.PaymentStatusPending, Status: models.EnrollmentStatusPending, ApplicationDate: date.Add(24 * time.Hour)},
	}}
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) response.Envelope {
	t.Helper()
	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return envelope
}

func TestEnrollmentHandlerList(t *testing.T) {
	r := newEnrollmentRouter(seedRepo())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/enrollments?course=Data+Science", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	envelope := decodeEnvelope(t, w)
	items, ok := envelope.Data.([]interface{})
	require.True(t, ok)
	assert.Len(t, items, 1)
	require.NotNil(t, envelope.Pagination)
	assert.Equal(t, 1, envelope.Pagination.TotalCount)
}

func TestEnrollmentHandlerListSearch(t *testing.T) {
	r := newEnrollmentRouter(seedRepo())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/enrollments?search=bilal", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "bilal@example.com")
	assert.NotContains(t, w.Body.String(), "asha@example.com")
}

func TestEnrollmentHandlerListByEmail(t *testing.T) {
	r := newEnrollmentRouter(seedRepo())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/enrollments?email=asha@example.com", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	envelope := decodeEnvelope(t, w)
	record, ok := envelope.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Asha Verma", record["name"])
	assert.Nil(t, envelope.Pagination)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/enrollments?email=nobody@example.com", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEnrollmentHandlerCreate(t *testing.T) {
	r := newEnrollmentRouter(seedRepo())

	payload, _ := json.Marshal(map[string]interface{}{
		"name":       "Divya Nair",
		"email":      "divya@example.com",
		"phone":      "444",
		"course":     "DevOps",
		"experience": "Intermediate",
		"amount":     750,
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/enrollments", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "divya@example.com")
}

func TestEnrollmentHandlerCreateDuplicateEmail(t *testing.T) {
	r := newEnrollmentRouter(seedRepo())

	payload, _ := json.Marshal(map[string]interface{}{
		"name":       "Other Asha",
		"email":      "asha@example.com",
		"phone":      "555",
		"course":     "DevOps",
		"experience": "Fresher",
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/enrollments", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestEnrollmentHandlerGetInvalidID(t *testing.T) {
	r := newEnrollmentRouter(seedRepo())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/enrollments/not-a-number", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEnrollmentHandlerUpdate(t *testing.T) {
	r := newEnrollmentRouter(seedRepo())

	payload, _ := json.Marshal(map[string]interface{}{"status": "Completed"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/enrollments/1", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Completed")
}

func TestEnrollmentHandlerDelete(t *testing.T) {
	repo := seedRepo()
	r := newEnrollmentRouter(repo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/enrollments/2", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Len(t, repo.enrollments, 1)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodDelete, "/enrollments/2", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEnrollmentHandlerStats(t *testing.T) {
	r := newEnrollmentRouter(seedRepo())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/enrollments/stats", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total_records":2`)
	assert.Contains(t, w.Body.String(), `"total_revenue":2000`)
}

func TestEnrollmentHandlerExport(t *testing.T) {
	r := newEnrollmentRouter(seedRepo())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/enrollments/export?format=csv", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment; filename=enrollments-")
	assert.Contains(t, w.Body.String(), "asha@example.com")
}
