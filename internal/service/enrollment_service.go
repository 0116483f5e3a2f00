package service

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/leadthebusiness/platform-api/internal/models"
	appErrors "github.com/leadthebusiness/platform-api/pkg/errors"
	"github.com/leadthebusiness/platform-api/pkg/export"
	"github.com/leadthebusiness/platform-api/pkg/listing"
)

type enrollmentRepository interface {
	ListAll(ctx context.Context) ([]models.Enrollment, error)
	FindByID(ctx context.Context, id int64) (*models.Enrollment, error)
	FindByEmail(ctx context.Context, email string) (*models.Enrollment, error)
	ExistsEmail(ctx context.Context, email string) (bool, error)
	NextID(ctx context.Context) (int64, error)
	Create(ctx context.Context, enrollment *models.Enrollment) error
	Update(ctx context.Context, enrollment *models.Enrollment) error
	Delete(ctx context.Context, id int64) error
}

// CreateEnrollmentRequest describes the public application form payload.
type CreateEnrollmentRequest struct {
	Name       string  `json:"name" validate:"required"`
	Email      string  `json:"email" validate:"required,email"`
	Phone      string  `json:"phone" validate:"required"`
	Address    string  `json:"address"`
	Course     string  `json:"course" validate:"required"`
	Experience string  `json:"experience" validate:"required"`
	Amount     float64 `json:"amount" validate:"gte=0"`
}

// UpdateEnrollmentRequest describes the dashboard's record edit payload.
// Nil fields are left untouched.
type UpdateEnrollmentRequest struct {
	Name          *string                  `json:"name"`
	Phone         *string                  `json:"phone"`
	Address       *string                  `json:"address"`
	Course        *string                  `json:"course"`
	Experience    *string                  `json:"experience"`
	Amount        *float64                 `json:"amount"`
	PaymentStatus *models.PaymentStatus    `json:"payment_status"`
	Status        *models.EnrollmentStatus `json:"status"`
}

// ExportResult carries a rendered enrollment export ready for download.
type ExportResult struct {
	Filename    string
	ContentType string
	Content     []byte
}

// EnrollmentService orchestrates the enrollment dashboard: listing with
// in-memory filtering, record CRUD, header stats, and file exports.
type EnrollmentService struct {
	repo      enrollmentRepository
	csv       *export.CSVExporter
	pdf       *export.PDFExporter
	schema    listing.Schema[models.Enrollment]
	validator *validator.Validate
	logger    *zap.Logger
}

// NewEnrollmentService constructs EnrollmentService. The location controls
// which calendar day a record's application date falls on when filtering.
func NewEnrollmentService(repo enrollmentRepository, loc *time.Location, validate *validator.Validate, logger *zap.Logger) *EnrollmentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	schema := listing.Schema[models.Enrollment]{
		SearchFields: []func(models.Enrollment) string{
			func(e models.Enrollment) string { return e.Name },
			func(e models.Enrollment) string { return e.Email },
			func(e models.Enrollment) string { return e.Phone },
		},
		Category: func(e models.Enrollment) string { return e.Course },
		Timestamp: func(e models.Enrollment) (time.Time, bool) {
			return e.ApplicationDate, !e.ApplicationDate.IsZero()
		},
		SortFields: map[string]listing.SortField[models.Enrollment]{
			"date": {Kind: listing.Date, Time: func(e models.Enrollment) (time.Time, bool) {
				return e.ApplicationDate, !e.ApplicationDate.IsZero()
			}},
			"name":   {Kind: listing.Text, Text: func(e models.Enrollment) string { return e.Name }},
			"amount": {Kind: listing.Numeric, Number: func(e models.Enrollment) float64 { return e.Amount }},
		},
		Location: loc,
	}
	return &EnrollmentService{
		repo:      repo,
		csv:       export.NewCSVExporter(),
		pdf:       export.NewPDFExporter(),
		schema:    schema,
		validator: validate,
		logger:    logger,
	}
}

// List returns the filtered, sorted page of enrollments plus pagination
// metadata. TotalCount reflects the filtered set, not the page.
func (s *EnrollmentService) List(ctx context.Context, filter models.EnrollmentFilter) ([]models.Enrollment, *models.Pagination, error) {
	all, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list enrollments")
	}
	filtered := listing.Apply(all, s.schema, listing.Criteria{
		Search:   filter.Search,
		Category: filter.Course,
		Date:     filter.Date,
		SortKey:  filter.SortBy,
		Order:    listing.Direction(filter.SortOrder),
	})

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 20
	}
	pagination := &models.Pagination{Page: page, PageSize: size, TotalCount: len(filtered)}

	start := (page - 1) * size
	if start >= len(filtered) {
		return []models.Enrollment{}, pagination, nil
	}
	end := start + size
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[start:end], pagination, nil
}

// Get loads a single enrollment by id.
func (s *EnrollmentService) Get(ctx context.Context, id int64) (*models.Enrollment, error) {
	enrollment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "enrollment not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load enrollment")
	}
	return enrollment, nil
}

// GetByEmail loads a single enrollment by its unique email.
func (s *EnrollmentService) GetByEmail(ctx context.Context, email string) (*models.Enrollment, error) {
	enrollment, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "enrollment not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load enrollment")
	}
	return enrollment, nil
}

// Create registers a new enrollment from the public application form.
// Email must be unique across the collection.
func (s *EnrollmentService) Create(ctx context.Context, req CreateEnrollmentRequest) (*models.Enrollment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid enrollment payload")
	}
	if !contains(models.Courses, req.Course) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown course")
	}
	if !contains(models.ExperienceLevels, req.Experience) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown experience level")
	}
	exists, err := s.repo.ExistsEmail(ctx, req.Email)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to validate enrollment")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "email already enrolled")
	}
	id, err := s.repo.NextID(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to allocate enrollment id")
	}
	now := time.Now().UTC()
	enrollment := &models.Enrollment{
		ID:              id,
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		Address:         req.Address,
		Course:          req.Course,
		Experience:      req.Experience,
		Amount:          req.Amount,
		PaymentStatus:   models.PaymentStatusPending,
		Status:          models.EnrollmentStatusPending,
		ApplicationDate: now,
	}
	if err := s.repo.Create(ctx, enrollment); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create enrollment")
	}
	s.logger.Info("enrollment created", zap.Int64("id", id), zap.String("course", req.Course))
	return enrollment, nil
}

// Update applies a partial edit to an existing enrollment.
func (s *EnrollmentService) Update(ctx context.Context, id int64, req UpdateEnrollmentRequest) (*models.Enrollment, error) {
	enrollment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "enrollment not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load enrollment")
	}
	if req.Name != nil {
		enrollment.Name = *req.Name
	}
	if req.Phone != nil {
		enrollment.Phone = *req.Phone
	}
	if req.Address != nil {
		enrollment.Address = *req.Address
	}
	if req.Course != nil {
		if !contains(models.Courses, *req.Course) {
			return nil, appErrors.Clone(appErrors.ErrValidation, "unknown course")
		}
		enrollment.Course = *req.Course
	}
	if req.Experience != nil {
		if !contains(models.ExperienceLevels, *req.Experience) {
			return nil, appErrors.Clone(appErrors.ErrValidation, "unknown experience level")
		}
		enrollment.Experience = *req.Experience
	}
	if req.Amount != nil {
		if *req.Amount < 0 {
			return nil, appErrors.Clone(appErrors.ErrValidation, "amount must not be negative")
		}
		enrollment.Amount = *req.Amount
	}
	if req.PaymentStatus != nil {
		enrollment.PaymentStatus = *req.PaymentStatus
	}
	if req.Status != nil {
		enrollment.Status = *req.Status
	}
	enrollment.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, enrollment); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "enrollment not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update enrollment")
	}
	return enrollment, nil
}

// Delete removes an enrollment record.
func (s *EnrollmentService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "enrollment not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete enrollment")
	}
	s.logger.Info("enrollment deleted", zap.Int64("id", id))
	return nil
}

// Stats aggregates the dashboard header cards over the whole collection.
func (s *EnrollmentService) Stats(ctx context.Context) (*models.EnrollmentStats, error) {
	all, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load enrollments")
	}
	stats := &models.EnrollmentStats{TotalRecords: len(all)}
	for _, e := range all {
		if e.Status == models.EnrollmentStatusActive {
			stats.ActiveStudents++
		}
		if e.PaymentStatus == models.PaymentStatusPending {
			stats.PendingPayments++
		}
		stats.TotalRevenue += e.Amount
	}
	return stats, nil
}

// Export renders the filtered enrollment list as CSV or PDF. The same
// filter semantics as List apply, without pagination.
func (s *EnrollmentService) Export(ctx context.Context, filter models.EnrollmentFilter, format string) (*ExportResult, error) {
	all, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load enrollments")
	}
	filtered := listing.Apply(all, s.schema, listing.Criteria{
		Search:   filter.Search,
		Category: filter.Course,
		Date:     filter.Date,
		SortKey:  filter.SortBy,
		Order:    listing.Direction(filter.SortOrder),
	})

	dataset := export.Dataset{
		Title:   "Student Enrollments",
		Headers: []string{"ID", "Name", "Email", "Phone", "Course", "Experience", "Amount", "Payment Status", "Status", "Application Date"},
	}
	for _, e := range filtered {
		dataset.Rows = append(dataset.Rows, []string{
			strconv.FormatInt(e.ID, 10),
			e.Name,
			e.Email,
			e.Phone,
			e.Course,
			e.Experience,
			strconv.FormatFloat(e.Amount, 'f', 2, 64),
			string(e.PaymentStatus),
			string(e.Status),
			e.ApplicationDate.Format(listing.DayFormat),
		})
	}

	switch format {
	case "csv", "":
		content, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv export")
		}
		return &ExportResult{
			Filename:    fmt.Sprintf("enrollments-%s.csv", uuid.NewString()),
			ContentType: "text/csv",
			Content:     content,
		}, nil
	case "pdf":
		content, err := s.pdf.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf export")
		}
		return &ExportResult{
			Filename:    fmt.Sprintf("enrollments-%s.pdf", uuid.NewString()),
			ContentType: "application/pdf",
			Content:     content,
		}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported export format")
	}
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
