package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/leadthebusiness/platform-api/internal/models"
)

const enrollmentColumns = `id, name, email, phone, address, course, experience, amount,
        payment_status, status, application_date, created_at, updated_at`

// QueryObserver reports one query's label and elapsed time, typically into
// metrics.
type QueryObserver func(label string, elapsed time.Duration)

// EnrollmentRepository handles persistence of student enrollment records.
type EnrollmentRepository struct {
	db      *sqlx.DB
	observe QueryObserver
}

// NewEnrollmentRepository constructs the repository. observe may be nil.
func NewEnrollmentRepository(db *sqlx.DB, observe QueryObserver) *EnrollmentRepository {
	return &EnrollmentRepository{db: db, observe: observe}
}

func (r *EnrollmentRepository) timeQuery(label string) func() {
	if r.observe == nil {
		return func() {}
	}
	start := time.Now()
	return func() { r.observe(label, time.Since(start)) }
}

// ListAll returns the full enrollment snapshot ordered by application date,
// newest first. Filtering and sorting happen in memory downstream, so the
// snapshot is always complete.
func (r *EnrollmentRepository) ListAll(ctx context.Context) ([]models.Enrollment, error) {
	defer r.timeQuery("list_enrollments")()
	query := fmt.Sprintf(`SELECT %s FROM student_enrollments ORDER BY application_date DESC`, enrollmentColumns)
	var enrollments []models.Enrollment
	if err := r.db.SelectContext(ctx, &enrollments, query); err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	return enrollments, nil
}

// FindByID returns an enrollment by its numeric ID.
func (r *EnrollmentRepository) FindByID(ctx context.Context, id int64) (*models.Enrollment, error) {
	defer r.timeQuery("find_enrollment")()
	query := fmt.Sprintf(`SELECT %s FROM student_enrollments WHERE id = $1`, enrollmentColumns)
	var enrollment models.Enrollment
	if err := r.db.GetContext(ctx, &enrollment, query, id); err != nil {
		return nil, err
	}
	return &enrollment, nil
}

// FindByEmail returns an enrollment by its unique email.
func (r *EnrollmentRepository) FindByEmail(ctx context.Context, email string) (*models.Enrollment, error) {
	defer r.timeQuery("find_enrollment_by_email")()
	query := fmt.Sprintf(`SELECT %s FROM student_enrollments WHERE email = $1`, enrollmentColumns)
	var enrollment models.Enrollment
	if err := r.db.GetContext(ctx, &enrollment, query, email); err != nil {
		return nil, err
	}
	return &enrollment, nil
}

// ExistsEmail reports whether any record already uses the email.
func (r *EnrollmentRepository) ExistsEmail(ctx context.Context, email string) (bool, error) {
	defer r.timeQuery("enrollment_email_exists")()
	const query = `SELECT 1 FROM student_enrollments WHERE email = $1 LIMIT 1`
	var exists int
	if err := r.db.GetContext(ctx, &exists, query, email); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check enrollment email: %w", err)
	}
	return true, nil
}

// NextID returns the next sequential record ID, mirroring the submission
// form's max-plus-one assignment.
func (r *EnrollmentRepository) NextID(ctx context.Context) (int64, error) {
	defer r.timeQuery("next_enrollment_id")()
	const query = `SELECT COALESCE(MAX(id), 0) + 1 FROM student_enrollments`
	var next int64
	if err := r.db.GetContext(ctx, &next, query); err != nil {
		return 0, fmt.Errorf("next enrollment id: %w", err)
	}
	return next, nil
}

// Create persists a new enrollment record.
func (r *EnrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) error {
	defer r.timeQuery("create_enrollment")()
	now := time.Now().UTC()
	if enrollment.ApplicationDate.IsZero() {
		enrollment.ApplicationDate = now
	}
	if enrollment.CreatedAt.IsZero() {
		enrollment.CreatedAt = now
	}
	enrollment.UpdatedAt = now
	const query = `INSERT INTO student_enrollments (id, name, email, phone, address, course, experience,
        amount, payment_status, status, application_date, created_at, updated_at)
        VALUES (:id, :name, :email, :phone, :address, :course, :experience,
        :amount, :payment_status, :status, :application_date, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, enrollment); err != nil {
		return fmt.Errorf("create enrollment: %w", err)
	}
	return nil
}

// Update rewrites the mutable fields of an existing record.
func (r *EnrollmentRepository) Update(ctx context.Context, enrollment *models.Enrollment) error {
	defer r.timeQuery("update_enrollment")()
	enrollment.UpdatedAt = time.Now().UTC()
	const query = `UPDATE student_enrollments SET name = :name, email = :email, phone = :phone,
        address = :address, course = :course, experience = :experience, amount = :amount,
        payment_status = :payment_status, status = :status, updated_at = :updated_at
        WHERE id = :id`
	result, err := r.db.NamedExecContext(ctx, query, enrollment)
	if err != nil {
		return fmt.Errorf("update enrollment: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a record by ID.
func (r *EnrollmentRepository) Delete(ctx context.Context, id int64) error {
	defer r.timeQuery("delete_enrollment")()
	const query = `DELETE FROM student_enrollments WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete enrollment: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
