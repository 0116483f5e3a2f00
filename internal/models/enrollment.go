package models

import "time"

// PaymentStatus tracks how much of the course fee has been received.
type PaymentStatus string

// Possible payment statuses.
const (
	PaymentStatusPaid    PaymentStatus = "Paid"
	PaymentStatusPending PaymentStatus = "Pending"
	PaymentStatusPartial PaymentStatus = "Partial"
)

// EnrollmentStatus represents the lifecycle of a student enrollment.
type EnrollmentStatus string

// Possible enrollment statuses.
const (
	EnrollmentStatusActive      EnrollmentStatus = "Active"
	EnrollmentStatusUnderReview EnrollmentStatus = "Under Review"
	EnrollmentStatusCompleted   EnrollmentStatus = "Completed"
	EnrollmentStatusPending     EnrollmentStatus = "Pending"
)

// Courses is the fixed catalog of programs an enrollment may reference.
var Courses = []string{
	"Full Stack Development",
	"Data Science",
	"Digital Marketing",
	"UI/UX Design",
	"Mobile App Development",
	"DevOps",
	"Cybersecurity",
}

// ExperienceLevels enumerates the accepted applicant experience values.
var ExperienceLevels = []string{"Fresher", "Beginner", "Intermediate", "Advanced"}

// Enrollment is one student enrollment record. Records are created through
// the public application form and only ever read by the dashboard; id and
// email are unique within the collection.
type Enrollment struct {
	ID              int64            `db:"id" json:"id"`
	Name            string           `db:"name" json:"name"`
	Email           string           `db:"email" json:"email"`
	Phone           string           `db:"phone" json:"phone"`
	Address         string           `db:"address" json:"address"`
	Course          string           `db:"course" json:"course"`
	Experience      string           `db:"experience" json:"experience"`
	Amount          float64          `db:"amount" json:"amount"`
	PaymentStatus   PaymentStatus    `db:"payment_status" json:"payment_status"`
	Status          EnrollmentStatus `db:"status" json:"status"`
	ApplicationDate time.Time        `db:"application_date" json:"application_date"`
	CreatedAt       time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time        `db:"updated_at" json:"updated_at"`
}

// EnrollmentFilter captures the dashboard's filter and sort controls for one
// render of the enrollment list.
type EnrollmentFilter struct {
	Search    string
	Course    string // "all" or an exact course name
	Date      string // calendar day, formatted 2006-01-02
	SortBy    string // date | name | amount
	SortOrder string // asc | desc
	Page      int
	PageSize  int
}

// EnrollmentStats summarises the dashboard header cards.
type EnrollmentStats struct {
	TotalRecords    int     `json:"total_records"`
	ActiveStudents  int     `json:"active_students"`
	PendingPayments int     `json:"pending_payments"`
	TotalRevenue    float64 `json:"total_revenue"`
}
