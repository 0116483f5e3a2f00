package models

// ContactRequest is the public contact-form payload relayed by email.
type ContactRequest struct {
	FullName string `json:"full_name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone"`
	Message  string `json:"message" validate:"required"`
}

// PaymentCount reports how many successful payments the gateway has recorded
// for the configured order.
type PaymentCount struct {
	Count int `json:"count"`
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
