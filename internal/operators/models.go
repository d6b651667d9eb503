package operators

import (
	"time"

	"hawabodol/internal/packages"
)

type OperatorListQuery struct {
	Page   int    `form:"page" binding:"omitempty,min=1"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Status string `form:"status" binding:"omitempty,oneof=active pending suspended inactive"`
	Search string `form:"search"`
}

type SuspendOperatorRequest struct {
	Reason string `json:"reason" binding:"required,min=5"`
}

type OperatorSummary struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	CompanyName string     `json:"company_name"`
	Status      string     `json:"status"`
	VerifiedAt  *time.Time `json:"verified_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

type PaginatedOperators struct {
	Operators  []OperatorSummary `json:"operators"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
}

// OperatorProfile is the public view of a verified operator.
type OperatorProfile struct {
	ID                 string                     `json:"id"`
	Name               string                     `json:"name"`
	CompanyName        string                     `json:"company_name"`
	CompanyLogo        string                     `json:"company_logo,omitempty"`
	CompanyDescription string                     `json:"company_description,omitempty"`
	Website            string                     `json:"website,omitempty"`
	VerifiedAt         *time.Time                 `json:"verified_at,omitempty"`
	Packages           []packages.PackageResponse `json:"packages"`
}
