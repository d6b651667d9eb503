package reports

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ReportStatus string

const (
	StatusOpen      ReportStatus = "open"
	StatusResolved  ReportStatus = "resolved"
	StatusDismissed ReportStatus = "dismissed"
)

// Report is a tourist complaint against a package, moderated by admins.
type Report struct {
	ID         uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	PackageID  uuid.UUID    `gorm:"type:uuid;index;not null" json:"package_id"`
	ReporterID uuid.UUID    `gorm:"type:uuid;index;not null" json:"reporter_id"`
	Title      string       `gorm:"not null;size:255" json:"title"`
	Reason     string       `gorm:"type:text;not null" json:"reason"`
	Status     ReportStatus `gorm:"type:varchar(20);not null;default:'open';index" json:"status"`
	ResolvedBy *uuid.UUID   `gorm:"type:uuid" json:"resolved_by,omitempty"`
	Resolution string       `gorm:"type:text" json:"resolution,omitempty"`
	ResolvedAt *time.Time   `json:"resolved_at,omitempty"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

func (Report) TableName() string {
	return "reports"
}

func (r *Report) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

type CreateReportRequest struct {
	PackageID string `json:"package_id" binding:"required,uuid"`
	Title     string `json:"title" binding:"required,min=3,max=255"`
	Reason    string `json:"reason" binding:"required,min=10,max=5000"`
}

type ResolveReportRequest struct {
	Action     string `json:"action" binding:"required,oneof=resolve dismiss"`
	Resolution string `json:"resolution" binding:"required,min=5,max=5000"`
}

type ReportListQuery struct {
	Page   int    `form:"page" binding:"omitempty,min=1"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Status string `form:"status" binding:"omitempty,oneof=open resolved dismissed"`
}

type PaginatedReports struct {
	Reports    []Report `json:"reports"`
	Total      int64    `json:"total"`
	Page       int      `json:"page"`
	Limit      int      `json:"limit"`
	TotalPages int      `json:"total_pages"`
}

// PackageStats is the per-package slice of an operator dashboard.
type PackageStats struct {
	PackageID      string          `json:"package_id"`
	Title          string          `json:"title"`
	Status         string          `json:"status"`
	TotalSeats     int             `json:"total_seats"`
	AvailableSeats int             `json:"available_seats"`
	SeatsSold      int64           `json:"seats_sold"`
	Utilization    float64         `json:"utilization"`
	Revenue        decimal.Decimal `json:"revenue"`
}

type OperatorDashboard struct {
	TotalPackages  int64           `json:"total_packages"`
	ActiveBookings int64           `json:"active_bookings"`
	TotalRevenue   decimal.Decimal `json:"total_revenue"`
	PackageStats   []PackageStats  `json:"package_stats"`
}
