package reports

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, report *Report) error
	GetByID(ctx context.Context, id uuid.UUID) (*Report, error)
	GetAll(ctx context.Context, query ReportListQuery) ([]Report, int64, error)
	Resolve(ctx context.Context, id, adminID uuid.UUID, to ReportStatus, resolution string) (bool, error)
	OperatorDashboard(ctx context.Context, operatorID uuid.UUID) (*OperatorDashboard, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, report *Report) error {
	if err := r.db.WithContext(ctx).Create(report).Error; err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Report, error) {
	var report Report
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&report).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, fmt.Errorf("failed to get report: %w", err)
	}
	return &report, nil
}

func (r *repository) GetAll(ctx context.Context, query ReportListQuery) ([]Report, int64, error) {
	page := query.Page
	if page < 1 {
		page = 1
	}
	limit := query.Limit
	if limit < 1 || limit > 100 {
		limit = 20
	}

	db := r.db.WithContext(ctx).Model(&Report{})
	if query.Status != "" {
		db = db.Where("status = ?", query.Status)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count reports: %w", err)
	}

	var reports []Report
	err := db.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&reports).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list reports: %w", err)
	}

	return reports, total, nil
}

// Resolve closes an open report. The update only lands while the report is
// still open, so two admins deciding at once resolve to one winner.
func (r *repository) Resolve(ctx context.Context, id, adminID uuid.UUID, to ReportStatus, resolution string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&Report{}).
		Where("id = ? AND status = ?", id, StatusOpen).
		Updates(map[string]interface{}{
			"status":      to,
			"resolved_by": adminID,
			"resolution":  resolution,
			"resolved_at": time.Now(),
		})
	if result.Error != nil {
		return false, fmt.Errorf("failed to resolve report: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

type packageRow struct {
	ID             uuid.UUID
	Title          string
	Status         string
	TotalSeats     int
	AvailableSeats int
	SeatsSold      int64
	Revenue        decimal.Decimal
}

func (r *repository) OperatorDashboard(ctx context.Context, operatorID uuid.UUID) (*OperatorDashboard, error) {
	dashboard := &OperatorDashboard{
		TotalRevenue: decimal.Zero,
		PackageStats: []PackageStats{},
	}

	var rows []packageRow
	err := r.db.WithContext(ctx).
		Table("tour_packages AS p").
		Select(`p.id, p.title, p.status, p.total_seats, p.available_seats,
			COALESCE(SUM(CASE WHEN b.status IN ('pending', 'confirmed', 'completed') THEN b.quantity ELSE 0 END), 0) as seats_sold,
			COALESCE(SUM(CASE WHEN b.status IN ('confirmed', 'completed') THEN b.final_amount ELSE 0 END), 0) as revenue`).
		Joins("LEFT JOIN bookings b ON b.package_id = p.id").
		Where("p.operator_id = ?", operatorID).
		Group("p.id, p.title, p.status, p.total_seats, p.available_seats").
		Order("p.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load package stats: %w", err)
	}

	for _, row := range rows {
		stats := PackageStats{
			PackageID:      row.ID.String(),
			Title:          row.Title,
			Status:         row.Status,
			TotalSeats:     row.TotalSeats,
			AvailableSeats: row.AvailableSeats,
			SeatsSold:      row.SeatsSold,
			Revenue:        row.Revenue,
		}
		if row.TotalSeats > 0 {
			stats.Utilization = float64(row.SeatsSold) / float64(row.TotalSeats)
		}
		dashboard.PackageStats = append(dashboard.PackageStats, stats)
		dashboard.TotalRevenue = dashboard.TotalRevenue.Add(row.Revenue)
	}
	dashboard.TotalPackages = int64(len(rows))

	err = r.db.WithContext(ctx).
		Table("bookings b").
		Joins("JOIN tour_packages p ON p.id = b.package_id").
		Where("p.operator_id = ? AND b.status IN ?", operatorID, []string{"pending", "confirmed"}).
		Count(&dashboard.ActiveBookings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count active bookings: %w", err)
	}

	return dashboard, nil
}
