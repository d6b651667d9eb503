package reports

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"hawabodol/internal/bookings"
	"hawabodol/internal/packages"
)

type testEnv struct {
	db          *gorm.DB
	reports     Service
	bookingsSvc bookings.Service
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&packages.TourPackage{}, &packages.PackageCategory{}, &bookings.Booking{}, &Report{}); err != nil {
		t.Fatalf("failed to migrate test schema: %v", err)
	}

	packagesSvc := packages.NewService(packages.NewRepository(db))
	bookingsSvc := bookings.NewService(bookings.NewRepository(db))

	return &testEnv{
		db:          db,
		reports:     NewService(NewRepository(db), packagesSvc),
		bookingsSvc: bookingsSvc,
	}
}

func (e *testEnv) createPackage(t *testing.T, operatorID uuid.UUID, seats int, price int64) *packages.TourPackage {
	t.Helper()
	pkg := &packages.TourPackage{
		OperatorID:     operatorID,
		Title:          "Bandarban Hill Trek",
		Location:       "Bandarban",
		StartDate:      time.Now().Add(15 * 24 * time.Hour),
		EndDate:        time.Now().Add(18 * 24 * time.Hour),
		TotalSeats:     seats,
		AvailableSeats: seats,
		BasePrice:      decimal.NewFromInt(price),
		Status:         packages.StatusPublished,
		IsRefundable:   true,
	}
	if err := e.db.Create(pkg).Error; err != nil {
		t.Fatalf("failed to create package: %v", err)
	}
	return pkg
}

func TestReportLifecycle(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	pkg := env.createPackage(t, uuid.New(), 10, 2000)
	reporterID := uuid.New()

	report, err := env.reports.CreateReport(ctx, reporterID, CreateReportRequest{
		PackageID: pkg.ID.String(),
		Title:     "Misleading photos",
		Reason:    "The listed cover image is not the actual hotel on this trip",
	})
	if err != nil {
		t.Fatalf("CreateReport failed: %v", err)
	}
	if report.Status != StatusOpen {
		t.Errorf("new report status = %s, want %s", report.Status, StatusOpen)
	}

	open, err := env.reports.GetReports(ctx, ReportListQuery{Status: string(StatusOpen)})
	if err != nil {
		t.Fatalf("GetReports failed: %v", err)
	}
	if open.Total != 1 {
		t.Errorf("open report count = %d, want 1", open.Total)
	}

	adminID := uuid.New()
	resolved, err := env.reports.ResolveReport(ctx, adminID, report.ID, ResolveReportRequest{
		Action:     "resolve",
		Resolution: "Operator updated the listing photos",
	})
	if err != nil {
		t.Fatalf("ResolveReport failed: %v", err)
	}
	if resolved.Status != StatusResolved {
		t.Errorf("status = %s, want %s", resolved.Status, StatusResolved)
	}
	if resolved.ResolvedBy == nil || *resolved.ResolvedBy != adminID {
		t.Error("resolved_by should record the deciding admin")
	}
	if resolved.ResolvedAt == nil {
		t.Error("resolved_at should be set")
	}

	// Deciding again fails.
	if _, err := env.reports.ResolveReport(ctx, adminID, report.ID, ResolveReportRequest{
		Action:     "dismiss",
		Resolution: "changed my mind",
	}); err != ErrAlreadyResolved {
		t.Errorf("second decision: expected ErrAlreadyResolved, got %v", err)
	}
}

func TestDismissReport(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	pkg := env.createPackage(t, uuid.New(), 10, 2000)
	report, err := env.reports.CreateReport(ctx, uuid.New(), CreateReportRequest{
		PackageID: pkg.ID.String(),
		Title:     "Too expensive",
		Reason:    "This trip costs more than I think it should",
	})
	if err != nil {
		t.Fatalf("CreateReport failed: %v", err)
	}

	dismissed, err := env.reports.ResolveReport(ctx, uuid.New(), report.ID, ResolveReportRequest{
		Action:     "dismiss",
		Resolution: "Pricing is set by the operator, not a policy violation",
	})
	if err != nil {
		t.Fatalf("ResolveReport failed: %v", err)
	}
	if dismissed.Status != StatusDismissed {
		t.Errorf("status = %s, want %s", dismissed.Status, StatusDismissed)
	}
}

func TestReportUnknownPackage(t *testing.T) {
	env := setupTestEnv(t)

	_, err := env.reports.CreateReport(context.Background(), uuid.New(), CreateReportRequest{
		PackageID: uuid.New().String(),
		Title:     "Ghost package",
		Reason:    "This package does not seem to exist at all",
	})
	if err != packages.ErrPackageNotFound {
		t.Errorf("expected ErrPackageNotFound, got %v", err)
	}
}

func TestOperatorDashboard(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	operatorID := uuid.New()
	pkg := env.createPackage(t, operatorID, 20, 1000)

	confirmed, err := env.bookingsSvc.CreateBooking(ctx, uuid.New(), bookings.CreateBookingRequest{
		PackageID: pkg.ID.String(),
		Quantity:  5,
	})
	if err != nil {
		t.Fatalf("CreateBooking failed: %v", err)
	}
	if _, err := env.bookingsSvc.UpdateBookingStatus(ctx, uuid.MustParse(confirmed.ID), operatorID, "operator", bookings.StatusConfirmed); err != nil {
		t.Fatalf("confirm failed: %v", err)
	}

	if _, err := env.bookingsSvc.CreateBooking(ctx, uuid.New(), bookings.CreateBookingRequest{
		PackageID: pkg.ID.String(),
		Quantity:  3,
	}); err != nil {
		t.Fatalf("CreateBooking failed: %v", err)
	}

	dashboard, err := env.reports.GetOperatorDashboard(ctx, operatorID)
	if err != nil {
		t.Fatalf("GetOperatorDashboard failed: %v", err)
	}

	if dashboard.TotalPackages != 1 {
		t.Errorf("total packages = %d, want 1", dashboard.TotalPackages)
	}
	if dashboard.ActiveBookings != 2 {
		t.Errorf("active bookings = %d, want 2", dashboard.ActiveBookings)
	}
	// Revenue counts confirmed bookings only: 5 seats at 1000.
	if !dashboard.TotalRevenue.Equal(decimal.NewFromInt(5000)) {
		t.Errorf("revenue = %s, want 5000", dashboard.TotalRevenue)
	}

	if len(dashboard.PackageStats) != 1 {
		t.Fatalf("package stats length = %d, want 1", len(dashboard.PackageStats))
	}
	stats := dashboard.PackageStats[0]
	if stats.SeatsSold != 8 {
		t.Errorf("seats sold = %d, want 8", stats.SeatsSold)
	}
	if stats.AvailableSeats != 12 {
		t.Errorf("available seats = %d, want 12", stats.AvailableSeats)
	}
	if stats.Utilization != 0.4 {
		t.Errorf("utilization = %f, want 0.4", stats.Utilization)
	}
}
