package refunds

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
	refunds     Service
	bookingsSvc bookings.Service
	packagesSvc packages.Service
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

	if err := db.AutoMigrate(&packages.TourPackage{}, &packages.PackageCategory{}, &bookings.Booking{}, &RefundRequest{}); err != nil {
		t.Fatalf("failed to migrate test schema: %v", err)
	}

	bookingsSvc := bookings.NewService(bookings.NewRepository(db))
	packagesSvc := packages.NewService(packages.NewRepository(db))

	return &testEnv{
		db:          db,
		refunds:     NewService(NewRepository(db), bookingsSvc, packagesSvc),
		bookingsSvc: bookingsSvc,
		packagesSvc: packagesSvc,
	}
}

func (e *testEnv) createConfirmedBooking(t *testing.T, refundable bool) (touristID uuid.UUID, bookingID uuid.UUID, pkg *packages.TourPackage) {
	t.Helper()
	ctx := context.Background()

	pkg = &packages.TourPackage{
		OperatorID:     uuid.New(),
		Title:          "Sundarbans Cruise",
		Location:       "Khulna",
		StartDate:      time.Now().Add(20 * 24 * time.Hour),
		EndDate:        time.Now().Add(23 * 24 * time.Hour),
		TotalSeats:     10,
		AvailableSeats: 10,
		BasePrice:      decimal.NewFromInt(2500),
		Status:         packages.StatusPublished,
		IsRefundable:   refundable,
	}
	if err := e.db.Create(pkg).Error; err != nil {
		t.Fatalf("failed to create package: %v", err)
	}

	touristID = uuid.New()
	resp, err := e.bookingsSvc.CreateBooking(ctx, touristID, bookings.CreateBookingRequest{
		PackageID: pkg.ID.String(),
		Quantity:  2,
	})
	if err != nil {
		t.Fatalf("CreateBooking failed: %v", err)
	}
	bookingID = uuid.MustParse(resp.ID)

	if _, err := e.bookingsSvc.UpdateBookingStatus(ctx, bookingID, pkg.OperatorID, "operator", bookings.StatusConfirmed); err != nil {
		t.Fatalf("confirm failed: %v", err)
	}

	return touristID, bookingID, pkg
}

func TestRefundApprovalFlow(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	touristID, bookingID, pkg := env.createConfirmedBooking(t, true)

	req, err := env.refunds.CreateRefundRequest(ctx, touristID, CreateRefundRequest{
		BookingID: bookingID.String(),
		Reason:    "Trip dates no longer work for us",
	})
	if err != nil {
		t.Fatalf("CreateRefundRequest failed: %v", err)
	}
	if req.Status != StatusPending {
		t.Errorf("new request status = %s, want %s", req.Status, StatusPending)
	}
	if !req.Amount.Equal(decimal.NewFromInt(5000)) {
		t.Errorf("refund amount = %s, want 5000", req.Amount)
	}

	// A second open request for the same booking is rejected.
	if _, err := env.refunds.CreateRefundRequest(ctx, touristID, CreateRefundRequest{
		BookingID: bookingID.String(),
		Reason:    "Asking again to be sure",
	}); err != ErrOpenRequestExists {
		t.Errorf("duplicate request: expected ErrOpenRequestExists, got %v", err)
	}

	adminID := uuid.New()
	approved, err := env.refunds.ApproveRefund(ctx, adminID, uuid.MustParse(req.ID), "ok")
	if err != nil {
		t.Fatalf("ApproveRefund failed: %v", err)
	}
	if approved.Status != StatusApproved {
		t.Errorf("status = %s, want %s", approved.Status, StatusApproved)
	}
	if approved.DecidedAt == nil {
		t.Error("decided_at should be set")
	}

	booking, err := env.bookingsSvc.GetBookingByUUID(ctx, bookingID)
	if err != nil {
		t.Fatalf("failed to reload booking: %v", err)
	}
	if booking.Status != bookings.StatusRefunded {
		t.Errorf("booking status = %s, want %s", booking.Status, bookings.StatusRefunded)
	}

	// Refund approval never releases seats.
	var reloaded packages.TourPackage
	if err := env.db.Where("id = ?", pkg.ID).First(&reloaded).Error; err != nil {
		t.Fatalf("failed to reload package: %v", err)
	}
	if reloaded.AvailableSeats != 8 {
		t.Errorf("available seats = %d, want 8", reloaded.AvailableSeats)
	}

	// Deciding again fails.
	if _, err := env.refunds.ApproveRefund(ctx, adminID, uuid.MustParse(req.ID), "again"); err != ErrAlreadyDecided {
		t.Errorf("second approval: expected ErrAlreadyDecided, got %v", err)
	}
}

func TestRefundRejectionKeepsBooking(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	touristID, bookingID, _ := env.createConfirmedBooking(t, true)

	req, err := env.refunds.CreateRefundRequest(ctx, touristID, CreateRefundRequest{
		BookingID: bookingID.String(),
		Reason:    "Changed my mind about the trip",
	})
	if err != nil {
		t.Fatalf("CreateRefundRequest failed: %v", err)
	}

	rejected, err := env.refunds.RejectRefund(ctx, uuid.New(), uuid.MustParse(req.ID), "outside refund window")
	if err != nil {
		t.Fatalf("RejectRefund failed: %v", err)
	}
	if rejected.Status != StatusRejected {
		t.Errorf("status = %s, want %s", rejected.Status, StatusRejected)
	}

	booking, err := env.bookingsSvc.GetBookingByUUID(ctx, bookingID)
	if err != nil {
		t.Fatalf("failed to reload booking: %v", err)
	}
	if booking.Status != bookings.StatusConfirmed {
		t.Errorf("booking status = %s, want %s", booking.Status, bookings.StatusConfirmed)
	}

	// Rejection closes the request, so a new one may be filed.
	if _, err := env.refunds.CreateRefundRequest(ctx, touristID, CreateRefundRequest{
		BookingID: bookingID.String(),
		Reason:    "Second attempt with more detail",
	}); err != nil {
		t.Errorf("new request after rejection failed: %v", err)
	}
}

func TestRefundEligibilityChecks(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	// Pending bookings are not refundable.
	pkg := &packages.TourPackage{
		OperatorID:     uuid.New(),
		Title:          "Cox's Bazar Weekend",
		Location:       "Cox's Bazar",
		StartDate:      time.Now().Add(10 * 24 * time.Hour),
		EndDate:        time.Now().Add(12 * 24 * time.Hour),
		TotalSeats:     5,
		AvailableSeats: 5,
		BasePrice:      decimal.NewFromInt(1200),
		Status:         packages.StatusPublished,
		IsRefundable:   true,
	}
	if err := env.db.Create(pkg).Error; err != nil {
		t.Fatalf("failed to create package: %v", err)
	}

	touristID := uuid.New()
	resp, err := env.bookingsSvc.CreateBooking(ctx, touristID, bookings.CreateBookingRequest{
		PackageID: pkg.ID.String(),
		Quantity:  1,
	})
	if err != nil {
		t.Fatalf("CreateBooking failed: %v", err)
	}

	if _, err := env.refunds.CreateRefundRequest(ctx, touristID, CreateRefundRequest{
		BookingID: resp.ID,
		Reason:    "Want my money back already",
	}); err != ErrBookingNotRefundable {
		t.Errorf("pending booking: expected ErrBookingNotRefundable, got %v", err)
	}

	// Someone else's booking is off limits.
	_, bookingID, _ := env.createConfirmedBooking(t, true)
	if _, err := env.refunds.CreateRefundRequest(ctx, uuid.New(), CreateRefundRequest{
		BookingID: bookingID.String(),
		Reason:    "Refund for a booking I do not own",
	}); err != ErrNotYourBooking {
		t.Errorf("foreign booking: expected ErrNotYourBooking, got %v", err)
	}

	// Non-refundable packages refuse refund requests.
	touristID2, bookingID2, _ := env.createConfirmedBooking(t, false)
	if _, err := env.refunds.CreateRefundRequest(ctx, touristID2, CreateRefundRequest{
		BookingID: bookingID2.String(),
		Reason:    "Please make an exception",
	}); err != ErrBookingNotRefundable {
		t.Errorf("non-refundable package: expected ErrBookingNotRefundable, got %v", err)
	}
}
