package bookings

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"hawabodol/internal/packages"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	// A single connection keeps every goroutine on the same in-memory
	// database and serializes writes.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&packages.TourPackage{}, &packages.PackageCategory{}, &Booking{}); err != nil {
		t.Fatalf("failed to migrate test schema: %v", err)
	}

	return db
}

func createTestPackage(t *testing.T, db *gorm.DB, totalSeats int, price int64, status packages.PackageStatus) *packages.TourPackage {
	t.Helper()

	pkg := &packages.TourPackage{
		OperatorID:     uuid.New(),
		Title:          "Sajek Valley Getaway",
		Location:       "Sajek",
		StartDate:      time.Now().Add(30 * 24 * time.Hour),
		EndDate:        time.Now().Add(33 * 24 * time.Hour),
		TotalSeats:     totalSeats,
		AvailableSeats: totalSeats,
		BasePrice:      decimal.NewFromInt(price),
		Status:         status,
	}
	if err := db.Create(pkg).Error; err != nil {
		t.Fatalf("failed to create test package: %v", err)
	}
	return pkg
}

func currentSeats(t *testing.T, db *gorm.DB, packageID uuid.UUID) int {
	t.Helper()

	var pkg packages.TourPackage
	if err := db.Where("id = ?", packageID).First(&pkg).Error; err != nil {
		t.Fatalf("failed to reload package: %v", err)
	}
	return pkg.AvailableSeats
}

func TestCreateBookingDecrementsSeatsAndComputesAmounts(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(NewRepository(db))
	ctx := context.Background()

	pkg := createTestPackage(t, db, 20, 1000, packages.StatusPublished)
	touristID := uuid.New()

	resp, err := svc.CreateBooking(ctx, touristID, CreateBookingRequest{
		PackageID: pkg.ID.String(),
		Quantity:  5,
	})
	if err != nil {
		t.Fatalf("CreateBooking failed: %v", err)
	}

	if resp.Status != StatusPending {
		t.Errorf("new booking status = %s, want %s", resp.Status, StatusPending)
	}
	if !resp.TotalAmount.Equal(decimal.NewFromInt(5000)) {
		t.Errorf("total amount = %s, want 5000", resp.TotalAmount)
	}
	if !resp.DiscountAmount.Equal(decimal.Zero) {
		t.Errorf("discount amount = %s, want 0", resp.DiscountAmount)
	}
	if !resp.FinalAmount.Equal(decimal.NewFromInt(5000)) {
		t.Errorf("final amount = %s, want 5000", resp.FinalAmount)
	}
	if resp.BookingRef == "" {
		t.Error("booking ref should be generated")
	}

	if seats := currentSeats(t, db, pkg.ID); seats != 15 {
		t.Errorf("available seats = %d, want 15", seats)
	}
}

func TestCreateBookingRejectsOverCapacity(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(NewRepository(db))
	ctx := context.Background()

	pkg := createTestPackage(t, db, 20, 1000, packages.StatusPublished)

	_, err := svc.CreateBooking(ctx, uuid.New(), CreateBookingRequest{
		PackageID: pkg.ID.String(),
		Quantity:  25,
	})
	if err != ErrInsufficientSeats {
		t.Fatalf("expected ErrInsufficientSeats, got %v", err)
	}

	if seats := currentSeats(t, db, pkg.ID); seats != 20 {
		t.Errorf("failed booking must not change seats: got %d, want 20", seats)
	}
}

func TestCreateBookingRejectsUnpublishedPackage(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(NewRepository(db))
	ctx := context.Background()

	for _, status := range []packages.PackageStatus{packages.StatusDraft, packages.StatusClosed, packages.StatusCancelled} {
		pkg := createTestPackage(t, db, 10, 500, status)
		_, err := svc.CreateBooking(ctx, uuid.New(), CreateBookingRequest{
			PackageID: pkg.ID.String(),
			Quantity:  1,
		})
		if err != ErrPackageNotOpen {
			t.Errorf("status %s: expected ErrPackageNotOpen, got %v", status, err)
		}
	}
}

func TestCreateBookingUnknownPackage(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(NewRepository(db))

	_, err := svc.CreateBooking(context.Background(), uuid.New(), CreateBookingRequest{
		PackageID: uuid.New().String(),
		Quantity:  1,
	})
	if err != ErrPackageNotFound {
		t.Fatalf("expected ErrPackageNotFound, got %v", err)
	}
}

func TestCreateBookingWithCategoryPrice(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(NewRepository(db))
	ctx := context.Background()

	pkg := createTestPackage(t, db, 20, 1000, packages.StatusPublished)
	category := &packages.PackageCategory{
		PackageID: pkg.ID,
		Name:      "Deluxe",
		Price:     decimal.NewFromInt(1500),
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create category: %v", err)
	}

	resp, err := svc.CreateBooking(ctx, uuid.New(), CreateBookingRequest{
		PackageID:  pkg.ID.String(),
		CategoryID: category.ID.String(),
		Quantity:   2,
	})
	if err != nil {
		t.Fatalf("CreateBooking failed: %v", err)
	}

	if !resp.FinalAmount.Equal(decimal.NewFromInt(3000)) {
		t.Errorf("final amount = %s, want 3000", resp.FinalAmount)
	}
}

func TestCreateBookingCategoryFromOtherPackage(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(NewRepository(db))
	ctx := context.Background()

	pkg := createTestPackage(t, db, 20, 1000, packages.StatusPublished)
	other := createTestPackage(t, db, 10, 800, packages.StatusPublished)
	category := &packages.PackageCategory{
		PackageID: other.ID,
		Name:      "Standard",
		Price:     decimal.NewFromInt(800),
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create category: %v", err)
	}

	_, err := svc.CreateBooking(ctx, uuid.New(), CreateBookingRequest{
		PackageID:  pkg.ID.String(),
		CategoryID: category.ID.String(),
		Quantity:   1,
	})
	if err != ErrCategoryNotFound {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}

	if seats := currentSeats(t, db, pkg.ID); seats != 20 {
		t.Errorf("failed booking must not change seats: got %d, want 20", seats)
	}
}

func TestCancelRestoresSeats(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(NewRepository(db))
	ctx := context.Background()

	pkg := createTestPackage(t, db, 20, 1000, packages.StatusPublished)
	touristID := uuid.New()

	resp, err := svc.CreateBooking(ctx, touristID, CreateBookingRequest{
		PackageID: pkg.ID.String(),
		Quantity:  5,
	})
	if err != nil {
		t.Fatalf("CreateBooking failed: %v", err)
	}
	if seats := currentSeats(t, db, pkg.ID); seats != 15 {
		t.Fatalf("available seats after booking = %d, want 15", seats)
	}

	bookingID := uuid.MustParse(resp.ID)
	cancelled, err := svc.UpdateBookingStatus(ctx, bookingID, touristID, "tourist", StatusCancelled)
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if cancelled.Status != StatusCancelled {
		t.Errorf("status after cancel = %s, want %s", cancelled.Status, StatusCancelled)
	}
	if cancelled.CancelledAt == nil {
		t.Error("cancelled_at should be set")
	}

	if seats := currentSeats(t, db, pkg.ID); seats != 20 {
		t.Errorf("available seats after cancel = %d, want 20", seats)
	}

	// Now a booking for more than the original remainder succeeds.
	if _, err := svc.CreateBooking(ctx, touristID, CreateBookingRequest{
		PackageID: pkg.ID.String(),
		Quantity:  18,
	}); err != nil {
		t.Fatalf("rebooking after cancel failed: %v", err)
	}
}

func TestCancelIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(NewRepository(db))
	ctx := context.Background()

	pkg := createTestPackage(t, db, 20, 1000, packages.StatusPublished)
	touristID := uuid.New()

	resp, err := svc.CreateBooking(ctx, touristID, CreateBookingRequest{
		PackageID: pkg.ID.String(),
		Quantity:  4,
	})
	if err != nil {
		t.Fatalf("CreateBooking failed: %v", err)
	}
	bookingID := uuid.MustParse(resp.ID)

	if _, err := svc.UpdateBookingStatus(ctx, bookingID, touristID, "tourist", StatusCancelled); err != nil {
		t.Fatalf("first cancel failed: %v", err)
	}
	if _, err := svc.UpdateBookingStatus(ctx, bookingID, touristID, "tourist", StatusCancelled); err != nil {
		t.Fatalf("second cancel should be a no-op, got %v", err)
	}

	// Seats restored exactly once.
	if seats := currentSeats(t, db, pkg.ID); seats != 20 {
		t.Errorf("available seats after double cancel = %d, want 20", seats)
	}
}

func TestCancelledBookingStaysHiddenFromStrangers(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(NewRepository(db))
	ctx := context.Background()

	pkg := createTestPackage(t, db, 20, 1000, packages.StatusPublished)
	touristID := uuid.New()

	resp, err := svc.CreateBooking(ctx, touristID, CreateBookingRequest{
		PackageID:       pkg.ID.String(),
		Quantity:        2,
		SpecialRequests: "window seat",
	})
	if err != nil {
		t.Fatalf("CreateBooking failed: %v", err)
	}
	bookingID := uuid.MustParse(resp.ID)

	if _, err := svc.UpdateBookingStatus(ctx, bookingID, touristID, "tourist", StatusCancelled); err != nil {
		t.Fatalf("owner cancel failed: %v", err)
	}

	// The no-op cancel path must not hand a cancelled booking to anyone
	// who could not have cancelled it in the first place.
	if _, err := svc.UpdateBookingStatus(ctx, bookingID, uuid.New(), "tourist", StatusCancelled); err != ErrForbidden {
		t.Errorf("stranger cancel of cancelled booking: expected ErrForbidden, got %v", err)
	}
	if _, err := svc.UpdateBookingStatus(ctx, bookingID, uuid.New(), "operator", StatusCancelled); err != ErrForbidden {
		t.Errorf("unrelated operator cancel of cancelled booking: expected ErrForbidden, got %v", err)
	}
}

func TestStatusTransitionPermissions(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(NewRepository(db))
	ctx := context.Background()

	pkg := createTestPackage(t, db, 20, 1000, packages.StatusPublished)
	touristID := uuid.New()

	resp, err := svc.CreateBooking(ctx, touristID, CreateBookingRequest{
		PackageID: pkg.ID.String(),
		Quantity:  2,
	})
	if err != nil {
		t.Fatalf("CreateBooking failed: %v", err)
	}
	bookingID := uuid.MustParse(resp.ID)

	// A tourist cannot confirm their own booking.
	if _, err := svc.UpdateBookingStatus(ctx, bookingID, touristID, "tourist", StatusConfirmed); err != ErrForbidden {
		t.Errorf("tourist confirm: expected ErrForbidden, got %v", err)
	}

	// A stranger cannot cancel someone else's booking.
	if _, err := svc.UpdateBookingStatus(ctx, bookingID, uuid.New(), "tourist", StatusCancelled); err != ErrForbidden {
		t.Errorf("stranger cancel: expected ErrForbidden, got %v", err)
	}

	// The owning operator confirms, which also records the payment.
	confirmed, err := svc.UpdateBookingStatus(ctx, bookingID, pkg.OperatorID, "operator", StatusConfirmed)
	if err != nil {
		t.Fatalf("operator confirm failed: %v", err)
	}
	if !confirmed.PaymentStatus {
		t.Error("confirming a booking should mark it paid")
	}

	// No path from confirmed back to pending.
	if _, err := svc.UpdateBookingStatus(ctx, bookingID, pkg.OperatorID, "operator", StatusPending); err != ErrInvalidTransition {
		t.Errorf("confirmed->pending: expected ErrInvalidTransition, got %v", err)
	}

	// Refunded is unreachable through the status endpoint, even for admins.
	if _, err := svc.UpdateBookingStatus(ctx, bookingID, uuid.New(), "admin", StatusRefunded); err != ErrForbidden {
		t.Errorf("admin refund via status: expected ErrForbidden, got %v", err)
	}
}

func TestMarkRefundedDoesNotRestoreSeats(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(NewRepository(db))
	ctx := context.Background()

	pkg := createTestPackage(t, db, 20, 1000, packages.StatusPublished)
	touristID := uuid.New()

	resp, err := svc.CreateBooking(ctx, touristID, CreateBookingRequest{
		PackageID: pkg.ID.String(),
		Quantity:  3,
	})
	if err != nil {
		t.Fatalf("CreateBooking failed: %v", err)
	}
	bookingID := uuid.MustParse(resp.ID)

	if _, err := svc.UpdateBookingStatus(ctx, bookingID, pkg.OperatorID, "operator", StatusConfirmed); err != nil {
		t.Fatalf("confirm failed: %v", err)
	}

	refunded, err := svc.MarkRefunded(ctx, bookingID)
	if err != nil {
		t.Fatalf("MarkRefunded failed: %v", err)
	}
	if refunded.Status != StatusRefunded {
		t.Errorf("status = %s, want %s", refunded.Status, StatusRefunded)
	}
	if refunded.RefundedAt == nil {
		t.Error("refunded_at should be set")
	}

	if seats := currentSeats(t, db, pkg.ID); seats != 17 {
		t.Errorf("refund must not restore seats: got %d, want 17", seats)
	}

	// Pending bookings cannot be refunded.
	resp2, err := svc.CreateBooking(ctx, touristID, CreateBookingRequest{
		PackageID: pkg.ID.String(),
		Quantity:  1,
	})
	if err != nil {
		t.Fatalf("CreateBooking failed: %v", err)
	}
	if _, err := svc.MarkRefunded(ctx, uuid.MustParse(resp2.ID)); err != ErrInvalidTransition {
		t.Errorf("refund of pending booking: expected ErrInvalidTransition, got %v", err)
	}
}

func TestConcurrentBookingsNeverOversell(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(NewRepository(db))
	ctx := context.Background()

	const totalSeats = 20
	const attempts = 30

	pkg := createTestPackage(t, db, totalSeats, 1000, packages.StatusPublished)

	var wg sync.WaitGroup
	results := make(chan error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.CreateBooking(ctx, uuid.New(), CreateBookingRequest{
				PackageID: pkg.ID.String(),
				Quantity:  1,
			})
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	succeeded := 0
	rejected := 0
	for err := range results {
		switch err {
		case nil:
			succeeded++
		case ErrInsufficientSeats:
			rejected++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if succeeded != totalSeats {
		t.Errorf("successful bookings = %d, want %d", succeeded, totalSeats)
	}
	if rejected != attempts-totalSeats {
		t.Errorf("rejected bookings = %d, want %d", rejected, attempts-totalSeats)
	}

	if seats := currentSeats(t, db, pkg.ID); seats != 0 {
		t.Errorf("available seats = %d, want 0", seats)
	}

	// Sum of active booking quantities plus remaining seats equals total.
	var booked int64
	if err := db.Model(&Booking{}).
		Where("package_id = ? AND status IN ?", pkg.ID, []Status{StatusPending, StatusConfirmed}).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&booked).Error; err != nil {
		t.Fatalf("failed to sum bookings: %v", err)
	}
	if int(booked) != totalSeats {
		t.Errorf("booked seats = %d, want %d", booked, totalSeats)
	}
}
