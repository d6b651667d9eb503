package reviews

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
	reviews     Service
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

	if err := db.AutoMigrate(&packages.TourPackage{}, &packages.PackageCategory{}, &bookings.Booking{}, &Review{}); err != nil {
		t.Fatalf("failed to migrate test schema: %v", err)
	}

	packagesSvc := packages.NewService(packages.NewRepository(db))

	return &testEnv{
		db:          db,
		reviews:     NewService(NewRepository(db), packagesSvc),
		bookingsSvc: bookings.NewService(bookings.NewRepository(db)),
	}
}

func (e *testEnv) createPackage(t *testing.T, operatorID uuid.UUID) *packages.TourPackage {
	t.Helper()
	pkg := &packages.TourPackage{
		OperatorID:     operatorID,
		Title:          "Srimangal Tea Garden Tour",
		Location:       "Srimangal",
		StartDate:      time.Now().Add(10 * 24 * time.Hour),
		EndDate:        time.Now().Add(12 * 24 * time.Hour),
		TotalSeats:     15,
		AvailableSeats: 15,
		BasePrice:      decimal.NewFromInt(3500),
		Status:         packages.StatusPublished,
	}
	if err := e.db.Create(pkg).Error; err != nil {
		t.Fatalf("failed to create package: %v", err)
	}
	return pkg
}

// completedBooking walks a fresh booking through confirm and complete.
func (e *testEnv) completedBooking(t *testing.T, pkg *packages.TourPackage, touristID uuid.UUID) {
	t.Helper()
	ctx := context.Background()

	resp, err := e.bookingsSvc.CreateBooking(ctx, touristID, bookings.CreateBookingRequest{
		PackageID: pkg.ID.String(),
		Quantity:  1,
	})
	if err != nil {
		t.Fatalf("CreateBooking failed: %v", err)
	}
	bookingID := uuid.MustParse(resp.ID)

	if _, err := e.bookingsSvc.UpdateBookingStatus(ctx, bookingID, pkg.OperatorID, "operator", bookings.StatusConfirmed); err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
	if _, err := e.bookingsSvc.UpdateBookingStatus(ctx, bookingID, pkg.OperatorID, "operator", bookings.StatusCompleted); err != nil {
		t.Fatalf("complete failed: %v", err)
	}
}

func (e *testEnv) packageAggregate(t *testing.T, packageID uuid.UUID) (float64, int) {
	t.Helper()
	var pkg packages.TourPackage
	if err := e.db.Where("id = ?", packageID).First(&pkg).Error; err != nil {
		t.Fatalf("failed to reload package: %v", err)
	}
	return pkg.Rating, pkg.ReviewCount
}

func TestReviewRequiresCompletedTrip(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	pkg := env.createPackage(t, uuid.New())
	touristID := uuid.New()

	// A pending booking does not earn a review.
	if _, err := env.bookingsSvc.CreateBooking(ctx, touristID, bookings.CreateBookingRequest{
		PackageID: pkg.ID.String(),
		Quantity:  1,
	}); err != nil {
		t.Fatalf("CreateBooking failed: %v", err)
	}
	if _, err := env.reviews.CreateReview(ctx, touristID, CreateReviewRequest{
		PackageID: pkg.ID.String(),
		Rating:    5,
		Comment:   "trying to review before the trip",
	}); err != ErrReviewNotAllowed {
		t.Errorf("review without completed trip: expected ErrReviewNotAllowed, got %v", err)
	}

	env.completedBooking(t, pkg, touristID)

	review, err := env.reviews.CreateReview(ctx, touristID, CreateReviewRequest{
		PackageID: pkg.ID.String(),
		Rating:    4,
		Comment:   "great guide, long bus ride",
	})
	if err != nil {
		t.Fatalf("CreateReview failed: %v", err)
	}
	if review.Rating != 4 {
		t.Errorf("rating = %d, want 4", review.Rating)
	}

	rating, count := env.packageAggregate(t, pkg.ID)
	if rating != 4 || count != 1 {
		t.Errorf("aggregate = (%f, %d), want (4, 1)", rating, count)
	}
}

func TestDuplicateReviewRejected(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	pkg := env.createPackage(t, uuid.New())
	touristID := uuid.New()
	env.completedBooking(t, pkg, touristID)

	if _, err := env.reviews.CreateReview(ctx, touristID, CreateReviewRequest{
		PackageID: pkg.ID.String(),
		Rating:    5,
	}); err != nil {
		t.Fatalf("CreateReview failed: %v", err)
	}

	if _, err := env.reviews.CreateReview(ctx, touristID, CreateReviewRequest{
		PackageID: pkg.ID.String(),
		Rating:    1,
		Comment:   "changed my mind",
	}); err != ErrAlreadyReviewed {
		t.Errorf("second review: expected ErrAlreadyReviewed, got %v", err)
	}
}

func TestRatingAggregation(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	pkg := env.createPackage(t, uuid.New())
	first := uuid.New()
	second := uuid.New()
	env.completedBooking(t, pkg, first)
	env.completedBooking(t, pkg, second)

	if _, err := env.reviews.CreateReview(ctx, first, CreateReviewRequest{
		PackageID: pkg.ID.String(),
		Rating:    5,
	}); err != nil {
		t.Fatalf("first review failed: %v", err)
	}
	secondReview, err := env.reviews.CreateReview(ctx, second, CreateReviewRequest{
		PackageID: pkg.ID.String(),
		Rating:    4,
	})
	if err != nil {
		t.Fatalf("second review failed: %v", err)
	}

	rating, count := env.packageAggregate(t, pkg.ID)
	if rating != 4.5 || count != 2 {
		t.Errorf("aggregate = (%f, %d), want (4.5, 2)", rating, count)
	}

	listed, err := env.reviews.GetPackageReviews(ctx, pkg.ID, ReviewListQuery{})
	if err != nil {
		t.Fatalf("GetPackageReviews failed: %v", err)
	}
	if listed.Total != 2 {
		t.Errorf("listed reviews = %d, want 2", listed.Total)
	}

	// Deleting a review recomputes the aggregate.
	if err := env.reviews.DeleteReview(ctx, secondReview.ID, second, "tourist"); err != nil {
		t.Fatalf("DeleteReview failed: %v", err)
	}
	rating, count = env.packageAggregate(t, pkg.ID)
	if rating != 5 || count != 1 {
		t.Errorf("aggregate after delete = (%f, %d), want (5, 1)", rating, count)
	}
}

func TestDeleteReviewPermissions(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	pkg := env.createPackage(t, uuid.New())
	touristID := uuid.New()
	env.completedBooking(t, pkg, touristID)

	review, err := env.reviews.CreateReview(ctx, touristID, CreateReviewRequest{
		PackageID: pkg.ID.String(),
		Rating:    2,
		Comment:   "the hotel was not as advertised",
	})
	if err != nil {
		t.Fatalf("CreateReview failed: %v", err)
	}

	if err := env.reviews.DeleteReview(ctx, review.ID, uuid.New(), "tourist"); err != ErrNotReviewOwner {
		t.Errorf("stranger delete: expected ErrNotReviewOwner, got %v", err)
	}

	// Admins can remove any review.
	if err := env.reviews.DeleteReview(ctx, review.ID, uuid.New(), "admin"); err != nil {
		t.Fatalf("admin delete failed: %v", err)
	}
	if err := env.reviews.DeleteReview(ctx, review.ID, uuid.New(), "admin"); err != ErrReviewNotFound {
		t.Errorf("double delete: expected ErrReviewNotFound, got %v", err)
	}
}

func TestReviewUnknownPackage(t *testing.T) {
	env := setupTestEnv(t)

	_, err := env.reviews.CreateReview(context.Background(), uuid.New(), CreateReviewRequest{
		PackageID: uuid.New().String(),
		Rating:    3,
	})
	if err != packages.ErrPackageNotFound {
		t.Errorf("expected ErrPackageNotFound, got %v", err)
	}
}
