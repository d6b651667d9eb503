package operators

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"hawabodol/internal/packages"
	"hawabodol/internal/users"
)

func setupTestService(t *testing.T) (*gorm.DB, Service) {
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

	if err := db.AutoMigrate(&users.User{}, &packages.TourPackage{}, &packages.PackageCategory{}); err != nil {
		t.Fatalf("failed to migrate test schema: %v", err)
	}

	packagesSvc := packages.NewService(packages.NewRepository(db))
	return db, NewService(NewRepository(db), packagesSvc)
}

func createOperator(t *testing.T, db *gorm.DB, status users.Status) *users.User {
	t.Helper()
	user := &users.User{
		Name:        "Rahim Uddin",
		Email:       uuid.New().String() + "@example.com",
		Password:    "hashed",
		Role:        users.RoleOperator,
		Status:      status,
		CompanyName: "Beach Tours BD",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create operator: %v", err)
	}
	return user
}

func TestApproveOperator(t *testing.T) {
	db, svc := setupTestService(t)
	ctx := context.Background()

	operator := createOperator(t, db, users.StatusPending)

	summary, err := svc.ApproveOperator(ctx, uuid.New(), operator.ID)
	if err != nil {
		t.Fatalf("ApproveOperator failed: %v", err)
	}
	if summary.Status != string(users.StatusActive) {
		t.Errorf("status = %s, want active", summary.Status)
	}
	if summary.VerifiedAt == nil {
		t.Error("verified_at should be set on approval")
	}

	// Approving twice fails.
	if _, err := svc.ApproveOperator(ctx, uuid.New(), operator.ID); err != ErrOperatorNotPending {
		t.Errorf("second approval: expected ErrOperatorNotPending, got %v", err)
	}
}

func TestSuspendAndReactivateOperator(t *testing.T) {
	db, svc := setupTestService(t)
	ctx := context.Background()

	operator := createOperator(t, db, users.StatusActive)

	suspended, err := svc.SuspendOperator(ctx, uuid.New(), operator.ID, "complaints about no-shows")
	if err != nil {
		t.Fatalf("SuspendOperator failed: %v", err)
	}
	if suspended.Status != string(users.StatusSuspended) {
		t.Errorf("status = %s, want suspended", suspended.Status)
	}

	// Suspending again fails, the operator is no longer active.
	if _, err := svc.SuspendOperator(ctx, uuid.New(), operator.ID, "again"); err != ErrOperatorNotActive {
		t.Errorf("second suspension: expected ErrOperatorNotActive, got %v", err)
	}

	reactivated, err := svc.ReactivateOperator(ctx, uuid.New(), operator.ID)
	if err != nil {
		t.Fatalf("ReactivateOperator failed: %v", err)
	}
	if reactivated.Status != string(users.StatusActive) {
		t.Errorf("status = %s, want active", reactivated.Status)
	}
}

func TestOperatorProfilePublishedOnly(t *testing.T) {
	db, svc := setupTestService(t)
	ctx := context.Background()

	operator := createOperator(t, db, users.StatusActive)

	now := time.Now()
	published := &packages.TourPackage{
		OperatorID:     operator.ID,
		Title:          "Saint Martin Island Escape",
		Location:       "Saint Martin",
		StartDate:      now.Add(30 * 24 * time.Hour),
		EndDate:        now.Add(33 * 24 * time.Hour),
		TotalSeats:     25,
		AvailableSeats: 25,
		BasePrice:      decimal.NewFromInt(9500),
		Status:         packages.StatusPublished,
	}
	draft := &packages.TourPackage{
		OperatorID:     operator.ID,
		Title:          "Unannounced Trip",
		Location:       "Sylhet",
		StartDate:      now.Add(60 * 24 * time.Hour),
		EndDate:        now.Add(63 * 24 * time.Hour),
		TotalSeats:     10,
		AvailableSeats: 10,
		BasePrice:      decimal.NewFromInt(4000),
		Status:         packages.StatusDraft,
	}
	for _, pkg := range []*packages.TourPackage{published, draft} {
		if err := db.Create(pkg).Error; err != nil {
			t.Fatalf("failed to create package: %v", err)
		}
	}

	profile, err := svc.GetOperatorProfile(ctx, operator.ID)
	if err != nil {
		t.Fatalf("GetOperatorProfile failed: %v", err)
	}
	if len(profile.Packages) != 1 {
		t.Fatalf("profile packages = %d, want 1 (published only)", len(profile.Packages))
	}
	if profile.Packages[0].Title != "Saint Martin Island Escape" {
		t.Errorf("unexpected package in profile: %s", profile.Packages[0].Title)
	}
}

func TestOperatorProfileHiddenUnlessActive(t *testing.T) {
	db, svc := setupTestService(t)
	ctx := context.Background()

	pending := createOperator(t, db, users.StatusPending)
	if _, err := svc.GetOperatorProfile(ctx, pending.ID); err != ErrOperatorNotFound {
		t.Errorf("pending operator profile: expected ErrOperatorNotFound, got %v", err)
	}

	if _, err := svc.GetOperatorProfile(ctx, uuid.New()); err != ErrOperatorNotFound {
		t.Errorf("unknown operator profile: expected ErrOperatorNotFound, got %v", err)
	}
}
