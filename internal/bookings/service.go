package bookings

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"hawabodol/internal/users"
	"hawabodol/pkg/logger"
)

var (
	ErrPackageNotFound   = errors.New("package not found")
	ErrCategoryNotFound  = errors.New("category not found")
	ErrPackageNotOpen    = errors.New("package is not open for booking")
	ErrInsufficientSeats = errors.New("not enough seats available")
	ErrBookingNotFound   = errors.New("booking not found")
	ErrForbidden         = errors.New("not allowed to modify this booking")
	ErrInvalidTransition = errors.New("invalid booking status transition")
	ErrSeatRestoreFailed = errors.New("failed to restore seats")
)

// BookingEvent describes a booking lifecycle change for downstream
// consumers (notification rows, the event stream).
type BookingEvent struct {
	Type       string    `json:"type"`
	BookingID  string    `json:"booking_id"`
	BookingRef string    `json:"booking_ref"`
	PackageID  string    `json:"package_id"`
	TouristID  string    `json:"tourist_id"`
	OperatorID string    `json:"operator_id"`
	Quantity   int       `json:"quantity"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Notifier receives booking lifecycle events. Implemented by the
// notifications package; declared here to avoid a circular dependency.
type Notifier interface {
	NotifyBookingEvent(ctx context.Context, event BookingEvent)
}

type Service interface {
	SetNotifier(notifier Notifier)

	CreateBooking(ctx context.Context, touristID uuid.UUID, req CreateBookingRequest) (*BookingResponse, error)
	GetBooking(ctx context.Context, bookingID, requesterID uuid.UUID, role string) (*BookingResponse, error)
	GetTouristBookings(ctx context.Context, touristID uuid.UUID, query BookingListQuery) (*PaginatedBookings, error)
	GetPackageBookings(ctx context.Context, packageID, requesterID uuid.UUID, role string, query BookingListQuery) (*PaginatedBookings, error)
	UpdateBookingStatus(ctx context.Context, bookingID, requesterID uuid.UUID, role string, target Status) (*BookingResponse, error)

	// MarkRefunded is called by the refund approval flow only. Seats are
	// not restored; the tour already ran or the cancellation window passed.
	MarkRefunded(ctx context.Context, bookingID uuid.UUID) (*BookingResponse, error)
	GetBookingByUUID(ctx context.Context, bookingID uuid.UUID) (*BookingResponse, error)
}

type service struct {
	repo     Repository
	notifier Notifier
	log      *logger.Logger
}

func NewService(repo Repository) Service {
	return &service{
		repo: repo,
		log:  logger.GetDefault(),
	}
}

func (s *service) SetNotifier(notifier Notifier) {
	s.notifier = notifier
}

func (s *service) CreateBooking(ctx context.Context, touristID uuid.UUID, req CreateBookingRequest) (*BookingResponse, error) {
	packageID, err := uuid.Parse(req.PackageID)
	if err != nil {
		return nil, ErrPackageNotFound
	}

	pkg, err := s.repo.GetPackage(ctx, packageID)
	if err != nil {
		return nil, err
	}

	unitPrice := pkg.BasePrice
	var categoryID *uuid.UUID
	if req.CategoryID != "" {
		cid, err := uuid.Parse(req.CategoryID)
		if err != nil {
			return nil, ErrCategoryNotFound
		}
		categoryID = &cid

		for _, c := range pkg.Categories {
			if c.ID == cid {
				unitPrice = c.Price
				break
			}
		}
	}

	totalAmount := unitPrice.Mul(decimal.NewFromInt(int64(req.Quantity)))
	discountAmount := decimal.Zero
	finalAmount := totalAmount.Sub(discountAmount)

	booking := &Booking{
		TouristID:       touristID,
		PackageID:       packageID,
		CategoryID:      categoryID,
		Quantity:        req.Quantity,
		UnitPrice:       unitPrice,
		TotalAmount:     totalAmount,
		DiscountAmount:  discountAmount,
		FinalAmount:     finalAmount,
		Status:          StatusPending,
		SpecialRequests: req.SpecialRequests,
	}

	if err := s.repo.CreateBookingWithSeatCheck(ctx, booking); err != nil {
		return nil, err
	}

	s.log.LogBookingCreated(ctx, booking.ID.String(), packageID.String(), touristID.String(), req.Quantity)

	s.notify(BookingEvent{
		Type:       "booking.created",
		BookingID:  booking.ID.String(),
		BookingRef: booking.BookingRef,
		PackageID:  packageID.String(),
		TouristID:  touristID.String(),
		OperatorID: pkg.OperatorID.String(),
		Quantity:   booking.Quantity,
		Status:     string(booking.Status),
		OccurredAt: time.Now(),
	})

	response := booking.ToResponse()
	return &response, nil
}

func (s *service) GetBooking(ctx context.Context, bookingID, requesterID uuid.UUID, role string) (*BookingResponse, error) {
	booking, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if !s.canView(ctx, booking, requesterID, role) {
		return nil, ErrForbidden
	}

	response := booking.ToResponse()
	return &response, nil
}

func (s *service) GetTouristBookings(ctx context.Context, touristID uuid.UUID, query BookingListQuery) (*PaginatedBookings, error) {
	bookings, totalCount, err := s.repo.GetTouristBookings(ctx, touristID, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get bookings: %w", err)
	}
	return paginate(bookings, totalCount, query), nil
}

func (s *service) GetPackageBookings(ctx context.Context, packageID, requesterID uuid.UUID, role string, query BookingListQuery) (*PaginatedBookings, error) {
	pkg, err := s.repo.GetPackage(ctx, packageID)
	if err != nil {
		return nil, err
	}

	if role != string(users.RoleAdmin) && pkg.OperatorID != requesterID {
		return nil, ErrForbidden
	}

	bookings, totalCount, err := s.repo.GetPackageBookings(ctx, packageID, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get package bookings: %w", err)
	}
	return paginate(bookings, totalCount, query), nil
}

func (s *service) UpdateBookingStatus(ctx context.Context, bookingID, requesterID uuid.UUID, role string, target Status) (*BookingResponse, error) {
	booking, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	// Authorization comes first: even a no-op cancel must not leak a
	// stranger's booking.
	ownsBooking := booking.TouristID == requesterID
	ownsPackage := false
	if role == string(users.RoleOperator) {
		pkg, err := s.repo.GetPackage(ctx, booking.PackageID)
		if err == nil {
			ownsPackage = pkg.OperatorID == requesterID
		}
	}

	if !canTransition(role, ownsBooking, ownsPackage, target) {
		return nil, ErrForbidden
	}

	// Cancelling an already-cancelled booking is a no-op, not an error.
	if booking.Status == target && target == StatusCancelled {
		response := booking.ToResponse()
		return &response, nil
	}

	if !Allowed(booking.Status, target) {
		return nil, ErrInvalidTransition
	}

	applied, err := s.repo.TransitionStatus(ctx, bookingID, booking.Status, target)
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if !applied {
		// Lost a race. If the booking reached the target anyway, treat a
		// cancellation as idempotent; otherwise reject.
		if updated.Status == target && target == StatusCancelled {
			response := updated.ToResponse()
			return &response, nil
		}
		return nil, ErrInvalidTransition
	}

	s.log.LogBookingStatusChanged(ctx, bookingID.String(), string(booking.Status), string(target), requesterID.String())

	event := BookingEvent{
		Type:       "booking." + string(target),
		BookingID:  updated.ID.String(),
		BookingRef: updated.BookingRef,
		PackageID:  updated.PackageID.String(),
		TouristID:  updated.TouristID.String(),
		Quantity:   updated.Quantity,
		Status:     string(updated.Status),
		OccurredAt: time.Now(),
	}
	if pkg, err := s.repo.GetPackage(ctx, updated.PackageID); err == nil {
		event.OperatorID = pkg.OperatorID.String()
	}
	s.notify(event)

	response := updated.ToResponse()
	return &response, nil
}

func (s *service) MarkRefunded(ctx context.Context, bookingID uuid.UUID) (*BookingResponse, error) {
	booking, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if !Allowed(booking.Status, StatusRefunded) {
		return nil, ErrInvalidTransition
	}

	applied, err := s.repo.TransitionStatus(ctx, bookingID, booking.Status, StatusRefunded)
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, ErrInvalidTransition
	}

	updated, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	s.notify(BookingEvent{
		Type:       "booking.refunded",
		BookingID:  updated.ID.String(),
		BookingRef: updated.BookingRef,
		PackageID:  updated.PackageID.String(),
		TouristID:  updated.TouristID.String(),
		Quantity:   updated.Quantity,
		Status:     string(updated.Status),
		OccurredAt: time.Now(),
	})

	response := updated.ToResponse()
	return &response, nil
}

func (s *service) GetBookingByUUID(ctx context.Context, bookingID uuid.UUID) (*BookingResponse, error) {
	booking, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	response := booking.ToResponse()
	return &response, nil
}

func (s *service) canView(ctx context.Context, booking *Booking, requesterID uuid.UUID, role string) bool {
	if role == string(users.RoleAdmin) || booking.TouristID == requesterID {
		return true
	}
	if role == string(users.RoleOperator) {
		pkg, err := s.repo.GetPackage(ctx, booking.PackageID)
		return err == nil && pkg.OperatorID == requesterID
	}
	return false
}

// notify hands the event to the sink without blocking the request.
func (s *service) notify(event BookingEvent) {
	if s.notifier == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.notifier.NotifyBookingEvent(ctx, event)
	}()
}

func paginate(bookings []Booking, totalCount int64, query BookingListQuery) *PaginatedBookings {
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 10
	}

	responses := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		responses[i] = b.ToResponse()
	}

	return &PaginatedBookings{
		Bookings:   responses,
		TotalCount: totalCount,
		Page:       query.Page,
		Limit:      query.Limit,
		TotalPages: int(math.Ceil(float64(totalCount) / float64(query.Limit))),
	}
}
