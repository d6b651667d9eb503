package refunds

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"

	"hawabodol/internal/bookings"
	"hawabodol/internal/packages"
	"hawabodol/pkg/logger"
)

var (
	ErrRefundNotFound       = errors.New("refund request not found")
	ErrBookingNotRefundable = errors.New("booking is not eligible for a refund")
	ErrOpenRequestExists    = errors.New("an open refund request already exists for this booking")
	ErrNotYourBooking       = errors.New("booking belongs to another tourist")
	ErrAlreadyDecided       = errors.New("refund request already decided")
)

// BookingService is the slice of the booking service the refund flow needs.
type BookingService interface {
	GetBookingByUUID(ctx context.Context, bookingID uuid.UUID) (*bookings.BookingResponse, error)
	MarkRefunded(ctx context.Context, bookingID uuid.UUID) (*bookings.BookingResponse, error)
}

// PackageService resolves refund policy for the booked package.
type PackageService interface {
	GetPackageByID(ctx context.Context, id uuid.UUID) (*packages.PackageResponse, error)
}

type Service interface {
	CreateRefundRequest(ctx context.Context, touristID uuid.UUID, req CreateRefundRequest) (*RefundResponse, error)
	GetMyRefundRequests(ctx context.Context, touristID uuid.UUID, query RefundListQuery) (*PaginatedRefunds, error)
	GetAllRefundRequests(ctx context.Context, query RefundListQuery) (*PaginatedRefunds, error)
	ApproveRefund(ctx context.Context, adminID, refundID uuid.UUID, note string) (*RefundResponse, error)
	RejectRefund(ctx context.Context, adminID, refundID uuid.UUID, note string) (*RefundResponse, error)
}

type service struct {
	repo           Repository
	bookingService BookingService
	packageService PackageService
	log            *logger.Logger
}

func NewService(repo Repository, bookingService BookingService, packageService PackageService) Service {
	return &service{
		repo:           repo,
		bookingService: bookingService,
		packageService: packageService,
		log:            logger.GetDefault(),
	}
}

func (s *service) CreateRefundRequest(ctx context.Context, touristID uuid.UUID, req CreateRefundRequest) (*RefundResponse, error) {
	bookingID, err := uuid.Parse(req.BookingID)
	if err != nil {
		return nil, bookings.ErrBookingNotFound
	}

	booking, err := s.bookingService.GetBookingByUUID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if booking.TouristID != touristID.String() {
		return nil, ErrNotYourBooking
	}

	// Only confirmed or completed bookings can be refunded; pending ones are
	// cancelled instead, which releases seats.
	if booking.Status != bookings.StatusConfirmed && booking.Status != bookings.StatusCompleted {
		return nil, ErrBookingNotRefundable
	}

	packageID, err := uuid.Parse(booking.PackageID)
	if err != nil {
		return nil, ErrBookingNotRefundable
	}
	pkg, err := s.packageService.GetPackageByID(ctx, packageID)
	if err != nil {
		return nil, err
	}
	if !pkg.IsRefundable {
		return nil, ErrBookingNotRefundable
	}

	open, err := s.repo.HasOpenRequest(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing requests: %w", err)
	}
	if open {
		return nil, ErrOpenRequestExists
	}

	request := &RefundRequest{
		BookingID: bookingID,
		TouristID: touristID,
		Amount:    booking.FinalAmount,
		Reason:    req.Reason,
		Status:    StatusPending,
	}

	if err := s.repo.Create(ctx, request); err != nil {
		return nil, fmt.Errorf("failed to create refund request: %w", err)
	}

	response := request.ToResponse()
	return &response, nil
}

func (s *service) GetMyRefundRequests(ctx context.Context, touristID uuid.UUID, query RefundListQuery) (*PaginatedRefunds, error) {
	requests, totalCount, err := s.repo.GetByTourist(ctx, touristID, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get refund requests: %w", err)
	}
	return paginate(requests, totalCount, query), nil
}

func (s *service) GetAllRefundRequests(ctx context.Context, query RefundListQuery) (*PaginatedRefunds, error) {
	requests, totalCount, err := s.repo.GetAll(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get refund requests: %w", err)
	}
	return paginate(requests, totalCount, query), nil
}

func (s *service) ApproveRefund(ctx context.Context, adminID, refundID uuid.UUID, note string) (*RefundResponse, error) {
	request, err := s.repo.GetByID(ctx, refundID)
	if err != nil {
		return nil, err
	}
	if request.Status != StatusPending {
		return nil, ErrAlreadyDecided
	}

	// Move the booking first; if the lifecycle rejects the refund the
	// request stays pending.
	if _, err := s.bookingService.MarkRefunded(ctx, request.BookingID); err != nil {
		return nil, err
	}

	decided, err := s.repo.Decide(ctx, refundID, StatusApproved, adminID, note)
	if err != nil {
		return nil, fmt.Errorf("failed to approve refund: %w", err)
	}
	if !decided {
		return nil, ErrAlreadyDecided
	}

	s.log.LogRefundProcessed(ctx, refundID.String(), request.BookingID.String(), string(StatusApproved))

	updated, err := s.repo.GetByID(ctx, refundID)
	if err != nil {
		return nil, err
	}
	response := updated.ToResponse()
	return &response, nil
}

func (s *service) RejectRefund(ctx context.Context, adminID, refundID uuid.UUID, note string) (*RefundResponse, error) {
	decided, err := s.repo.Decide(ctx, refundID, StatusRejected, adminID, note)
	if err != nil {
		return nil, fmt.Errorf("failed to reject refund: %w", err)
	}
	if !decided {
		request, err := s.repo.GetByID(ctx, refundID)
		if err != nil {
			return nil, err
		}
		if request.Status != StatusPending {
			return nil, ErrAlreadyDecided
		}
		return nil, ErrRefundNotFound
	}

	s.log.LogRefundProcessed(ctx, refundID.String(), "", string(StatusRejected))

	updated, err := s.repo.GetByID(ctx, refundID)
	if err != nil {
		return nil, err
	}
	response := updated.ToResponse()
	return &response, nil
}

func paginate(requests []RefundRequest, totalCount int64, query RefundListQuery) *PaginatedRefunds {
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 10
	}

	responses := make([]RefundResponse, len(requests))
	for i, r := range requests {
		responses[i] = r.ToResponse()
	}

	return &PaginatedRefunds{
		Refunds:    responses,
		TotalCount: totalCount,
		Page:       query.Page,
		Limit:      query.Limit,
		TotalPages: int(math.Ceil(float64(totalCount) / float64(query.Limit))),
	}
}
