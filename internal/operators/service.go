package operators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"hawabodol/internal/packages"
	"hawabodol/internal/shared/constants"
	"hawabodol/internal/users"
	"hawabodol/pkg/cache"
	"hawabodol/pkg/logger"

	"github.com/google/uuid"
)

var (
	ErrOperatorNotFound   = errors.New("operator not found")
	ErrOperatorNotPending = errors.New("operator is not pending approval")
	ErrOperatorNotActive  = errors.New("operator is not active")

	ErrOperatorNotSuspended = errors.New("operator is not suspended")
)

// PackageService is the slice of the packages service this module needs,
// declared here to avoid a circular dependency.
type PackageService interface {
	GetOperatorPackages(ctx context.Context, operatorID uuid.UUID) ([]packages.PackageResponse, error)
}

// ApprovalNotifier tells an operator their account was approved.
type ApprovalNotifier interface {
	NotifyOperatorApproved(ctx context.Context, operatorID uuid.UUID) error
}

type Service interface {
	SetCacheService(cacheService cache.Service)
	SetApprovalNotifier(notifier ApprovalNotifier)

	GetOperators(ctx context.Context, query OperatorListQuery) (*PaginatedOperators, error)
	ApproveOperator(ctx context.Context, adminID, operatorID uuid.UUID) (*OperatorSummary, error)
	SuspendOperator(ctx context.Context, adminID, operatorID uuid.UUID, reason string) (*OperatorSummary, error)
	ReactivateOperator(ctx context.Context, adminID, operatorID uuid.UUID) (*OperatorSummary, error)
	GetOperatorProfile(ctx context.Context, operatorID uuid.UUID) (*OperatorProfile, error)
}

type service struct {
	repo           Repository
	packageService PackageService
	cacheService   cache.Service
	notifier       ApprovalNotifier
	log            *logger.Logger
}

func NewService(repo Repository, packageService PackageService) Service {
	return &service{
		repo:           repo,
		packageService: packageService,
		log:            logger.GetDefault(),
	}
}

func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) SetApprovalNotifier(notifier ApprovalNotifier) {
	s.notifier = notifier
}

func (s *service) GetOperators(ctx context.Context, query OperatorListQuery) (*PaginatedOperators, error) {
	operators, total, err := s.repo.GetOperators(ctx, query)
	if err != nil {
		return nil, err
	}

	page := query.Page
	if page < 1 {
		page = 1
	}
	limit := query.Limit
	if limit < 1 || limit > 100 {
		limit = 20
	}

	summaries := make([]OperatorSummary, len(operators))
	for i := range operators {
		summaries[i] = toSummary(&operators[i])
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &PaginatedOperators{
		Operators:  summaries,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

func (s *service) ApproveOperator(ctx context.Context, adminID, operatorID uuid.UUID) (*OperatorSummary, error) {
	now := time.Now()
	applied, err := s.repo.UpdateStatus(ctx, operatorID, users.StatusPending, users.StatusActive,
		map[string]interface{}{"verified_at": now})
	if err != nil {
		return nil, err
	}
	if !applied {
		// Either the operator does not exist or someone already decided.
		if _, err := s.repo.GetOperatorByID(ctx, operatorID); err != nil {
			return nil, err
		}
		return nil, ErrOperatorNotPending
	}

	s.log.InfoContext(ctx, "Operator Approved",
		slog.String("operator_id", operatorID.String()),
		slog.String("admin_id", adminID.String()),
	)

	if s.notifier != nil {
		if err := s.notifier.NotifyOperatorApproved(ctx, operatorID); err != nil {
			s.log.WarnContext(ctx, "Failed to notify approved operator",
				slog.String("operator_id", operatorID.String()),
				slog.String("error", err.Error()),
			)
		}
	}
	s.invalidateOperatorCache(ctx)

	operator, err := s.repo.GetOperatorByID(ctx, operatorID)
	if err != nil {
		return nil, err
	}
	summary := toSummary(operator)
	return &summary, nil
}

func (s *service) SuspendOperator(ctx context.Context, adminID, operatorID uuid.UUID, reason string) (*OperatorSummary, error) {
	applied, err := s.repo.UpdateStatus(ctx, operatorID, users.StatusActive, users.StatusSuspended, nil)
	if err != nil {
		return nil, err
	}
	if !applied {
		if _, err := s.repo.GetOperatorByID(ctx, operatorID); err != nil {
			return nil, err
		}
		return nil, ErrOperatorNotActive
	}

	s.log.WarnContext(ctx, "Operator Suspended",
		slog.String("operator_id", operatorID.String()),
		slog.String("admin_id", adminID.String()),
		slog.String("reason", reason),
	)
	s.invalidateOperatorCache(ctx)

	operator, err := s.repo.GetOperatorByID(ctx, operatorID)
	if err != nil {
		return nil, err
	}
	summary := toSummary(operator)
	return &summary, nil
}

func (s *service) ReactivateOperator(ctx context.Context, adminID, operatorID uuid.UUID) (*OperatorSummary, error) {
	applied, err := s.repo.UpdateStatus(ctx, operatorID, users.StatusSuspended, users.StatusActive, nil)
	if err != nil {
		return nil, err
	}
	if !applied {
		if _, err := s.repo.GetOperatorByID(ctx, operatorID); err != nil {
			return nil, err
		}
		return nil, ErrOperatorNotSuspended
	}

	s.log.InfoContext(ctx, "Operator Reactivated",
		slog.String("operator_id", operatorID.String()),
		slog.String("admin_id", adminID.String()),
	)
	s.invalidateOperatorCache(ctx)

	operator, err := s.repo.GetOperatorByID(ctx, operatorID)
	if err != nil {
		return nil, err
	}
	summary := toSummary(operator)
	return &summary, nil
}

// GetOperatorProfile returns the public profile of an active operator with
// their published packages.
func (s *service) GetOperatorProfile(ctx context.Context, operatorID uuid.UUID) (*OperatorProfile, error) {
	cacheKey := constants.BuildOperatorProfileKey(operatorID.String())
	if s.cacheService != nil {
		var cached OperatorProfile
		if err := s.cacheService.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	operator, err := s.repo.GetOperatorByID(ctx, operatorID)
	if err != nil {
		return nil, err
	}
	if operator.Status != users.StatusActive {
		return nil, ErrOperatorNotFound
	}

	allPackages, err := s.packageService.GetOperatorPackages(ctx, operatorID)
	if err != nil {
		return nil, err
	}
	published := make([]packages.PackageResponse, 0, len(allPackages))
	for _, pkg := range allPackages {
		if pkg.Status == packages.StatusPublished {
			published = append(published, pkg)
		}
	}

	profile := &OperatorProfile{
		ID:                 operator.ID.String(),
		Name:               operator.Name,
		CompanyName:        operator.CompanyName,
		CompanyLogo:        operator.CompanyLogo,
		CompanyDescription: operator.CompanyDescription,
		Website:            operator.Website,
		VerifiedAt:         operator.VerifiedAt,
		Packages:           published,
	}

	if s.cacheService != nil {
		if err := s.cacheService.Set(ctx, cacheKey, profile, constants.TTL_OPERATOR_PROFILE); err != nil {
			s.log.WarnContext(ctx, "Failed to cache operator profile",
				slog.String("key", cacheKey),
				slog.String("error", err.Error()),
			)
		}
	}
	return profile, nil
}

func (s *service) invalidateOperatorCache(ctx context.Context) {
	if s.cacheService == nil {
		return
	}
	if err := s.cacheService.DeletePattern(ctx, constants.PATTERN_INVALIDATE_OPERATORS_ALL); err != nil {
		s.log.WarnContext(ctx, "Failed to invalidate operator cache",
			slog.String("error", err.Error()),
		)
	}
}

func toSummary(u *users.User) OperatorSummary {
	return OperatorSummary{
		ID:          u.ID.String(),
		Name:        u.Name,
		Email:       u.Email,
		CompanyName: u.CompanyName,
		Status:      string(u.Status),
		VerifiedAt:  u.VerifiedAt,
		CreatedAt:   u.CreatedAt,
	}
}
