package reviews

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"hawabodol/internal/packages"
	"hawabodol/internal/shared/constants"
	"hawabodol/internal/users"
	"hawabodol/pkg/cache"
	"hawabodol/pkg/logger"
)

var (
	ErrReviewNotFound   = errors.New("review not found")
	ErrAlreadyReviewed  = errors.New("package already reviewed")
	ErrReviewNotAllowed = errors.New("no completed booking on this package")
	ErrNotReviewOwner   = errors.New("review belongs to another tourist")
)

// PackageService is the slice of the package service reviews need.
type PackageService interface {
	GetPackageByID(ctx context.Context, id uuid.UUID) (*packages.PackageResponse, error)
}

type Service interface {
	SetCacheService(cacheService cache.Service)

	CreateReview(ctx context.Context, touristID uuid.UUID, req CreateReviewRequest) (*Review, error)
	GetPackageReviews(ctx context.Context, packageID uuid.UUID, query ReviewListQuery) (*PaginatedReviews, error)
	DeleteReview(ctx context.Context, reviewID, requesterID uuid.UUID, role string) error
}

type service struct {
	repo           Repository
	packageService PackageService
	cacheService   cache.Service
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

func (s *service) CreateReview(ctx context.Context, touristID uuid.UUID, req CreateReviewRequest) (*Review, error) {
	packageID, err := uuid.Parse(req.PackageID)
	if err != nil {
		return nil, packages.ErrPackageNotFound
	}

	if _, err := s.packageService.GetPackageByID(ctx, packageID); err != nil {
		return nil, err
	}

	completed, err := s.repo.HasCompletedBooking(ctx, touristID, packageID)
	if err != nil {
		return nil, fmt.Errorf("failed to check booking history: %w", err)
	}
	if !completed {
		return nil, ErrReviewNotAllowed
	}

	exists, err := s.repo.Exists(ctx, touristID, packageID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing review: %w", err)
	}
	if exists {
		return nil, ErrAlreadyReviewed
	}

	review := &Review{
		PackageID: packageID,
		TouristID: touristID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}

	if err := s.repo.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	s.invalidatePackageDetail(ctx, packageID)

	s.log.InfoContext(ctx, "Review Posted",
		slog.String("review_id", review.ID.String()),
		slog.String("package_id", packageID.String()),
		slog.String("tourist_id", touristID.String()),
		slog.Int("rating", review.Rating),
	)

	return review, nil
}

func (s *service) GetPackageReviews(ctx context.Context, packageID uuid.UUID, query ReviewListQuery) (*PaginatedReviews, error) {
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 10
	}

	reviews, totalCount, err := s.repo.GetByPackage(ctx, packageID, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get reviews: %w", err)
	}

	return &PaginatedReviews{
		Reviews: reviews,
		Total:   totalCount,
		Page:    query.Page,
		Limit:   query.Limit,
	}, nil
}

func (s *service) DeleteReview(ctx context.Context, reviewID, requesterID uuid.UUID, role string) error {
	review, err := s.repo.GetByID(ctx, reviewID)
	if err != nil {
		return err
	}

	if role != string(users.RoleAdmin) && review.TouristID != requesterID {
		return ErrNotReviewOwner
	}

	if err := s.repo.Delete(ctx, reviewID); err != nil {
		return err
	}

	s.invalidatePackageDetail(ctx, review.PackageID)
	return nil
}

// The package detail cache carries the rating aggregate, so it goes stale
// the moment a review lands.
func (s *service) invalidatePackageDetail(ctx context.Context, packageID uuid.UUID) {
	if s.cacheService == nil {
		return
	}
	pattern := constants.PATTERN_INVALIDATE_PACKAGE_DETAIL + packageID.String() + "*"
	if err := s.cacheService.DeletePattern(ctx, pattern); err != nil {
		s.log.Warn("failed to invalidate package detail cache", "pattern", pattern, "error", err)
	}
}
