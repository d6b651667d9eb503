package packages

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hawabodol/internal/shared/constants"
	"hawabodol/pkg/cache"
	"hawabodol/pkg/logger"
)

var (
	ErrPackageNotFound    = errors.New("package not found")
	ErrCategoryNotFound   = errors.New("category not found")
	ErrNotOwner           = errors.New("package belongs to another operator")
	ErrPackageNotEditable = errors.New("package can no longer be edited")
	ErrInvalidTransition  = errors.New("invalid package status transition")
	ErrHasBookings        = errors.New("package has existing bookings")
	ErrInvalidDates       = errors.New("end date must be after start date")
)

type Service interface {
	SetCacheService(cacheService cache.Service)

	CreatePackage(ctx context.Context, operatorID uuid.UUID, req CreatePackageRequest) (*PackageResponse, error)
	UpdatePackage(ctx context.Context, id, operatorID uuid.UUID, req UpdatePackageRequest) (*PackageResponse, error)
	DeletePackage(ctx context.Context, id, operatorID uuid.UUID) error
	PublishPackage(ctx context.Context, id, operatorID uuid.UUID) (*PackageResponse, error)
	ClosePackage(ctx context.Context, id, operatorID uuid.UUID) (*PackageResponse, error)
	CancelPackage(ctx context.Context, id, operatorID uuid.UUID) (*PackageResponse, error)
	AddCategory(ctx context.Context, packageID, operatorID uuid.UUID, req CreateCategoryRequest) (*CategoryResponse, error)
	RemoveCategory(ctx context.Context, packageID, categoryID, operatorID uuid.UUID) error
	GetOperatorPackages(ctx context.Context, operatorID uuid.UUID) ([]PackageResponse, error)

	GetPackageByID(ctx context.Context, id uuid.UUID) (*PackageResponse, error)
	GetAllPackages(ctx context.Context, query PackageListQuery) (*PaginatedPackages, error)
	GetFeaturedPackages(ctx context.Context, limit int) ([]PackageResponse, error)
}

type service struct {
	repo         Repository
	cacheService cache.Service
	log          *logger.Logger
}

func NewService(repo Repository) Service {
	return &service{
		repo: repo,
		log:  logger.GetDefault(),
	}
}

func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) getCache(ctx context.Context, key string, dest interface{}) error {
	if s.cacheService == nil {
		return cache.ErrCacheMiss
	}
	return s.cacheService.Get(ctx, key, dest)
}

func (s *service) setCache(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if s.cacheService == nil {
		return
	}
	if err := s.cacheService.Set(ctx, key, value, ttl); err != nil {
		s.log.Warn("failed to cache package data", "key", key, "error", err)
	}
}

func (s *service) invalidatePackageCache(ctx context.Context, packageID *uuid.UUID) {
	if s.cacheService == nil {
		return
	}

	patterns := []string{constants.PATTERN_INVALIDATE_PACKAGES_ALL}
	if packageID != nil {
		patterns = append(patterns, constants.PATTERN_INVALIDATE_PACKAGE_DETAIL+packageID.String()+"*")
	}

	for _, pattern := range patterns {
		if err := s.cacheService.DeletePattern(ctx, pattern); err != nil {
			s.log.Warn("failed to invalidate package cache", "pattern", pattern, "error", err)
		}
	}
}

func (s *service) CreatePackage(ctx context.Context, operatorID uuid.UUID, req CreatePackageRequest) (*PackageResponse, error) {
	if !req.EndDate.After(req.StartDate) {
		return nil, ErrInvalidDates
	}

	isRefundable := true
	if req.IsRefundable != nil {
		isRefundable = *req.IsRefundable
	}

	pkg := &TourPackage{
		OperatorID:     operatorID,
		Title:          req.Title,
		Description:    req.Description,
		Location:       req.Location,
		CoverImage:     req.CoverImage,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		TotalSeats:     req.TotalSeats,
		AvailableSeats: req.TotalSeats,
		BasePrice:      req.BasePrice,
		Status:         StatusDraft,
		IsRefundable:   isRefundable,
		RefundPolicy:   req.RefundPolicy,
	}

	for _, c := range req.Categories {
		pkg.Categories = append(pkg.Categories, PackageCategory{
			Name:        c.Name,
			Description: c.Description,
			Price:       c.Price,
			Features:    c.Features,
		})
	}

	if err := s.repo.Create(ctx, pkg); err != nil {
		return nil, fmt.Errorf("failed to create package: %w", err)
	}

	response := pkg.ToResponse()
	return &response, nil
}

func (s *service) UpdatePackage(ctx context.Context, id, operatorID uuid.UUID, req UpdatePackageRequest) (*PackageResponse, error) {
	current, err := s.getOwnedPackage(ctx, id, operatorID)
	if err != nil {
		return nil, err
	}

	if !current.Status.CanBeUpdated() {
		return nil, ErrPackageNotEditable
	}

	updates := make(map[string]interface{})

	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Location != nil {
		updates["location"] = *req.Location
	}
	if req.CoverImage != nil {
		updates["cover_image"] = *req.CoverImage
	}
	if req.StartDate != nil {
		updates["start_date"] = *req.StartDate
	}
	if req.EndDate != nil {
		updates["end_date"] = *req.EndDate
	}
	if req.BasePrice != nil {
		updates["base_price"] = *req.BasePrice
	}
	if req.IsRefundable != nil {
		updates["is_refundable"] = *req.IsRefundable
	}
	if req.RefundPolicy != nil {
		updates["refund_policy"] = *req.RefundPolicy
	}
	if req.Featured != nil {
		updates["featured"] = *req.Featured
	}

	startDate := current.StartDate
	if req.StartDate != nil {
		startDate = *req.StartDate
	}
	endDate := current.EndDate
	if req.EndDate != nil {
		endDate = *req.EndDate
	}
	if !endDate.After(startDate) {
		return nil, ErrInvalidDates
	}

	updated, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		return nil, fmt.Errorf("failed to update package: %w", err)
	}

	s.invalidatePackageCache(ctx, &id)

	response := updated.ToResponse()
	return &response, nil
}

func (s *service) DeletePackage(ctx context.Context, id, operatorID uuid.UUID) error {
	current, err := s.getOwnedPackage(ctx, id, operatorID)
	if err != nil {
		return err
	}

	if !current.Status.CanBeDeleted() {
		return ErrPackageNotEditable
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete package: %w", err)
	}

	s.invalidatePackageCache(ctx, &id)
	return nil
}

func (s *service) PublishPackage(ctx context.Context, id, operatorID uuid.UUID) (*PackageResponse, error) {
	return s.transition(ctx, id, operatorID, StatusPublished, map[string]interface{}{
		"published_at": time.Now(),
	})
}

func (s *service) ClosePackage(ctx context.Context, id, operatorID uuid.UUID) (*PackageResponse, error) {
	return s.transition(ctx, id, operatorID, StatusClosed, map[string]interface{}{
		"closed_at": time.Now(),
	})
}

// CancelPackage takes a draft or published package off the market. Existing
// bookings stay valid; refunds go through the refund flow.
func (s *service) CancelPackage(ctx context.Context, id, operatorID uuid.UUID) (*PackageResponse, error) {
	return s.transition(ctx, id, operatorID, StatusCancelled, map[string]interface{}{
		"closed_at": time.Now(),
	})
}

func (s *service) transition(ctx context.Context, id, operatorID uuid.UUID, target PackageStatus, timestamps map[string]interface{}) (*PackageResponse, error) {
	current, err := s.getOwnedPackage(ctx, id, operatorID)
	if err != nil {
		return nil, err
	}

	if !current.Status.CanTransitionTo(target) {
		return nil, ErrInvalidTransition
	}

	ok, err := s.repo.UpdateStatus(ctx, id, current.Status, target, timestamps)
	if err != nil {
		return nil, fmt.Errorf("failed to update package status: %w", err)
	}
	if !ok {
		// Lost the race to another transition.
		return nil, ErrInvalidTransition
	}

	if target == StatusPublished {
		s.log.LogPackagePublished(ctx, id.String(), operatorID.String())
	}

	s.invalidatePackageCache(ctx, &id)

	updated, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload package: %w", err)
	}

	response := updated.ToResponse()
	return &response, nil
}

func (s *service) AddCategory(ctx context.Context, packageID, operatorID uuid.UUID, req CreateCategoryRequest) (*CategoryResponse, error) {
	current, err := s.getOwnedPackage(ctx, packageID, operatorID)
	if err != nil {
		return nil, err
	}

	if !current.Status.CanBeUpdated() {
		return nil, ErrPackageNotEditable
	}

	category := &PackageCategory{
		PackageID:   packageID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Features:    req.Features,
	}

	if err := s.repo.AddCategory(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to add category: %w", err)
	}

	s.invalidatePackageCache(ctx, &packageID)

	response := category.ToResponse()
	return &response, nil
}

func (s *service) RemoveCategory(ctx context.Context, packageID, categoryID, operatorID uuid.UUID) error {
	current, err := s.getOwnedPackage(ctx, packageID, operatorID)
	if err != nil {
		return err
	}

	if !current.Status.CanBeUpdated() {
		return ErrPackageNotEditable
	}

	if err := s.repo.DeleteCategory(ctx, packageID, categoryID); err != nil {
		return fmt.Errorf("failed to remove category: %w", err)
	}

	s.invalidatePackageCache(ctx, &packageID)
	return nil
}

func (s *service) GetOperatorPackages(ctx context.Context, operatorID uuid.UUID) ([]PackageResponse, error) {
	pkgs, err := s.repo.GetByOperator(ctx, operatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to get operator packages: %w", err)
	}

	responses := make([]PackageResponse, len(pkgs))
	for i, pkg := range pkgs {
		responses[i] = pkg.ToResponse()
	}
	return responses, nil
}

func (s *service) GetPackageByID(ctx context.Context, id uuid.UUID) (*PackageResponse, error) {
	cacheKey := constants.BuildPackageDetailKey(id.String())

	var cached PackageResponse
	if err := s.getCache(ctx, cacheKey, &cached); err == nil {
		return &cached, nil
	}

	pkg, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPackageNotFound
		}
		return nil, fmt.Errorf("failed to get package: %w", err)
	}

	response := pkg.ToResponse()
	s.setCache(ctx, cacheKey, response, constants.TTL_PACKAGE_DETAIL)

	return &response, nil
}

func (s *service) GetAllPackages(ctx context.Context, query PackageListQuery) (*PaginatedPackages, error) {
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 10
	}

	cacheKey := constants.BuildPackageListKey(query.Page, query.Limit, query.Location, query.Status)

	// Search and date filters bypass the cache; the key space would explode.
	cacheable := query.Search == "" && query.DateFrom == "" && query.DateTo == ""

	if cacheable {
		var cached PaginatedPackages
		if err := s.getCache(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	pkgs, totalCount, err := s.repo.GetAll(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get packages: %w", err)
	}

	responses := make([]PackageResponse, len(pkgs))
	for i, pkg := range pkgs {
		responses[i] = pkg.ToResponse()
	}

	totalPages := int(math.Ceil(float64(totalCount) / float64(query.Limit)))

	result := &PaginatedPackages{
		Packages:   responses,
		TotalCount: totalCount,
		Page:       query.Page,
		Limit:      query.Limit,
		TotalPages: totalPages,
	}

	if cacheable {
		s.setCache(ctx, cacheKey, result, constants.TTL_PACKAGES_LIST)
	}

	return result, nil
}

func (s *service) GetFeaturedPackages(ctx context.Context, limit int) ([]PackageResponse, error) {
	if limit <= 0 {
		limit = 6
	}
	if limit > 50 {
		limit = 50
	}

	cacheKey := constants.BuildFeaturedPackagesKey(limit)

	var cached []PackageResponse
	if err := s.getCache(ctx, cacheKey, &cached); err == nil {
		return cached, nil
	}

	pkgs, err := s.repo.GetFeatured(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get featured packages: %w", err)
	}

	responses := make([]PackageResponse, len(pkgs))
	for i, pkg := range pkgs {
		responses[i] = pkg.ToResponse()
	}

	s.setCache(ctx, cacheKey, responses, constants.TTL_PACKAGES_FEATURED)

	return responses, nil
}

func (s *service) getOwnedPackage(ctx context.Context, id, operatorID uuid.UUID) (*TourPackage, error) {
	pkg, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPackageNotFound
		}
		return nil, fmt.Errorf("failed to get package: %w", err)
	}

	if pkg.OperatorID != operatorID {
		return nil, ErrNotOwner
	}

	return pkg, nil
}
