package favorites

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"hawabodol/internal/packages"
)

// PackageService is the slice of the package service favorites need.
type PackageService interface {
	GetPackageByID(ctx context.Context, id uuid.UUID) (*packages.PackageResponse, error)
}

type Service interface {
	AddFavorite(ctx context.Context, touristID uuid.UUID, packageID uuid.UUID) error
	RemoveFavorite(ctx context.Context, touristID, packageID uuid.UUID) error
	GetMyFavorites(ctx context.Context, touristID uuid.UUID) ([]packages.PackageResponse, error)
}

type service struct {
	repo           Repository
	packageService PackageService
}

func NewService(repo Repository, packageService PackageService) Service {
	return &service{
		repo:           repo,
		packageService: packageService,
	}
}

func (s *service) AddFavorite(ctx context.Context, touristID uuid.UUID, packageID uuid.UUID) error {
	if _, err := s.packageService.GetPackageByID(ctx, packageID); err != nil {
		return err
	}

	return s.repo.Add(ctx, &Favorite{
		TouristID: touristID,
		PackageID: packageID,
	})
}

func (s *service) RemoveFavorite(ctx context.Context, touristID, packageID uuid.UUID) error {
	if _, err := s.repo.Remove(ctx, touristID, packageID); err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}
	return nil
}

func (s *service) GetMyFavorites(ctx context.Context, touristID uuid.UUID) ([]packages.PackageResponse, error) {
	pkgs, err := s.repo.GetPackages(ctx, touristID)
	if err != nil {
		return nil, fmt.Errorf("failed to get favorites: %w", err)
	}

	responses := make([]packages.PackageResponse, len(pkgs))
	for i, pkg := range pkgs {
		responses[i] = pkg.ToResponse()
	}
	return responses, nil
}
