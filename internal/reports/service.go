package reports

import (
	"context"
	"errors"
	"log/slog"

	"hawabodol/internal/packages"
	"hawabodol/pkg/logger"

	"github.com/google/uuid"
)

var (
	ErrReportNotFound  = errors.New("report not found")
	ErrAlreadyResolved = errors.New("report already resolved")
)

// PackageService verifies the reported package exists; declared here to
// avoid a circular dependency.
type PackageService interface {
	GetPackageByID(ctx context.Context, id uuid.UUID) (*packages.PackageResponse, error)
}

type Service interface {
	CreateReport(ctx context.Context, reporterID uuid.UUID, req CreateReportRequest) (*Report, error)
	GetReport(ctx context.Context, id uuid.UUID) (*Report, error)
	GetReports(ctx context.Context, query ReportListQuery) (*PaginatedReports, error)
	ResolveReport(ctx context.Context, adminID, reportID uuid.UUID, req ResolveReportRequest) (*Report, error)
	GetOperatorDashboard(ctx context.Context, operatorID uuid.UUID) (*OperatorDashboard, error)
}

type service struct {
	repo           Repository
	packageService PackageService
	log            *logger.Logger
}

func NewService(repo Repository, packageService PackageService) Service {
	return &service{
		repo:           repo,
		packageService: packageService,
		log:            logger.GetDefault(),
	}
}

func (s *service) CreateReport(ctx context.Context, reporterID uuid.UUID, req CreateReportRequest) (*Report, error) {
	packageID, err := uuid.Parse(req.PackageID)
	if err != nil {
		return nil, packages.ErrPackageNotFound
	}
	if _, err := s.packageService.GetPackageByID(ctx, packageID); err != nil {
		return nil, err
	}

	report := &Report{
		PackageID:  packageID,
		ReporterID: reporterID,
		Title:      req.Title,
		Reason:     req.Reason,
		Status:     StatusOpen,
	}
	if err := s.repo.Create(ctx, report); err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "Report Filed",
		slog.String("report_id", report.ID.String()),
		slog.String("package_id", packageID.String()),
		slog.String("reporter_id", reporterID.String()),
	)
	return report, nil
}

func (s *service) GetReport(ctx context.Context, id uuid.UUID) (*Report, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetReports(ctx context.Context, query ReportListQuery) (*PaginatedReports, error) {
	reports, total, err := s.repo.GetAll(ctx, query)
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

	return &PaginatedReports{
		Reports:    reports,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: int((total + int64(limit) - 1) / int64(limit)),
	}, nil
}

func (s *service) ResolveReport(ctx context.Context, adminID, reportID uuid.UUID, req ResolveReportRequest) (*Report, error) {
	to := StatusResolved
	if req.Action == "dismiss" {
		to = StatusDismissed
	}

	applied, err := s.repo.Resolve(ctx, reportID, adminID, to, req.Resolution)
	if err != nil {
		return nil, err
	}
	if !applied {
		// Distinguish a missing report from one already decided.
		if _, err := s.repo.GetByID(ctx, reportID); err != nil {
			return nil, err
		}
		return nil, ErrAlreadyResolved
	}

	s.log.InfoContext(ctx, "Report Resolved",
		slog.String("report_id", reportID.String()),
		slog.String("admin_id", adminID.String()),
		slog.String("decision", string(to)),
	)
	return s.repo.GetByID(ctx, reportID)
}

func (s *service) GetOperatorDashboard(ctx context.Context, operatorID uuid.UUID) (*OperatorDashboard, error) {
	return s.repo.OperatorDashboard(ctx, operatorID)
}
