package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ahmetcoskunkizilkaya/lapsell-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/lapsell-backend/internal/repository"
)

var ErrInvalidReport = errors.New("productId is required")

const maxReasonLength = 500

type ReportService struct {
	reports repository.ReportedProductRepository
}

func NewReportService(reports repository.ReportedProductRepository) *ReportService {
	return &ReportService{reports: reports}
}

func (s *ReportService) CreateReport(ctx context.Context, report *models.ReportedProduct) (*repository.InsertResult, error) {
	if strings.TrimSpace(report.ProductID) == "" {
		return nil, ErrInvalidReport
	}

	report.Reason = strings.TrimSpace(report.Reason)
	if r := []rune(report.Reason); len(r) > maxReasonLength {
		report.Reason = string(r[:maxReasonLength])
	}

	res, err := s.reports.Insert(ctx, report)
	if err != nil {
		return nil, fmt.Errorf("failed to create report: %w", err)
	}
	return res, nil
}

func (s *ReportService) ListReports(ctx context.Context) ([]models.ReportedProduct, error) {
	return s.reports.List(ctx)
}

func (s *ReportService) DeleteReport(ctx context.Context, id string) (*repository.DeleteResult, error) {
	return s.reports.Delete(ctx, id)
}
