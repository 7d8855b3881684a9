package service

import (
	"context"
	"strings"

	"typehero/internal/models"
	"typehero/internal/repository"
)

const maxReportTextLen = 500

type ReportService struct {
	reportRepo  repository.ReportRepository
	commentRepo repository.CommentRepository
}

type CreateReportInput struct {
	ReporterID uint
	CommentID  uint
	Spam       bool
	Threat     bool
	HateSpeech bool
	Bullying   bool
	Text       string
}

type ResolveReportInput struct {
	AdminID  uint
	ReportID uint
	Status   string
	Note     string
}

func NewReportService(
	reportRepo repository.ReportRepository,
	commentRepo repository.CommentRepository,
) *ReportService {
	return &ReportService{
		reportRepo:  reportRepo,
		commentRepo: commentRepo,
	}
}

// CreateReport files an abuse report against a comment. A report needs at
// least one category flag or a free-text reason, and a reporter may only have
// one open report per comment.
func (s *ReportService) CreateReport(ctx context.Context, in CreateReportInput) (*models.Report, error) {
	report := &models.Report{
		CommentID:  in.CommentID,
		ReporterID: in.ReporterID,
		Spam:       in.Spam,
		Threat:     in.Threat,
		HateSpeech: in.HateSpeech,
		Bullying:   in.Bullying,
		Text:       strings.TrimSpace(in.Text),
		Status:     models.ReportStatusOpen,
	}

	if !report.HasCategory() && report.Text == "" {
		return nil, models.NewValidationError("Select a category or describe the problem")
	}
	if len(report.Text) > maxReportTextLen {
		return nil, models.NewValidationError("Report text too long (max 500 characters)")
	}

	if _, err := s.commentRepo.GetByID(ctx, in.CommentID); err != nil {
		return nil, err
	}

	exists, err := s.reportRepo.HasOpenReport(ctx, in.ReporterID, in.CommentID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, models.NewAlreadyExistsError("You already reported this comment")
	}

	if err := s.reportRepo.Create(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

func (s *ReportService) ListReports(ctx context.Context, status string, limit, offset int) ([]*models.Report, error) {
	if status != "" &&
		status != models.ReportStatusOpen &&
		status != models.ReportStatusResolved &&
		status != models.ReportStatusDismissed {
		return nil, models.NewValidationError("Unknown report status: " + status)
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.reportRepo.List(ctx, status, limit, offset)
}

// ResolveReport closes an open report as resolved or dismissed.
func (s *ReportService) ResolveReport(ctx context.Context, in ResolveReportInput) (*models.Report, error) {
	if in.Status != models.ReportStatusResolved && in.Status != models.ReportStatusDismissed {
		return nil, models.NewValidationError("Status must be resolved or dismissed")
	}

	report, err := s.reportRepo.GetByID(ctx, in.ReportID)
	if err != nil {
		return nil, err
	}
	if report.Status != models.ReportStatusOpen {
		return nil, models.NewValidationError("Report is already " + report.Status)
	}

	if err := s.reportRepo.Resolve(ctx, in.ReportID, in.Status, in.AdminID, strings.TrimSpace(in.Note)); err != nil {
		return nil, err
	}
	return s.reportRepo.GetByID(ctx, in.ReportID)
}
