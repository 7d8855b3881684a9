package server

import (
	"typehero/internal/models"
	"typehero/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ReportComment handles POST /api/comments/:commentId/report
func (s *Server) ReportComment(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	commentID, err := parseID(c, "commentId")
	if err != nil {
		return nil
	}

	var req struct {
		Spam       bool   `json:"spam"`
		Threat     bool   `json:"threat"`
		HateSpeech bool   `json:"hate_speech"`
		Bullying   bool   `json:"bullying"`
		Text       string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	report, svcErr := s.reportService.CreateReport(c.UserContext(), service.CreateReportInput{
		ReporterID: userID,
		CommentID:  commentID,
		Spam:       req.Spam,
		Threat:     req.Threat,
		HateSpeech: req.HateSpeech,
		Bullying:   req.Bullying,
		Text:       req.Text,
	})
	if svcErr != nil {
		return models.RespondWithError(c, statusForError(svcErr), svcErr)
	}

	return c.Status(fiber.StatusCreated).JSON(report)
}

// GetAdminReports handles GET /api/admin/reports (admin only). Optional
// ?status=open|resolved|dismissed filters the list.
func (s *Server) GetAdminReports(c *fiber.Ctx) error {
	p := parsePagination(c, 20)

	reports, err := s.reportService.ListReports(c.UserContext(), c.Query("status"), p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.JSON(fiber.Map{
		"reports": reports,
		"limit":   p.Limit,
		"offset":  p.Offset,
	})
}

// ResolveAdminReport handles POST /api/admin/reports/:reportId/resolve (admin only)
func (s *Server) ResolveAdminReport(c *fiber.Ctx) error {
	adminID := c.Locals("userID").(uint)

	reportID, err := parseID(c, "reportId")
	if err != nil {
		return nil
	}

	var req struct {
		Status string `json:"status"`
		Note   string `json:"note"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	report, svcErr := s.reportService.ResolveReport(c.UserContext(), service.ResolveReportInput{
		AdminID:  adminID,
		ReportID: reportID,
		Status:   req.Status,
		Note:     req.Note,
	})
	if svcErr != nil {
		return models.RespondWithError(c, statusForError(svcErr), svcErr)
	}

	return c.JSON(report)
}
