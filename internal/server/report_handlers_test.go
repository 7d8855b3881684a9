package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"typehero/internal/models"

	"github.com/gofiber/fiber/v2"
)

func TestReportComment(t *testing.T) {
	t.Parallel()
	s, db := newTestServer(t)
	app := fiber.New()

	author := createTestUser(t, db, "rep-author", false)
	reporter := createTestUser(t, db, "reporter", false)
	challenge := createTestChallenge(t, db, author, "report-target")
	comment := &models.Comment{
		Text:     "questionable",
		RootType: models.RootTypeChallenge,
		RootID:   challenge.ID,
		UserID:   author.ID,
	}
	db.Create(comment)

	app.Post("/comments/:commentId/report", asUser(reporter.ID, s.ReportComment))

	t.Run("report with category", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost,
			fmt.Sprintf("/comments/%d/report", comment.ID),
			jsonBody(t, map[string]any{"spam": true}))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("expected 201, got %d", resp.StatusCode)
		}
		var report models.Report
		json.NewDecoder(resp.Body).Decode(&report)
		if !report.Spam || report.Status != models.ReportStatusOpen {
			t.Errorf("unexpected report: %+v", report)
		}
	})

	t.Run("duplicate report is 409", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost,
			fmt.Sprintf("/comments/%d/report", comment.ID),
			jsonBody(t, map[string]any{"threat": true}))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)
		if resp.StatusCode != http.StatusConflict {
			t.Errorf("expected 409, got %d", resp.StatusCode)
		}
	})

	t.Run("no category and no text is 400", func(t *testing.T) {
		other := &models.Comment{
			Text:     "another",
			RootType: models.RootTypeChallenge,
			RootID:   challenge.ID,
			UserID:   author.ID,
		}
		db.Create(other)
		req := httptest.NewRequest(http.MethodPost,
			fmt.Sprintf("/comments/%d/report", other.ID),
			jsonBody(t, map[string]any{}))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", resp.StatusCode)
		}
	})

	t.Run("unknown comment is 404", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/comments/99999/report",
			jsonBody(t, map[string]any{"spam": true}))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("expected 404, got %d", resp.StatusCode)
		}
	})
}

func TestAdminReportFlow(t *testing.T) {
	t.Parallel()
	s, db := newTestServer(t)
	app := fiber.New()

	author := createTestUser(t, db, "flow-author", false)
	reporter := createTestUser(t, db, "flow-reporter", false)
	admin := createTestUser(t, db, "flow-admin", true)
	challenge := createTestChallenge(t, db, author, "flow-target")
	comment := &models.Comment{
		Text:     "reported",
		RootType: models.RootTypeChallenge,
		RootID:   challenge.ID,
		UserID:   author.ID,
	}
	db.Create(comment)

	report := &models.Report{
		CommentID:  comment.ID,
		ReporterID: reporter.ID,
		Bullying:   true,
		Status:     models.ReportStatusOpen,
	}
	db.Create(report)

	app.Get("/admin/reports", asUser(admin.ID, s.GetAdminReports))
	app.Post("/admin/reports/:reportId/resolve", asUser(admin.ID, s.ResolveAdminReport))

	t.Run("list open reports", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin/reports?status=open", nil)
		resp, _ := app.Test(req)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d", resp.StatusCode)
		}
		var body struct {
			Reports []models.Report `json:"reports"`
		}
		json.NewDecoder(resp.Body).Decode(&body)
		if len(body.Reports) != 1 {
			t.Fatalf("expected 1 report, got %d", len(body.Reports))
		}
		if body.Reports[0].Reporter.Username != "flow-reporter" {
			t.Errorf("expected reporter preloaded, got %q", body.Reports[0].Reporter.Username)
		}
	})

	t.Run("invalid status filter is 400", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin/reports?status=bogus", nil)
		resp, _ := app.Test(req)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", resp.StatusCode)
		}
	})

	t.Run("resolve report", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost,
			fmt.Sprintf("/admin/reports/%d/resolve", report.ID),
			jsonBody(t, map[string]string{"status": "resolved", "note": "removed the comment"}))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d", resp.StatusCode)
		}
		var resolved models.Report
		json.NewDecoder(resp.Body).Decode(&resolved)
		if resolved.Status != models.ReportStatusResolved {
			t.Errorf("expected resolved, got %q", resolved.Status)
		}
		if resolved.ResolvedByUserID == nil || *resolved.ResolvedByUserID != admin.ID {
			t.Errorf("expected resolved_by %d, got %v", admin.ID, resolved.ResolvedByUserID)
		}
		if resolved.ResolutionNote != "removed the comment" {
			t.Errorf("unexpected note %q", resolved.ResolutionNote)
		}
	})

	t.Run("resolving twice is 400", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost,
			fmt.Sprintf("/admin/reports/%d/resolve", report.ID),
			jsonBody(t, map[string]string{"status": "dismissed"}))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", resp.StatusCode)
		}
	})
}
