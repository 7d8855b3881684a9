package repository

import (
	"context"
	"regexp"
	"testing"

	"typehero/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestReportRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewReportRepository(db)
	ctx := context.Background()

	report := &models.Report{CommentID: 5, ReporterID: 1, Spam: true}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "reports"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	err := repo.Create(ctx, report)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReportRepository_HasOpenReport(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewReportRepository(db)
	ctx := context.Background()

	tests := []struct {
		name     string
		count    int64
		expected bool
	}{
		{"open report exists", 1, true},
		{"no open report", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "reports" WHERE reporter_id = $1 AND comment_id = $2 AND status = $3`)).
				WithArgs(1, 5, models.ReportStatusOpen).
				WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(tt.count))

			got, err := repo.HasOpenReport(ctx, 1, 5)
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, got)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestReportRepository_List_FilterByStatus(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewReportRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM "reports" WHERE status = $1`)).
		WithArgs(models.ReportStatusOpen, 20).
		WillReturnRows(sqlmock.NewRows([]string{"id", "comment_id", "reporter_id", "status"}).
			AddRow(1, 5, 101, models.ReportStatusOpen))

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1`)).
		WithArgs(101).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).AddRow(101, "reporter"))

	reports, err := repo.List(ctx, models.ReportStatusOpen, 20, 0)
	assert.NoError(t, err)
	assert.Len(t, reports, 1)
	assert.Equal(t, models.ReportStatusOpen, reports[0].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReportRepository_Resolve(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewReportRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "reports" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Resolve(ctx, 1, models.ReportStatusResolved, 9, "removed the comment")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
