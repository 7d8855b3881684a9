package seed

import (
	"testing"

	"typehero/internal/models"
	"typehero/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_PopulatesAllTables(t *testing.T) {
	db := testutil.OpenTestDB(t)

	require.NoError(t, Run(db, Options{NumUsers: 5, NumComments: 40, MaxDays: 7}))

	var users, challenges, solutions, comments, reports int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	require.NoError(t, db.Model(&models.Challenge{}).Count(&challenges).Error)
	require.NoError(t, db.Model(&models.Solution{}).Count(&solutions).Error)
	require.NoError(t, db.Model(&models.Comment{}).Count(&comments).Error)
	require.NoError(t, db.Model(&models.Report{}).Count(&reports).Error)

	assert.EqualValues(t, 5, users)
	assert.EqualValues(t, int64(len(starterChallenges)), challenges)
	assert.GreaterOrEqual(t, solutions, challenges)
	assert.EqualValues(t, 40, comments)
	assert.EqualValues(t, comments/20, reports)

	// the first user is promoted to admin
	var admin models.User
	require.NoError(t, db.Order("id asc").First(&admin).Error)
	assert.True(t, admin.IsAdmin)
}

func TestRun_RepliesInheritParentRoot(t *testing.T) {
	db := testutil.OpenTestDB(t)

	require.NoError(t, Run(db, Options{NumUsers: 4, NumComments: 60}))

	var replies []models.Comment
	require.NoError(t, db.Where("parent_id IS NOT NULL").Find(&replies).Error)

	for _, reply := range replies {
		var parent models.Comment
		require.NoError(t, db.First(&parent, *reply.ParentID).Error)
		assert.Equal(t, parent.RootType, reply.RootType)
		assert.Equal(t, parent.RootID, reply.RootID)
		assert.Nil(t, parent.ParentID, "seed must not create nested reply chains")
	}
}

func TestRun_CleanRemovesExistingRows(t *testing.T) {
	db := testutil.OpenTestDB(t)

	require.NoError(t, Run(db, Options{NumUsers: 3, NumComments: 15}))
	require.NoError(t, Run(db, Options{NumUsers: 3, NumComments: 15, ShouldClean: true}))

	var users int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	assert.EqualValues(t, 3, users)
}

func TestReport_AlwaysHasCategoryOrText(t *testing.T) {
	db := testutil.OpenTestDB(t)

	require.NoError(t, Run(db, Options{NumUsers: 5, NumComments: 100}))

	var reports []models.Report
	require.NoError(t, db.Find(&reports).Error)
	require.NotEmpty(t, reports)

	for _, r := range reports {
		assert.True(t, r.HasCategory() || r.Text != "", "report %d has neither category nor text", r.ID)
		assert.Equal(t, models.ReportStatusOpen, r.Status)
	}
}
