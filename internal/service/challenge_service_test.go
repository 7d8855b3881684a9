package service

import (
	"context"
	"testing"

	"typehero/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChallengeService_CreateChallenge(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	adminOnly := func(_ context.Context, userID uint) (bool, error) { return userID == 9, nil }

	valid := CreateChallengeInput{
		UserID:     9,
		Slug:       "two-sum",
		Title:      "Two Sum",
		Prompt:     "Find indices of two numbers adding to target.",
		Difficulty: models.DifficultyEasy,
	}

	t.Run("admin publishes", func(t *testing.T) {
		t.Parallel()
		var created *models.Challenge
		repo := &challengeRepoStub{
			createFn: func(_ context.Context, c *models.Challenge) error {
				c.ID = 1
				created = c
				return nil
			},
		}
		svc := NewChallengeService(repo, adminOnly)

		challenge, err := svc.CreateChallenge(ctx, valid)
		require.NoError(t, err)
		assert.Equal(t, uint(1), challenge.ID)
		require.NotNil(t, created)
		assert.Equal(t, "two-sum", created.Slug)
	})

	t.Run("non-admin rejected", func(t *testing.T) {
		t.Parallel()
		svc := NewChallengeService(&challengeRepoStub{}, adminOnly)
		in := valid
		in.UserID = 1
		_, err := svc.CreateChallenge(ctx, in)
		assertUnauthorizedError(t, err)
	})

	t.Run("bad slug", func(t *testing.T) {
		t.Parallel()
		svc := NewChallengeService(&challengeRepoStub{}, adminOnly)
		for _, slug := range []string{"", "Two-Sum", "two sum", "two--sum", "-two-sum"} {
			in := valid
			in.Slug = slug
			_, err := svc.CreateChallenge(ctx, in)
			assertValidationError(t, err)
		}
	})

	t.Run("duplicate slug", func(t *testing.T) {
		t.Parallel()
		repo := &challengeRepoStub{
			getBySlugFn: func(_ context.Context, slug string) (*models.Challenge, error) {
				return &models.Challenge{ID: 1, Slug: slug}, nil
			},
		}
		svc := NewChallengeService(repo, adminOnly)
		_, err := svc.CreateChallenge(ctx, valid)
		assertErrorCode(t, err, models.CodeAlreadyExists)
	})

	t.Run("unknown difficulty", func(t *testing.T) {
		t.Parallel()
		svc := NewChallengeService(&challengeRepoStub{}, adminOnly)
		in := valid
		in.Difficulty = "impossible"
		_, err := svc.CreateChallenge(ctx, in)
		assertValidationError(t, err)
	})
}

func TestChallengeService_SubmitSolution(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		var created *models.Solution
		repo := &challengeRepoStub{
			createSolutionFn: func(_ context.Context, s *models.Solution) error {
				s.ID = 3
				created = s
				return nil
			},
		}
		svc := NewChallengeService(repo, nil)

		solution, err := svc.SubmitSolution(ctx, SubmitSolutionInput{
			UserID:      1,
			ChallengeID: 7,
			Title:       "Hash map pass",
			Code:        "const twoSum = () => {}",
		})
		require.NoError(t, err)
		assert.Equal(t, uint(3), solution.ID)
		require.NotNil(t, created)
		assert.Equal(t, uint(7), created.ChallengeID)
	})

	t.Run("empty code", func(t *testing.T) {
		t.Parallel()
		svc := NewChallengeService(&challengeRepoStub{}, nil)
		_, err := svc.SubmitSolution(ctx, SubmitSolutionInput{UserID: 1, ChallengeID: 7, Title: "x"})
		assertValidationError(t, err)
	})
}

func TestChallengeService_ListChallenges(t *testing.T) {
	t.Parallel()

	svc := NewChallengeService(&challengeRepoStub{}, nil)
	_, err := svc.ListChallenges(context.Background(), "impossible", 20, 0)
	assertValidationError(t, err)
}
