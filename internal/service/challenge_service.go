package service

import (
	"context"
	"regexp"
	"strings"

	"typehero/internal/models"
	"typehero/internal/repository"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

type ChallengeService struct {
	challengeRepo repository.ChallengeRepository
	isAdmin       func(ctx context.Context, userID uint) (bool, error)
}

type CreateChallengeInput struct {
	UserID     uint
	Slug       string
	Title      string
	Prompt     string
	Difficulty string
}

type SubmitSolutionInput struct {
	UserID      uint
	ChallengeID uint
	Title       string
	Code        string
}

func NewChallengeService(
	challengeRepo repository.ChallengeRepository,
	isAdmin func(ctx context.Context, userID uint) (bool, error),
) *ChallengeService {
	return &ChallengeService{
		challengeRepo: challengeRepo,
		isAdmin:       isAdmin,
	}
}

// CreateChallenge publishes a new challenge. Only admins can publish.
func (s *ChallengeService) CreateChallenge(ctx context.Context, in CreateChallengeInput) (*models.Challenge, error) {
	if s.isAdmin != nil {
		admin, err := s.isAdmin(ctx, in.UserID)
		if err != nil {
			return nil, err
		}
		if !admin {
			return nil, models.NewUnauthorizedError("Only admins can publish challenges")
		}
	}

	if !slugPattern.MatchString(in.Slug) {
		return nil, models.NewValidationError("Slug must be lowercase words separated by hyphens")
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if strings.TrimSpace(in.Prompt) == "" {
		return nil, models.NewValidationError("Prompt is required")
	}
	if !models.ValidDifficulty(in.Difficulty) {
		return nil, models.NewValidationError("Unknown difficulty: " + in.Difficulty)
	}

	if existing, err := s.challengeRepo.GetBySlug(ctx, in.Slug); err == nil && existing != nil {
		return nil, models.NewAlreadyExistsError("A challenge with this slug already exists")
	}

	challenge := &models.Challenge{
		Slug:       in.Slug,
		Title:      in.Title,
		Prompt:     in.Prompt,
		Difficulty: in.Difficulty,
		UserID:     in.UserID,
	}
	if err := s.challengeRepo.Create(ctx, challenge); err != nil {
		return nil, err
	}
	return challenge, nil
}

func (s *ChallengeService) GetChallengeBySlug(ctx context.Context, slug string) (*models.Challenge, error) {
	return s.challengeRepo.GetBySlug(ctx, slug)
}

func (s *ChallengeService) ListChallenges(ctx context.Context, difficulty string, limit, offset int) ([]*models.Challenge, error) {
	if difficulty != "" && !models.ValidDifficulty(difficulty) {
		return nil, models.NewValidationError("Unknown difficulty: " + difficulty)
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.challengeRepo.List(ctx, difficulty, limit, offset)
}

// SubmitSolution shares a user's solution to a challenge. Solutions become
// comment roots of their own.
func (s *ChallengeService) SubmitSolution(ctx context.Context, in SubmitSolutionInput) (*models.Solution, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if strings.TrimSpace(in.Code) == "" {
		return nil, models.NewValidationError("Solution code is required")
	}
	if _, err := s.challengeRepo.GetByID(ctx, in.ChallengeID); err != nil {
		return nil, err
	}

	solution := &models.Solution{
		ChallengeID: in.ChallengeID,
		UserID:      in.UserID,
		Title:       in.Title,
		Code:        in.Code,
	}
	if err := s.challengeRepo.CreateSolution(ctx, solution); err != nil {
		return nil, err
	}
	return solution, nil
}

func (s *ChallengeService) ListSolutions(ctx context.Context, challengeID uint, limit, offset int) ([]*models.Solution, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.challengeRepo.ListSolutions(ctx, challengeID, limit, offset)
}
