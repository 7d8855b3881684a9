package repository

import (
	"context"

	"typehero/internal/models"

	"gorm.io/gorm"
)

// ChallengeRepository defines interface for challenge and solution operations
type ChallengeRepository interface {
	Create(ctx context.Context, challenge *models.Challenge) error
	GetByID(ctx context.Context, id uint) (*models.Challenge, error)
	GetBySlug(ctx context.Context, slug string) (*models.Challenge, error)
	List(ctx context.Context, difficulty string, limit, offset int) ([]*models.Challenge, error)
	CreateSolution(ctx context.Context, solution *models.Solution) error
	GetSolutionByID(ctx context.Context, id uint) (*models.Solution, error)
	ListSolutions(ctx context.Context, challengeID uint, limit, offset int) ([]*models.Solution, error)
	RootExists(ctx context.Context, rootType string, rootID uint) (bool, error)
}

type challengeRepository struct {
	db *gorm.DB
}

// NewChallengeRepository creates a new ChallengeRepository
func NewChallengeRepository(db *gorm.DB) ChallengeRepository {
	return &challengeRepository{db: db}
}

// commentsCountSelect computes the number of top-level comments per challenge.
const commentsCountSelect = `challenges.*, (SELECT COUNT(*) FROM comments ` +
	`WHERE comments.root_type = 'challenge' AND comments.root_id = challenges.id ` +
	`AND comments.deleted_at IS NULL) AS comments_count`

func (r *challengeRepository) Create(ctx context.Context, challenge *models.Challenge) error {
	return r.db.WithContext(ctx).Create(challenge).Error
}

func (r *challengeRepository) GetByID(ctx context.Context, id uint) (*models.Challenge, error) {
	var challenge models.Challenge
	if err := r.db.WithContext(ctx).
		Select(commentsCountSelect).
		Preload("User").
		First(&challenge, id).Error; err != nil {
		return nil, err
	}
	return &challenge, nil
}

func (r *challengeRepository) GetBySlug(ctx context.Context, slug string) (*models.Challenge, error) {
	var challenge models.Challenge
	if err := r.db.WithContext(ctx).
		Select(commentsCountSelect).
		Preload("User").
		Where("slug = ?", slug).
		First(&challenge).Error; err != nil {
		return nil, err
	}
	return &challenge, nil
}

func (r *challengeRepository) List(
	ctx context.Context,
	difficulty string,
	limit, offset int,
) ([]*models.Challenge, error) {
	query := r.db.WithContext(ctx).Select(commentsCountSelect).Preload("User")
	if difficulty != "" {
		query = query.Where("difficulty = ?", difficulty)
	}

	var challenges []*models.Challenge
	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&challenges).Error
	return challenges, err
}

func (r *challengeRepository) CreateSolution(ctx context.Context, solution *models.Solution) error {
	return r.db.WithContext(ctx).Create(solution).Error
}

func (r *challengeRepository) GetSolutionByID(ctx context.Context, id uint) (*models.Solution, error) {
	var solution models.Solution
	if err := r.db.WithContext(ctx).Preload("User").First(&solution, id).Error; err != nil {
		return nil, err
	}
	return &solution, nil
}

func (r *challengeRepository) ListSolutions(
	ctx context.Context,
	challengeID uint,
	limit, offset int,
) ([]*models.Solution, error) {
	var solutions []*models.Solution
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("challenge_id = ?", challengeID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&solutions).Error
	return solutions, err
}

// RootExists reports whether a comment root (challenge or solution) exists.
func (r *challengeRepository) RootExists(ctx context.Context, rootType string, rootID uint) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx)
	switch rootType {
	case models.RootTypeChallenge:
		query = query.Model(&models.Challenge{})
	case models.RootTypeSolution:
		query = query.Model(&models.Solution{})
	default:
		return false, nil
	}
	if err := query.Where("id = ?", rootID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
