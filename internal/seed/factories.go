// Package seed provides helpers to create demo and test data for the
// application database. Development and testing only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"typehero/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db   *gorm.DB
	rnd  *rand.Rand
	opts Options
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:   db,
		rnd:  rand.New(rand.NewSource(time.Now().UnixNano())),
		opts: opts,
	}
}

// pastTime returns a timestamp spread over the last opts.MaxDays days so
// seeded content doesn't all land on "now".
func (f *Factory) pastTime() time.Time {
	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}
	back := time.Duration(f.rnd.Intn(maxDays))*24*time.Hour +
		time.Duration(f.rnd.Intn(24))*time.Hour +
		time.Duration(f.rnd.Intn(60))*time.Minute
	return time.Now().Add(-back)
}

// CreateUser persists a user with a fake identity. All seeded users share the
// same password so local logins are easy.
func (f *Factory) CreateUser(password string, overrides ...func(*models.User)) (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return nil, fmt.Errorf("hash seed password: %w", err)
	}

	user := &models.User{
		Username:  fmt.Sprintf("%s%d", gofakeit.Username(), f.rnd.Intn(10000)),
		Email:     gofakeit.Email(),
		Password:  string(hashed),
		Bio:       gofakeit.Sentence(8),
		Avatar:    fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
		CreatedAt: f.pastTime(),
	}
	for _, o := range overrides {
		o(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("create seed user: %w", err)
	}
	return user, nil
}

// CreateChallenge persists a challenge authored by the given user.
func (f *Factory) CreateChallenge(author *models.User, slug, title, difficulty string) (*models.Challenge, error) {
	challenge := &models.Challenge{
		Slug:       slug,
		Title:      title,
		Prompt:     gofakeit.Paragraph(2, 3, 12, "\n\n"),
		Difficulty: difficulty,
		UserID:     author.ID,
		CreatedAt:  f.pastTime(),
	}
	if err := f.db.Create(challenge).Error; err != nil {
		return nil, fmt.Errorf("create seed challenge %q: %w", slug, err)
	}
	return challenge, nil
}

// CreateSolution persists a solution for the given challenge.
func (f *Factory) CreateSolution(author *models.User, challenge *models.Challenge) (*models.Solution, error) {
	solution := &models.Solution{
		ChallengeID: challenge.ID,
		UserID:      author.ID,
		Title:       gofakeit.Sentence(4),
		Code:        fmt.Sprintf("type Solution<T> = %s // %s", gofakeit.Word(), gofakeit.HackerPhrase()),
		CreatedAt:   f.pastTime(),
	}
	if err := f.db.Create(solution).Error; err != nil {
		return nil, fmt.Errorf("create seed solution: %w", err)
	}
	return solution, nil
}

// CreateComment persists a top-level comment on a root.
func (f *Factory) CreateComment(author *models.User, rootType string, rootID uint) (*models.Comment, error) {
	comment := &models.Comment{
		Text:      gofakeit.Paragraph(1, 2, 8, " "),
		RootType:  rootType,
		RootID:    rootID,
		UserID:    author.ID,
		CreatedAt: f.pastTime(),
	}
	if err := f.db.Create(comment).Error; err != nil {
		return nil, fmt.Errorf("create seed comment: %w", err)
	}
	return comment, nil
}

// CreateReply persists a reply under a parent comment, inheriting its root.
func (f *Factory) CreateReply(author *models.User, parent *models.Comment) (*models.Comment, error) {
	reply := &models.Comment{
		Text:      gofakeit.Sentence(12),
		RootType:  parent.RootType,
		RootID:    parent.RootID,
		ParentID:  &parent.ID,
		UserID:    author.ID,
		CreatedAt: f.pastTime(),
	}
	if err := f.db.Create(reply).Error; err != nil {
		return nil, fmt.Errorf("create seed reply: %w", err)
	}
	return reply, nil
}

// CreateReport persists an open abuse report against a comment.
func (f *Factory) CreateReport(reporter *models.User, comment *models.Comment) (*models.Report, error) {
	report := &models.Report{
		CommentID:  comment.ID,
		ReporterID: reporter.ID,
		Status:     models.ReportStatusOpen,
		CreatedAt:  f.pastTime(),
	}
	// At least one category or a free-text description.
	switch f.rnd.Intn(4) {
	case 0:
		report.Spam = true
	case 1:
		report.Threat = true
	case 2:
		report.HateSpeech = true
	default:
		report.Text = gofakeit.Sentence(10)
	}

	if err := f.db.Create(report).Error; err != nil {
		return nil, fmt.Errorf("create seed report: %w", err)
	}
	return report, nil
}
