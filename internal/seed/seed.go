package seed

import (
	"fmt"
	"log"

	"typehero/internal/models"

	"gorm.io/gorm"
)

// Options configure a seeding run.
type Options struct {
	NumUsers    int
	NumComments int
	// MaxDays spreads created_at timestamps over the last N days.
	MaxDays     int
	ShouldClean bool
}

// Password every seeded user logs in with.
const seedPassword = "SeedPassword123!"

// curated starter challenges, in the style of type-level puzzle sets
var starterChallenges = []struct {
	slug       string
	title      string
	difficulty string
}{
	{"hello-world", "Hello World", models.DifficultyBeginner},
	{"pick", "Pick", models.DifficultyEasy},
	{"readonly", "Readonly", models.DifficultyEasy},
	{"tuple-to-object", "Tuple to Object", models.DifficultyEasy},
	{"first-of-array", "First of Array", models.DifficultyEasy},
	{"length-of-tuple", "Length of Tuple", models.DifficultyEasy},
	{"deep-readonly", "Deep Readonly", models.DifficultyMedium},
	{"chainable-options", "Chainable Options", models.DifficultyMedium},
	{"permutation", "Permutation", models.DifficultyMedium},
	{"currying", "Currying", models.DifficultyHard},
	{"union-to-intersection", "Union to Intersection", models.DifficultyHard},
	{"get-readonly-keys", "Get Readonly Keys", models.DifficultyExtreme},
}

// Run populates the database with demo users, challenges, solutions, comment
// threads, and a handful of open reports.
func Run(db *gorm.DB, opts Options) error {
	if opts.NumUsers <= 0 {
		opts.NumUsers = 25
	}
	if opts.NumComments <= 0 {
		opts.NumComments = 200
	}

	if opts.ShouldClean {
		if err := clean(db); err != nil {
			return fmt.Errorf("clean before seed: %w", err)
		}
	}

	f := NewFactory(db, opts)

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := f.CreateUser(seedPassword)
		if err != nil {
			return err
		}
		users = append(users, user)
	}
	// first seeded user doubles as the content admin
	admin := users[0]
	if err := db.Model(admin).Update("is_admin", true).Error; err != nil {
		return fmt.Errorf("promote seed admin: %w", err)
	}
	log.Printf("seeded %d users (admin: %s, password: %s)", len(users), admin.Username, seedPassword)

	challenges := make([]*models.Challenge, 0, len(starterChallenges))
	for _, sc := range starterChallenges {
		challenge, err := f.CreateChallenge(admin, sc.slug, sc.title, sc.difficulty)
		if err != nil {
			return err
		}
		challenges = append(challenges, challenge)
	}
	log.Printf("seeded %d challenges", len(challenges))

	solutions := make([]*models.Solution, 0)
	for _, challenge := range challenges {
		for i := 0; i < 1+f.rnd.Intn(4); i++ {
			solution, err := f.CreateSolution(users[f.rnd.Intn(len(users))], challenge)
			if err != nil {
				return err
			}
			solutions = append(solutions, solution)
		}
	}
	log.Printf("seeded %d solutions", len(solutions))

	comments := make([]*models.Comment, 0, opts.NumComments)
	for i := 0; i < opts.NumComments; i++ {
		author := users[f.rnd.Intn(len(users))]

		// roughly a third of comments are replies once threads exist
		if len(comments) > 10 && f.rnd.Intn(3) == 0 {
			parent := comments[f.rnd.Intn(len(comments))]
			if parent.ParentID == nil {
				reply, err := f.CreateReply(author, parent)
				if err != nil {
					return err
				}
				comments = append(comments, reply)
				continue
			}
		}

		var rootType string
		var rootID uint
		if f.rnd.Intn(2) == 0 && len(solutions) > 0 {
			rootType = models.RootTypeSolution
			rootID = solutions[f.rnd.Intn(len(solutions))].ID
		} else {
			rootType = models.RootTypeChallenge
			rootID = challenges[f.rnd.Intn(len(challenges))].ID
		}

		comment, err := f.CreateComment(author, rootType, rootID)
		if err != nil {
			return err
		}
		comments = append(comments, comment)
	}
	log.Printf("seeded %d comments", len(comments))

	numReports := len(comments) / 20
	for i := 0; i < numReports; i++ {
		if _, err := f.CreateReport(users[f.rnd.Intn(len(users))], comments[f.rnd.Intn(len(comments))]); err != nil {
			return err
		}
	}
	log.Printf("seeded %d reports", numReports)

	return nil
}

func clean(db *gorm.DB) error {
	// children first so FK constraints hold
	for _, model := range []interface{}{
		&models.Report{},
		&models.Comment{},
		&models.Solution{},
		&models.Challenge{},
		&models.User{},
	} {
		if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}
