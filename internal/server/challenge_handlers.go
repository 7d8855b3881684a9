package server

import (
	"typehero/internal/models"
	"typehero/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetChallenges handles GET /api/challenges
func (s *Server) GetChallenges(c *fiber.Ctx) error {
	p := parsePagination(c, 20)
	difficulty := c.Query("difficulty")

	challenges, err := s.challengeService.ListChallenges(c.UserContext(), difficulty, p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.JSON(fiber.Map{
		"challenges": challenges,
		"limit":      p.Limit,
		"offset":     p.Offset,
	})
}

// GetChallenge handles GET /api/challenges/:slug
func (s *Server) GetChallenge(c *fiber.Ctx) error {
	challenge, err := s.challengeService.GetChallengeBySlug(c.UserContext(), c.Params("slug"))
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.JSON(challenge)
}

// CreateChallenge handles POST /api/challenges (admin only)
func (s *Server) CreateChallenge(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Slug       string `json:"slug"`
		Title      string `json:"title"`
		Prompt     string `json:"prompt"`
		Difficulty string `json:"difficulty"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	challenge, err := s.challengeService.CreateChallenge(c.UserContext(), service.CreateChallengeInput{
		UserID:     userID,
		Slug:       req.Slug,
		Title:      req.Title,
		Prompt:     req.Prompt,
		Difficulty: req.Difficulty,
	})
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(challenge)
}

// GetChallengeSolutions handles GET /api/challenges/:slug/solutions
func (s *Server) GetChallengeSolutions(c *fiber.Ctx) error {
	challenge, err := s.challengeService.GetChallengeBySlug(c.UserContext(), c.Params("slug"))
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	p := parsePagination(c, 20)
	solutions, err := s.challengeService.ListSolutions(c.UserContext(), challenge.ID, p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.JSON(fiber.Map{
		"solutions": solutions,
		"limit":     p.Limit,
		"offset":    p.Offset,
	})
}

// SubmitSolution handles POST /api/challenges/:slug/solutions
func (s *Server) SubmitSolution(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	challenge, err := s.challengeService.GetChallengeBySlug(c.UserContext(), c.Params("slug"))
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	var req struct {
		Title string `json:"title"`
		Code  string `json:"code"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	solution, err := s.challengeService.SubmitSolution(c.UserContext(), service.SubmitSolutionInput{
		UserID:      userID,
		ChallengeID: challenge.ID,
		Title:       req.Title,
		Code:        req.Code,
	})
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(solution)
}
