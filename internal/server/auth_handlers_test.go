package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"typehero/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
)

func withMiniredis(t *testing.T, s *Server) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	s.redis = client
	return mr
}

func TestSignup(t *testing.T) {
	t.Parallel()
	s, db := newTestServer(t)
	app := fiber.New()
	app.Post("/auth/signup", s.Signup)

	t.Run("valid signup", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/auth/signup",
			jsonBody(t, map[string]string{
				"username": "newuser",
				"email":    "new@example.com",
				"password": "StrongPass123!",
			}))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("expected 201, got %d", resp.StatusCode)
		}
		var body struct {
			Token string      `json:"token"`
			User  models.User `json:"user"`
		}
		json.NewDecoder(resp.Body).Decode(&body)
		if body.Token == "" {
			t.Error("expected a token")
		}
		if body.User.Username != "newuser" {
			t.Errorf("unexpected user %q", body.User.Username)
		}

		var stored models.User
		if err := db.Where("email = ?", "new@example.com").First(&stored).Error; err != nil {
			t.Fatalf("user not persisted: %v", err)
		}
		if stored.Password == "StrongPass123!" {
			t.Error("password stored in plaintext")
		}
	})

	t.Run("weak password rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/auth/signup",
			jsonBody(t, map[string]string{
				"username": "weakuser",
				"email":    "weak@example.com",
				"password": "short",
			}))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", resp.StatusCode)
		}
	})

	t.Run("duplicate email is 409", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/auth/signup",
			jsonBody(t, map[string]string{
				"username": "anotheruser",
				"email":    "new@example.com",
				"password": "StrongPass123!",
			}))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)
		if resp.StatusCode != http.StatusConflict {
			t.Errorf("expected 409, got %d", resp.StatusCode)
		}
	})
}

func TestLogin(t *testing.T) {
	t.Parallel()
	s, db := newTestServer(t)
	app := fiber.New()
	app.Post("/auth/login", s.Login)

	hashed, _ := bcrypt.GenerateFromPassword([]byte("StrongPass123!"), bcrypt.MinCost)
	db.Create(&models.User{
		Username: "loginuser",
		Email:    "login@example.com",
		Password: string(hashed),
	})

	t.Run("valid credentials", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/auth/login",
			jsonBody(t, map[string]string{
				"email":    "login@example.com",
				"password": "StrongPass123!",
			}))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d", resp.StatusCode)
		}
		var body struct {
			Token string `json:"token"`
		}
		json.NewDecoder(resp.Body).Decode(&body)
		if body.Token == "" {
			t.Error("expected a token")
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/auth/login",
			jsonBody(t, map[string]string{
				"email":    "login@example.com",
				"password": "WrongPass123!",
			}))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", resp.StatusCode)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/auth/login",
			jsonBody(t, map[string]string{
				"email":    "nobody@example.com",
				"password": "StrongPass123!",
			}))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", resp.StatusCode)
		}
	})
}

func TestAuthRequired_BearerToken(t *testing.T) {
	t.Parallel()
	s, db := newTestServer(t)
	app := fiber.New()

	user := createTestUser(t, db, "authuser", false)
	token, err := s.generateToken(user.ID, user.Username)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	app.Get("/protected", s.AuthRequired(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_id": c.Locals("userID").(uint)})
	})

	t.Run("valid token passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, _ := app.Test(req)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d", resp.StatusCode)
		}
		var body struct {
			UserID uint `json:"user_id"`
		}
		json.NewDecoder(resp.Body).Decode(&body)
		if body.UserID != user.ID {
			t.Errorf("expected user %d, got %d", user.ID, body.UserID)
		}
	})

	t.Run("missing token is 401", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		resp, _ := app.Test(req)
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", resp.StatusCode)
		}
	})

	t.Run("garbage token is 401", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer not-a-jwt")
		resp, _ := app.Test(req)
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", resp.StatusCode)
		}
	})
}

func TestWSTicket_SingleUse(t *testing.T) {
	t.Parallel()
	s, db := newTestServer(t)
	withMiniredis(t, s)
	app := fiber.New()

	user := createTestUser(t, db, "ws-user", false)

	app.Post("/api/ws/ticket", asUser(user.ID, s.IssueWSTicket))
	app.Get("/api/ws/check", s.AuthRequired(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_id": c.Locals("userID").(uint)})
	})

	issueReq := httptest.NewRequest(http.MethodPost, "/api/ws/ticket", nil)
	issueResp, _ := app.Test(issueReq)
	if issueResp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 issuing ticket, got %d", issueResp.StatusCode)
	}
	var issued struct {
		Ticket string `json:"ticket"`
	}
	json.NewDecoder(issueResp.Body).Decode(&issued)
	if issued.Ticket == "" {
		t.Fatal("expected a ticket")
	}

	t.Run("ticket authenticates once", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/ws/check?ticket="+issued.Ticket, nil)
		resp, _ := app.Test(req)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d", resp.StatusCode)
		}
		var body struct {
			UserID uint `json:"user_id"`
		}
		json.NewDecoder(resp.Body).Decode(&body)
		if body.UserID != user.ID {
			t.Errorf("expected user %d, got %d", user.ID, body.UserID)
		}
	})

	t.Run("reusing a ticket fails", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/ws/check?ticket="+issued.Ticket, nil)
		resp, _ := app.Test(req)
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", resp.StatusCode)
		}
	})
}

func TestLogout_BlacklistsToken(t *testing.T) {
	t.Parallel()
	s, db := newTestServer(t)
	withMiniredis(t, s)
	app := fiber.New()

	user := createTestUser(t, db, "logout-user", false)
	token, err := s.generateToken(user.ID, user.Username)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	app.Post("/auth/logout", s.Logout)
	app.Get("/protected", s.AuthRequired(), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})

	preReq := httptest.NewRequest(http.MethodGet, "/protected", nil)
	preReq.Header.Set("Authorization", "Bearer "+token)
	preResp, _ := app.Test(preReq)
	if preResp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 before logout, got %d", preResp.StatusCode)
	}

	logoutReq := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	logoutReq.Header.Set("Authorization", "Bearer "+token)
	logoutResp, _ := app.Test(logoutReq)
	if logoutResp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 on logout, got %d", logoutResp.StatusCode)
	}

	postReq := httptest.NewRequest(http.MethodGet, "/protected", nil)
	postReq.Header.Set("Authorization", "Bearer "+token)
	postResp, _ := app.Test(postReq)
	if postResp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 after logout, got %d", postResp.StatusCode)
	}
}
