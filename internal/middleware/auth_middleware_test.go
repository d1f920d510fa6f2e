package middleware

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"resto-erp-ws/internal/access"
	"resto-erp-ws/internal/model"
	"resto-erp-ws/internal/repository"
	"resto-erp-ws/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUsers struct {
	repository.UserRepository
	users map[uint]model.User
}

func (s stubUsers) FindByID(_ context.Context, id uint) (*model.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func newApp(tokens *jwt.Manager, users repository.UserRepository) *fiber.App {
	app := fiber.New()
	app.Get("/me", RequireAuth(tokens, users), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"id":   c.Locals(UserIDLocal),
			"name": c.Locals(UserNameLocal),
			"role": c.Locals(access.RoleLocal),
		})
	})
	return app
}

func call(t *testing.T, app *fiber.App, auth string) (int, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest("GET", "/me", nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body := map[string]interface{}{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestRequireAuth_UsesCurrentRole(t *testing.T) {
	tokens := jwt.NewManager("secret", time.Hour)
	users := stubUsers{users: map[uint]model.User{
		7: {BaseModel: model.BaseModel{ID: 7}, Name: "Rina", Role: model.RoleHR},
	}}
	token, err := tokens.GenerateToken(7, "rina@resto.id", "Rina", string(model.RoleKasir))
	require.NoError(t, err)

	status, body := call(t, newApp(tokens, users), "Bearer "+token)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "HR", body["role"])
	assert.Equal(t, float64(7), body["id"])
}

func TestRequireAuth_WithoutBackendTrustsToken(t *testing.T) {
	tokens := jwt.NewManager("secret", time.Hour)
	token, err := tokens.GenerateToken(1, "admin@resto.id", "Admin", string(model.RoleAdminPusat))
	require.NoError(t, err)

	status, body := call(t, newApp(tokens, nil), "Bearer "+token)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "AdminPusat", body["role"])
}

func TestRequireAuth_Rejects(t *testing.T) {
	tokens := jwt.NewManager("secret", time.Hour)
	other := jwt.NewManager("other", time.Hour)
	forged, _ := other.GenerateToken(7, "x@resto.id", "X", "AdminPusat")
	unknown, _ := tokens.GenerateToken(99, "y@resto.id", "Y", "AdminPusat")
	app := newApp(tokens, stubUsers{users: map[uint]model.User{}})

	for _, auth := range []string{"", "Token abc", "Bearer " + forged, "Bearer " + unknown} {
		status, body := call(t, app, auth)
		assert.Equal(t, fiber.StatusUnauthorized, status, auth)
		assert.Equal(t, access.LoginPath, body["redirect_to"])
	}
}

func TestRequireSocketAuth(t *testing.T) {
	tokens := jwt.NewManager("secret", time.Hour)
	token, err := tokens.GenerateToken(7, "rina@resto.id", "Rina", string(model.RoleHR))
	require.NoError(t, err)
	forged, _ := jwt.NewManager("other", time.Hour).GenerateToken(7, "rina@resto.id", "Rina", "HR")
	users := stubUsers{users: map[uint]model.User{
		7: {BaseModel: model.BaseModel{ID: 7}, Name: "Rina", Role: model.RoleHR},
	}}

	app := fiber.New()
	app.Get("/ws", RequireSocketAuth(tokens, users), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"role": c.Locals(access.RoleLocal)})
	})

	tests := []struct {
		name   string
		target string
		header string
		status int
	}{
		{"query token", "/ws?token=" + token, "", fiber.StatusOK},
		{"header token", "/ws", "Bearer " + token, fiber.StatusOK},
		{"missing", "/ws", "", fiber.StatusUnauthorized},
		{"forged", "/ws?token=" + forged, "", fiber.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.target, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}
