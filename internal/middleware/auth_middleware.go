package middleware

import (
	"strings"

	"resto-erp-ws/internal/access"
	"resto-erp-ws/internal/model"
	"resto-erp-ws/internal/repository"
	"resto-erp-ws/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

const (
	UserIDLocal     = "user_id"
	UserNameLocal   = "user_name"
	UserOutletLocal = "user_outlet_id"
)

// RequireAuth validates the bearer token and stores the caller in Locals.
// The role is re-read from the users table so a role change applies to
// tokens already issued. Without a backend the token's role is used.
func RequireAuth(tokens *jwt.Manager, users repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Get Authorization header
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return unauthorized(c, "Missing authorization token")
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return unauthorized(c, "Invalid authorization format. Use: Bearer <token>")
		}

		return authenticate(c, tokens, users, parts[1])
	}
}

// RequireSocketAuth authenticates a WebSocket upgrade. Browsers cannot set
// headers on the handshake, so the token is read from ?token= first and
// from the Authorization header otherwise.
func RequireSocketAuth(tokens *jwt.Manager, users repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Query("token")
		if token == "" {
			token = strings.TrimSpace(strings.TrimPrefix(c.Get("Authorization"), "Bearer "))
		}
		if token == "" {
			return unauthorized(c, "Missing authorization token")
		}
		return authenticate(c, tokens, users, token)
	}
}

func authenticate(c *fiber.Ctx, tokens *jwt.Manager, users repository.UserRepository, token string) error {
	claims, err := tokens.ValidateToken(token)
	if err != nil {
		return unauthorized(c, "Invalid or expired token")
	}

	role := model.Role(claims.Role)
	name := claims.Name
	var outletID *uint
	if users != nil {
		user, err := users.FindByID(c.UserContext(), claims.UserID)
		if err != nil {
			return unauthorized(c, "User not found")
		}
		role, name, outletID = user.Role, user.Name, user.OutletID
	}

	c.Locals(UserIDLocal, claims.UserID)
	c.Locals(UserNameLocal, name)
	c.Locals(access.RoleLocal, role)
	if outletID != nil {
		c.Locals(UserOutletLocal, *outletID)
	}
	return c.Next()
}

func unauthorized(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error":       msg,
		"redirect_to": access.LoginPath,
	})
}
