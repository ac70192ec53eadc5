package middleware

import (
	"fmt"
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"smart-parking/types"
)

// Identity is delegated to an external service; this middleware only
// verifies the HMAC-signed bearer tokens it issues. The token subject is
// the external user id.

// LocalsUserID and LocalsClaims are the fiber.Ctx Locals keys set after a
// successful verification.
const (
	LocalsUserID = "userId"
	LocalsClaims = "claims"
)

func bearerToken(c *fiber.Ctx) string {
	header := c.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// VerifyToken parses and verifies a bearer token string against
// JWT_SECRET and returns its claims.
func VerifyToken(tokenString string) (jwt.MapClaims, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not configured")
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}

// RequireAuth rejects requests without a valid bearer token.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := bearerToken(c)
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{
				Error: "Authorization token required",
			})
		}

		claims, err := VerifyToken(tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{
				Error: "Invalid or expired token",
			})
		}

		sub, _ := claims["sub"].(string)
		if sub == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{
				Error: "Token subject missing",
			})
		}

		c.Locals(LocalsUserID, sub)
		c.Locals(LocalsClaims, claims)
		return c.Next()
	}
}

// OptionalAuth attaches the identity when a valid token is present and
// lets the request through as a guest otherwise. Booking creation uses
// this: guests may book.
func OptionalAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := bearerToken(c)
		if tokenString == "" {
			return c.Next()
		}

		claims, err := VerifyToken(tokenString)
		if err != nil {
			// A presented-but-broken token is rejected rather than
			// silently downgraded to guest.
			return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{
				Error: "Invalid or expired token",
			})
		}

		if sub, _ := claims["sub"].(string); sub != "" {
			c.Locals(LocalsUserID, sub)
			c.Locals(LocalsClaims, claims)
		}
		return c.Next()
	}
}

// UserID returns the authenticated user id, or nil for guests.
func UserID(c *fiber.Ctx) *string {
	if id, ok := c.Locals(LocalsUserID).(string); ok && id != "" {
		return &id
	}
	return nil
}

// Claims returns the verified token claims, or nil for guests.
func Claims(c *fiber.Ctx) jwt.MapClaims {
	if claims, ok := c.Locals(LocalsClaims).(jwt.MapClaims); ok {
		return claims
	}
	return nil
}
