package auth

import (
	"fmt"
	"strings"

	"github.com/cecepns/wedding-demo-sub001/internal/config"
	"github.com/cecepns/wedding-demo-sub001/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const (
	CtxUserIDKey   = "user_id"
	CtxUserNameKey = "user_name"
	CtxUserRoleKey = "user_role"
)

func JWTMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Header Authorization tidak ada")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return fiber.NewError(fiber.StatusUnauthorized, "Format Authorization harus 'Bearer <token>'")
		}

		tokenStr := parts[1]

		token, err := jwt.ParseWithClaims(tokenStr, &JWTCustomClaims{}, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("metode tanda tangan tidak valid")
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			return fiber.NewError(fiber.StatusUnauthorized, "Token tidak valid atau sudah kedaluwarsa")
		}

		claims, ok := token.Claims.(*JWTCustomClaims)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Token tidak bisa dibaca")
		}

		c.Locals(CtxUserIDKey, claims.UserID)
		c.Locals(CtxUserNameKey, claims.Name)
		c.Locals(CtxUserRoleKey, claims.Role)

		return c.Next()
	}
}

// OptionalJWTMiddleware mengisi Locals dari bearer token kalau ada, tapi
// tidak menolak request tanpa token. Dipakai di endpoint yang terbuka untuk
// publik namun berperilaku beda kalau pemanggilnya sudah login, seperti
// register (user pertama bebas, selanjutnya butuh manager).
func OptionalJWTMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Next()
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return c.Next()
		}

		token, err := jwt.ParseWithClaims(parts[1], &JWTCustomClaims{}, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("metode tanda tangan tidak valid")
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			return c.Next()
		}

		if claims, ok := token.Claims.(*JWTCustomClaims); ok {
			c.Locals(CtxUserIDKey, claims.UserID)
			c.Locals(CtxUserNameKey, claims.Name)
			c.Locals(CtxUserRoleKey, claims.Role)
		}

		return c.Next()
	}
}

func RequireRole(allowedRoles ...models.UserRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		roleVal := c.Locals(CtxUserRoleKey)
		role, ok := roleVal.(models.UserRole)
		if !ok {
			return fiber.NewError(fiber.StatusForbidden, "Informasi role tidak ditemukan")
		}

		for _, r := range allowedRoles {
			if r == role {
				return c.Next()
			}
		}
		return fiber.NewError(fiber.StatusForbidden, "Anda tidak punya akses untuk operasi ini")
	}
}

// CurrentUser mengambil id dan nama user dari context (hasil JWTMiddleware).
func CurrentUser(c *fiber.Ctx) (uint, string) {
	userID, _ := c.Locals(CtxUserIDKey).(uint)
	userName, _ := c.Locals(CtxUserNameKey).(string)
	return userID, userName
}
