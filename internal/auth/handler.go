package auth

import (
	"strings"

	"github.com/cecepns/wedding-demo-sub001/internal/config"
	"github.com/cecepns/wedding-demo-sub001/internal/database"
	"github.com/cecepns/wedding-demo-sub001/internal/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/auth/register
// User pertama bebas didaftarkan (bootstrap); selanjutnya hanya manager.
func RegisterHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body RegisterRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Body request tidak valid")
		}

		body.Email = strings.TrimSpace(strings.ToLower(body.Email))

		if body.Email == "" || body.Password == "" || body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Nama, email dan password wajib diisi")
		}

		role := models.UserRole(body.Role)
		switch role {
		case models.RoleManager, models.RoleStaff, models.RoleAdmin:
		default:
			return fiber.NewError(fiber.StatusBadRequest, "Role tidak dikenal")
		}

		var count int64
		database.DB.Model(&models.User{}).Count(&count)
		if count > 0 {
			// Sudah ada user: hanya manager yang boleh menambah
			roleVal, _ := c.Locals(CtxUserRoleKey).(models.UserRole)
			if roleVal != models.RoleManager {
				return fiber.NewError(fiber.StatusForbidden, "Hanya manager yang boleh menambah user")
			}
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Password gagal di-hash")
		}

		user := models.User{
			Name:         body.Name,
			Email:        body.Email,
			PasswordHash: string(hash),
			Role:         role,
		}

		if err := database.DB.Create(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "User gagal dibuat")
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"id":    user.ID,
			"email": user.Email,
			"role":  user.Role,
		})
	}
}

// POST /api/auth/login
func LoginHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LoginRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Body request tidak valid")
		}

		body.Email = strings.TrimSpace(strings.ToLower(body.Email))

		var user models.User
		if err := database.DB.Where("email = ?", body.Email).First(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Email atau password salah")
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Email atau password salah")
		}

		token, err := GenerateToken(cfg.JWTSecret, &user)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Token gagal dibuat")
		}

		return c.JSON(fiber.Map{
			"token": token,
			"user": fiber.Map{
				"id":    user.ID,
				"name":  user.Name,
				"email": user.Email,
				"role":  user.Role,
			},
		})
	}
}

// GET /api/auth/me
func MeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, _ := c.Locals(CtxUserIDKey).(uint)

		var user models.User
		if err := database.DB.First(&user, userID).Error; err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "User tidak ditemukan")
		}

		return c.JSON(fiber.Map{
			"user_id": user.ID,
			"name":    user.Name,
			"email":   user.Email,
			"role":    user.Role,
		})
	}
}
