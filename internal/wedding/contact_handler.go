package wedding

import (
	"strings"

	"github.com/cecepns/wedding-demo-sub001/internal/database"
	"github.com/cecepns/wedding-demo-sub001/internal/models"

	"github.com/gofiber/fiber/v2"
)

type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// POST /api/wedding/contact: form kontak publik
func CreateContactMessageHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req ContactRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Body request tidak valid")
		}
		if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Message) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Nama dan pesan wajib diisi")
		}

		msg := models.ContactMessage{
			Name:    req.Name,
			Email:   req.Email,
			Subject: req.Subject,
			Message: req.Message,
		}
		if err := database.DB.Create(&msg).Error; err != nil {
			return dbError(err)
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message": "Pesan berhasil dikirim",
		})
	}
}

// GET /api/wedding/admin/contact?unread=true
func AdminListContactMessagesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := database.DB.Model(&models.ContactMessage{}).Order("created_at DESC")
		if c.Query("unread") == "true" {
			q = q.Where("is_read = ?", false)
		}

		var messages []models.ContactMessage
		if err := q.Find(&messages).Error; err != nil {
			return dbError(err)
		}
		return c.JSON(messages)
	}
}

// PUT /api/wedding/admin/contact/:id/read
func MarkContactMessageReadHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var msg models.ContactMessage
		if err := database.DB.First(&msg, "id = ?", c.Params("id")).Error; err != nil {
			return dbError(err)
		}

		msg.IsRead = true
		if err := database.DB.Save(&msg).Error; err != nil {
			return dbError(err)
		}
		return c.JSON(msg)
	}
}

// DELETE /api/wedding/admin/contact/:id
func DeleteContactMessageHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var msg models.ContactMessage
		if err := database.DB.First(&msg, "id = ?", c.Params("id")).Error; err != nil {
			return dbError(err)
		}
		if err := database.DB.Delete(&msg).Error; err != nil {
			return dbError(err)
		}
		return c.JSON(fiber.Map{"message": "Pesan berhasil dihapus"})
	}
}
