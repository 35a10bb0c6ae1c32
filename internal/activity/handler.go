package activity

import (
	"strconv"

	"github.com/cecepns/wedding-demo-sub001/internal/database"
	"github.com/cecepns/wedding-demo-sub001/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GET /api/activity-logs?limit=50&action=
func ListActivityLogsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit := 50
		if v := c.Query("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 || n > 500 {
				return fiber.NewError(fiber.StatusBadRequest, "limit tidak valid")
			}
			limit = n
		}

		q := database.DB.Model(&models.ActivityLog{}).Order("created_at DESC").Limit(limit)
		if action := c.Query("action"); action != "" {
			q = q.Where("action = ?", action)
		}

		var logs []models.ActivityLog
		if err := q.Find(&logs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Activity log gagal diambil")
		}

		return c.JSON(logs)
	}
}
