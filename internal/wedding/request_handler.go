package wedding

import (
	"time"

	"github.com/cecepns/wedding-demo-sub001/internal/database"
	"github.com/cecepns/wedding-demo-sub001/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CustomRequestBody struct {
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Phone     string  `json:"phone"`
	EventDate string  `json:"event_date"` // "2006-01-02", opsional
	Budget    float64 `json:"budget"`
	Details   string  `json:"details"`
}

// POST /api/wedding/custom-requests: form publik storefront
func CreateCustomRequestHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CustomRequestBody
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Body request tidak valid")
		}
		if body.Name == "" || (body.Email == "" && body.Phone == "") {
			return fiber.NewError(fiber.StatusBadRequest, "Nama dan kontak (email atau telepon) wajib diisi")
		}

		var eventDate *time.Time
		if body.EventDate != "" {
			d, err := time.Parse("2006-01-02", body.EventDate)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Format event_date harus 'YYYY-MM-DD'")
			}
			eventDate = &d
		}

		request := models.CustomRequest{
			Name:      body.Name,
			Email:     body.Email,
			Phone:     body.Phone,
			EventDate: eventDate,
			Budget:    body.Budget,
			Details:   body.Details,
			Status:    models.RequestStatusNew,
		}
		if err := database.DB.Create(&request).Error; err != nil {
			return dbError(err)
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"id":      request.ID,
			"message": "Permintaan diterima, tim kami akan menghubungi Anda",
		})
	}
}

// GET /api/wedding/admin/custom-requests?status=
func AdminListCustomRequestsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := database.DB.Model(&models.CustomRequest{}).Order("created_at DESC")
		if status := c.Query("status"); status != "" {
			q = q.Where("status = ?", status)
		}

		var requests []models.CustomRequest
		if err := q.Find(&requests).Error; err != nil {
			return dbError(err)
		}
		return c.JSON(requests)
	}
}

type RequestStatusBody struct {
	Status string `json:"status"`
}

// PUT /api/wedding/admin/custom-requests/:id/status
func UpdateCustomRequestStatusHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var request models.CustomRequest
		if err := database.DB.First(&request, "id = ?", c.Params("id")).Error; err != nil {
			return dbError(err)
		}

		var body RequestStatusBody
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Body request tidak valid")
		}

		status := models.CustomRequestStatus(body.Status)
		switch status {
		case models.RequestStatusNew, models.RequestStatusReviewed,
			models.RequestStatusQuoted, models.RequestStatusClosed:
		default:
			return fiber.NewError(fiber.StatusBadRequest, "Status tidak valid")
		}

		request.Status = status
		if err := database.DB.Save(&request).Error; err != nil {
			return dbError(err)
		}
		return c.JSON(request)
	}
}
