package wedding

import (
	"github.com/cecepns/wedding-demo-sub001/internal/database"
	"github.com/cecepns/wedding-demo-sub001/internal/models"

	"github.com/gofiber/fiber/v2"
)

type ServiceItemRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"image_url"`
}

// POST /api/wedding/admin/services/:id/items
func CreateServiceItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var service models.WeddingService
		if err := database.DB.First(&service, "id = ?", c.Params("id")).Error; err != nil {
			return dbError(err)
		}

		var body ServiceItemRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Body request tidak valid")
		}
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Nama item wajib diisi")
		}

		item := models.ServiceItem{
			WeddingServiceID: service.ID,
			Name:             body.Name,
			Description:      body.Description,
			Price:            body.Price,
			ImageURL:         body.ImageURL,
		}
		if err := database.DB.Create(&item).Error; err != nil {
			return dbError(err)
		}
		return c.Status(fiber.StatusCreated).JSON(item)
	}
}

// PUT /api/wedding/admin/items/:id
func UpdateServiceItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var item models.ServiceItem
		if err := database.DB.First(&item, "id = ?", c.Params("id")).Error; err != nil {
			return dbError(err)
		}

		var body ServiceItemRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Body request tidak valid")
		}
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Nama item wajib diisi")
		}

		item.Name = body.Name
		item.Description = body.Description
		item.Price = body.Price
		item.ImageURL = body.ImageURL
		if err := database.DB.Save(&item).Error; err != nil {
			return dbError(err)
		}
		return c.JSON(item)
	}
}

// DELETE /api/wedding/admin/items/:id
func DeleteServiceItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var item models.ServiceItem
		if err := database.DB.First(&item, "id = ?", c.Params("id")).Error; err != nil {
			return dbError(err)
		}
		if err := database.DB.Delete(&item).Error; err != nil {
			return dbError(err)
		}
		return c.JSON(fiber.Map{"message": "Item dihapus"})
	}
}
