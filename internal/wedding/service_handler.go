package wedding

import (
	"errors"
	"log"

	"github.com/cecepns/wedding-demo-sub001/internal/database"
	"github.com/cecepns/wedding-demo-sub001/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func dbError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "Data tidak ditemukan")
	}
	log.Printf("kesalahan persistensi: %v", err)
	return fiber.NewError(fiber.StatusInternalServerError, "Terjadi kesalahan server")
}

type ServiceRequest struct {
	Slug        string  `json:"slug"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"image_url"`
	IsActive    *bool   `json:"is_active"`
}

// GET /api/wedding/services: storefront, hanya layanan aktif
func ListServicesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var services []models.WeddingService
		if err := database.DB.Where("is_active = ?", true).Order("name ASC").Find(&services).Error; err != nil {
			return dbError(err)
		}
		return c.JSON(services)
	}
}

// GET /api/wedding/services/:slug: detail + item paket
func GetServiceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var service models.WeddingService
		if err := database.DB.Preload("Items").
			Where("slug = ? AND is_active = ?", c.Params("slug"), true).
			First(&service).Error; err != nil {
			return dbError(err)
		}
		return c.JSON(service)
	}
}

// GET /api/wedding/admin/services, termasuk yang nonaktif
func AdminListServicesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var services []models.WeddingService
		if err := database.DB.Preload("Items").Order("name ASC").Find(&services).Error; err != nil {
			return dbError(err)
		}
		return c.JSON(services)
	}
}

// POST /api/wedding/admin/services
func CreateServiceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ServiceRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Body request tidak valid")
		}
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Nama layanan wajib diisi")
		}
		if body.Price < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Harga tidak boleh negatif")
		}

		slug := body.Slug
		if slug == "" {
			slug = slugify(body.Name)
		}

		var count int64
		database.DB.Model(&models.WeddingService{}).Where("slug = ?", slug).Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Slug sudah dipakai")
		}

		isActive := true
		if body.IsActive != nil {
			isActive = *body.IsActive
		}

		service := models.WeddingService{
			Slug:        slug,
			Name:        body.Name,
			Description: body.Description,
			Price:       body.Price,
			ImageURL:    body.ImageURL,
			IsActive:    isActive,
		}
		if err := database.DB.Create(&service).Error; err != nil {
			return dbError(err)
		}

		return c.Status(fiber.StatusCreated).JSON(service)
	}
}

// PUT /api/wedding/admin/services/:id
func UpdateServiceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var service models.WeddingService
		if err := database.DB.First(&service, "id = ?", c.Params("id")).Error; err != nil {
			return dbError(err)
		}

		var body ServiceRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Body request tidak valid")
		}
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Nama layanan wajib diisi")
		}

		if body.Slug != "" && body.Slug != service.Slug {
			var count int64
			database.DB.Model(&models.WeddingService{}).Where("slug = ? AND id <> ?", body.Slug, service.ID).Count(&count)
			if count > 0 {
				return fiber.NewError(fiber.StatusBadRequest, "Slug sudah dipakai")
			}
			service.Slug = body.Slug
		}

		service.Name = body.Name
		service.Description = body.Description
		service.Price = body.Price
		service.ImageURL = body.ImageURL
		if body.IsActive != nil {
			service.IsActive = *body.IsActive
		}

		if err := database.DB.Save(&service).Error; err != nil {
			return dbError(err)
		}
		return c.JSON(service)
	}
}

// DELETE /api/wedding/admin/services/:id. Item ikut terhapus (cascade).
func DeleteServiceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var service models.WeddingService
		if err := database.DB.First(&service, "id = ?", c.Params("id")).Error; err != nil {
			return dbError(err)
		}
		if err := database.DB.Select("Items").Delete(&service).Error; err != nil {
			return dbError(err)
		}
		return c.JSON(fiber.Map{"message": "Layanan dihapus"})
	}
}
