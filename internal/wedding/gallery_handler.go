package wedding

import (
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/cecepns/wedding-demo-sub001/internal/config"
	"github.com/cecepns/wedding-demo-sub001/internal/database"
	"github.com/cecepns/wedding-demo-sub001/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GET /api/wedding/gallery?category=
func ListGalleryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := database.DB.Model(&models.GalleryImage{}).Order("created_at DESC")
		if category := c.Query("category"); category != "" {
			q = q.Where("category = ?", category)
		}

		var images []models.GalleryImage
		if err := q.Find(&images).Error; err != nil {
			return dbError(err)
		}
		return c.JSON(images)
	}
}

// POST /api/wedding/admin/gallery (multipart: image, title, category)
func UploadGalleryImageHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fileHeader, err := c.FormFile("image")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "File gambar wajib diupload")
		}

		path, err := saveImage(c, cfg, fileHeader)
		if err != nil {
			return err
		}

		image := models.GalleryImage{
			Title:     c.FormValue("title"),
			Category:  c.FormValue("category"),
			ImagePath: path,
		}
		if err := database.DB.Create(&image).Error; err != nil {
			return dbError(err)
		}
		return c.Status(fiber.StatusCreated).JSON(image)
	}
}

// DELETE /api/wedding/admin/gallery/:id. File fisiknya ikut dihapus.
func DeleteGalleryImageHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var image models.GalleryImage
		if err := database.DB.First(&image, "id = ?", c.Params("id")).Error; err != nil {
			return dbError(err)
		}

		if err := database.DB.Delete(&image).Error; err != nil {
			return dbError(err)
		}

		if name := strings.TrimPrefix(image.ImagePath, "/uploads/"); name != "" && name != image.ImagePath {
			if err := os.Remove(filepath.Join(cfg.UploadPath, name)); err != nil && !os.IsNotExist(err) {
				log.Printf("File galeri gagal dihapus: %v", err)
			}
		}

		return c.JSON(fiber.Map{"message": "Foto galeri dihapus"})
	}
}
