package inventory

import (
	"errors"
	"fmt"
	"log"
	"strconv"

	"github.com/cecepns/wedding-demo-sub001/internal/activity"
	"github.com/cecepns/wedding-demo-sub001/internal/auth"
	"github.com/cecepns/wedding-demo-sub001/internal/database"
	"github.com/cecepns/wedding-demo-sub001/internal/ledger"
	"github.com/cecepns/wedding-demo-sub001/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ProductRequest struct {
	Code         string `json:"code"`
	Name         string `json:"name"`
	Category     string `json:"category"`
	Brand        string `json:"brand"`
	BarcodeID    string `json:"barcode_id"`
	InitialStock int    `json:"initial_stock"`
}

// Terjemahkan error ledger/gorm ke status HTTP sesuai kontrak API.
func ledgerError(err error) error {
	switch {
	case errors.Is(err, ledger.ErrInsufficientStock):
		return fiber.NewError(fiber.StatusBadRequest, "Stok tidak mencukupi")
	case errors.Is(err, ledger.ErrProductNotFound):
		return fiber.NewError(fiber.StatusBadRequest, "Produk tidak ditemukan")
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fiber.NewError(fiber.StatusNotFound, "Data tidak ditemukan")
	default:
		log.Printf("kesalahan persistensi: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Terjadi kesalahan server")
	}
}

func parsePagination(c *fiber.Ctx) (page, limit int, err error) {
	page, limit = 1, 20
	if v := c.Query("page"); v != "" {
		if page, err = strconv.Atoi(v); err != nil || page < 1 {
			return 0, 0, fiber.NewError(fiber.StatusBadRequest, "page tidak valid")
		}
	}
	if v := c.Query("limit"); v != "" {
		if limit, err = strconv.Atoi(v); err != nil || limit < 1 || limit > 200 {
			return 0, 0, fiber.NewError(fiber.StatusBadRequest, "limit tidak valid")
		}
	}
	return page, limit, nil
}

// GET /api/products?search=&category=&page=&limit=
func ListProductsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, limit, err := parsePagination(c)
		if err != nil {
			return err
		}

		q := database.DB.Model(&models.Product{})
		if search := c.Query("search"); search != "" {
			like := "%" + search + "%"
			q = q.Where("LOWER(code) LIKE LOWER(?) OR LOWER(name) LIKE LOWER(?) OR barcode_id LIKE ?", like, like, like)
		}
		if category := c.Query("category"); category != "" {
			q = q.Where("category = ?", category)
		}

		var total int64
		if err := q.Count(&total).Error; err != nil {
			return ledgerError(err)
		}

		var products []models.Product
		if err := q.Order("code ASC").Offset((page - 1) * limit).Limit(limit).Find(&products).Error; err != nil {
			return ledgerError(err)
		}

		return c.JSON(fiber.Map{
			"data":  products,
			"total": total,
			"page":  page,
			"limit": limit,
		})
	}
}

// GET /api/products/:id
func GetProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var product models.Product
		if err := database.DB.First(&product, "id = ?", c.Params("id")).Error; err != nil {
			return ledgerError(err)
		}
		return c.JSON(product)
	}
}

// POST /api/products
// current_stock diinisialisasi = initial_stock; setelah itu hanya ledger
// engine yang boleh mengubahnya.
func CreateProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Body request tidak valid")
		}
		if body.Code == "" || body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Kode dan nama produk wajib diisi")
		}
		if body.InitialStock < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "initial_stock tidak boleh negatif")
		}

		var count int64
		database.DB.Model(&models.Product{}).Where("code = ?", body.Code).Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Kode produk sudah dipakai")
		}

		product := models.Product{
			Code:         body.Code,
			Name:         body.Name,
			Category:     body.Category,
			Brand:        body.Brand,
			BarcodeID:    body.BarcodeID,
			InitialStock: body.InitialStock,
			CurrentStock: body.InitialStock,
		}
		if err := database.DB.Create(&product).Error; err != nil {
			return ledgerError(err)
		}

		userID, userName := auth.CurrentUser(c)
		_ = activity.Write(activity.LogOptions{
			UserID:   userID,
			UserName: userName,
			Action:   "create_product",
			Details:  fmt.Sprintf("Produk baru %s (%s), stok awal %d", product.Name, product.Code, product.InitialStock),
		})

		return c.Status(fiber.StatusCreated).JSON(product)
	}
}

// PUT /api/products/:id
// Hanya metadata. initial_stock dan current_stock tidak bisa diubah dari
// sini; koreksi stok lewat entry ledger atau recalculate.
func UpdateProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var product models.Product
		if err := database.DB.First(&product, "id = ?", c.Params("id")).Error; err != nil {
			return ledgerError(err)
		}

		var body ProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Body request tidak valid")
		}
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Nama produk wajib diisi")
		}

		product.Name = body.Name
		product.Category = body.Category
		product.Brand = body.Brand
		product.BarcodeID = body.BarcodeID
		if err := database.DB.Save(&product).Error; err != nil {
			return ledgerError(err)
		}

		userID, userName := auth.CurrentUser(c)
		_ = activity.Write(activity.LogOptions{
			UserID:   userID,
			UserName: userName,
			Action:   "update_product",
			Details:  fmt.Sprintf("Produk %s (%s) diubah", product.Name, product.Code),
		})

		return c.JSON(product)
	}
}

// DELETE /api/products/:id
// Riwayat incoming/outgoing produk TIDAK ikut dihapus (perilaku lama
// dipertahankan; baris yatim dilewati oleh recalculate).
func DeleteProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var product models.Product
		if err := database.DB.First(&product, "id = ?", c.Params("id")).Error; err != nil {
			return ledgerError(err)
		}

		if err := database.DB.Delete(&product).Error; err != nil {
			return ledgerError(err)
		}

		userID, userName := auth.CurrentUser(c)
		_ = activity.Write(activity.LogOptions{
			UserID:   userID,
			UserName: userName,
			Action:   "delete_product",
			Details:  fmt.Sprintf("Produk %s (%s) dihapus", product.Name, product.Code),
		})

		return c.JSON(fiber.Map{"message": "Produk dihapus"})
	}
}
