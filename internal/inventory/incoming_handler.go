package inventory

import (
	"fmt"
	"time"

	"github.com/cecepns/wedding-demo-sub001/internal/activity"
	"github.com/cecepns/wedding-demo-sub001/internal/auth"
	"github.com/cecepns/wedding-demo-sub001/internal/database"
	"github.com/cecepns/wedding-demo-sub001/internal/ledger"
	"github.com/cecepns/wedding-demo-sub001/internal/models"

	"github.com/gofiber/fiber/v2"
)

type IncomingGoodRequest struct {
	ProductCode string `json:"product_code"`
	ProductName string `json:"product_name"`
	Category    string `json:"category"`
	Brand       string `json:"brand"`
	Quantity    int    `json:"quantity"`
	Date        string `json:"date"` // "2006-01-02"
	ResiNumber  string `json:"resi_number"`
	Platform    string `json:"platform"`
}

func (r *IncomingGoodRequest) toModel() (*models.IncomingGood, error) {
	if r.ProductCode == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "product_code wajib diisi")
	}
	if r.Quantity <= 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "quantity harus lebih dari 0")
	}
	d, err := time.Parse("2006-01-02", r.Date)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Format tanggal harus 'YYYY-MM-DD'")
	}
	return &models.IncomingGood{
		ProductCode: r.ProductCode,
		ProductName: r.ProductName,
		Category:    r.Category,
		Brand:       r.Brand,
		Quantity:    r.Quantity,
		Date:        d,
		ResiNumber:  r.ResiNumber,
		Platform:    r.Platform,
	}, nil
}

// GET /api/incoming-goods?search=&start_date=&end_date=&page=&limit=
func ListIncomingGoodsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, limit, err := parsePagination(c)
		if err != nil {
			return err
		}

		q := database.DB.Model(&models.IncomingGood{})
		if search := c.Query("search"); search != "" {
			like := "%" + search + "%"
			q = q.Where("LOWER(product_code) LIKE LOWER(?) OR LOWER(product_name) LIKE LOWER(?) OR resi_number LIKE ?", like, like, like)
		}
		if start := c.Query("start_date"); start != "" {
			d, err := time.Parse("2006-01-02", start)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "start_date harus 'YYYY-MM-DD'")
			}
			q = q.Where("date >= ?", d)
		}
		if end := c.Query("end_date"); end != "" {
			d, err := time.Parse("2006-01-02", end)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "end_date harus 'YYYY-MM-DD'")
			}
			q = q.Where("date < ?", d.AddDate(0, 0, 1))
		}

		var total int64
		if err := q.Count(&total).Error; err != nil {
			return ledgerError(err)
		}

		var entries []models.IncomingGood
		if err := q.Order("date DESC, id DESC").Offset((page - 1) * limit).Limit(limit).Find(&entries).Error; err != nil {
			return ledgerError(err)
		}

		return c.JSON(fiber.Map{
			"data":  entries,
			"total": total,
			"page":  page,
			"limit": limit,
		})
	}
}

// GET /api/incoming-goods/:id
func GetIncomingGoodHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var entry models.IncomingGood
		if err := database.DB.First(&entry, "id = ?", c.Params("id")).Error; err != nil {
			return ledgerError(err)
		}
		return c.JSON(entry)
	}
}

// POST /api/incoming-goods
func CreateIncomingGoodHandler(eng *ledger.Engine) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body IncomingGoodRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Body request tidak valid")
		}
		entry, err := body.toModel()
		if err != nil {
			return err
		}

		if err := eng.ApplyIncomingCreate(entry); err != nil {
			return ledgerError(err)
		}

		userID, userName := auth.CurrentUser(c)
		_ = activity.Write(activity.LogOptions{
			UserID:   userID,
			UserName: userName,
			Action:   "create_incoming",
			Details:  fmt.Sprintf("Barang masuk %s x%d (%s)", entry.ProductCode, entry.Quantity, entry.Platform),
		})

		return c.Status(fiber.StatusCreated).JSON(entry)
	}
}

// PUT /api/incoming-goods/:id
func UpdateIncomingGoodHandler(eng *ledger.Engine) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "id tidak valid")
		}

		var body IncomingGoodRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Body request tidak valid")
		}
		updated, err := body.toModel()
		if err != nil {
			return err
		}

		entry, err := eng.ApplyIncomingUpdate(uint(id), updated)
		if err != nil {
			return ledgerError(err)
		}

		userID, userName := auth.CurrentUser(c)
		_ = activity.Write(activity.LogOptions{
			UserID:   userID,
			UserName: userName,
			Action:   "update_incoming",
			Details:  fmt.Sprintf("Barang masuk #%d diubah: %s x%d", entry.ID, entry.ProductCode, entry.Quantity),
		})

		return c.JSON(entry)
	}
}

// DELETE /api/incoming-goods/:id
func DeleteIncomingGoodHandler(eng *ledger.Engine) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "id tidak valid")
		}

		entry, err := eng.ApplyIncomingDelete(uint(id))
		if err != nil {
			return ledgerError(err)
		}

		userID, userName := auth.CurrentUser(c)
		_ = activity.Write(activity.LogOptions{
			UserID:   userID,
			UserName: userName,
			Action:   "delete_incoming",
			Details:  fmt.Sprintf("Barang masuk #%d dihapus: %s x%d", entry.ID, entry.ProductCode, entry.Quantity),
		})

		return c.JSON(fiber.Map{"message": "Barang masuk dihapus"})
	}
}
