package inventory

import (
	"fmt"
	"time"

	"github.com/cecepns/wedding-demo-sub001/internal/activity"
	"github.com/cecepns/wedding-demo-sub001/internal/auth"
	"github.com/cecepns/wedding-demo-sub001/internal/database"
	"github.com/cecepns/wedding-demo-sub001/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type OrderRequest struct {
	Code       string `json:"code"`
	Name       string `json:"name"`
	Category   string `json:"category"`
	Brand      string `json:"brand"`
	BarcodeID  string `json:"barcode_id"`
	Quantity   int    `json:"quantity"`
	OrderDate  string `json:"order_date"` // "2006-01-02"
	Platform   string `json:"platform"`
	ResiNumber string `json:"resi_number"`
	Status     string `json:"status"`
}

func (r *OrderRequest) toModel() (*models.Order, error) {
	if r.Name == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Nama pesanan wajib diisi")
	}
	if r.Quantity <= 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "quantity harus lebih dari 0")
	}
	d, err := time.Parse("2006-01-02", r.OrderDate)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Format order_date harus 'YYYY-MM-DD'")
	}

	status := models.OrderStatus(r.Status)
	if status == "" {
		status = models.OrderStatusPending
	}
	switch status {
	case models.OrderStatusPending, models.OrderStatusArrived:
	default:
		// "converted" hanya lewat endpoint konversi
		return nil, fiber.NewError(fiber.StatusBadRequest, "Status pesanan tidak valid")
	}

	return &models.Order{
		Code:       r.Code,
		Name:       r.Name,
		Category:   r.Category,
		Brand:      r.Brand,
		BarcodeID:  r.BarcodeID,
		Quantity:   r.Quantity,
		OrderDate:  d,
		Platform:   r.Platform,
		ResiNumber: r.ResiNumber,
		Status:     status,
	}, nil
}

// GET /api/orders?status=&search=&page=&limit=
func ListOrdersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, limit, err := parsePagination(c)
		if err != nil {
			return err
		}

		q := database.DB.Model(&models.Order{})
		if status := c.Query("status"); status != "" {
			q = q.Where("status = ?", status)
		}
		if search := c.Query("search"); search != "" {
			like := "%" + search + "%"
			q = q.Where("LOWER(name) LIKE LOWER(?) OR LOWER(code) LIKE LOWER(?)", like, like)
		}

		var total int64
		if err := q.Count(&total).Error; err != nil {
			return ledgerError(err)
		}

		var orders []models.Order
		if err := q.Order("order_date DESC, id DESC").Offset((page - 1) * limit).Limit(limit).Find(&orders).Error; err != nil {
			return ledgerError(err)
		}

		return c.JSON(fiber.Map{
			"data":  orders,
			"total": total,
			"page":  page,
			"limit": limit,
		})
	}
}

// POST /api/orders
func CreateOrderHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body OrderRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Body request tidak valid")
		}
		order, err := body.toModel()
		if err != nil {
			return err
		}

		if err := database.DB.Create(order).Error; err != nil {
			return ledgerError(err)
		}

		userID, userName := auth.CurrentUser(c)
		_ = activity.Write(activity.LogOptions{
			UserID:   userID,
			UserName: userName,
			Action:   "create_order",
			Details:  fmt.Sprintf("Pesanan %s x%d (%s)", order.Name, order.Quantity, order.Platform),
		})

		return c.Status(fiber.StatusCreated).JSON(order)
	}
}

// PUT /api/orders/:id
func UpdateOrderHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var order models.Order
		if err := database.DB.First(&order, "id = ?", c.Params("id")).Error; err != nil {
			return ledgerError(err)
		}
		if order.Status == models.OrderStatusConverted {
			return fiber.NewError(fiber.StatusBadRequest, "Pesanan sudah dikonversi, tidak bisa diubah")
		}

		var body OrderRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Body request tidak valid")
		}
		updated, err := body.toModel()
		if err != nil {
			return err
		}

		order.Code = updated.Code
		order.Name = updated.Name
		order.Category = updated.Category
		order.Brand = updated.Brand
		order.BarcodeID = updated.BarcodeID
		order.Quantity = updated.Quantity
		order.OrderDate = updated.OrderDate
		order.Platform = updated.Platform
		order.ResiNumber = updated.ResiNumber
		order.Status = updated.Status
		if err := database.DB.Save(&order).Error; err != nil {
			return ledgerError(err)
		}

		return c.JSON(order)
	}
}

// DELETE /api/orders/:id
func DeleteOrderHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var order models.Order
		if err := database.DB.First(&order, "id = ?", c.Params("id")).Error; err != nil {
			return ledgerError(err)
		}
		if err := database.DB.Delete(&order).Error; err != nil {
			return ledgerError(err)
		}
		return c.JSON(fiber.Map{"message": "Pesanan dihapus"})
	}
}

type ConvertOrdersRequest struct {
	OrderIDs []uint `json:"order_ids"`
}

// POST /api/orders/convert
// Konversi massal pesanan jadi produk baru: initial_stock = current_stock =
// quantity pesanan. Satu transaksi per pesanan; yang gagal dilewati dan
// dilaporkan, yang lain tetap jalan.
func ConvertOrdersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ConvertOrdersRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Body request tidak valid")
		}
		if len(body.OrderIDs) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "order_ids wajib diisi")
		}

		converted := 0
		skipped := make([]fiber.Map, 0)

		for _, orderID := range body.OrderIDs {
			err := database.DB.Transaction(func(tx *gorm.DB) error {
				var order models.Order
				if err := tx.First(&order, orderID).Error; err != nil {
					return fmt.Errorf("pesanan tidak ditemukan")
				}
				if order.Status == models.OrderStatusConverted {
					return fmt.Errorf("sudah dikonversi")
				}
				if order.Code == "" {
					return fmt.Errorf("kode produk kosong")
				}

				var count int64
				tx.Model(&models.Product{}).Where("code = ?", order.Code).Count(&count)
				if count > 0 {
					return fmt.Errorf("kode produk sudah dipakai")
				}

				product := models.Product{
					Code:         order.Code,
					Name:         order.Name,
					Category:     order.Category,
					Brand:        order.Brand,
					BarcodeID:    order.BarcodeID,
					InitialStock: order.Quantity,
					CurrentStock: order.Quantity,
				}
				if err := tx.Create(&product).Error; err != nil {
					return err
				}

				order.Status = models.OrderStatusConverted
				return tx.Save(&order).Error
			})

			if err != nil {
				skipped = append(skipped, fiber.Map{"order_id": orderID, "reason": err.Error()})
				continue
			}
			converted++
		}

		userID, userName := auth.CurrentUser(c)
		_ = activity.Write(activity.LogOptions{
			UserID:   userID,
			UserName: userName,
			Action:   "convert_orders",
			Details:  fmt.Sprintf("%d pesanan dikonversi jadi produk, %d dilewati", converted, len(skipped)),
		})

		return c.JSON(fiber.Map{
			"converted": converted,
			"skipped":   skipped,
		})
	}
}
