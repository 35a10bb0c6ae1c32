package wedding

import (
	"strconv"

	"github.com/cecepns/wedding-demo-sub001/internal/config"
	"github.com/cecepns/wedding-demo-sub001/internal/database"
	"github.com/cecepns/wedding-demo-sub001/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// POST /api/wedding/payments
// Multipart dari storefront: payer_name, amount, method, custom_request_id
// (opsional), proof (gambar bukti transfer, opsional). Status awal pending
// sampai admin konfirmasi.
func CreatePaymentHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		payerName := c.FormValue("payer_name")
		if payerName == "" {
			return fiber.NewError(fiber.StatusBadRequest, "payer_name wajib diisi")
		}

		amount, err := strconv.ParseFloat(c.FormValue("amount"), 64)
		if err != nil || amount <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "amount harus angka lebih dari 0")
		}

		var requestID *uint
		if v := c.FormValue("custom_request_id"); v != "" {
			id, err := strconv.ParseUint(v, 10, 32)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "custom_request_id tidak valid")
			}
			var request models.CustomRequest
			if err := database.DB.First(&request, uint(id)).Error; err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Permintaan custom tidak ditemukan")
			}
			rid := uint(id)
			requestID = &rid
		}

		proofURL := ""
		if fileHeader, err := c.FormFile("proof"); err == nil {
			proofURL, err = saveImage(c, cfg, fileHeader)
			if err != nil {
				return err
			}
		}

		payment := models.Payment{
			Reference:       uuid.NewString(),
			CustomRequestID: requestID,
			PayerName:       payerName,
			Amount:          amount,
			Method:          c.FormValue("method"),
			Status:          models.PaymentStatusPending,
			ProofURL:        proofURL,
		}
		if err := database.DB.Create(&payment).Error; err != nil {
			return dbError(err)
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"reference": payment.Reference,
			"status":    payment.Status,
			"message":   "Pembayaran dicatat, menunggu konfirmasi admin",
		})
	}
}

// GET /api/wedding/admin/payments?status=
func AdminListPaymentsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := database.DB.Model(&models.Payment{}).Order("created_at DESC")
		if status := c.Query("status"); status != "" {
			q = q.Where("status = ?", status)
		}

		var payments []models.Payment
		if err := q.Find(&payments).Error; err != nil {
			return dbError(err)
		}
		return c.JSON(payments)
	}
}

type PaymentStatusBody struct {
	Status string `json:"status"`
}

// PUT /api/wedding/admin/payments/:id/status untuk konfirmasi atau tolak
func UpdatePaymentStatusHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var payment models.Payment
		if err := database.DB.First(&payment, "id = ?", c.Params("id")).Error; err != nil {
			return dbError(err)
		}

		var body PaymentStatusBody
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Body request tidak valid")
		}

		status := models.PaymentStatus(body.Status)
		switch status {
		case models.PaymentStatusConfirmed, models.PaymentStatusRejected:
		default:
			return fiber.NewError(fiber.StatusBadRequest, "Status harus confirmed atau rejected")
		}

		if payment.Status != models.PaymentStatusPending {
			return fiber.NewError(fiber.StatusBadRequest, "Pembayaran sudah diproses")
		}

		payment.Status = status
		if err := database.DB.Save(&payment).Error; err != nil {
			return dbError(err)
		}
		return c.JSON(payment)
	}
}
