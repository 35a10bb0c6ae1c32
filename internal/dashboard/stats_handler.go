package dashboard

import (
	"time"

	"github.com/cecepns/wedding-demo-sub001/internal/database"
	"github.com/cecepns/wedding-demo-sub001/internal/ledger"
	"github.com/cecepns/wedding-demo-sub001/internal/models"

	"github.com/gofiber/fiber/v2"
)

type StatsResponse struct {
	Period           string                    `json:"period"`
	TotalProducts    int64                     `json:"total_products"`
	LowStockCount    int64                     `json:"low_stock_count"`
	IncomingTotal    int                       `json:"incoming_total"`
	OutgoingTotal    int                       `json:"outgoing_total"`
	Revenue          float64                   `json:"revenue"`
	StockConsistency *ledger.ConsistencyReport `json:"stock_consistency"`
}

// Ambang stok menipis di kartu dashboard.
const lowStockThreshold = 5

// GET /api/dashboard/stats?period=today|week|month|all
// Agregat barang masuk/keluar mengikuti periode; cek konsistensi stok
// SELALU all-time, berapapun periode yang diminta.
func StatsHandler(eng *ledger.Engine) fiber.Handler {
	return func(c *fiber.Ctx) error {
		period := c.Query("period", "all")

		now := time.Now()
		var cutoff time.Time
		switch period {
		case "today":
			cutoff = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		case "week":
			cutoff = now.AddDate(0, 0, -7)
		case "month":
			cutoff = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		case "all":
			// cutoff nol: semua riwayat
		default:
			return fiber.NewError(fiber.StatusBadRequest, "period harus today, week, month, atau all")
		}

		resp := StatsResponse{Period: period}

		if err := database.DB.Model(&models.Product{}).Count(&resp.TotalProducts).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Statistik gagal dihitung")
		}
		if err := database.DB.Model(&models.Product{}).
			Where("current_stock < ?", lowStockThreshold).
			Count(&resp.LowStockCount).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Statistik gagal dihitung")
		}

		incomingQ := database.DB.Model(&models.IncomingGood{})
		outgoingQ := database.DB.Model(&models.OutgoingGood{})
		revenueQ := database.DB.Model(&models.OutgoingGood{})
		if !cutoff.IsZero() {
			incomingQ = incomingQ.Where("date >= ?", cutoff)
			outgoingQ = outgoingQ.Where("date >= ?", cutoff)
			revenueQ = revenueQ.Where("date >= ?", cutoff)
		}

		if err := incomingQ.Select("COALESCE(SUM(quantity), 0)").Scan(&resp.IncomingTotal).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Statistik gagal dihitung")
		}
		if err := outgoingQ.Select("COALESCE(SUM(quantity), 0)").Scan(&resp.OutgoingTotal).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Statistik gagal dihitung")
		}
		if err := revenueQ.Select("COALESCE(SUM((selling_price - discount) * quantity), 0)").Scan(&resp.Revenue).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Statistik gagal dihitung")
		}

		report, err := eng.CheckConsistency()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Cek konsistensi stok gagal")
		}
		resp.StockConsistency = report

		return c.JSON(resp)
	}
}
