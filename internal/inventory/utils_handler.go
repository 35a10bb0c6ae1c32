package inventory

import (
	"fmt"

	"github.com/cecepns/wedding-demo-sub001/internal/activity"
	"github.com/cecepns/wedding-demo-sub001/internal/auth"
	"github.com/cecepns/wedding-demo-sub001/internal/ledger"

	"github.com/gofiber/fiber/v2"
)

// POST /api/utils/recalculate-stock (role manager)
// Perbaikan drift yang dipicu manual. Tidak pernah dipanggil otomatis:
// drift hanya dilaporkan lewat dashboard, operator yang memutuskan.
func RecalculateStockHandler(eng *ledger.Engine) fiber.Handler {
	return func(c *fiber.Ctx) error {
		affected, err := eng.RecomputeAll()
		if err != nil {
			return ledgerError(err)
		}

		userID, userName := auth.CurrentUser(c)
		_ = activity.Write(activity.LogOptions{
			UserID:   userID,
			UserName: userName,
			Action:   "recalculate_stock",
			Details:  fmt.Sprintf("Stok %d produk dihitung ulang dari riwayat", affected),
		})

		return c.JSON(fiber.Map{
			"message":          "Stok dihitung ulang dari riwayat barang masuk/keluar",
			"products_updated": affected,
		})
	}
}

// GET /api/utils/stock-consistency/products (role manager)
// Rincian drift per produk; melengkapi cek agregat global di dashboard
// yang bisa menyembunyikan drift yang saling menutup.
func StockConsistencyProductsHandler(eng *ledger.Engine) fiber.Handler {
	return func(c *fiber.Ctx) error {
		drifted, err := eng.CheckProducts()
		if err != nil {
			return ledgerError(err)
		}

		return c.JSON(fiber.Map{
			"is_consistent": len(drifted) == 0,
			"products":      drifted,
		})
	}
}
