package bookkeeping

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cecepns/wedding-demo-sub001/internal/database"
	"github.com/cecepns/wedding-demo-sub001/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupBookkeepingApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("buka sqlite in-memory: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("ambil sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&models.OutgoingGood{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	prev := database.DB
	database.DB = db
	t.Cleanup(func() { database.DB = prev })

	app := fiber.New()
	app.Get("/api/bookkeeping/summary", MonthlySummaryHandler())
	return app
}

func seedSale(t *testing.T, day time.Time, qty int, selling, discount, purchase float64) {
	t.Helper()
	e := models.OutgoingGood{
		ProductCode:   "A",
		Quantity:      qty,
		Date:          day,
		SellingPrice:  selling,
		Discount:      discount,
		PurchasePrice: purchase,
	}
	if err := database.DB.Create(&e).Error; err != nil {
		t.Fatalf("seed penjualan: %v", err)
	}
}

func TestMonthlySummary(t *testing.T) {
	app := setupBookkeepingApp(t)

	loc := time.Now().Location()
	day3 := time.Date(2025, 8, 3, 0, 0, 0, 0, loc)
	day15 := time.Date(2025, 8, 15, 0, 0, 0, 0, loc)
	otherMonth := time.Date(2025, 7, 31, 0, 0, 0, 0, loc)

	seedSale(t, day3, 2, 150000, 0, 100000)
	seedSale(t, day3, 1, 80000, 5000, 40000)
	seedSale(t, day15, 3, 60000, 0, 30000)
	seedSale(t, otherMonth, 99, 1000, 0, 500) // di luar bulan, harus diabaikan

	req := httptest.NewRequest(fiber.MethodGet, "/api/bookkeeping/summary?year=2025&month=8", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var summary SummaryResponse
	if err := json.NewDecoder(resp.Body).Decode(&summary); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if len(summary.Rows) != 2 {
		t.Fatalf("rows = %d, harusnya 2 hari", len(summary.Rows))
	}

	// Hari 3: omzet 2*150000 + 1*(80000-5000) = 375000, modal 2*100000 + 40000
	first := summary.Rows[0]
	if first.Date != "2025-08-03" || first.ItemsSold != 3 {
		t.Fatalf("baris pertama: %+v", first)
	}
	if first.Revenue != 375000 || first.Cost != 240000 || first.Margin != 135000 {
		t.Fatalf("agregat hari 3 salah: %+v", first)
	}

	if summary.TotalRevenue != 375000+180000 {
		t.Fatalf("total omzet = %v", summary.TotalRevenue)
	}
	if summary.TotalMargin != 135000+90000 {
		t.Fatalf("total margin = %v", summary.TotalMargin)
	}
}

func TestSummaryRequiresYearMonth(t *testing.T) {
	app := setupBookkeepingApp(t)

	req := httptest.NewRequest(fiber.MethodGet, "/api/bookkeeping/summary?year=2025", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("status = %d, harusnya 400", resp.StatusCode)
	}
}
