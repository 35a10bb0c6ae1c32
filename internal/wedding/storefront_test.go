package wedding

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cecepns/wedding-demo-sub001/internal/database"
	"github.com/cecepns/wedding-demo-sub001/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupWeddingApp(t *testing.T) *fiber.App {
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

	if err := db.AutoMigrate(
		&models.WeddingService{},
		&models.ServiceItem{},
		&models.Article{},
		&models.CustomRequest{},
		&models.Payment{},
		&models.ContactMessage{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	prev := database.DB
	database.DB = db
	t.Cleanup(func() { database.DB = prev })

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{"error": e.Message})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})

	app.Get("/api/wedding/services", ListServicesHandler())
	app.Get("/api/wedding/services/:slug", GetServiceHandler())
	app.Post("/api/wedding/custom-requests", CreateCustomRequestHandler())
	app.Put("/api/wedding/admin/custom-requests/:id/status", UpdateCustomRequestStatusHandler())
	app.Post("/api/wedding/contact", CreateContactMessageHandler())
	app.Post("/api/wedding/admin/services", CreateServiceHandler())
	app.Put("/api/wedding/admin/payments/:id/status", UpdatePaymentStatusHandler())

	return app
}

func weddingJSON(t *testing.T, app *fiber.App, method, path string, body interface{}) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

// Storefront hanya menampilkan layanan aktif; slug dibuat dari nama.
func TestServiceVisibilityAndSlug(t *testing.T) {
	app := setupWeddingApp(t)

	resp := weddingJSON(t, app, fiber.MethodPost, "/api/wedding/admin/services", fiber.Map{
		"name":  "Paket Pernikahan Intim",
		"price": 25000000,
	})
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("create: status %d", resp.StatusCode)
	}
	var created models.WeddingService
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.Slug != "paket-pernikahan-intim" {
		t.Fatalf("slug = %q", created.Slug)
	}

	inactive := false
	resp = weddingJSON(t, app, fiber.MethodPost, "/api/wedding/admin/services", fiber.Map{
		"name":      "Paket Lama",
		"price":     1,
		"is_active": &inactive,
	})
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("create nonaktif: status %d", resp.StatusCode)
	}

	resp = weddingJSON(t, app, fiber.MethodGet, "/api/wedding/services", nil)
	var listed []models.WeddingService
	if err := json.NewDecoder(resp.Body).Decode(&listed); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(listed) != 1 || listed[0].Slug != "paket-pernikahan-intim" {
		t.Fatalf("list publik berisi %d layanan, harusnya hanya yang aktif", len(listed))
	}

	// Layanan nonaktif juga tidak bisa diakses lewat slug
	resp = weddingJSON(t, app, fiber.MethodGet, "/api/wedding/services/paket-lama", nil)
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("detail nonaktif: status %d, harusnya 404", resp.StatusCode)
	}
}

func TestDuplicateSlugRejected(t *testing.T) {
	app := setupWeddingApp(t)

	resp := weddingJSON(t, app, fiber.MethodPost, "/api/wedding/admin/services", fiber.Map{
		"name": "Paket A", "slug": "paket", "price": 1,
	})
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("create pertama: status %d", resp.StatusCode)
	}
	resp = weddingJSON(t, app, fiber.MethodPost, "/api/wedding/admin/services", fiber.Map{
		"name": "Paket B", "slug": "paket", "price": 1,
	})
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("slug duplikat: status %d, harusnya 400", resp.StatusCode)
	}
}

func TestCustomRequestLifecycle(t *testing.T) {
	app := setupWeddingApp(t)

	// Tanpa kontak sama sekali: ditolak
	resp := weddingJSON(t, app, fiber.MethodPost, "/api/wedding/custom-requests", fiber.Map{
		"name": "Rina",
	})
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("tanpa kontak: status %d, harusnya 400", resp.StatusCode)
	}

	resp = weddingJSON(t, app, fiber.MethodPost, "/api/wedding/custom-requests", fiber.Map{
		"name":       "Rina",
		"phone":      "0812xxxx",
		"event_date": "2026-11-20",
		"budget":     50000000,
		"details":    "Outdoor, 300 tamu",
	})
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("create: status %d", resp.StatusCode)
	}
	var created struct {
		ID uint `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode: %v", err)
	}

	var request models.CustomRequest
	if err := database.DB.First(&request, created.ID).Error; err != nil {
		t.Fatalf("baca request: %v", err)
	}
	if request.Status != models.RequestStatusNew {
		t.Fatalf("status awal = %s, harusnya new", request.Status)
	}
	if request.EventDate == nil || request.EventDate.Format("2006-01-02") != "2026-11-20" {
		t.Fatalf("event_date tidak tersimpan: %v", request.EventDate)
	}

	resp = weddingJSON(t, app, fiber.MethodPut,
		"/api/wedding/admin/custom-requests/1/status", fiber.Map{"status": "quoted"})
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("update status: %d", resp.StatusCode)
	}

	resp = weddingJSON(t, app, fiber.MethodPut,
		"/api/wedding/admin/custom-requests/1/status", fiber.Map{"status": "dibatalkan"})
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("status asing: %d, harusnya 400", resp.StatusCode)
	}
}

// Pembayaran yang sudah dikonfirmasi/ditolak tidak bisa diproses ulang.
func TestPaymentStatusTransition(t *testing.T) {
	app := setupWeddingApp(t)

	payment := models.Payment{
		Reference: "f6b1c9f2-0000-4000-8000-000000000001",
		PayerName: "Sari",
		Amount:    5000000,
		Method:    "transfer",
		Status:    models.PaymentStatusPending,
	}
	if err := database.DB.Create(&payment).Error; err != nil {
		t.Fatalf("seed pembayaran: %v", err)
	}

	resp := weddingJSON(t, app, fiber.MethodPut,
		"/api/wedding/admin/payments/1/status", fiber.Map{"status": "lunas"})
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("status asing: %d, harusnya 400", resp.StatusCode)
	}

	resp = weddingJSON(t, app, fiber.MethodPut,
		"/api/wedding/admin/payments/1/status", fiber.Map{"status": "confirmed"})
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("konfirmasi: status %d", resp.StatusCode)
	}

	resp = weddingJSON(t, app, fiber.MethodPut,
		"/api/wedding/admin/payments/1/status", fiber.Map{"status": "rejected"})
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("proses ulang: status %d, harusnya 400", resp.StatusCode)
	}
}

func TestContactMessage(t *testing.T) {
	app := setupWeddingApp(t)

	resp := weddingJSON(t, app, fiber.MethodPost, "/api/wedding/contact", fiber.Map{
		"name":    "Andi",
		"email":   "andi@contoh.com",
		"message": "Apakah tanggal 12 Desember masih tersedia?",
	})
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("create: status %d", resp.StatusCode)
	}

	var msg models.ContactMessage
	if err := database.DB.First(&msg).Error; err != nil {
		t.Fatalf("baca pesan: %v", err)
	}
	if msg.IsRead {
		t.Fatal("pesan baru harusnya belum dibaca")
	}

	// Pesan kosong ditolak
	resp = weddingJSON(t, app, fiber.MethodPost, "/api/wedding/contact", fiber.Map{
		"name": "Andi", "message": "   ",
	})
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("pesan kosong: status %d, harusnya 400", resp.StatusCode)
	}
}
