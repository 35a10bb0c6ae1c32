package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cecepns/wedding-demo-sub001/internal/config"
	"github.com/cecepns/wedding-demo-sub001/internal/database"
	"github.com/cecepns/wedding-demo-sub001/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupAuthApp(t *testing.T) (*fiber.App, *config.Config) {
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

	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	prev := database.DB
	database.DB = db
	t.Cleanup(func() { database.DB = prev })

	cfg := &config.Config{JWTSecret: "rahasia-tes-minimal-32-karakter-ok!!"}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{"error": e.Message})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})

	app.Post("/api/auth/register", OptionalJWTMiddleware(cfg), RegisterHandler(cfg))
	app.Post("/api/auth/login", LoginHandler(cfg))

	protected := app.Group("", JWTMiddleware(cfg))
	protected.Get("/api/auth/me", MeHandler())

	managerOnly := protected.Group("", RequireRole(models.RoleManager))
	managerOnly.Get("/api/manager-only", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})

	return app, cfg
}

func postJSON(t *testing.T, app *fiber.App, path string, body interface{}) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		t.Fatalf("encode: %v", err)
	}
	req := httptest.NewRequest(fiber.MethodPost, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	return resp
}

func TestRegisterLoginAndMe(t *testing.T) {
	app, _ := setupAuthApp(t)

	// User pertama boleh daftar tanpa token (bootstrap)
	resp := postJSON(t, app, "/api/auth/register", fiber.Map{
		"name":     "Dewi",
		"email":    "Dewi@Contoh.com",
		"password": "rahasia123",
		"role":     "manager",
	})
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("register: status %d", resp.StatusCode)
	}

	// Email dinormalisasi ke lowercase
	resp = postJSON(t, app, "/api/auth/login", fiber.Map{
		"email":    "dewi@contoh.com",
		"password": "rahasia123",
	})
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("login: status %d", resp.StatusCode)
	}
	var loginResp struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&loginResp); err != nil {
		t.Fatalf("decode login: %v", err)
	}
	if loginResp.Token == "" {
		t.Fatal("token kosong")
	}

	req := httptest.NewRequest(fiber.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+loginResp.Token)
	meResp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("GET /me: %v", err)
	}
	if meResp.StatusCode != fiber.StatusOK {
		t.Fatalf("me: status %d", meResp.StatusCode)
	}
	var me struct {
		Name string          `json:"name"`
		Role models.UserRole `json:"role"`
	}
	if err := json.NewDecoder(meResp.Body).Decode(&me); err != nil {
		t.Fatalf("decode me: %v", err)
	}
	if me.Name != "Dewi" || me.Role != models.RoleManager {
		t.Fatalf("me = %+v, tidak sesuai", me)
	}
}

func TestSecondRegisterNeedsManager(t *testing.T) {
	app, _ := setupAuthApp(t)

	resp := postJSON(t, app, "/api/auth/register", fiber.Map{
		"name": "Dewi", "email": "dewi@contoh.com", "password": "rahasia123", "role": "manager",
	})
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("register pertama: status %d", resp.StatusCode)
	}

	// Tanpa token manager: ditolak
	resp = postJSON(t, app, "/api/auth/register", fiber.Map{
		"name": "Budi", "email": "budi@contoh.com", "password": "rahasia123", "role": "staff",
	})
	if resp.StatusCode != fiber.StatusForbidden {
		t.Fatalf("register kedua tanpa manager: status %d, harusnya 403", resp.StatusCode)
	}
}

// Setelah bootstrap, manager dengan token valid tetap bisa menambah user
// lewat endpoint register yang sama.
func TestManagerCanRegisterMoreUsers(t *testing.T) {
	app, cfg := setupAuthApp(t)

	resp := postJSON(t, app, "/api/auth/register", fiber.Map{
		"name": "Dewi", "email": "dewi@contoh.com", "password": "rahasia123", "role": "manager",
	})
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("register pertama: status %d", resp.StatusCode)
	}

	var manager models.User
	if err := database.DB.First(&manager, "email = ?", "dewi@contoh.com").Error; err != nil {
		t.Fatalf("baca manager: %v", err)
	}
	token, err := GenerateToken(cfg.JWTSecret, &manager)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(fiber.Map{
		"name": "Budi", "email": "budi@contoh.com", "password": "rahasia123", "role": "staff",
	}); err != nil {
		t.Fatalf("encode: %v", err)
	}
	req := httptest.NewRequest(fiber.MethodPost, "/api/auth/register", &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = app.Test(req, -1)
	if err != nil {
		t.Fatalf("POST register: %v", err)
	}
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("manager dengan token valid: status %d, harusnya 201", resp.StatusCode)
	}

	staff := models.User{Name: "Citra", Email: "citra@contoh.com", Role: models.RoleStaff}
	if err := database.DB.Create(&staff).Error; err != nil {
		t.Fatalf("seed staff: %v", err)
	}
	staffToken, err := GenerateToken(cfg.JWTSecret, &staff)
	if err != nil {
		t.Fatalf("generate token staff: %v", err)
	}

	buf.Reset()
	if err := json.NewEncoder(&buf).Encode(fiber.Map{
		"name": "Eka", "email": "eka@contoh.com", "password": "rahasia123", "role": "staff",
	}); err != nil {
		t.Fatalf("encode: %v", err)
	}
	req = httptest.NewRequest(fiber.MethodPost, "/api/auth/register", &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+staffToken)
	resp, err = app.Test(req, -1)
	if err != nil {
		t.Fatalf("POST register: %v", err)
	}
	if resp.StatusCode != fiber.StatusForbidden {
		t.Fatalf("token staff: status %d, harusnya 403", resp.StatusCode)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	app, _ := setupAuthApp(t)

	postJSON(t, app, "/api/auth/register", fiber.Map{
		"name": "Dewi", "email": "dewi@contoh.com", "password": "rahasia123", "role": "manager",
	})

	resp := postJSON(t, app, "/api/auth/login", fiber.Map{
		"email": "dewi@contoh.com", "password": "salah",
	})
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("status = %d, harusnya 401", resp.StatusCode)
	}
}

func TestRequireRoleBlocksStaff(t *testing.T) {
	app, cfg := setupAuthApp(t)

	staff := models.User{Name: "Budi", Email: "budi@contoh.com", Role: models.RoleStaff}
	if err := database.DB.Create(&staff).Error; err != nil {
		t.Fatalf("seed staff: %v", err)
	}
	token, err := GenerateToken(cfg.JWTSecret, &staff)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	req := httptest.NewRequest(fiber.MethodGet, "/api/manager-only", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	if resp.StatusCode != fiber.StatusForbidden {
		t.Fatalf("status = %d, harusnya 403", resp.StatusCode)
	}
}

func TestMissingAndMalformedToken(t *testing.T) {
	app, _ := setupAuthApp(t)

	req := httptest.NewRequest(fiber.MethodGet, "/api/auth/me", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("tanpa header: status %d, harusnya 401", resp.StatusCode)
	}

	req = httptest.NewRequest(fiber.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer bukan.token.valid")
	resp, err = app.Test(req, -1)
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("token rusak: status %d, harusnya 401", resp.StatusCode)
	}
}
