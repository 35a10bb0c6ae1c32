package main

import (
	"log"
	"strings"

	"github.com/cecepns/wedding-demo-sub001/internal/activity"
	"github.com/cecepns/wedding-demo-sub001/internal/auth"
	"github.com/cecepns/wedding-demo-sub001/internal/bookkeeping"
	"github.com/cecepns/wedding-demo-sub001/internal/config"
	"github.com/cecepns/wedding-demo-sub001/internal/dashboard"
	"github.com/cecepns/wedding-demo-sub001/internal/database"
	"github.com/cecepns/wedding-demo-sub001/internal/inventory"
	"github.com/cecepns/wedding-demo-sub001/internal/ledger"
	"github.com/cecepns/wedding-demo-sub001/internal/models"
	"github.com/cecepns/wedding-demo-sub001/internal/wedding"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	eng := ledger.New(database.DB)

	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024, // upload gambar galeri & bukti transfer
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Terjadi kesalahan pada server",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	// Gambar galeri & bukti pembayaran
	app.Static("/uploads", cfg.UploadPath)

	api := app.Group("/api")

	// Public auth. Register pakai auth opsional: user pertama bebas daftar,
	// setelah itu butuh token manager.
	api.Post("/auth/register", auth.OptionalJWTMiddleware(cfg), auth.RegisterHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Storefront publik (tanpa login)
	public := api.Group("/wedding")
	public.Get("/services", wedding.ListServicesHandler())
	public.Get("/services/:slug", wedding.GetServiceHandler())
	public.Get("/articles", wedding.ListArticlesHandler())
	public.Get("/articles/:slug", wedding.GetArticleHandler())
	public.Get("/gallery", wedding.ListGalleryHandler())
	public.Post("/custom-requests", wedding.CreateCustomRequestHandler())
	public.Post("/payments", wedding.CreatePaymentHandler(cfg))
	public.Post("/contact", wedding.CreateContactMessageHandler())

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Master produk
	protected.Get("/products", inventory.ListProductsHandler())
	protected.Get("/products/:id", inventory.GetProductHandler())
	protected.Post("/products", inventory.CreateProductHandler())
	protected.Put("/products/:id", inventory.UpdateProductHandler())
	protected.Delete("/products/:id", auth.RequireRole(models.RoleManager), inventory.DeleteProductHandler())

	// Barang masuk
	protected.Get("/incoming-goods", inventory.ListIncomingGoodsHandler())
	protected.Get("/incoming-goods/:id", inventory.GetIncomingGoodHandler())
	protected.Post("/incoming-goods", inventory.CreateIncomingGoodHandler(eng))
	protected.Put("/incoming-goods/:id", inventory.UpdateIncomingGoodHandler(eng))
	protected.Delete("/incoming-goods/:id", inventory.DeleteIncomingGoodHandler(eng))

	// Barang keluar
	protected.Get("/outgoing-goods", inventory.ListOutgoingGoodsHandler())
	protected.Get("/outgoing-goods/:id", inventory.GetOutgoingGoodHandler())
	protected.Post("/outgoing-goods", inventory.CreateOutgoingGoodHandler(eng))
	protected.Put("/outgoing-goods/:id", inventory.UpdateOutgoingGoodHandler(eng))
	protected.Delete("/outgoing-goods/:id", inventory.DeleteOutgoingGoodHandler(eng))

	// Pesanan supplier
	protected.Get("/orders", inventory.ListOrdersHandler())
	protected.Post("/orders", inventory.CreateOrderHandler())
	protected.Put("/orders/:id", inventory.UpdateOrderHandler())
	protected.Delete("/orders/:id", inventory.DeleteOrderHandler())
	protected.Post("/orders/convert", inventory.ConvertOrdersHandler())
	protected.Post("/orders/import", inventory.ImportOrdersHandler())

	// Dashboard & pembukuan
	protected.Get("/dashboard/stats", dashboard.StatsHandler(eng))
	protected.Get("/bookkeeping/summary", bookkeeping.MonthlySummaryHandler())
	protected.Get("/bookkeeping/export", bookkeeping.ExportHandler())

	// Utilitas stok & audit, khusus manager
	managerRoutes := protected.Group("")
	managerRoutes.Use(auth.RequireRole(models.RoleManager))
	managerRoutes.Post("/utils/recalculate-stock", inventory.RecalculateStockHandler(eng))
	managerRoutes.Get("/utils/stock-consistency/products", inventory.StockConsistencyProductsHandler(eng))
	managerRoutes.Get("/activity-logs", activity.ListActivityLogsHandler())

	// Admin storefront
	adminRoutes := api.Group("/wedding/admin")
	adminRoutes.Use(auth.JWTMiddleware(cfg))
	adminRoutes.Use(auth.RequireRole(models.RoleAdmin, models.RoleManager))

	adminRoutes.Get("/services", wedding.AdminListServicesHandler())
	adminRoutes.Post("/services", wedding.CreateServiceHandler())
	adminRoutes.Put("/services/:id", wedding.UpdateServiceHandler())
	adminRoutes.Delete("/services/:id", wedding.DeleteServiceHandler())
	adminRoutes.Post("/services/:id/items", wedding.CreateServiceItemHandler())
	adminRoutes.Put("/items/:id", wedding.UpdateServiceItemHandler())
	adminRoutes.Delete("/items/:id", wedding.DeleteServiceItemHandler())

	adminRoutes.Get("/articles", wedding.AdminListArticlesHandler())
	adminRoutes.Post("/articles", wedding.CreateArticleHandler())
	adminRoutes.Put("/articles/:id", wedding.UpdateArticleHandler())
	adminRoutes.Delete("/articles/:id", wedding.DeleteArticleHandler())

	adminRoutes.Post("/gallery", wedding.UploadGalleryImageHandler(cfg))
	adminRoutes.Delete("/gallery/:id", wedding.DeleteGalleryImageHandler(cfg))

	adminRoutes.Get("/custom-requests", wedding.AdminListCustomRequestsHandler())
	adminRoutes.Put("/custom-requests/:id/status", wedding.UpdateCustomRequestStatusHandler())

	adminRoutes.Get("/payments", wedding.AdminListPaymentsHandler())
	adminRoutes.Put("/payments/:id/status", wedding.UpdatePaymentStatusHandler())

	adminRoutes.Get("/contact", wedding.AdminListContactMessagesHandler())
	adminRoutes.Put("/contact/:id/read", wedding.MarkContactMessageReadHandler())
	adminRoutes.Delete("/contact/:id", wedding.DeleteContactMessageHandler())

	log.Println("Server berjalan di port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
