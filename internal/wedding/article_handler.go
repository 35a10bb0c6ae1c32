package wedding

import (
	"github.com/cecepns/wedding-demo-sub001/internal/database"
	"github.com/cecepns/wedding-demo-sub001/internal/models"

	"github.com/gofiber/fiber/v2"
)

type ArticleRequest struct {
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Content     string `json:"content"`
	CoverURL    string `json:"cover_url"`
	IsPublished *bool  `json:"is_published"`
}

// GET /api/wedding/articles: storefront, hanya yang terbit
func ListArticlesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var articles []models.Article
		if err := database.DB.Where("is_published = ?", true).
			Order("created_at DESC").Find(&articles).Error; err != nil {
			return dbError(err)
		}
		return c.JSON(articles)
	}
}

// GET /api/wedding/articles/:slug
func GetArticleHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var article models.Article
		if err := database.DB.Where("slug = ? AND is_published = ?", c.Params("slug"), true).
			First(&article).Error; err != nil {
			return dbError(err)
		}
		return c.JSON(article)
	}
}

// GET /api/wedding/admin/articles, termasuk draft
func AdminListArticlesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var articles []models.Article
		if err := database.DB.Order("created_at DESC").Find(&articles).Error; err != nil {
			return dbError(err)
		}
		return c.JSON(articles)
	}
}

// POST /api/wedding/admin/articles
func CreateArticleHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ArticleRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Body request tidak valid")
		}
		if body.Title == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Judul artikel wajib diisi")
		}

		slug := body.Slug
		if slug == "" {
			slug = slugify(body.Title)
		}

		var count int64
		database.DB.Model(&models.Article{}).Where("slug = ?", slug).Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Slug sudah dipakai")
		}

		published := false
		if body.IsPublished != nil {
			published = *body.IsPublished
		}

		article := models.Article{
			Slug:        slug,
			Title:       body.Title,
			Content:     body.Content,
			CoverURL:    body.CoverURL,
			IsPublished: published,
		}
		if err := database.DB.Create(&article).Error; err != nil {
			return dbError(err)
		}
		return c.Status(fiber.StatusCreated).JSON(article)
	}
}

// PUT /api/wedding/admin/articles/:id
func UpdateArticleHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var article models.Article
		if err := database.DB.First(&article, "id = ?", c.Params("id")).Error; err != nil {
			return dbError(err)
		}

		var body ArticleRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Body request tidak valid")
		}
		if body.Title == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Judul artikel wajib diisi")
		}

		if body.Slug != "" && body.Slug != article.Slug {
			var count int64
			database.DB.Model(&models.Article{}).Where("slug = ? AND id <> ?", body.Slug, article.ID).Count(&count)
			if count > 0 {
				return fiber.NewError(fiber.StatusBadRequest, "Slug sudah dipakai")
			}
			article.Slug = body.Slug
		}

		article.Title = body.Title
		article.Content = body.Content
		article.CoverURL = body.CoverURL
		if body.IsPublished != nil {
			article.IsPublished = *body.IsPublished
		}

		if err := database.DB.Save(&article).Error; err != nil {
			return dbError(err)
		}
		return c.JSON(article)
	}
}

// DELETE /api/wedding/admin/articles/:id
func DeleteArticleHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var article models.Article
		if err := database.DB.First(&article, "id = ?", c.Params("id")).Error; err != nil {
			return dbError(err)
		}
		if err := database.DB.Delete(&article).Error; err != nil {
			return dbError(err)
		}
		return c.JSON(fiber.Map{"message": "Artikel dihapus"})
	}
}
