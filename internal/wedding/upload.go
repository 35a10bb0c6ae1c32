package wedding

import (
	"mime/multipart"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/cecepns/wedding-demo-sub001/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var allowedImageExt = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// saveImage menyimpan file upload ke folder UPLOAD_PATH dengan nama uuid
// (nama asli tidak dipercaya) dan mengembalikan path publiknya.
func saveImage(c *fiber.Ctx, cfg *config.Config, fileHeader *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedImageExt[ext] {
		return "", fiber.NewError(fiber.StatusBadRequest, "Format gambar harus jpg, jpeg, png, atau webp")
	}

	filename := uuid.NewString() + ext
	if err := c.SaveFile(fileHeader, filepath.Join(cfg.UploadPath, filename)); err != nil {
		return "", fiber.NewError(fiber.StatusInternalServerError, "Gambar gagal disimpan")
	}

	return "/uploads/" + filename, nil
}

var slugRe = regexp.MustCompile(`[^a-z0-9]+`)

func slugify(s string) string {
	slug := slugRe.ReplaceAllString(strings.ToLower(s), "-")
	return strings.Trim(slug, "-")
}
