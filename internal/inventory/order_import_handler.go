package inventory

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cecepns/wedding-demo-sub001/internal/activity"
	"github.com/cecepns/wedding-demo-sub001/internal/auth"
	"github.com/cecepns/wedding-demo-sub001/internal/database"
	"github.com/cecepns/wedding-demo-sub001/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

// POST /api/orders/import
// Upload XLSX, satu baris satu pesanan.
// Kolom: kode | nama | kategori | brand | quantity | tanggal | platform | resi
func ImportOrdersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "File tidak bisa diupload: "+err.Error())
		}

		if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".xlsx") {
			return fiber.NewError(fiber.StatusBadRequest, "Hanya file .xlsx yang diterima")
		}

		file, err := fileHeader.Open()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "File tidak bisa dibuka: "+err.Error())
		}
		defer file.Close()

		excelFile, err := excelize.OpenReader(file)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "File Excel tidak bisa dibaca: "+err.Error())
		}
		defer excelFile.Close()

		sheetList := excelFile.GetSheetList()
		if len(sheetList) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "File Excel tidak punya sheet")
		}

		rows, err := excelFile.GetRows(sheetList[0])
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Sheet tidak bisa dibaca: "+err.Error())
		}
		if len(rows) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "File Excel kosong")
		}

		// Baris pertama dianggap header kalau kolom pertama bukan data
		startIndex := 0
		if len(rows[0]) > 0 {
			first := strings.ToUpper(strings.TrimSpace(rows[0][0]))
			if strings.Contains(first, "KODE") || strings.Contains(first, "CODE") {
				startIndex = 1
			}
		}

		imported := 0
		failures := make([]fiber.Map, 0)

		cell := func(row []string, i int) string {
			if i < len(row) {
				return strings.TrimSpace(row[i])
			}
			return ""
		}

		for i := startIndex; i < len(rows); i++ {
			row := rows[i]
			if len(row) == 0 || cell(row, 1) == "" {
				continue
			}

			qty, err := strconv.Atoi(cell(row, 4))
			if err != nil || qty <= 0 {
				failures = append(failures, fiber.Map{"row": i + 1, "reason": "quantity tidak valid"})
				continue
			}

			orderDate := time.Now()
			if v := cell(row, 5); v != "" {
				d, err := time.Parse("2006-01-02", v)
				if err != nil {
					failures = append(failures, fiber.Map{"row": i + 1, "reason": "tanggal harus YYYY-MM-DD"})
					continue
				}
				orderDate = d
			}

			order := models.Order{
				Code:       cell(row, 0),
				Name:       cell(row, 1),
				Category:   cell(row, 2),
				Brand:      cell(row, 3),
				Quantity:   qty,
				OrderDate:  orderDate,
				Platform:   cell(row, 6),
				ResiNumber: cell(row, 7),
				Status:     models.OrderStatusPending,
			}

			if err := database.DB.Create(&order).Error; err != nil {
				failures = append(failures, fiber.Map{"row": i + 1, "reason": "gagal disimpan"})
				continue
			}
			imported++
		}

		userID, userName := auth.CurrentUser(c)
		_ = activity.Write(activity.LogOptions{
			UserID:   userID,
			UserName: userName,
			Action:   "import_orders",
			Details:  fmt.Sprintf("Import %s: %d pesanan masuk, %d gagal", fileHeader.Filename, imported, len(failures)),
		})

		return c.JSON(fiber.Map{
			"imported": imported,
			"failures": failures,
		})
	}
}
