package bookkeeping

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

// GET /api/bookkeeping/export?year=2025&month=8
// Download rekap bulanan sebagai file XLSX.
func ExportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		year, month, err := parseYearMonth(c)
		if err != nil {
			return err
		}

		summary, err := monthlySummary(year, month)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Rekap pembukuan gagal dihitung")
		}

		f := excelize.NewFile()
		defer f.Close()

		sheet := f.GetSheetName(0)
		headers := []string{"Tanggal", "Terjual", "Omzet", "Modal", "Margin"}
		for i, h := range headers {
			cell, _ := excelize.CoordinatesToCellName(i+1, 1)
			if err := f.SetCellValue(sheet, cell, h); err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "File Excel gagal dibuat")
			}
		}

		for i, row := range summary.Rows {
			values := []interface{}{row.Date, row.ItemsSold, row.Revenue, row.Cost, row.Margin}
			for j, v := range values {
				cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
				if err := f.SetCellValue(sheet, cell, v); err != nil {
					return fiber.NewError(fiber.StatusInternalServerError, "File Excel gagal dibuat")
				}
			}
		}

		// Baris total di bawah
		totalRow := len(summary.Rows) + 2
		totals := []interface{}{"TOTAL", "", summary.TotalRevenue, summary.TotalCost, summary.TotalMargin}
		for j, v := range totals {
			cell, _ := excelize.CoordinatesToCellName(j+1, totalRow)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "File Excel gagal dibuat")
			}
		}

		filename := fmt.Sprintf("pembukuan-%04d-%02d.xlsx", year, month)
		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))

		buf, err := f.WriteToBuffer()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "File Excel gagal dibuat")
		}
		return c.SendStream(buf)
	}
}
