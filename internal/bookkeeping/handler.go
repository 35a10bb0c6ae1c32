package bookkeeping

import (
	"fmt"
	"sort"
	"time"

	"github.com/cecepns/wedding-demo-sub001/internal/database"
	"github.com/cecepns/wedding-demo-sub001/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type DayRow struct {
	Date      string  `json:"date"`
	ItemsSold int     `json:"items_sold"`
	Revenue   float64 `json:"revenue"`
	Cost      float64 `json:"cost"`
	Margin    float64 `json:"margin"`
}

type SummaryResponse struct {
	Year         int      `json:"year"`
	Month        int      `json:"month"`
	Rows         []DayRow `json:"rows"`
	TotalRevenue float64  `json:"total_revenue"`
	TotalCost    float64  `json:"total_cost"`
	TotalMargin  float64  `json:"total_margin"`
}

func parseYearMonth(c *fiber.Ctx) (int, int, error) {
	yearStr := c.Query("year")
	monthStr := c.Query("month")
	if yearStr == "" || monthStr == "" {
		return 0, 0, fiber.NewError(fiber.StatusBadRequest, "year dan month wajib diisi")
	}

	var year, month int
	if _, err := fmt.Sscan(yearStr, &year); err != nil || year < 2000 {
		return 0, 0, fiber.NewError(fiber.StatusBadRequest, "year tidak valid")
	}
	if _, err := fmt.Sscan(monthStr, &month); err != nil || month < 1 || month > 12 {
		return 0, 0, fiber.NewError(fiber.StatusBadRequest, "month tidak valid")
	}
	return year, month, nil
}

// Rekap harian satu bulan dari barang keluar. Uang dihitung pakai decimal
// supaya akumulasi banyak baris tidak kena error pembulatan float.
func monthlySummary(year, month int) (*SummaryResponse, error) {
	loc := time.Now().Location()
	firstDay := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	nextMonth := firstDay.AddDate(0, 1, 0)

	var entries []models.OutgoingGood
	if err := database.DB.
		Where("date >= ? AND date < ?", firstDay, nextMonth).
		Order("date ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}

	type dayAgg struct {
		items   int
		revenue decimal.Decimal
		cost    decimal.Decimal
	}
	days := make(map[string]*dayAgg)

	for _, e := range entries {
		key := e.Date.Format("2006-01-02")
		agg, ok := days[key]
		if !ok {
			agg = &dayAgg{}
			days[key] = agg
		}

		qty := decimal.NewFromInt(int64(e.Quantity))
		selling := decimal.NewFromFloat(e.SellingPrice).Sub(decimal.NewFromFloat(e.Discount))
		purchase := decimal.NewFromFloat(e.PurchasePrice)

		agg.items += e.Quantity
		agg.revenue = agg.revenue.Add(selling.Mul(qty))
		agg.cost = agg.cost.Add(purchase.Mul(qty))
	}

	keys := make([]string, 0, len(days))
	for k := range days {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	resp := &SummaryResponse{Year: year, Month: month, Rows: make([]DayRow, 0, len(keys))}
	totalRevenue := decimal.Zero
	totalCost := decimal.Zero

	for _, k := range keys {
		agg := days[k]
		margin := agg.revenue.Sub(agg.cost)
		resp.Rows = append(resp.Rows, DayRow{
			Date:      k,
			ItemsSold: agg.items,
			Revenue:   agg.revenue.InexactFloat64(),
			Cost:      agg.cost.InexactFloat64(),
			Margin:    margin.InexactFloat64(),
		})
		totalRevenue = totalRevenue.Add(agg.revenue)
		totalCost = totalCost.Add(agg.cost)
	}

	resp.TotalRevenue = totalRevenue.InexactFloat64()
	resp.TotalCost = totalCost.InexactFloat64()
	resp.TotalMargin = totalRevenue.Sub(totalCost).InexactFloat64()
	return resp, nil
}

// GET /api/bookkeeping/summary?year=2025&month=8
func MonthlySummaryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		year, month, err := parseYearMonth(c)
		if err != nil {
			return err
		}

		resp, err := monthlySummary(year, month)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Rekap pembukuan gagal dihitung")
		}
		return c.JSON(resp)
	}
}
