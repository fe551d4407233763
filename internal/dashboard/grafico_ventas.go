package dashboard

import (
	"fmt"
	"sort"
	"time"

	"panaderia-backend/internal/database"

	"github.com/gofiber/fiber/v2"
)

type PuntoVentas struct {
	Label string  `json:"label"` // fecha / inicio de semana / inicio de mes
	Kilos float64 `json:"kilos"`
	Monto float64 `json:"monto"`
}

type GraficoVentasResponse struct {
	Period     string        `json:"period"` // daily | weekly | monthly
	From       string        `json:"from"`
	To         string        `json:"to"`
	Points     []PuntoVentas `json:"points"`
	TotalKilos float64       `json:"total_kilos"`
	TotalMonto float64       `json:"total_monto"`
}

// GET /api/dashboard/grafico-ventas?period=daily&count=7
func GraficoVentasHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		period := c.Query("period", "daily") // daily | weekly | monthly
		countStr := c.Query("count", "")

		var count int
		if countStr == "" {
			switch period {
			case "weekly":
				count = 8
			case "monthly":
				count = 12
			default:
				period = "daily"
				count = 7
			}
		} else {
			if _, err := fmt.Sscan(countStr, &count); err != nil || count <= 0 {
				return fiber.NewError(fiber.StatusBadRequest, "count inválido")
			}
		}

		now := time.Now()
		loc := now.Location()
		end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
		var start time.Time

		switch period {
		case "weekly":
			start = end.AddDate(0, 0, -7*(count-1))
		case "monthly":
			end = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
			start = end.AddDate(0, -(count - 1), 0)
			end = start.AddDate(0, count, 0).AddDate(0, 0, -1)
		default:
			period = "daily"
			start = end.AddDate(0, 0, -(count - 1))
		}

		type row struct {
			Bucket time.Time `gorm:"column:bucket"`
			Kilos  float64   `gorm:"column:kilos"`
			Monto  float64   `gorm:"column:monto"`
		}
		var rows []row

		var sql string
		switch period {
		case "weekly":
			sql = `
				SELECT date_trunc('week', fecha)::date AS bucket,
					   SUM(kilos) AS kilos,
					   SUM(monto) AS monto
				FROM ventas
				WHERE fecha >= ? AND fecha <= ?
				GROUP BY bucket
				ORDER BY bucket ASC;
			`
		case "monthly":
			sql = `
				SELECT date_trunc('month', fecha)::date AS bucket,
					   SUM(kilos) AS kilos,
					   SUM(monto) AS monto
				FROM ventas
				WHERE fecha >= ? AND fecha <= ?
				GROUP BY bucket
				ORDER BY bucket ASC;
			`
		default:
			sql = `
				SELECT fecha::date AS bucket,
					   SUM(kilos) AS kilos,
					   SUM(monto) AS monto
				FROM ventas
				WHERE fecha >= ? AND fecha <= ?
				GROUP BY bucket
				ORDER BY bucket ASC;
			`
		}

		if err := database.DB.Raw(sql, start, end).Scan(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo armar el gráfico")
		}

		sort.Slice(rows, func(i, j int) bool { return rows[i].Bucket.Before(rows[j].Bucket) })

		resp := GraficoVentasResponse{
			Period: period,
			From:   start.Format("2006-01-02"),
			To:     end.Format("2006-01-02"),
			Points: make([]PuntoVentas, 0, len(rows)),
		}
		for _, r := range rows {
			resp.Points = append(resp.Points, PuntoVentas{
				Label: r.Bucket.Format("2006-01-02"),
				Kilos: r.Kilos,
				Monto: r.Monto,
			})
			resp.TotalKilos += r.Kilos
			resp.TotalMonto += r.Monto
		}

		return c.JSON(resp)
	}
}
