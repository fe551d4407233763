package dashboard

import (
	"time"

	"panaderia-backend/internal/banco"
	"panaderia-backend/internal/database"
	"panaderia-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type GastoPorArea struct {
	Area  string  `json:"area"`
	Total float64 `json:"total"`
}

type ResumenFinancieroResponse struct {
	From               string         `json:"from"`
	To                 string         `json:"to"`
	VentasKilos        float64        `json:"ventas_kilos"`
	VentasMonto        float64        `json:"ventas_monto"`
	CajaChicaTotal     float64        `json:"caja_chica_total"`
	CajaChicaPorArea   []GastoPorArea `json:"caja_chica_por_area"`
	SaldoBanco         float64        `json:"saldo_banco"`
	PedidosRecibidos   int64          `json:"pedidos_recibidos"`
	FacturasPendientes int64          `json:"facturas_pendientes"`
}

// GET /api/dashboard/resumen?from=...&to=...
// Resumen financiero del período: ventas, gasto de caja chica por área,
// saldo actual del banco y pendientes operativos.
func ResumenFinancieroHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		now := time.Now()
		// por defecto, el mes en curso
		from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		to := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

		if fromStr := c.Query("from"); fromStr != "" {
			f, err := time.Parse("2006-01-02", fromStr)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Fecha 'from' inválida")
			}
			from = f
		}
		if toStr := c.Query("to"); toStr != "" {
			t, err := time.Parse("2006-01-02", toStr)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Fecha 'to' inválida")
			}
			to = t
		}

		resp := ResumenFinancieroResponse{
			From:             from.Format("2006-01-02"),
			To:               to.Format("2006-01-02"),
			CajaChicaPorArea: make([]GastoPorArea, 0),
		}

		type totalesVenta struct {
			Kilos float64
			Monto float64
		}
		var tv totalesVenta
		if err := database.DB.Model(&models.Venta{}).
			Select("COALESCE(SUM(kilos), 0) AS kilos, COALESCE(SUM(monto), 0) AS monto").
			Where("fecha >= ? AND fecha <= ?", from, to).
			Scan(&tv).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo calcular el resumen de ventas")
		}
		resp.VentasKilos = tv.Kilos
		resp.VentasMonto = tv.Monto

		if err := database.DB.Model(&models.CajaChica{}).
			Select("area, COALESCE(SUM(monto), 0) AS total").
			Where("fecha >= ? AND fecha <= ?", from, to).
			Group("area").
			Order("total DESC").
			Scan(&resp.CajaChicaPorArea).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo calcular el gasto de caja chica")
		}
		for _, g := range resp.CajaChicaPorArea {
			resp.CajaChicaTotal += g.Total
		}

		saldo, err := banco.UltimoSaldo(database.DB)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo obtener el saldo del banco")
		}
		resp.SaldoBanco = saldo

		if err := database.DB.Model(&models.Pedido{}).
			Where("estado = ?", models.PedidoRecibido).
			Count(&resp.PedidosRecibidos).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron contar los pedidos")
		}

		if err := database.DB.Model(&models.InsumoTransaccion{}).
			Where("entrada > 0 AND estado_pago <> ?", models.PagoPagada).
			Count(&resp.FacturasPendientes).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron contar las facturas pendientes")
		}

		return c.JSON(resp)
	}
}
