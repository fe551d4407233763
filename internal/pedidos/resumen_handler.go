package pedidos

import (
	"time"

	"panaderia-backend/internal/database"
	"panaderia-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type LineaResumen struct {
	Nombre   string  `json:"nombre"`
	Unidad   string  `json:"unidad"`
	Cantidad float64 `json:"cantidad"`
	Pedidos  int64   `json:"pedidos"`
}

type ResumenDiarioResponse struct {
	Fecha        string                    `json:"fecha"`
	TotalPedidos int64                     `json:"total_pedidos"`
	PorHorario   map[string][]LineaResumen `json:"por_horario"`
}

// GET /api/pedidos/resumen?fecha=YYYY-MM-DD
// Hoja de producción del día: cuánto hornear de cada producto por franja,
// sumando todos los pedidos no anulados de esa fecha de entrega.
func ResumenDiarioHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		fechaStr := c.Query("fecha")
		if fechaStr == "" {
			fechaStr = time.Now().Format("2006-01-02")
		}
		fecha, err := time.Parse("2006-01-02", fechaStr)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "El formato de fecha debe ser 'YYYY-MM-DD'")
		}

		var totalPedidos int64
		if err := database.DB.Model(&models.Pedido{}).
			Where("fecha_entrega = ? AND estado <> ?", fecha, models.PedidoAnulado).
			Count(&totalPedidos).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo calcular el resumen")
		}

		type fila struct {
			Horario  string
			Nombre   string
			Unidad   string
			Cantidad float64
			Pedidos  int64
		}
		var filas []fila
		err = database.DB.Model(&models.PedidoItem{}).
			Select("pedido_items.horario, pedido_items.nombre, pedido_items.unidad, SUM(pedido_items.cantidad) AS cantidad, COUNT(DISTINCT pedido_items.pedido_id) AS pedidos").
			Joins("JOIN pedidos ON pedidos.id = pedido_items.pedido_id").
			Where("pedidos.fecha_entrega = ? AND pedidos.estado <> ?", fecha, models.PedidoAnulado).
			Group("pedido_items.horario, pedido_items.nombre, pedido_items.unidad").
			Order("pedido_items.horario ASC, pedido_items.nombre ASC").
			Scan(&filas).Error
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo calcular el resumen")
		}

		resp := ResumenDiarioResponse{
			Fecha:        fechaStr,
			TotalPedidos: totalPedidos,
			PorHorario:   make(map[string][]LineaResumen),
		}
		for _, f := range filas {
			resp.PorHorario[f.Horario] = append(resp.PorHorario[f.Horario], LineaResumen{
				Nombre:   f.Nombre,
				Unidad:   f.Unidad,
				Cantidad: f.Cantidad,
				Pedidos:  f.Pedidos,
			})
		}
		return c.JSON(resp)
	}
}
