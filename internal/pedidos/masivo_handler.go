package pedidos

import (
	"fmt"
	"time"

	"panaderia-backend/internal/audit"
	"panaderia-backend/internal/auth"
	"panaderia-backend/internal/database"
	"panaderia-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ExpandirMasivoRequest struct {
	Fechas []string      `json:"fechas"`
	Items  []ItemCarrito `json:"items"`
}

// POST /api/pedidos/masivo/expandir
// Paso intermedio del flujo masivo: arma un borrador por fecha para que
// el portal deje ajustar cada día antes de confirmar.
func ExpandirMasivoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ExpandirMasivoRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		if len(body.Fechas) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Debes indicar al menos una fecha")
		}
		if len(body.Items) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Debes indicar las líneas base")
		}

		fechas := make([]time.Time, 0, len(body.Fechas))
		for _, s := range body.Fechas {
			f, err := time.Parse("2006-01-02", s)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Fecha '%s' inválida", s))
			}
			fechas = append(fechas, f)
		}

		return c.JSON(ExpandirMasivo(fechas, body.Items))
	}
}

type ConfirmarMasivoRequest struct {
	ClienteID *uint            `json:"cliente_id"` // solo admin/operador
	Notas     string           `json:"notas"`
	Pedidos   []BorradorPedido `json:"pedidos"`
}

type ErrorPorFecha struct {
	Fecha string `json:"fecha"`
	Error string `json:"error"`
}

type ConfirmarMasivoResponse struct {
	Creados int             `json:"creados"`
	Codigos []string        `json:"codigos"`
	Errores []ErrorPorFecha `json:"errores"`
}

// POST /api/pedidos/masivo/confirmar
// Cada fecha va en su propia transacción: un día con un producto
// desactivado no bota los demás.
func ConfirmarMasivoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ConfirmarMasivoRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		clienteID, err := auth.ResolveClienteID(c, body.ClienteID)
		if err != nil {
			return err
		}

		if len(body.Pedidos) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "No hay pedidos que confirmar")
		}

		resp := ConfirmarMasivoResponse{
			Codigos: make([]string, 0, len(body.Pedidos)),
			Errores: make([]ErrorPorFecha, 0),
		}

		userID, userName, uerr := getUserInfo(c)

		for _, borrador := range body.Pedidos {
			var pedido models.Pedido
			terr := database.DB.Transaction(func(tx *gorm.DB) error {
				var cerr error
				pedido, cerr = crearPedido(tx, clienteID, borrador.FechaEntrega, body.Notas, borrador.Items)
				return cerr
			})
			if terr != nil {
				msg := "No se pudo crear el pedido"
				if fe, ok := terr.(*fiber.Error); ok {
					msg = fe.Message
				}
				resp.Errores = append(resp.Errores, ErrorPorFecha{
					Fecha: borrador.FechaEntrega.Format("2006-01-02"),
					Error: msg,
				})
				continue
			}

			resp.Creados++
			resp.Codigos = append(resp.Codigos, pedido.Codigo)

			if uerr == nil {
				_ = audit.WriteLog(audit.LogOptions{
					UserID:      userID,
					UserName:    userName,
					EntityType:  "pedido",
					EntityID:    pedido.ID,
					Action:      models.AuditActionCreate,
					Description: fmt.Sprintf("Pedido masivo %s para %s", pedido.Codigo, pedido.FechaEntrega.Format("2006-01-02")),
					Before:      nil,
					After:       pedido,
				})
			}
		}

		status := fiber.StatusCreated
		if resp.Creados == 0 {
			status = fiber.StatusBadRequest
		}
		return c.Status(status).JSON(resp)
	}
}
