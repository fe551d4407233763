package pedidos

import (
	"fmt"
	"strings"
	"time"

	"panaderia-backend/internal/audit"
	"panaderia-backend/internal/auth"
	"panaderia-backend/internal/database"
	"panaderia-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateReclamoRequest struct {
	ClienteID    *uint  `json:"cliente_id"` // solo admin/operador
	PedidoCodigo string `json:"pedido_codigo"`
	Detalle      string `json:"detalle"`
}

type ReclamoResponse struct {
	ID           uint                 `json:"id"`
	ClienteID    uint                 `json:"cliente_id"`
	Cliente      string               `json:"cliente"`
	PedidoCodigo string               `json:"pedido_codigo"`
	Fecha        string               `json:"fecha"`
	Detalle      string               `json:"detalle"`
	Estado       models.EstadoReclamo `json:"estado"`
	Respuesta    string               `json:"respuesta"`
}

func toReclamoResponse(r models.Reclamo) ReclamoResponse {
	return ReclamoResponse{
		ID:           r.ID,
		ClienteID:    r.ClienteID,
		Cliente:      r.Cliente.RazonSocial,
		PedidoCodigo: r.PedidoCodigo,
		Fecha:        r.Fecha.Format("2006-01-02"),
		Detalle:      r.Detalle,
		Estado:       r.Estado,
		Respuesta:    r.Respuesta,
	}
}

// POST /api/reclamos
func CreateReclamoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateReclamoRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		clienteID, err := auth.ResolveClienteID(c, body.ClienteID)
		if err != nil {
			return err
		}

		detalle := strings.TrimSpace(body.Detalle)
		if detalle == "" {
			return fiber.NewError(fiber.StatusBadRequest, "El detalle del reclamo es obligatorio")
		}

		codigo := strings.TrimSpace(body.PedidoCodigo)
		if codigo != "" {
			var pedido models.Pedido
			if err := database.DB.First(&pedido, "codigo = ?", codigo).Error; err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "El código de pedido no existe")
			}
			if pedido.ClienteID != clienteID {
				return fiber.NewError(fiber.StatusBadRequest, "El pedido no pertenece al cliente")
			}
		}

		reclamo := models.Reclamo{
			ClienteID:    clienteID,
			PedidoCodigo: codigo,
			Fecha:        time.Now(),
			Detalle:      detalle,
			Estado:       models.ReclamoAbierto,
		}
		if err := database.DB.Create(&reclamo).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo registrar el reclamo")
		}
		database.DB.Preload("Cliente").First(&reclamo, reclamo.ID)

		userID, userName, uerr := getUserInfo(c)
		if uerr == nil {
			_ = audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "reclamo",
				EntityID:    reclamo.ID,
				Action:      models.AuditActionCreate,
				Description: fmt.Sprintf("Reclamo de cliente %d", reclamo.ClienteID),
				Before:      nil,
				After:       reclamo,
			})
		}

		return c.Status(fiber.StatusCreated).JSON(toReclamoResponse(reclamo))
	}
}

// GET /api/reclamos?estado=...
// Los usuarios del portal solo ven sus propios reclamos.
func ListReclamosHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.Reclamo{}).Preload("Cliente")

		role, _ := c.Locals(auth.CtxUserRoleKey).(models.UserRole)
		if role == models.RoleCliente {
			clienteID, err := auth.ResolveClienteID(c, nil)
			if err != nil {
				return err
			}
			dbq = dbq.Where("cliente_id = ?", clienteID)
		}

		if estado := c.Query("estado"); estado != "" {
			dbq = dbq.Where("estado = ?", estado)
		}

		var reclamos []models.Reclamo
		if err := dbq.Order("fecha DESC, id DESC").Find(&reclamos).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar los reclamos")
		}

		resp := make([]ReclamoResponse, 0, len(reclamos))
		for _, r := range reclamos {
			resp = append(resp, toReclamoResponse(r))
		}
		return c.JSON(resp)
	}
}

type ResponderReclamoRequest struct {
	Estado    models.EstadoReclamo `json:"estado"`
	Respuesta string               `json:"respuesta"`
}

// PUT /api/reclamos/:id — solo admin/operador
func ResponderReclamoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var reclamo models.Reclamo
		if err := database.DB.Preload("Cliente").First(&reclamo, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Reclamo no encontrado")
		}
		oldReclamo := reclamo

		var body ResponderReclamoRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		switch body.Estado {
		case models.ReclamoAbierto, models.ReclamoEnRevision, models.ReclamoResuelto:
			reclamo.Estado = body.Estado
		default:
			return fiber.NewError(fiber.StatusBadRequest, "estado debe ser 'abierto', 'en_revision' o 'resuelto'")
		}
		if r := strings.TrimSpace(body.Respuesta); r != "" {
			reclamo.Respuesta = r
		}

		if err := database.DB.Save(&reclamo).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo actualizar el reclamo")
		}

		userID, userName, uerr := getUserInfo(c)
		if uerr == nil {
			_ = audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "reclamo",
				EntityID:    reclamo.ID,
				Action:      models.AuditActionUpdate,
				Description: fmt.Sprintf("Reclamo %d: %s", reclamo.ID, reclamo.Estado),
				Before:      oldReclamo,
				After:       reclamo,
			})
		}

		return c.JSON(toReclamoResponse(reclamo))
	}
}
