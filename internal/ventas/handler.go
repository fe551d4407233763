package ventas

import (
	"fmt"
	"strings"
	"time"

	"panaderia-backend/internal/audit"
	"panaderia-backend/internal/auth"
	"panaderia-backend/internal/database"
	"panaderia-backend/internal/models"
	"panaderia-backend/internal/produccion"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CreateVentaRequest struct {
	Fecha   string  `json:"fecha"` // "2026-08-28"
	Cliente string  `json:"cliente"`
	Kilos   float64 `json:"kilos"`
	Monto   float64 `json:"monto"`
}

type UpdateVentaRequest struct {
	Fecha   *string  `json:"fecha"`
	Cliente *string  `json:"cliente"`
	Kilos   *float64 `json:"kilos"`
	Monto   *float64 `json:"monto"`
}

type VentaResponse struct {
	ID      uint    `json:"id"`
	Fecha   string  `json:"fecha"`
	Cliente string  `json:"cliente"`
	Kilos   float64 `json:"kilos"`
	Monto   float64 `json:"monto"`
}

func toResponse(v models.Venta) VentaResponse {
	return VentaResponse{
		ID:      v.ID,
		Fecha:   v.Fecha.Format("2006-01-02"),
		Cliente: v.Cliente,
		Kilos:   v.Kilos,
		Monto:   v.Monto,
	}
}

func getUserInfo(c *fiber.Ctx) (uint, string, error) {
	userIDVal := c.Locals(auth.CtxUserIDKey)
	userID, ok := userIDVal.(uint)
	if !ok {
		return 0, "", fiber.NewError(fiber.StatusForbidden, "No se pudo obtener el usuario")
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return 0, "", fiber.NewError(fiber.StatusInternalServerError, "Usuario no encontrado")
	}

	return userID, user.Name, nil
}

// POST /api/ventas
func CreateVentaHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateVentaRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		fecha, err := time.Parse("2006-01-02", body.Fecha)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "El formato de fecha debe ser 'YYYY-MM-DD'")
		}

		if strings.TrimSpace(body.Cliente) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "cliente es obligatorio")
		}
		if body.Monto < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "monto no puede ser negativo")
		}
		if body.Kilos < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "kilos no puede ser negativo")
		}

		venta := models.Venta{
			Fecha:   fecha,
			Cliente: strings.TrimSpace(body.Cliente),
			Kilos:   body.Kilos,
			Monto:   body.Monto,
		}

		// La venta y el recálculo del rendimiento del día van en la misma
		// transacción: dos sesiones concurrentes ya no pueden pisarse.
		err = database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&venta).Error; err != nil {
				return err
			}
			return produccion.RecomputarParaFecha(tx, fecha)
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo registrar la venta")
		}

		userID, userName, uerr := getUserInfo(c)
		if uerr == nil {
			_ = audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "venta",
				EntityID:    venta.ID,
				Action:      models.AuditActionCreate,
				Description: fmt.Sprintf("Venta registrada: %s - %.1f kg", venta.Cliente, venta.Kilos),
				Before:      nil,
				After:       venta,
			})
		}

		return c.Status(fiber.StatusCreated).JSON(toResponse(venta))
	}
}

// GET /api/ventas?from=2026-08-01&to=2026-08-31&cliente=...
func ListVentasHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.Venta{})

		if fromStr := c.Query("from"); fromStr != "" {
			from, err := time.Parse("2006-01-02", fromStr)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Fecha 'from' inválida")
			}
			dbq = dbq.Where("fecha >= ?", from)
		}
		if toStr := c.Query("to"); toStr != "" {
			to, err := time.Parse("2006-01-02", toStr)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Fecha 'to' inválida")
			}
			dbq = dbq.Where("fecha <= ?", to)
		}
		if cliente := c.Query("cliente"); cliente != "" {
			dbq = dbq.Where("cliente ILIKE ?", "%"+cliente+"%")
		}

		var ventas []models.Venta
		if err := dbq.Order("fecha DESC, id DESC").Find(&ventas).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar las ventas")
		}

		resp := make([]VentaResponse, 0, len(ventas))
		for _, v := range ventas {
			resp = append(resp, toResponse(v))
		}
		return c.JSON(resp)
	}
}

// PUT /api/ventas/:id
func UpdateVentaHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var venta models.Venta
		if err := database.DB.First(&venta, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Venta no encontrada")
		}

		var body UpdateVentaRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		oldVenta := venta
		fechaAnterior := venta.Fecha

		if body.Fecha != nil {
			fecha, err := time.Parse("2006-01-02", *body.Fecha)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "El formato de fecha debe ser 'YYYY-MM-DD'")
			}
			venta.Fecha = fecha
		}
		if body.Cliente != nil {
			if strings.TrimSpace(*body.Cliente) == "" {
				return fiber.NewError(fiber.StatusBadRequest, "cliente no puede quedar vacío")
			}
			venta.Cliente = strings.TrimSpace(*body.Cliente)
		}
		if body.Kilos != nil {
			if *body.Kilos < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "kilos no puede ser negativo")
			}
			venta.Kilos = *body.Kilos
		}
		if body.Monto != nil {
			if *body.Monto < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "monto no puede ser negativo")
			}
			venta.Monto = *body.Monto
		}

		err := database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Save(&venta).Error; err != nil {
				return err
			}
			// Recalcular la fecha nueva, y la anterior si la venta cambió de día
			if err := produccion.RecomputarParaFecha(tx, venta.Fecha); err != nil {
				return err
			}
			if !fechaAnterior.Equal(venta.Fecha) {
				return produccion.RecomputarParaFecha(tx, fechaAnterior)
			}
			return nil
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo actualizar la venta")
		}

		userID, userName, uerr := getUserInfo(c)
		if uerr == nil {
			_ = audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "venta",
				EntityID:    venta.ID,
				Action:      models.AuditActionUpdate,
				Description: fmt.Sprintf("Venta actualizada: %s", venta.Cliente),
				Before:      oldVenta,
				After:       venta,
			})
		}

		return c.JSON(toResponse(venta))
	}
}

// DELETE /api/ventas/:id — solo admin
func DeleteVentaHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var venta models.Venta
		if err := database.DB.First(&venta, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Venta no encontrada")
		}

		err := database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Delete(&venta).Error; err != nil {
				return err
			}
			return produccion.RecomputarParaFecha(tx, venta.Fecha)
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo eliminar la venta")
		}

		userID, userName, uerr := getUserInfo(c)
		if uerr == nil {
			_ = audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "venta",
				EntityID:    venta.ID,
				Action:      models.AuditActionDelete,
				Description: fmt.Sprintf("Venta eliminada: %s - %.1f kg", venta.Cliente, venta.Kilos),
				Before:      venta,
				After:       nil,
			})
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
