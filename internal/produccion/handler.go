package produccion

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

type CreateRendimientoRequest struct {
	Fecha     string  `json:"fecha"` // "2026-08-28"
	Barredura float64 `json:"barredura"`
	Merma     float64 `json:"merma"`
}

type UpdateRendimientoRequest struct {
	Barredura *float64 `json:"barredura"`
	Merma     *float64 `json:"merma"`
}

type RendimientoResponse struct {
	ID              uint    `json:"id"`
	Fecha           string  `json:"fecha"`
	KilosProducidos float64 `json:"kilos_producidos"`
	SacosUsados     float64 `json:"sacos_usados"`
	Rendimiento     float64 `json:"rendimiento"`
	Barredura       float64 `json:"barredura"`
	Merma           float64 `json:"merma"`
}

func toResponse(r models.Rendimiento) RendimientoResponse {
	return RendimientoResponse{
		ID:              r.ID,
		Fecha:           r.Fecha.Format("2006-01-02"),
		KilosProducidos: r.KilosProducidos,
		SacosUsados:     r.SacosUsados,
		Rendimiento:     r.Rendimiento,
		Barredura:       r.Barredura,
		Merma:           r.Merma,
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

// POST /api/rendimientos
// Siembra el registro del día: los kilos y sacos se derivan al momento de
// crear, el recálculo posterior solo actualiza registros existentes.
func CreateRendimientoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateRendimientoRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		fecha, err := time.Parse("2006-01-02", body.Fecha)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "El formato de fecha debe ser 'YYYY-MM-DD'")
		}

		if body.Barredura < 0 || body.Merma < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "barredura y merma no pueden ser negativas")
		}

		var rec models.Rendimiento
		err = database.DB.Transaction(func(tx *gorm.DB) error {
			var count int64
			tx.Model(&models.Rendimiento{}).Where("fecha = ?", fecha).Count(&count)
			if count > 0 {
				return fiber.NewError(fiber.StatusBadRequest, "Ya existe un rendimiento para esa fecha")
			}

			kilos, sacos, err := DerivadosDelDia(tx, fecha)
			if err != nil {
				return err
			}

			rec = models.Rendimiento{
				Fecha:           fecha,
				KilosProducidos: kilos,
				SacosUsados:     sacos,
				Rendimiento:     CalcularRendimiento(kilos, sacos),
				Barredura:       body.Barredura,
				Merma:           body.Merma,
			}
			return tx.Create(&rec).Error
		})
		if err != nil {
			if e, ok := err.(*fiber.Error); ok {
				return e
			}
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo crear el rendimiento")
		}

		userID, userName, uerr := getUserInfo(c)
		if uerr == nil {
			_ = audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "rendimiento",
				EntityID:    rec.ID,
				Action:      models.AuditActionCreate,
				Description: fmt.Sprintf("Rendimiento creado para %s", rec.Fecha.Format("2006-01-02")),
				Before:      nil,
				After:       rec,
			})
		}

		return c.Status(fiber.StatusCreated).JSON(toResponse(rec))
	}
}

// GET /api/rendimientos?from=2026-08-01&to=2026-08-31
func ListRendimientosHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.Rendimiento{})

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

		var recs []models.Rendimiento
		if err := dbq.Order("fecha DESC").Find(&recs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar los rendimientos")
		}

		resp := make([]RendimientoResponse, 0, len(recs))
		for _, r := range recs {
			resp = append(resp, toResponse(r))
		}
		return c.JSON(resp)
	}
}

// PUT /api/rendimientos/:id
// Solo barredura y merma son editables; kilos, sacos y rendimiento son
// derivados y los escribe únicamente el recálculo.
func UpdateRendimientoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var rec models.Rendimiento
		if err := database.DB.First(&rec, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Rendimiento no encontrado")
		}

		var body UpdateRendimientoRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		oldRec := rec

		if body.Barredura != nil {
			if *body.Barredura < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "barredura no puede ser negativa")
			}
			rec.Barredura = *body.Barredura
		}
		if body.Merma != nil {
			if *body.Merma < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "merma no puede ser negativa")
			}
			rec.Merma = *body.Merma
		}

		if err := database.DB.Save(&rec).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo actualizar el rendimiento")
		}

		userID, userName, uerr := getUserInfo(c)
		if uerr == nil {
			_ = audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "rendimiento",
				EntityID:    rec.ID,
				Action:      models.AuditActionUpdate,
				Description: fmt.Sprintf("Rendimiento actualizado para %s", rec.Fecha.Format("2006-01-02")),
				Before:      oldRec,
				After:       rec,
			})
		}

		return c.JSON(toResponse(rec))
	}
}

// DELETE /api/rendimientos/:id — solo admin
func DeleteRendimientoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var rec models.Rendimiento
		if err := database.DB.First(&rec, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Rendimiento no encontrado")
		}

		if err := database.DB.Delete(&rec).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo eliminar el rendimiento")
		}

		userID, userName, uerr := getUserInfo(c)
		if uerr == nil {
			_ = audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "rendimiento",
				EntityID:    rec.ID,
				Action:      models.AuditActionDelete,
				Description: fmt.Sprintf("Rendimiento eliminado para %s", rec.Fecha.Format("2006-01-02")),
				Before:      rec,
				After:       nil,
			})
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
