package caja

import (
	"fmt"
	"strings"
	"time"

	"panaderia-backend/internal/audit"
	"panaderia-backend/internal/auth"
	"panaderia-backend/internal/banco"
	"panaderia-backend/internal/database"
	"panaderia-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CreateCajaChicaRequest struct {
	Fecha            string                  `json:"fecha"` // "2026-08-28"
	Area             string                  `json:"area"`
	Monto            float64                 `json:"monto"`
	Descripcion      string                  `json:"descripcion"`
	TipoBeneficiario models.TipoBeneficiario `json:"tipo_beneficiario"`
	Beneficiario     string                  `json:"beneficiario"`
	MedioPago        models.MedioPago        `json:"medio_pago"`
}

type UpdateCajaChicaRequest struct {
	Area             *string                  `json:"area"`
	Descripcion      *string                  `json:"descripcion"`
	TipoBeneficiario *models.TipoBeneficiario `json:"tipo_beneficiario"`
	Beneficiario     *string                  `json:"beneficiario"`
}

type CajaChicaResponse struct {
	ID                uint                    `json:"id"`
	Fecha             string                  `json:"fecha"`
	Area              string                  `json:"area"`
	Monto             float64                 `json:"monto"`
	Descripcion       string                  `json:"descripcion"`
	TipoBeneficiario  models.TipoBeneficiario `json:"tipo_beneficiario"`
	Beneficiario      string                  `json:"beneficiario"`
	MedioPago         models.MedioPago        `json:"medio_pago"`
	MovimientoBancoID *uint                   `json:"movimiento_banco_id"`
}

func toResponse(e models.CajaChica) CajaChicaResponse {
	return CajaChicaResponse{
		ID:                e.ID,
		Fecha:             e.Fecha.Format("2006-01-02"),
		Area:              e.Area,
		Monto:             e.Monto,
		Descripcion:       e.Descripcion,
		TipoBeneficiario:  e.TipoBeneficiario,
		Beneficiario:      e.Beneficiario,
		MedioPago:         e.MedioPago,
		MovimientoBancoID: e.MovimientoBancoID,
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

func validarTipoBeneficiario(t models.TipoBeneficiario) bool {
	return t == models.BeneficiarioProveedor || t == models.BeneficiarioTrabajador || t == models.BeneficiarioOtro
}

func validarMedioPago(m models.MedioPago) bool {
	return m == models.MedioEfectivo || m == models.MedioTarjeta || m == models.MedioCheque
}

// POST /api/caja-chica
// Con medio de pago tarjeta o cheque se crea además el cargo espejo en el
// banco, en la misma transacción.
func CreateCajaChicaHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateCajaChicaRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		fecha, err := time.Parse("2006-01-02", body.Fecha)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "El formato de fecha debe ser 'YYYY-MM-DD'")
		}

		if strings.TrimSpace(body.Area) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "area es obligatoria")
		}
		if body.Monto <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "monto debe ser mayor que 0")
		}
		if !validarTipoBeneficiario(body.TipoBeneficiario) {
			return fiber.NewError(fiber.StatusBadRequest, "tipo_beneficiario debe ser 'proveedor', 'trabajador' u 'otro'")
		}
		if !validarMedioPago(body.MedioPago) {
			return fiber.NewError(fiber.StatusBadRequest, "medio_pago debe ser 'efectivo', 'tarjeta' o 'cheque'")
		}

		entry := models.CajaChica{
			Fecha:            fecha,
			Area:             strings.TrimSpace(body.Area),
			Monto:            body.Monto,
			Descripcion:      strings.TrimSpace(body.Descripcion),
			TipoBeneficiario: body.TipoBeneficiario,
			Beneficiario:     strings.TrimSpace(body.Beneficiario),
			MedioPago:        body.MedioPago,
		}

		err = database.DB.Transaction(func(tx *gorm.DB) error {
			if entry.MedioPago == models.MedioTarjeta || entry.MedioPago == models.MedioCheque {
				mov := models.MovimientoBanco{
					Fecha:       fecha,
					Cargo:       entry.Monto,
					Descripcion: fmt.Sprintf("Caja chica %s: %s", entry.Area, entry.Descripcion),
					Area:        entry.Area,
				}
				if _, err := banco.CrearMovimiento(tx, &mov); err != nil {
					return err
				}
				entry.MovimientoBancoID = &mov.ID
			}
			return tx.Create(&entry).Error
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo registrar el egreso de caja chica")
		}

		userID, userName, uerr := getUserInfo(c)
		if uerr == nil {
			_ = audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "caja_chica",
				EntityID:    entry.ID,
				Action:      models.AuditActionCreate,
				Description: fmt.Sprintf("Caja chica: %s $%.0f (%s)", entry.Area, entry.Monto, entry.MedioPago),
				Before:      nil,
				After:       entry,
			})
		}

		return c.Status(fiber.StatusCreated).JSON(toResponse(entry))
	}
}

// GET /api/caja-chica?from=...&to=...&area=...
func ListCajaChicaHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.CajaChica{})

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
		if area := c.Query("area"); area != "" {
			dbq = dbq.Where("area = ?", area)
		}

		var entries []models.CajaChica
		if err := dbq.Order("fecha DESC, id DESC").Find(&entries).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar los egresos")
		}

		resp := make([]CajaChicaResponse, 0, len(entries))
		for _, e := range entries {
			resp = append(resp, toResponse(e))
		}
		return c.JSON(resp)
	}
}

// PUT /api/caja-chica/:id
// Monto y medio de pago no son editables: el cargo espejo en banco es
// append-only. Para corregirlos se elimina la entrada (si no tiene espejo)
// o se hace contraasiento.
func UpdateCajaChicaHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var entry models.CajaChica
		if err := database.DB.First(&entry, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Egreso no encontrado")
		}

		var body UpdateCajaChicaRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		oldEntry := entry

		if body.Area != nil {
			if strings.TrimSpace(*body.Area) == "" {
				return fiber.NewError(fiber.StatusBadRequest, "area no puede quedar vacía")
			}
			entry.Area = strings.TrimSpace(*body.Area)
		}
		if body.Descripcion != nil {
			entry.Descripcion = strings.TrimSpace(*body.Descripcion)
		}
		if body.TipoBeneficiario != nil {
			if !validarTipoBeneficiario(*body.TipoBeneficiario) {
				return fiber.NewError(fiber.StatusBadRequest, "tipo_beneficiario inválido")
			}
			entry.TipoBeneficiario = *body.TipoBeneficiario
		}
		if body.Beneficiario != nil {
			entry.Beneficiario = strings.TrimSpace(*body.Beneficiario)
		}

		if err := database.DB.Save(&entry).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo actualizar el egreso")
		}

		userID, userName, uerr := getUserInfo(c)
		if uerr == nil {
			_ = audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "caja_chica",
				EntityID:    entry.ID,
				Action:      models.AuditActionUpdate,
				Description: fmt.Sprintf("Caja chica actualizada: %s", entry.Area),
				Before:      oldEntry,
				After:       entry,
			})
		}

		return c.JSON(toResponse(entry))
	}
}

// DELETE /api/caja-chica/:id — solo admin
func DeleteCajaChicaHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var entry models.CajaChica
		if err := database.DB.First(&entry, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Egreso no encontrado")
		}

		if entry.MovimientoBancoID != nil {
			return fiber.NewError(fiber.StatusBadRequest, "El egreso tiene cargo espejo en banco: corrige con contraasiento, no con eliminación")
		}

		if err := database.DB.Delete(&entry).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo eliminar el egreso")
		}

		userID, userName, uerr := getUserInfo(c)
		if uerr == nil {
			_ = audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "caja_chica",
				EntityID:    entry.ID,
				Action:      models.AuditActionDelete,
				Description: fmt.Sprintf("Caja chica eliminada: %s $%.0f", entry.Area, entry.Monto),
				Before:      entry,
				After:       nil,
			})
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
