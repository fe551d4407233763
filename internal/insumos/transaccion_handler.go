package insumos

import (
	"fmt"
	"strings"
	"time"

	"panaderia-backend/internal/audit"
	"panaderia-backend/internal/database"
	"panaderia-backend/internal/models"
	"panaderia-backend/internal/produccion"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CreateTransaccionRequest struct {
	Fecha          string  `json:"fecha"` // "2026-08-28"
	Insumo         string  `json:"insumo"`
	Entrada        float64 `json:"entrada"`
	Salida         float64 `json:"salida"`
	PrecioUnitario float64 `json:"precio_unitario"`
	Proveedor      string  `json:"proveedor"`
	FechaCompra    string  `json:"fecha_compra"` // opcional
	FechaPago      string  `json:"fecha_pago"`   // opcional
	Folio          string  `json:"folio"`
}

type UpdateTransaccionRequest struct {
	Fecha          *string            `json:"fecha"`
	Entrada        *float64           `json:"entrada"`
	Salida         *float64           `json:"salida"`
	PrecioUnitario *float64           `json:"precio_unitario"`
	Proveedor      *string            `json:"proveedor"`
	FechaCompra    *string            `json:"fecha_compra"`
	FechaPago      *string            `json:"fecha_pago"`
	Folio          *string            `json:"folio"`
	EstadoPago     *models.EstadoPago `json:"estado_pago"`
}

type TransaccionResponse struct {
	ID             uint              `json:"id"`
	Fecha          string            `json:"fecha"`
	Insumo         string            `json:"insumo"`
	Entrada        float64           `json:"entrada"`
	Salida         float64           `json:"salida"`
	PrecioUnitario float64           `json:"precio_unitario"`
	Proveedor      string            `json:"proveedor"`
	FechaCompra    *string           `json:"fecha_compra"`
	FechaPago      *string           `json:"fecha_pago"`
	Folio          string            `json:"folio"`
	EstadoPago     models.EstadoPago `json:"estado_pago"`
}

func toTransaccionResponse(t models.InsumoTransaccion) TransaccionResponse {
	resp := TransaccionResponse{
		ID:             t.ID,
		Fecha:          t.Fecha.Format("2006-01-02"),
		Insumo:         t.Insumo,
		Entrada:        t.Entrada,
		Salida:         t.Salida,
		PrecioUnitario: t.PrecioUnitario,
		Proveedor:      t.Proveedor,
		Folio:          t.Folio,
		EstadoPago:     t.EstadoPago,
	}
	if t.FechaCompra != nil {
		s := t.FechaCompra.Format("2006-01-02")
		resp.FechaCompra = &s
	}
	if t.FechaPago != nil {
		s := t.FechaPago.Format("2006-01-02")
		resp.FechaPago = &s
	}
	return resp
}

func parseFechaOpcional(s string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// POST /api/insumo-transacciones
func CreateTransaccionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateTransaccionRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		fecha, err := time.Parse("2006-01-02", body.Fecha)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "El formato de fecha debe ser 'YYYY-MM-DD'")
		}

		nombre := strings.TrimSpace(body.Insumo)
		if nombre == "" {
			return fiber.NewError(fiber.StatusBadRequest, "insumo es obligatorio")
		}
		if body.Entrada < 0 || body.Salida < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "entrada y salida no pueden ser negativas")
		}
		if body.Entrada == 0 && body.Salida == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "la transacción debe tener entrada o salida")
		}

		fechaCompra, err := parseFechaOpcional(body.FechaCompra)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "fecha_compra inválida")
		}
		fechaPago, err := parseFechaOpcional(body.FechaPago)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "fecha_pago inválida")
		}

		trx := models.InsumoTransaccion{
			Fecha:          fecha,
			Insumo:         nombre,
			Entrada:        body.Entrada,
			Salida:         body.Salida,
			PrecioUnitario: body.PrecioUnitario,
			Proveedor:      strings.TrimSpace(body.Proveedor),
			FechaCompra:    fechaCompra,
			FechaPago:      fechaPago,
			Folio:          strings.TrimSpace(body.Folio),
			EstadoPago:     models.PagoPendiente,
		}

		err = database.DB.Transaction(func(tx *gorm.DB) error {
			// El costo promedio se mezcla ANTES de insertar: stockAntes es
			// el libro sin esta compra
			if err := RegistrarCompra(tx, nombre, body.Entrada, body.PrecioUnitario); err != nil {
				return err
			}
			if err := tx.Create(&trx).Error; err != nil {
				return err
			}
			if nombre == models.NombreHarina {
				return produccion.RecomputarParaFecha(tx, fecha)
			}
			return nil
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo registrar la transacción")
		}

		userID, userName, uerr := getUserInfo(c)
		if uerr == nil {
			_ = audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "insumo_transaccion",
				EntityID:    trx.ID,
				Action:      models.AuditActionCreate,
				Description: fmt.Sprintf("Movimiento de insumo: %s (+%.1f / -%.1f)", trx.Insumo, trx.Entrada, trx.Salida),
				Before:      nil,
				After:       trx,
			})
		}

		return c.Status(fiber.StatusCreated).JSON(toTransaccionResponse(trx))
	}
}

// GET /api/insumo-transacciones?insumo=Harina&from=...&to=...&estado_pago=pendiente
func ListTransaccionesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.InsumoTransaccion{})

		if insumo := c.Query("insumo"); insumo != "" {
			dbq = dbq.Where("insumo = ?", insumo)
		}
		if estado := c.Query("estado_pago"); estado != "" {
			dbq = dbq.Where("estado_pago = ?", estado)
		}
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

		var trxs []models.InsumoTransaccion
		if err := dbq.Order("fecha DESC, id DESC").Find(&trxs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar las transacciones")
		}

		resp := make([]TransaccionResponse, 0, len(trxs))
		for _, t := range trxs {
			resp = append(resp, toTransaccionResponse(t))
		}
		return c.JSON(resp)
	}
}

// PUT /api/insumo-transacciones/:id
// El nombre del insumo no se edita: el libro se lleva por nombre.
func UpdateTransaccionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var trx models.InsumoTransaccion
		if err := database.DB.First(&trx, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Transacción no encontrada")
		}

		var body UpdateTransaccionRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		oldTrx := trx
		fechaAnterior := trx.Fecha

		if body.Fecha != nil {
			fecha, err := time.Parse("2006-01-02", *body.Fecha)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "El formato de fecha debe ser 'YYYY-MM-DD'")
			}
			trx.Fecha = fecha
		}
		if body.Entrada != nil {
			if *body.Entrada < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "entrada no puede ser negativa")
			}
			trx.Entrada = *body.Entrada
		}
		if body.Salida != nil {
			if *body.Salida < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "salida no puede ser negativa")
			}
			trx.Salida = *body.Salida
		}
		if body.PrecioUnitario != nil {
			trx.PrecioUnitario = *body.PrecioUnitario
		}
		if body.Proveedor != nil {
			trx.Proveedor = strings.TrimSpace(*body.Proveedor)
		}
		if body.FechaCompra != nil {
			d, err := parseFechaOpcional(*body.FechaCompra)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "fecha_compra inválida")
			}
			trx.FechaCompra = d
		}
		if body.FechaPago != nil {
			d, err := parseFechaOpcional(*body.FechaPago)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "fecha_pago inválida")
			}
			trx.FechaPago = d
		}
		if body.Folio != nil {
			trx.Folio = strings.TrimSpace(*body.Folio)
		}
		if body.EstadoPago != nil {
			if *body.EstadoPago != models.PagoPendiente && *body.EstadoPago != models.PagoPagada {
				return fiber.NewError(fiber.StatusBadRequest, "estado_pago debe ser 'pendiente' o 'pagada'")
			}
			trx.EstadoPago = *body.EstadoPago
		}

		err := database.DB.Transaction(func(tx *gorm.DB) error {
			// Mezcla del costo ANTES de guardar la edición: el libro aún
			// contiene la fila con su cantidad anterior (ver RegistrarCompra)
			if err := RegistrarCompra(tx, trx.Insumo, trx.Entrada, trx.PrecioUnitario); err != nil {
				return err
			}
			if err := tx.Save(&trx).Error; err != nil {
				return err
			}
			if trx.Insumo == models.NombreHarina {
				if err := produccion.RecomputarParaFecha(tx, trx.Fecha); err != nil {
					return err
				}
				if !fechaAnterior.Equal(trx.Fecha) {
					return produccion.RecomputarParaFecha(tx, fechaAnterior)
				}
			}
			return nil
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo actualizar la transacción")
		}

		userID, userName, uerr := getUserInfo(c)
		if uerr == nil {
			_ = audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "insumo_transaccion",
				EntityID:    trx.ID,
				Action:      models.AuditActionUpdate,
				Description: fmt.Sprintf("Movimiento de insumo actualizado: %s", trx.Insumo),
				Before:      oldTrx,
				After:       trx,
			})
		}

		return c.JSON(toTransaccionResponse(trx))
	}
}

// DELETE /api/insumo-transacciones/:id — solo admin
// El costo promedio no se revierte: no hay historial de costos.
func DeleteTransaccionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var trx models.InsumoTransaccion
		if err := database.DB.First(&trx, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Transacción no encontrada")
		}

		err := database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Delete(&trx).Error; err != nil {
				return err
			}
			if trx.Insumo == models.NombreHarina {
				return produccion.RecomputarParaFecha(tx, trx.Fecha)
			}
			return nil
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo eliminar la transacción")
		}

		userID, userName, uerr := getUserInfo(c)
		if uerr == nil {
			_ = audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "insumo_transaccion",
				EntityID:    trx.ID,
				Action:      models.AuditActionDelete,
				Description: fmt.Sprintf("Movimiento de insumo eliminado: %s", trx.Insumo),
				Before:      trx,
				After:       nil,
			})
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
