package insumos

import (
	"fmt"
	"strings"

	"panaderia-backend/internal/audit"
	"panaderia-backend/internal/auth"
	"panaderia-backend/internal/database"
	"panaderia-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateInsumoRequest struct {
	Nombre            string  `json:"nombre"`
	Unidad            string  `json:"unidad"`
	ImpuestoAdicional bool    `json:"impuesto_adicional"`
	StockMinimo       float64 `json:"stock_minimo"`
}

type UpdateInsumoRequest struct {
	Unidad            *string  `json:"unidad"`
	Activo            *bool    `json:"activo"`
	ImpuestoAdicional *bool    `json:"impuesto_adicional"`
	StockMinimo       *float64 `json:"stock_minimo"`
	// Nombre y CostoUnitario no son editables: el libro se lleva por nombre
	// y el costo solo lo escribe el registro de compras.
}

type InsumoResponse struct {
	ID                uint    `json:"id"`
	Nombre            string  `json:"nombre"`
	Unidad            string  `json:"unidad"`
	Activo            bool    `json:"activo"`
	CostoUnitario     float64 `json:"costo_unitario"`
	ImpuestoAdicional bool    `json:"impuesto_adicional"`
	StockMinimo       float64 `json:"stock_minimo"`
}

type StockInsumoResponse struct {
	Nombre      string  `json:"nombre"`
	Unidad      string  `json:"unidad"`
	Stock       float64 `json:"stock"`
	StockMinimo float64 `json:"stock_minimo"`
	BajoMinimo  bool    `json:"bajo_minimo"`
}

func toInsumoResponse(i models.Insumo) InsumoResponse {
	return InsumoResponse{
		ID:                i.ID,
		Nombre:            i.Nombre,
		Unidad:            i.Unidad,
		Activo:            i.Activo,
		CostoUnitario:     i.CostoUnitario,
		ImpuestoAdicional: i.ImpuestoAdicional,
		StockMinimo:       i.StockMinimo,
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

// POST /api/insumos
func CreateInsumoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateInsumoRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		if strings.TrimSpace(body.Nombre) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "nombre es obligatorio")
		}
		if strings.TrimSpace(body.Unidad) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "unidad es obligatoria")
		}
		if body.StockMinimo < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "stock_minimo no puede ser negativo")
		}

		insumo := models.Insumo{
			Nombre:            strings.TrimSpace(body.Nombre),
			Unidad:            strings.TrimSpace(body.Unidad),
			Activo:            true,
			ImpuestoAdicional: body.ImpuestoAdicional,
			StockMinimo:       body.StockMinimo,
		}

		if err := database.DB.Create(&insumo).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo crear el insumo (¿nombre duplicado?)")
		}

		userID, userName, uerr := getUserInfo(c)
		if uerr == nil {
			_ = audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "insumo",
				EntityID:    insumo.ID,
				Action:      models.AuditActionCreate,
				Description: fmt.Sprintf("Insumo creado: %s", insumo.Nombre),
				Before:      nil,
				After:       insumo,
			})
		}

		return c.Status(fiber.StatusCreated).JSON(toInsumoResponse(insumo))
	}
}

// GET /api/insumos?activos=1
func ListInsumosHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.Insumo{})
		if c.Query("activos") == "1" {
			dbq = dbq.Where("activo = ?", true)
		}

		var insumos []models.Insumo
		if err := dbq.Order("nombre ASC").Find(&insumos).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar los insumos")
		}

		resp := make([]InsumoResponse, 0, len(insumos))
		for _, i := range insumos {
			resp = append(resp, toInsumoResponse(i))
		}
		return c.JSON(resp)
	}
}

// GET /api/insumos/stock — stock firmado de cada insumo activo y alerta
// de stock mínimo
func StockInsumosHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var insumos []models.Insumo
		if err := database.DB.Where("activo = ?", true).Order("nombre ASC").Find(&insumos).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar los insumos")
		}

		resp := make([]StockInsumoResponse, 0, len(insumos))
		for _, i := range insumos {
			stock, err := StockActual(database.DB, i.Nombre)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "No se pudo calcular el stock")
			}
			resp = append(resp, StockInsumoResponse{
				Nombre:      i.Nombre,
				Unidad:      i.Unidad,
				Stock:       stock,
				StockMinimo: i.StockMinimo,
				BajoMinimo:  i.StockMinimo > 0 && stock < i.StockMinimo,
			})
		}
		return c.JSON(resp)
	}
}

// PUT /api/insumos/:id
func UpdateInsumoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var insumo models.Insumo
		if err := database.DB.First(&insumo, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Insumo no encontrado")
		}

		var body UpdateInsumoRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		oldInsumo := insumo

		if body.Unidad != nil {
			if strings.TrimSpace(*body.Unidad) == "" {
				return fiber.NewError(fiber.StatusBadRequest, "unidad no puede quedar vacía")
			}
			insumo.Unidad = strings.TrimSpace(*body.Unidad)
		}
		if body.Activo != nil {
			insumo.Activo = *body.Activo
		}
		if body.ImpuestoAdicional != nil {
			insumo.ImpuestoAdicional = *body.ImpuestoAdicional
		}
		if body.StockMinimo != nil {
			if *body.StockMinimo < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "stock_minimo no puede ser negativo")
			}
			insumo.StockMinimo = *body.StockMinimo
		}

		if err := database.DB.Save(&insumo).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo actualizar el insumo")
		}

		userID, userName, uerr := getUserInfo(c)
		if uerr == nil {
			_ = audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "insumo",
				EntityID:    insumo.ID,
				Action:      models.AuditActionUpdate,
				Description: fmt.Sprintf("Insumo actualizado: %s", insumo.Nombre),
				Before:      oldInsumo,
				After:       insumo,
			})
		}

		return c.JSON(toInsumoResponse(insumo))
	}
}

// DELETE /api/insumos/:id — solo admin
func DeleteInsumoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var insumo models.Insumo
		if err := database.DB.First(&insumo, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Insumo no encontrado")
		}

		// Con movimientos en el libro no se elimina, se desactiva
		var count int64
		database.DB.Model(&models.InsumoTransaccion{}).Where("insumo = ?", insumo.Nombre).Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "El insumo tiene movimientos, desactívalo en vez de eliminarlo")
		}

		if err := database.DB.Delete(&insumo).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo eliminar el insumo")
		}

		userID, userName, uerr := getUserInfo(c)
		if uerr == nil {
			_ = audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "insumo",
				EntityID:    insumo.ID,
				Action:      models.AuditActionDelete,
				Description: fmt.Sprintf("Insumo eliminado: %s", insumo.Nombre),
				Before:      insumo,
				After:       nil,
			})
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
