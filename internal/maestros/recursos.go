package maestros

import (
	"strings"

	"panaderia-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func filtrarActivo(dbq *gorm.DB, c *fiber.Ctx) *gorm.DB {
	switch c.Query("activo") {
	case "true":
		return dbq.Where("activo = ?", true)
	case "false":
		return dbq.Where("activo = ?", false)
	}
	return dbq
}

var ClienteResource = &Resource[models.Cliente]{
	EntityType: "cliente",
	Describir:  func(e *models.Cliente) string { return e.RazonSocial },
	GetID:      func(e *models.Cliente) uint { return e.ID },
	Normalizar: func(e *models.Cliente) error {
		rut, err := NormalizarRUT(e.RUT)
		if err != nil {
			return err
		}
		e.RUT = rut
		return nil
	},
	Filtrar: filtrarActivo,
}

var ProveedorResource = &Resource[models.Proveedor]{
	EntityType: "proveedor",
	Describir:  func(e *models.Proveedor) string { return e.RazonSocial },
	GetID:      func(e *models.Proveedor) uint { return e.ID },
	Normalizar: func(e *models.Proveedor) error {
		rut, err := NormalizarRUT(e.RUT)
		if err != nil {
			return err
		}
		e.RUT = rut
		return nil
	},
	Filtrar: filtrarActivo,
}

var TrabajadorResource = &Resource[models.Trabajador]{
	EntityType: "trabajador",
	Describir:  func(e *models.Trabajador) string { return e.Nombre },
	GetID:      func(e *models.Trabajador) uint { return e.ID },
	Normalizar: func(e *models.Trabajador) error {
		rut, err := NormalizarRUT(e.RUT)
		if err != nil {
			return err
		}
		e.RUT = rut
		return nil
	},
	Filtrar: filtrarActivo,
}

var EquipoResource = &Resource[models.Equipo]{
	EntityType: "equipo",
	Describir:  func(e *models.Equipo) string { return e.Nombre },
	GetID:      func(e *models.Equipo) uint { return e.ID },
	Filtrar: func(dbq *gorm.DB, c *fiber.Ctx) *gorm.DB {
		if estado := c.Query("estado"); estado != "" {
			return dbq.Where("estado = ?", estado)
		}
		return dbq
	},
}

var VehiculoResource = &Resource[models.Vehiculo]{
	EntityType: "vehiculo",
	Describir:  func(e *models.Vehiculo) string { return e.Patente },
	GetID:      func(e *models.Vehiculo) uint { return e.ID },
	Normalizar: func(e *models.Vehiculo) error {
		e.Patente = strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(e.Patente), " ", ""))
		return nil
	},
	Filtrar: func(dbq *gorm.DB, c *fiber.Ctx) *gorm.DB {
		if estado := c.Query("estado"); estado != "" {
			return dbq.Where("estado = ?", estado)
		}
		return dbq
	},
}
