package audit

import (
	"encoding/json"
	"fmt"
	"time"

	"panaderia-backend/internal/database"
	"panaderia-backend/internal/models"
)

type LogOptions struct {
	UserID      uint
	UserName    string
	EntityType  string
	EntityID    uint
	Action      models.AuditAction
	Description string
	Before      any
	After       any
}

func WriteLog(opts LogOptions) error {
	// Para jsonb de PostgreSQL hay que usar el string JSON "null", no vacío
	beforeStr := "null"
	afterStr := "null"

	if opts.Before != nil {
		if b, err := json.Marshal(opts.Before); err == nil {
			beforeStr = string(b)
		}
	}
	if opts.After != nil {
		if b, err := json.Marshal(opts.After); err == nil {
			afterStr = string(b)
		}
	}

	log := models.AuditLog{
		UserID:      opts.UserID,
		UserName:    opts.UserName,
		EntityType:  opts.EntityType,
		EntityID:    opts.EntityID,
		Action:      opts.Action,
		Description: opts.Description,
		BeforeData:  beforeStr,
		AfterData:   afterStr,
		Undone:      false,
		IsUndone:    false,
	}

	if err := database.DB.Create(&log).Error; err != nil {
		return fmt.Errorf("no se pudo guardar el log de auditoría: %w", err)
	}

	return nil
}

// UndoLog - deshacer una operación registrada.
//
// No todas las entidades se pueden deshacer: las ventas y las transacciones
// de insumos alimentan campos derivados (rendimiento, costo promedio) que no
// guardan historial, y el libro del banco es append-only con saldo corrido.
// Para esas entidades el undo se rechaza con un error explícito.
func UndoLog(logID uint, userID uint, userName string) error {
	var log models.AuditLog
	if err := database.DB.First(&log, "id = ?", logID).Error; err != nil {
		return fmt.Errorf("log no encontrado: %w", err)
	}

	if log.IsUndone {
		return fmt.Errorf("esta operación ya fue deshecha")
	}

	if reason, ok := nonUndoable[log.EntityType]; ok {
		return fmt.Errorf("no se puede deshacer %s: %s", log.EntityType, reason)
	}

	switch log.Action {
	case models.AuditActionCreate:
		// Si fue create, se elimina la entidad
		if err := deleteEntity(log.EntityType, log.EntityID); err != nil {
			return fmt.Errorf("no se pudo eliminar la entidad: %w", err)
		}

	case models.AuditActionUpdate:
		// Si fue update, se restaura el estado anterior
		if err := restoreEntity(log.EntityType, log.EntityID, log.BeforeData); err != nil {
			return fmt.Errorf("no se pudo restaurar la entidad: %w", err)
		}

	case models.AuditActionDelete:
		// Si fue delete, se vuelve a crear
		if err := recreateEntity(log.EntityType, log.BeforeData); err != nil {
			return fmt.Errorf("no se pudo recrear la entidad: %w", err)
		}

	default:
		return fmt.Errorf("este tipo de operación no se puede deshacer")
	}

	now := time.Now()
	log.IsUndone = true
	log.UndoneBy = &userID
	log.UndoneAt = &now

	if err := database.DB.Save(&log).Error; err != nil {
		return fmt.Errorf("no se pudo actualizar el log: %w", err)
	}

	undoLog := models.AuditLog{
		UserID:      userID,
		UserName:    userName,
		EntityType:  log.EntityType,
		EntityID:    log.EntityID,
		Action:      models.AuditActionUndo,
		Description: fmt.Sprintf("Deshecho: %s", log.Description),
		BeforeData:  log.AfterData,
		AfterData:   log.BeforeData,
		Undone:      true,
		IsUndone:    false,
	}

	if err := database.DB.Create(&undoLog).Error; err != nil {
		return fmt.Errorf("no se pudo guardar el log de undo: %w", err)
	}

	return nil
}

var nonUndoable = map[string]string{
	"venta":              "las ventas recalculan el rendimiento del día",
	"insumo_transaccion": "las transacciones de insumos alimentan el costo promedio, que no guarda historial",
	"movimiento_banco":   "el libro del banco es append-only y el saldo corrido no se recalcula hacia atrás",
	"rendimiento":        "sus campos derivados se recalculan desde ventas e insumos",
	"pedido":             "los pedidos se anulan cambiando su estado, no se deshacen",
}

func deleteEntity(entityType string, entityID uint) error {
	switch entityType {
	case "caja_chica":
		return database.DB.Delete(&models.CajaChica{}, "id = ?", entityID).Error
	case "reclamo":
		return database.DB.Delete(&models.Reclamo{}, "id = ?", entityID).Error
	case "producto":
		return database.DB.Delete(&models.Producto{}, "id = ?", entityID).Error
	case "cliente":
		return database.DB.Delete(&models.Cliente{}, "id = ?", entityID).Error
	case "proveedor":
		return database.DB.Delete(&models.Proveedor{}, "id = ?", entityID).Error
	case "trabajador":
		return database.DB.Delete(&models.Trabajador{}, "id = ?", entityID).Error
	case "equipo":
		return database.DB.Delete(&models.Equipo{}, "id = ?", entityID).Error
	case "vehiculo":
		return database.DB.Delete(&models.Vehiculo{}, "id = ?", entityID).Error
	default:
		return fmt.Errorf("tipo de entidad desconocido: %s", entityType)
	}
}

func recreateEntity(entityType string, dataJSON string) error {
	switch entityType {
	case "caja_chica":
		var entry models.CajaChica
		if err := json.Unmarshal([]byte(dataJSON), &entry); err != nil {
			return err
		}
		if entry.MovimientoBancoID != nil {
			// El cargo espejo en banco no se puede recrear (libro append-only)
			return fmt.Errorf("la entrada tenía cargo espejo en banco, recrear a mano")
		}
		entry.ID = 0 // crear como entidad nueva
		return database.DB.Create(&entry).Error

	case "reclamo":
		var r models.Reclamo
		if err := json.Unmarshal([]byte(dataJSON), &r); err != nil {
			return err
		}
		r.ID = 0
		return database.DB.Create(&r).Error

	case "producto":
		var p models.Producto
		if err := json.Unmarshal([]byte(dataJSON), &p); err != nil {
			return err
		}
		p.ID = 0
		return database.DB.Create(&p).Error

	case "cliente":
		var m models.Cliente
		if err := json.Unmarshal([]byte(dataJSON), &m); err != nil {
			return err
		}
		m.ID = 0
		return database.DB.Create(&m).Error

	case "proveedor":
		var m models.Proveedor
		if err := json.Unmarshal([]byte(dataJSON), &m); err != nil {
			return err
		}
		m.ID = 0
		return database.DB.Create(&m).Error

	case "trabajador":
		var m models.Trabajador
		if err := json.Unmarshal([]byte(dataJSON), &m); err != nil {
			return err
		}
		m.ID = 0
		return database.DB.Create(&m).Error

	case "equipo":
		var m models.Equipo
		if err := json.Unmarshal([]byte(dataJSON), &m); err != nil {
			return err
		}
		m.ID = 0
		return database.DB.Create(&m).Error

	case "vehiculo":
		var m models.Vehiculo
		if err := json.Unmarshal([]byte(dataJSON), &m); err != nil {
			return err
		}
		m.ID = 0
		return database.DB.Create(&m).Error

	default:
		return fmt.Errorf("tipo de entidad desconocido: %s", entityType)
	}
}

func restoreEntity(entityType string, entityID uint, dataJSON string) error {
	switch entityType {
	case "caja_chica":
		var entry models.CajaChica
		if err := json.Unmarshal([]byte(dataJSON), &entry); err != nil {
			return err
		}
		return database.DB.Model(&models.CajaChica{}).Where("id = ?", entityID).Updates(map[string]interface{}{
			"fecha":             entry.Fecha,
			"area":              entry.Area,
			"monto":             entry.Monto,
			"descripcion":       entry.Descripcion,
			"tipo_beneficiario": entry.TipoBeneficiario,
			"beneficiario":      entry.Beneficiario,
			"medio_pago":        entry.MedioPago,
		}).Error

	case "reclamo":
		var r models.Reclamo
		if err := json.Unmarshal([]byte(dataJSON), &r); err != nil {
			return err
		}
		return database.DB.Model(&models.Reclamo{}).Where("id = ?", entityID).Updates(map[string]interface{}{
			"pedido_codigo": r.PedidoCodigo,
			"fecha":         r.Fecha,
			"detalle":       r.Detalle,
			"estado":        r.Estado,
			"respuesta":     r.Respuesta,
		}).Error

	case "producto":
		var p models.Producto
		if err := json.Unmarshal([]byte(dataJSON), &p); err != nil {
			return err
		}
		return database.DB.Model(&models.Producto{}).Where("id = ?", entityID).Updates(map[string]interface{}{
			"nombre": p.Nombre,
			"unidad": p.Unidad,
			"precio": p.Precio,
			"activo": p.Activo,
		}).Error

	case "cliente":
		var m models.Cliente
		if err := json.Unmarshal([]byte(dataJSON), &m); err != nil {
			return err
		}
		return database.DB.Model(&models.Cliente{}).Where("id = ?", entityID).Updates(map[string]interface{}{
			"razon_social": m.RazonSocial,
			"rut":          m.RUT,
			"giro":         m.Giro,
			"direccion":    m.Direccion,
			"comuna":       m.Comuna,
			"contacto":     m.Contacto,
			"telefono":     m.Telefono,
			"email":        m.Email,
			"activo":       m.Activo,
		}).Error

	case "proveedor":
		var m models.Proveedor
		if err := json.Unmarshal([]byte(dataJSON), &m); err != nil {
			return err
		}
		return database.DB.Model(&models.Proveedor{}).Where("id = ?", entityID).Updates(map[string]interface{}{
			"razon_social": m.RazonSocial,
			"rut":          m.RUT,
			"giro":         m.Giro,
			"direccion":    m.Direccion,
			"contacto":     m.Contacto,
			"telefono":     m.Telefono,
			"email":        m.Email,
			"activo":       m.Activo,
		}).Error

	case "trabajador":
		var m models.Trabajador
		if err := json.Unmarshal([]byte(dataJSON), &m); err != nil {
			return err
		}
		return database.DB.Model(&models.Trabajador{}).Where("id = ?", entityID).Updates(map[string]interface{}{
			"nombre":        m.Nombre,
			"rut":           m.RUT,
			"cargo":         m.Cargo,
			"area":          m.Area,
			"telefono":      m.Telefono,
			"fecha_ingreso": m.FechaIngreso,
			"activo":        m.Activo,
		}).Error

	case "equipo":
		var m models.Equipo
		if err := json.Unmarshal([]byte(dataJSON), &m); err != nil {
			return err
		}
		return database.DB.Model(&models.Equipo{}).Where("id = ?", entityID).Updates(map[string]interface{}{
			"nombre":        m.Nombre,
			"tipo":          m.Tipo,
			"marca":         m.Marca,
			"modelo":        m.Modelo,
			"estado":        m.Estado,
			"fecha_compra":  m.FechaCompra,
			"observaciones": m.Observaciones,
		}).Error

	case "vehiculo":
		var m models.Vehiculo
		if err := json.Unmarshal([]byte(dataJSON), &m); err != nil {
			return err
		}
		return database.DB.Model(&models.Vehiculo{}).Where("id = ?", entityID).Updates(map[string]interface{}{
			"patente":       m.Patente,
			"marca":         m.Marca,
			"modelo":        m.Modelo,
			"anio":          m.Anio,
			"estado":        m.Estado,
			"observaciones": m.Observaciones,
		}).Error

	default:
		return fmt.Errorf("tipo de entidad desconocido: %s", entityType)
	}
}
