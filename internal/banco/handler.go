package banco

import (
	"fmt"
	"strings"
	"time"

	"panaderia-backend/internal/audit"
	"panaderia-backend/internal/auth"
	"panaderia-backend/internal/database"
	"panaderia-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CreateMovimientoRequest struct {
	Fecha       string  `json:"fecha"` // "2026-08-28"
	Abono       float64 `json:"abono"`
	Cargo       float64 `json:"cargo"`
	Descripcion string  `json:"descripcion"`
	Documento   string  `json:"documento"`
	Nota        string  `json:"nota"`
	Area        string  `json:"area"`
}

type MovimientoResponse struct {
	ID          uint    `json:"id"`
	Fecha       string  `json:"fecha"`
	Abono       float64 `json:"abono"`
	Cargo       float64 `json:"cargo"`
	Descripcion string  `json:"descripcion"`
	Documento   string  `json:"documento"`
	Nota        string  `json:"nota"`
	Area        string  `json:"area"`
	Saldo       float64 `json:"saldo"`
	// Facturas de insumos conciliadas por este movimiento (solo en create)
	FacturasConciliadas int64 `json:"facturas_conciliadas,omitempty"`
}

func toMovimientoResponse(m models.MovimientoBanco) MovimientoResponse {
	return MovimientoResponse{
		ID:          m.ID,
		Fecha:       m.Fecha.Format("2006-01-02"),
		Abono:       m.Abono,
		Cargo:       m.Cargo,
		Descripcion: m.Descripcion,
		Documento:   m.Documento,
		Nota:        m.Nota,
		Area:        m.Area,
		Saldo:       m.Saldo,
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

// CrearMovimiento inserta una línea en el libro con su saldo corrido y
// concilia facturas de insumos si corresponde. Lo usan el handler del
// banco y el cargo espejo de caja chica; corre dentro de la transacción
// del llamador.
func CrearMovimiento(tx *gorm.DB, mov *models.MovimientoBanco) (int64, error) {
	saldoAnterior, err := UltimoSaldo(tx)
	if err != nil {
		return 0, err
	}
	mov.Saldo = SaldoTrasMovimiento(saldoAnterior, mov.Abono, mov.Cargo)

	if err := tx.Create(mov).Error; err != nil {
		return 0, err
	}

	if DebeConciliar(mov.Cargo, mov.Documento) {
		return Conciliar(tx, strings.TrimSpace(mov.Documento), mov.Fecha)
	}
	return 0, nil
}

// POST /api/movimientos-banco
// El libro es append-only: no hay update ni delete. Un error de digitación
// se corrige con un contraasiento.
func CreateMovimientoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateMovimientoRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		fecha, err := time.Parse("2006-01-02", body.Fecha)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "El formato de fecha debe ser 'YYYY-MM-DD'")
		}

		if body.Abono < 0 || body.Cargo < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "abono y cargo no pueden ser negativos")
		}
		if body.Abono == 0 && body.Cargo == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "el movimiento debe tener abono o cargo")
		}
		if body.Abono > 0 && body.Cargo > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "el movimiento no puede tener abono y cargo a la vez")
		}

		mov := models.MovimientoBanco{
			Fecha:       fecha,
			Abono:       body.Abono,
			Cargo:       body.Cargo,
			Descripcion: strings.TrimSpace(body.Descripcion),
			Documento:   strings.TrimSpace(body.Documento),
			Nota:        strings.TrimSpace(body.Nota),
			Area:        strings.TrimSpace(body.Area),
		}

		var conciliadas int64
		err = database.DB.Transaction(func(tx *gorm.DB) error {
			n, err := CrearMovimiento(tx, &mov)
			conciliadas = n
			return err
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo registrar el movimiento")
		}

		userID, userName, uerr := getUserInfo(c)
		if uerr == nil {
			_ = audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "movimiento_banco",
				EntityID:    mov.ID,
				Action:      models.AuditActionCreate,
				Description: fmt.Sprintf("Movimiento banco: abono %.0f / cargo %.0f (saldo %.0f)", mov.Abono, mov.Cargo, mov.Saldo),
				Before:      nil,
				After:       mov,
			})
		}

		resp := toMovimientoResponse(mov)
		resp.FacturasConciliadas = conciliadas
		return c.Status(fiber.StatusCreated).JSON(resp)
	}
}

// GET /api/movimientos-banco?from=...&to=...&area=...
func ListMovimientosHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.MovimientoBanco{})

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

		var movs []models.MovimientoBanco
		if err := dbq.Order("fecha ASC, id ASC").Find(&movs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar los movimientos")
		}

		resp := make([]MovimientoResponse, 0, len(movs))
		for _, m := range movs {
			resp = append(resp, toMovimientoResponse(m))
		}
		return c.JSON(resp)
	}
}

// GET /api/movimientos-banco/saldo
func SaldoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		saldo, err := UltimoSaldo(database.DB)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo obtener el saldo")
		}
		return c.JSON(fiber.Map{"saldo": saldo})
	}
}
