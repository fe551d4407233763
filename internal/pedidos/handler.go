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
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreatePedidoRequest struct {
	ClienteID    *uint         `json:"cliente_id"` // solo admin/operador
	FechaEntrega string        `json:"fecha_entrega"`
	Notas        string        `json:"notas"`
	Items        []ItemCarrito `json:"items"`
}

type PedidoItemResponse struct {
	ProductoID uint    `json:"producto_id"`
	Nombre     string  `json:"nombre"`
	Unidad     string  `json:"unidad"`
	Horario    string  `json:"horario"`
	Cantidad   float64 `json:"cantidad"`
}

type PedidoResponse struct {
	Codigo       string               `json:"codigo"`
	ClienteID    uint                 `json:"cliente_id"`
	Cliente      string               `json:"cliente"`
	FechaEntrega string               `json:"fecha_entrega"`
	Estado       models.EstadoPedido  `json:"estado"`
	Notas        string               `json:"notas"`
	Items        []PedidoItemResponse `json:"items"`
	CreatedAt    time.Time            `json:"created_at"`
}

func toPedidoResponse(p models.Pedido) PedidoResponse {
	items := make([]PedidoItemResponse, 0, len(p.Items))
	for _, it := range p.Items {
		items = append(items, PedidoItemResponse{
			ProductoID: it.ProductoID,
			Nombre:     it.Nombre,
			Unidad:     it.Unidad,
			Horario:    it.Horario,
			Cantidad:   it.Cantidad,
		})
	}
	return PedidoResponse{
		Codigo:       p.Codigo,
		ClienteID:    p.ClienteID,
		Cliente:      p.Cliente.RazonSocial,
		FechaEntrega: p.FechaEntrega.Format("2006-01-02"),
		Estado:       p.Estado,
		Notas:        p.Notas,
		Items:        items,
		CreatedAt:    p.CreatedAt,
	}
}

// crearPedido valida las líneas contra el catálogo, colapsa duplicados y
// crea el pedido con sus items dentro de la transacción dada. Lo usan el
// pedido simple y la confirmación del flujo masivo.
func crearPedido(tx *gorm.DB, clienteID uint, fechaEntrega time.Time, notas string, items []ItemCarrito) (models.Pedido, error) {
	if len(items) == 0 {
		return models.Pedido{}, fiber.NewError(fiber.StatusBadRequest, "El pedido no tiene líneas")
	}

	var carrito []ItemCarrito
	for _, it := range items {
		if !HorarioValido(it.Horario) {
			return models.Pedido{}, fiber.NewError(fiber.StatusBadRequest,
				fmt.Sprintf("Horario '%s' inválido: debe ser am, mediodia o pm", it.Horario))
		}
		if it.Cantidad <= 0 {
			return models.Pedido{}, fiber.NewError(fiber.StatusBadRequest, "Las cantidades deben ser mayores que 0")
		}
		carrito = FusionarItem(carrito, it)
	}

	var cliente models.Cliente
	if err := tx.First(&cliente, "id = ?", clienteID).Error; err != nil {
		return models.Pedido{}, fiber.NewError(fiber.StatusBadRequest, "Cliente no encontrado")
	}

	pedido := models.Pedido{
		Codigo:       uuid.NewString(),
		ClienteID:    clienteID,
		Cliente:      cliente,
		FechaEntrega: fechaEntrega,
		Estado:       models.PedidoRecibido,
		Notas:        strings.TrimSpace(notas),
	}

	for _, it := range carrito {
		var producto models.Producto
		if err := tx.First(&producto, "id = ?", it.ProductoID).Error; err != nil {
			return models.Pedido{}, fiber.NewError(fiber.StatusBadRequest,
				fmt.Sprintf("Producto %d no existe", it.ProductoID))
		}
		if !producto.Activo {
			return models.Pedido{}, fiber.NewError(fiber.StatusBadRequest,
				fmt.Sprintf("El producto '%s' no está disponible", producto.Nombre))
		}

		// Nombre y unidad se copian del catálogo al momento de pedir
		pedido.Items = append(pedido.Items, models.PedidoItem{
			ProductoID: producto.ID,
			Nombre:     producto.Nombre,
			Unidad:     producto.Unidad,
			Horario:    it.Horario,
			Cantidad:   it.Cantidad,
		})
	}

	if err := tx.Create(&pedido).Error; err != nil {
		return models.Pedido{}, fiber.NewError(fiber.StatusInternalServerError, "No se pudo crear el pedido")
	}
	return pedido, nil
}

// POST /api/pedidos
func CreatePedidoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreatePedidoRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		clienteID, err := auth.ResolveClienteID(c, body.ClienteID)
		if err != nil {
			return err
		}

		fechaEntrega, err := time.Parse("2006-01-02", body.FechaEntrega)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "El formato de fecha_entrega debe ser 'YYYY-MM-DD'")
		}

		var pedido models.Pedido
		err = database.DB.Transaction(func(tx *gorm.DB) error {
			var terr error
			pedido, terr = crearPedido(tx, clienteID, fechaEntrega, body.Notas, body.Items)
			return terr
		})
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				return fe
			}
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo crear el pedido")
		}

		userID, userName, uerr := getUserInfo(c)
		if uerr == nil {
			_ = audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "pedido",
				EntityID:    pedido.ID,
				Action:      models.AuditActionCreate,
				Description: fmt.Sprintf("Pedido %s para %s (%d líneas)", pedido.Codigo, pedido.FechaEntrega.Format("2006-01-02"), len(pedido.Items)),
				Before:      nil,
				After:       pedido,
			})
		}

		return c.Status(fiber.StatusCreated).JSON(toPedidoResponse(pedido))
	}
}

// GET /api/pedidos?from=...&to=...&estado=...&cliente_id=...
// Los usuarios del portal solo ven sus propios pedidos.
func ListPedidosHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.Pedido{}).Preload("Items").Preload("Cliente")

		role, _ := c.Locals(auth.CtxUserRoleKey).(models.UserRole)
		if role == models.RoleCliente {
			clienteID, err := auth.ResolveClienteID(c, nil)
			if err != nil {
				return err
			}
			dbq = dbq.Where("cliente_id = ?", clienteID)
		} else if clienteID := c.Query("cliente_id"); clienteID != "" {
			dbq = dbq.Where("cliente_id = ?", clienteID)
		}

		if fromStr := c.Query("from"); fromStr != "" {
			from, err := time.Parse("2006-01-02", fromStr)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Fecha 'from' inválida")
			}
			dbq = dbq.Where("fecha_entrega >= ?", from)
		}
		if toStr := c.Query("to"); toStr != "" {
			to, err := time.Parse("2006-01-02", toStr)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Fecha 'to' inválida")
			}
			dbq = dbq.Where("fecha_entrega <= ?", to)
		}
		if estado := c.Query("estado"); estado != "" {
			dbq = dbq.Where("estado = ?", estado)
		}

		var pedidos []models.Pedido
		if err := dbq.Order("fecha_entrega DESC, id DESC").Find(&pedidos).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar los pedidos")
		}

		resp := make([]PedidoResponse, 0, len(pedidos))
		for _, p := range pedidos {
			resp = append(resp, toPedidoResponse(p))
		}
		return c.JSON(resp)
	}
}

func buscarPedidoVisible(c *fiber.Ctx, codigo string) (models.Pedido, error) {
	var pedido models.Pedido
	err := database.DB.Preload("Items").Preload("Cliente").
		First(&pedido, "codigo = ?", codigo).Error
	if err != nil {
		return models.Pedido{}, fiber.NewError(fiber.StatusNotFound, "Pedido no encontrado")
	}

	role, _ := c.Locals(auth.CtxUserRoleKey).(models.UserRole)
	if role == models.RoleCliente {
		clienteID, err := auth.ResolveClienteID(c, nil)
		if err != nil {
			return models.Pedido{}, err
		}
		if pedido.ClienteID != clienteID {
			return models.Pedido{}, fiber.NewError(fiber.StatusNotFound, "Pedido no encontrado")
		}
	}
	return pedido, nil
}

// GET /api/pedidos/:codigo
func GetPedidoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		pedido, err := buscarPedidoVisible(c, c.Params("codigo"))
		if err != nil {
			return err
		}
		return c.JSON(toPedidoResponse(pedido))
	}
}

type UpdateEstadoRequest struct {
	Estado models.EstadoPedido `json:"estado"`
}

// PUT /api/pedidos/:codigo/estado — solo admin/operador
func UpdateEstadoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var pedido models.Pedido
		if err := database.DB.Preload("Items").Preload("Cliente").
			First(&pedido, "codigo = ?", c.Params("codigo")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Pedido no encontrado")
		}

		var body UpdateEstadoRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		if !TransicionValida(pedido.Estado, body.Estado) {
			return fiber.NewError(fiber.StatusBadRequest,
				fmt.Sprintf("No se puede pasar de '%s' a '%s'", pedido.Estado, body.Estado))
		}

		estadoAnterior := pedido.Estado
		pedido.Estado = body.Estado
		if err := database.DB.Model(&pedido).Update("estado", body.Estado).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo actualizar el estado")
		}

		userID, userName, uerr := getUserInfo(c)
		if uerr == nil {
			_ = audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "pedido",
				EntityID:    pedido.ID,
				Action:      models.AuditActionUpdate,
				Description: fmt.Sprintf("Pedido %s: %s -> %s", pedido.Codigo, estadoAnterior, pedido.Estado),
				Before:      estadoAnterior,
				After:       pedido.Estado,
			})
		}

		return c.JSON(toPedidoResponse(pedido))
	}
}

// POST /api/pedidos/:codigo/anular
// El cliente del portal solo puede anular mientras el pedido sigue en
// 'recibido'; el personal puede anular en cualquier estado no terminal.
func AnularPedidoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		pedido, err := buscarPedidoVisible(c, c.Params("codigo"))
		if err != nil {
			return err
		}

		role, _ := c.Locals(auth.CtxUserRoleKey).(models.UserRole)
		if role == models.RoleCliente && pedido.Estado != models.PedidoRecibido {
			return fiber.NewError(fiber.StatusBadRequest, "El pedido ya está en preparación: contacta a la panadería para anularlo")
		}

		if !TransicionValida(pedido.Estado, models.PedidoAnulado) {
			return fiber.NewError(fiber.StatusBadRequest,
				fmt.Sprintf("No se puede anular un pedido en estado '%s'", pedido.Estado))
		}

		estadoAnterior := pedido.Estado
		pedido.Estado = models.PedidoAnulado
		if err := database.DB.Model(&pedido).Update("estado", models.PedidoAnulado).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo anular el pedido")
		}

		userID, userName, uerr := getUserInfo(c)
		if uerr == nil {
			_ = audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "pedido",
				EntityID:    pedido.ID,
				Action:      models.AuditActionUpdate,
				Description: fmt.Sprintf("Pedido %s anulado (estaba %s)", pedido.Codigo, estadoAnterior),
				Before:      estadoAnterior,
				After:       models.PedidoAnulado,
			})
		}

		return c.JSON(toPedidoResponse(pedido))
	}
}
