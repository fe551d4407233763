package models

import "time"

type EstadoPedido string

const (
	PedidoRecibido      EstadoPedido = "recibido"
	PedidoEnPreparacion EstadoPedido = "en_preparacion"
	PedidoDespachado    EstadoPedido = "despachado"
	PedidoEntregado     EstadoPedido = "entregado"
	PedidoAnulado       EstadoPedido = "anulado"
)

// Producto: catálogo del portal de pedidos.
type Producto struct {
	ID        uint    `gorm:"primaryKey"`
	Nombre    string  `gorm:"size:150;not null;uniqueIndex:idx_productos_nombre_unidad"`
	Unidad    string  `gorm:"size:20;not null;uniqueIndex:idx_productos_nombre_unidad"` // unidad / kg / bandeja
	Precio    float64 `gorm:"default:0"`
	Activo    bool    `gorm:"default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Pedido: pedido B2B del portal. Codigo es el identificador público de
// seguimiento que ve el cliente.
type Pedido struct {
	ID           uint   `gorm:"primaryKey"`
	Codigo       string `gorm:"size:36;uniqueIndex;not null"`
	ClienteID    uint   `gorm:"index;not null"`
	Cliente      Cliente
	FechaEntrega time.Time    `gorm:"index;not null"`
	Estado       EstadoPedido `gorm:"size:20;not null;default:recibido"`
	Notas        string       `gorm:"size:255"`
	Items        []PedidoItem
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PedidoItem: línea del pedido. Nombre y Unidad se denormalizan al
// momento de pedir para que un cambio de catálogo no reescriba pedidos
// históricos.
type PedidoItem struct {
	ID         uint    `gorm:"primaryKey"`
	PedidoID   uint    `gorm:"index;not null"`
	ProductoID uint    `gorm:"index;not null"`
	Nombre     string  `gorm:"size:150;not null"`
	Unidad     string  `gorm:"size:20;not null"`
	Horario    string  `gorm:"size:20;not null"` // franja de entrega: am / mediodia / pm
	Cantidad   float64 `gorm:"not null"`
}

type EstadoReclamo string

const (
	ReclamoAbierto    EstadoReclamo = "abierto"
	ReclamoEnRevision EstadoReclamo = "en_revision"
	ReclamoResuelto   EstadoReclamo = "resuelto"
)

// Reclamo: reclamo de un cliente del portal, opcionalmente asociado a un
// pedido por su código.
type Reclamo struct {
	ID           uint `gorm:"primaryKey"`
	ClienteID    uint `gorm:"index;not null"`
	Cliente      Cliente
	PedidoCodigo string        `gorm:"size:36"`
	Fecha        time.Time     `gorm:"index;not null"`
	Detalle      string        `gorm:"size:500;not null"`
	Estado       EstadoReclamo `gorm:"size:20;not null;default:abierto"`
	Respuesta    string        `gorm:"size:500"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
