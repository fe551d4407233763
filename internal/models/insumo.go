package models

import "time"

type EstadoPago string

const (
	PagoPendiente EstadoPago = "pendiente"
	PagoPagada    EstadoPago = "pagada"
)

// NombreHarina: las salidas de este insumo alimentan el cálculo de
// sacos usados en el rendimiento diario.
const NombreHarina = "Harina"

// Insumo: maestro de insumos. CostoUnitario es un promedio ponderado
// que solo muta el registro de compras, nunca se edita directo.
type Insumo struct {
	ID                uint    `gorm:"primaryKey"`
	Nombre            string  `gorm:"size:100;uniqueIndex;not null"`
	Unidad            string  `gorm:"size:20;not null"` // saco / kg / lt / unidad
	Activo            bool    `gorm:"default:true"`
	CostoUnitario     float64 `gorm:"default:0"`
	ImpuestoAdicional bool    `gorm:"default:false"` // harina lleva impuesto adicional
	StockMinimo       float64 `gorm:"default:0"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// InsumoTransaccion: línea del libro de insumos. Entrada > 0 es compra,
// Salida > 0 es consumo. Stock del insumo = sum(entrada) - sum(salida).
// El libro se lleva por nombre de insumo, igual que el almacén original.
type InsumoTransaccion struct {
	ID             uint      `gorm:"primaryKey"`
	Fecha          time.Time `gorm:"index;not null"`
	Insumo         string    `gorm:"size:100;index;not null"`
	Entrada        float64   `gorm:"default:0"`
	Salida         float64   `gorm:"default:0"`
	PrecioUnitario float64   `gorm:"default:0"` // precio de compra (solo entradas)
	Proveedor      string    `gorm:"size:150"`
	FechaCompra    *time.Time
	FechaPago      *time.Time
	Folio          string     `gorm:"size:50;index"` // número de factura
	EstadoPago     EstadoPago `gorm:"size:20;default:pendiente"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
