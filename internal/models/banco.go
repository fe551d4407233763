package models

import "time"

// MovimientoBanco: línea de la cartola bancaria. Libro append-only:
// el saldo corrido se calcula una sola vez al insertar y nunca se
// recalcula hacia atrás.
type MovimientoBanco struct {
	ID          uint      `gorm:"primaryKey"`
	Fecha       time.Time `gorm:"index;not null"`
	Abono       float64   `gorm:"default:0"`
	Cargo       float64   `gorm:"default:0"`
	Descripcion string    `gorm:"size:255"`
	Documento   string    `gorm:"size:50;index"` // referencia de documento/factura
	Nota        string    `gorm:"size:255"`
	Area        string    `gorm:"size:50"` // área de pago (insumos, remuneraciones, etc.)
	Saldo       float64   `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
