package models

import "time"

// Venta: registro diario de venta (kilos de pan y monto facturado).
// Cada mutación gatilla el recálculo del rendimiento del día.
type Venta struct {
	ID        uint      `gorm:"primaryKey"`
	Fecha     time.Time `gorm:"index;not null"`
	Cliente   string    `gorm:"size:150;not null"` // nombre del cliente (texto libre, como el registro original)
	Kilos     float64   `gorm:"not null"`
	Monto     float64   `gorm:"not null"` // monto >= 0
	CreatedAt time.Time
	UpdatedAt time.Time
}
