package models

import "time"

// Rendimiento: rendimiento de producción del día, un registro por fecha.
// KilosProducidos y SacosUsados son derivados (ventas y salidas de harina
// del día); Barredura y Merma se digitan a mano.
type Rendimiento struct {
	ID              uint      `gorm:"primaryKey"`
	Fecha           time.Time `gorm:"uniqueIndex;not null"`
	KilosProducidos float64   `gorm:"default:0"`
	SacosUsados     float64   `gorm:"default:0"`
	Rendimiento     float64   `gorm:"default:0"` // (kilos / sacos) * 2, redondeado a 2 decimales
	Barredura       float64   `gorm:"default:0"`
	Merma           float64   `gorm:"default:0"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
