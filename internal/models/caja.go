package models

import "time"

type TipoBeneficiario string

const (
	BeneficiarioProveedor  TipoBeneficiario = "proveedor"
	BeneficiarioTrabajador TipoBeneficiario = "trabajador"
	BeneficiarioOtro       TipoBeneficiario = "otro"
)

type MedioPago string

const (
	MedioEfectivo MedioPago = "efectivo"
	MedioTarjeta  MedioPago = "tarjeta"
	MedioCheque   MedioPago = "cheque"
)

// CajaChica: egreso de caja chica. Si el medio de pago es tarjeta o
// cheque se crea además un cargo espejo en el banco.
type CajaChica struct {
	ID                uint             `gorm:"primaryKey"`
	Fecha             time.Time        `gorm:"index;not null"`
	Area              string           `gorm:"size:50;not null"`
	Monto             float64          `gorm:"not null"`
	Descripcion       string           `gorm:"size:255"`
	TipoBeneficiario  TipoBeneficiario `gorm:"size:20;not null"`
	Beneficiario      string           `gorm:"size:150"` // nombre del proveedor/trabajador/otro
	MedioPago         MedioPago        `gorm:"size:20;not null"`
	MovimientoBancoID *uint            // cargo espejo en banco (tarjeta/cheque)
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
