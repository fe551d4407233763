package models

import "time"

// Datos maestros del dashboard. Estos modelos se enlazan directo desde el
// recurso CRUD genérico, por eso llevan tags json y validate (los módulos
// financieros más antiguos siguen usando DTOs por handler).

type Cliente struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	RazonSocial string    `gorm:"size:150;not null" json:"razon_social" validate:"required"`
	RUT         string    `gorm:"size:15;uniqueIndex;not null" json:"rut" validate:"required"`
	Giro        string    `gorm:"size:150" json:"giro"`
	Direccion   string    `gorm:"size:255" json:"direccion"`
	Comuna      string    `gorm:"size:100" json:"comuna"`
	Contacto    string    `gorm:"size:100" json:"contacto"`
	Telefono    string    `gorm:"size:50" json:"telefono"`
	Email       string    `gorm:"size:100" json:"email" validate:"omitempty,email"`
	Activo      bool      `gorm:"default:true" json:"activo"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Proveedor struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	RazonSocial string    `gorm:"size:150;not null" json:"razon_social" validate:"required"`
	RUT         string    `gorm:"size:15;uniqueIndex;not null" json:"rut" validate:"required"`
	Giro        string    `gorm:"size:150" json:"giro"`
	Direccion   string    `gorm:"size:255" json:"direccion"`
	Contacto    string    `gorm:"size:100" json:"contacto"`
	Telefono    string    `gorm:"size:50" json:"telefono"`
	Email       string    `gorm:"size:100" json:"email" validate:"omitempty,email"`
	Activo      bool      `gorm:"default:true" json:"activo"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Trabajador struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Nombre       string    `gorm:"size:150;not null" json:"nombre" validate:"required"`
	RUT          string    `gorm:"size:15;uniqueIndex;not null" json:"rut" validate:"required"`
	Cargo        string    `gorm:"size:100" json:"cargo"`
	Area         string    `gorm:"size:50" json:"area"`
	Telefono     string    `gorm:"size:50" json:"telefono"`
	FechaIngreso string    `gorm:"size:10" json:"fecha_ingreso" validate:"omitempty,datetime=2006-01-02"`
	Activo       bool      `gorm:"default:true" json:"activo"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Equipo struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Nombre        string    `gorm:"size:150;not null" json:"nombre" validate:"required"`
	Tipo          string    `gorm:"size:100" json:"tipo"` // horno, amasadora, cámara de frío...
	Marca         string    `gorm:"size:100" json:"marca"`
	Modelo        string    `gorm:"size:100" json:"modelo"`
	Estado        string    `gorm:"size:20;default:operativo" json:"estado" validate:"omitempty,oneof=operativo mantencion baja"`
	FechaCompra   string    `gorm:"size:10" json:"fecha_compra" validate:"omitempty,datetime=2006-01-02"`
	Observaciones string    `gorm:"size:255" json:"observaciones"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type Vehiculo struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Patente       string    `gorm:"size:10;uniqueIndex;not null" json:"patente" validate:"required"`
	Marca         string    `gorm:"size:100" json:"marca"`
	Modelo        string    `gorm:"size:100" json:"modelo"`
	Anio          int       `json:"anio" validate:"omitempty,min=1980,max=2100"`
	Estado        string    `gorm:"size:20;default:operativo" json:"estado" validate:"omitempty,oneof=operativo mantencion baja"`
	Observaciones string    `gorm:"size:255" json:"observaciones"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
