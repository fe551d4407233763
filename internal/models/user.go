package models

import "time"

type UserRole string

const (
	RoleAdmin    UserRole = "admin"    // administrador del dashboard
	RoleOperador UserRole = "operador" // personal de operaciones
	RoleCliente  UserRole = "cliente"  // cliente B2B del portal de pedidos
)

type User struct {
	ID           uint `gorm:"primaryKey"`
	ClienteID    *uint
	Cliente      *Cliente
	Name         string   `gorm:"size:100;not null"`
	Email        string   `gorm:"size:100;uniqueIndex;not null"`
	PasswordHash string   `gorm:"size:255;not null"`
	Role         UserRole `gorm:"size:20;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
