package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin       = "admin"
	RoleBodeguero   = "bodeguero"   // encargado de almacén: entrega material y ajusta stock
	RoleSolicitante = "solicitante" // personal de campo: crea solicitudes de material
)

// User representa un usuario del sistema.
type User struct {
	ID           string
	Username     string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	FullName     string
	Email        string
	Role         string // admin, bodeguero, solicitante
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
