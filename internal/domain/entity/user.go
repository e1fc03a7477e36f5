package entity

import (
	"strings"
	"time"
)

// Role rol de un usuario de la app de nómina. Conjunto cerrado.
type Role string

// Roles válidos para User.
const (
	RoleAdmin    Role = "ADMIN"
	RoleOperator Role = "OPERATOR"
)

// Roles devuelve los roles válidos en orden de declaración.
func Roles() []Role {
	return []Role{RoleAdmin, RoleOperator}
}

// ParseRole normaliza un rol recibido por API o base de datos ("admin" → ADMIN).
// ok es false si el valor no pertenece al conjunto cerrado.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	switch r {
	case RoleAdmin, RoleOperator:
		return r, true
	}
	return "", false
}

// User representa un usuario autenticable de la aplicación.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash
	Name         string
	Role         Role
	IsActive     bool
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Clone devuelve una copia profunda; las sesiones nunca comparten punteros con el repositorio.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	if u.LastLoginAt != nil {
		t := *u.LastLoginAt
		c.LastLoginAt = &t
	}
	return &c
}
