package models

import (
	"time"
)

// User representa un usuario del sistema (estudiante, secretaría o admin).
// El teléfono de WhatsApp es la identidad que une al usuario con sus
// sesiones conversacionales.
type User struct {
	ID             string     `gorm:"primary_key;size:36" json:"id"`
	Name           string     `gorm:"not null" json:"name" form:"name"`
	Surname        string     `gorm:"not null" json:"surname" form:"surname"`
	Email          string     `gorm:"not null;unique" json:"email" form:"email"`
	WhatsAppPhone  string     `gorm:"column:whatsapp_phone;unique" json:"whatsapp_phone" form:"whatsapp_phone"`
	DocumentNumber string     `gorm:"column:document_number;not null;unique" json:"document_number" form:"document_number"`
	Password       string     `gorm:"not null" json:"password,omitempty" form:"password"`
	RoleID         int64      `gorm:"not null;default:1" json:"role_id" form:"role_id"`
	Active         bool       `gorm:"not null;default:true" json:"active"`
	CreatedAt      *time.Time `json:"created_at"`
}

func (user User) MissingFields() string {
	if user.Name == "" {
		return "name"
	} else if user.Surname == "" {
		return "surname"
	} else if user.Email == "" {
		return "email"
	} else if user.DocumentNumber == "" {
		return "document_number"
	} else if user.Password == "" {
		return "password"
	} else if len(user.Password) < 6 {
		return "password (mínimo 6 caracteres)"
	}
	return ""
}

// IsStaff indica si el usuario puede administrar solicitudes ajenas.
func (user User) IsStaff() bool {
	return user.RoleID == ROLE_SECRETARY || user.RoleID == ROLE_ADMIN
}
