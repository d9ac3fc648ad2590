package models

import "time"

// ChatSession representa una conversación guiada con un remitente de
// WhatsApp. Step guarda el paso del diálogo en que quedó el usuario.
// Invariante: a lo sumo una sesión activa por teléfono.
type ChatSession struct {
	ID        string     `gorm:"primary_key;size:36" json:"id"`
	UserID    string     `gorm:"column:user_id;index" json:"user_id"`
	Phone     string     `gorm:"not null;index" json:"phone"`
	Step      string     `gorm:"not null;default:'INICIO'" json:"step"`
	Active    bool       `gorm:"not null;default:true;index" json:"active"`
	StartedAt *time.Time `json:"started_at"`
	EndedAt   *time.Time `json:"ended_at"`
}
