package models

import "time"

// StatusHistory es el registro de auditoría de un cambio de estado.
// Inmutable: se inserta junto con la transición y nunca se actualiza.
// La cadena de NewStatusID, ordenada por creación, es la línea de tiempo
// completa de la solicitud.
type StatusHistory struct {
	ID               int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	RequestID        string     `gorm:"column:request_id;not null;index" json:"request_id"`
	PreviousStatusID int64      `gorm:"column:previous_status_id;not null" json:"previous_status_id"`
	NewStatusID      int64      `gorm:"column:new_status_id;not null" json:"new_status_id"`
	NewStatus        Status     `gorm:"foreignkey:NewStatusID;association_autoupdate:false;association_autocreate:false" json:"new_status,omitempty"`
	UserID           string     `gorm:"column:user_id;not null" json:"user_id"`
	Comment          string     `gorm:"type:text" json:"comment"`
	CreatedAt        *time.Time `json:"created_at"`
}
