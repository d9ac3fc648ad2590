package models

import "time"

/************************************************
/**** MARK: MESSAGE DIRECTIONS ****/
/************************************************/
const MESSAGE_DIRECTION_INBOUND = "ENTRANTE"
const MESSAGE_DIRECTION_OUTBOUND = "SALIENTE"

// ChatMessage es una entrada del log de mensajes de una sesión.
// Por cada mensaje entrante procesado se escriben dos filas: la
// entrante y la respuesta generada.
type ChatMessage struct {
	ID        int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	SessionID string     `gorm:"column:session_id;not null;index" json:"session_id"`
	Direction string     `gorm:"not null" json:"direction"`
	Content   string     `gorm:"type:text;not null" json:"content"`
	CreatedAt *time.Time `json:"created_at"`
}
