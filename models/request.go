package models

import "time"

/************************************************
/**** MARK: ORIGIN CHANNELS ****/
/************************************************/
const CHANNEL_WHATSAPP = "WHATSAPP"
const CHANNEL_WEB = "WEB"
const CHANNEL_IN_PERSON = "PRESENCIAL"

// REFERENCE_CODE_PREFIX es el prefijo de todo código de referencia
// (ej: SOL-2026-00001).
const REFERENCE_CODE_PREFIX = "SOL-"

// Request representa una solicitud académica. Su estado solo cambia a
// través de lifecycle.Manager.Transition, nunca escribiendo status_id
// directamente.
type Request struct {
	ID            string      `gorm:"primary_key;size:36" json:"id"`
	ReferenceCode string      `gorm:"column:reference_code;not null;unique" json:"reference_code"`
	RequesterID   string      `gorm:"column:requester_id;not null;index" json:"requester_id"`
	Requester     User        `gorm:"association_autoupdate:false;association_autocreate:false" json:"requester,omitempty"`
	RequestTypeID int64       `gorm:"column:request_type_id;not null;index" json:"request_type_id"`
	RequestType   RequestType `gorm:"association_autoupdate:false;association_autocreate:false" json:"request_type,omitempty"`
	StatusID      int64       `gorm:"column:status_id;not null;index" json:"status_id"`
	Status        Status      `gorm:"association_autoupdate:false;association_autocreate:false" json:"status,omitempty"`
	Description   string      `gorm:"type:text;not null" json:"description" form:"description"`
	FinalResponse string      `gorm:"column:final_response;type:text" json:"final_response"`
	OriginChannel string      `gorm:"column:origin_channel;not null;default:'WHATSAPP'" json:"origin_channel"`
	CreatedAt     *time.Time  `json:"created_at"`
	UpdatedAt     *time.Time  `json:"updated_at"`
}
