package models

/************************************************
/**** MARK: STATUS CODES (seeded catalog) ****/
/************************************************/
const STATUS_CODE_PENDING = "PENDIENTE"
const STATUS_CODE_IN_REVIEW = "EN_REVISION"
const STATUS_CODE_APPROVED = "APROBADA"
const STATUS_CODE_REJECTED = "RECHAZADA"
const STATUS_CODE_DELIVERED = "ENTREGADA"

// Status es una entrada del catálogo de estados de solicitud.
// Es data de referencia: el core nunca la crea ni la modifica.
type Status struct {
	ID      int64  `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	Code    string `gorm:"not null;unique" json:"code"`
	Name    string `gorm:"not null" json:"name"`
	IsFinal bool   `gorm:"not null;default:false" json:"is_final"`
}
