package models

// RequestType es una entrada del catálogo de tipos de solicitud
// (certificado de matrícula, certificado de notas, etc). Solo lectura.
type RequestType struct {
	ID           int64  `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	Name         string `gorm:"not null;unique" json:"name"`
	ResponseDays int    `gorm:"column:response_days;not null;default:5" json:"response_days"`
	Active       bool   `gorm:"not null;default:true" json:"active"`
}
