package models

// RequestCounter guarda la última secuencia de código de referencia
// emitida por año. Se incrementa dentro de la transacción de creación,
// así dos creaciones concurrentes nunca reparten el mismo código.
type RequestCounter struct {
	Year    int   `gorm:"primary_key" json:"year"`
	LastSeq int64 `gorm:"column:last_seq;not null;default:0" json:"last_seq"`
}
