package models

/************************************************
/**** MARK: ROLE IDS (seeded) ****/
/************************************************/
const ROLE_STUDENT = 1
const ROLE_SECRETARY = 2
const ROLE_ADMIN = 3

// Role representa el rol de un usuario dentro del sistema.
type Role struct {
	ID          int64  `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	Name        string `gorm:"not null;unique" json:"name" form:"name"`
	Description string `gorm:"type:text" json:"description" form:"description"`
}
