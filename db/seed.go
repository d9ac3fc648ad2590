package db

import (
	"log"

	"tramita/models"

	"github.com/jinzhu/gorm"
)

// Seed garantiza que los catálogos requeridos existan. Es idempotente:
// solo inserta las filas que faltan, nunca modifica las existentes.
// Sin el estado PENDIENTE el sistema no puede crear solicitudes, así
// que correr el seed hace parte del arranque, no de la operación.
func Seed(db *gorm.DB) error {
	roles := []models.Role{
		{ID: models.ROLE_STUDENT, Name: "Estudiante", Description: "Estudiante que radica solicitudes"},
		{ID: models.ROLE_SECRETARY, Name: "Secretaría", Description: "Gestiona y responde solicitudes"},
		{ID: models.ROLE_ADMIN, Name: "Administrador", Description: "Acceso total al sistema"},
	}
	for _, role := range roles {
		if err := db.Where(models.Role{ID: role.ID}).FirstOrCreate(&role).Error; err != nil {
			return err
		}
	}

	statuses := []models.Status{
		{Code: models.STATUS_CODE_PENDING, Name: "Pendiente", IsFinal: false},
		{Code: models.STATUS_CODE_IN_REVIEW, Name: "En Revisión", IsFinal: false},
		{Code: models.STATUS_CODE_APPROVED, Name: "Aprobada", IsFinal: true},
		{Code: models.STATUS_CODE_REJECTED, Name: "Rechazada", IsFinal: true},
		{Code: models.STATUS_CODE_DELIVERED, Name: "Entregada", IsFinal: true},
	}
	for _, status := range statuses {
		if err := db.Where(models.Status{Code: status.Code}).FirstOrCreate(&status).Error; err != nil {
			return err
		}
	}

	// El orden importa: el asistente mapea los dígitos 1-9 del menú a
	// estos IDs en el mismo orden.
	types := []models.RequestType{
		{Name: "Certificado de Matrícula", ResponseDays: 3},
		{Name: "Constancia de Estudio", ResponseDays: 3},
		{Name: "Certificado de Notas", ResponseDays: 5},
		{Name: "Paz y Salvo Académico", ResponseDays: 5},
		{Name: "Cambio de Grupo / Horario", ResponseDays: 8},
		{Name: "Homologación de Materias", ResponseDays: 15},
		{Name: "Cancelación de Asignatura", ResponseDays: 8},
		{Name: "Solicitud de Grado", ResponseDays: 15},
		{Name: "Solicitud de Beca", ResponseDays: 15},
	}
	for _, t := range types {
		t.Active = true
		if err := db.Where(models.RequestType{Name: t.Name}).FirstOrCreate(&t).Error; err != nil {
			return err
		}
	}

	log.Println("Catálogos verificados (roles, estados, tipos de solicitud)")
	return nil
}
