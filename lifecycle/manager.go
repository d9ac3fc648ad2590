// Package lifecycle implementa el ciclo de vida de una solicitud
// académica: creación con código de referencia, transiciones de estado
// con historial obligatorio y las consultas de lectura.
//
// Transition es el único camino sancionado para cambiar el estado de
// una solicitud; ningún otro código escribe status_id directamente.
package lifecycle

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"tramita/models"

	"github.com/google/uuid"
	"github.com/jinzhu/gorm"
)

// ErrNotFound se devuelve cuando la solicitud referida no existe.
// El que llama decide cómo presentarlo (404 en la API, texto en el chat).
var ErrNotFound = errors.New("solicitud no encontrada")

// ErrValidation agrupa los errores de entrada del usuario: descripción
// vacía, tipo inexistente o inactivo, estado destino inexistente.
var ErrValidation = errors.New("solicitud inválida")

type Manager struct {
	db              *gorm.DB
	pendingStatusID int64
}

// NewManager resuelve el estado PENDIENTE del catálogo una sola vez.
// Si falta, el despliegue está roto y el arranque debe abortar; por eso
// el faltante es un error de construcción y no de operación.
func NewManager(db *gorm.DB) (*Manager, error) {
	var pending models.Status
	if err := db.Where("code = ?", models.STATUS_CODE_PENDING).First(&pending).Error; err != nil {
		return nil, fmt.Errorf("estado %s ausente del catálogo (seed incompleto): %v", models.STATUS_CODE_PENDING, err)
	}
	return &Manager{db: db, pendingStatusID: pending.ID}, nil
}

// PendingStatusID expone el ID del estado inicial (útil en respuestas y tests).
func (m *Manager) PendingStatusID() int64 {
	return m.pendingStatusID
}

// Create radica una solicitud nueva. Siempre queda en estado PENDIENTE
// y con un código de referencia SOL-<año>-<secuencia de 5 dígitos>
// recién emitido. El contador por año se incrementa dentro de la misma
// transacción que inserta la fila, así dos creaciones concurrentes no
// pueden repartir el mismo código.
func (m *Manager) Create(requesterID string, requestTypeID int64, description string, channel string) (*models.Request, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, fmt.Errorf("%w: la descripción no puede estar vacía", ErrValidation)
	}

	var reqType models.RequestType
	if err := m.db.First(&reqType, requestTypeID).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, fmt.Errorf("%w: tipo de solicitud %d no existe", ErrValidation, requestTypeID)
		}
		return nil, err
	}
	if !reqType.Active {
		return nil, fmt.Errorf("%w: tipo de solicitud %q inactivo", ErrValidation, reqType.Name)
	}

	if channel == "" {
		channel = models.CHANNEL_WHATSAPP
	}

	year := time.Now().Year()

	tx := m.db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	seq, err := nextSequence(tx, year)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	request := models.Request{
		ID:            uuid.NewString(),
		ReferenceCode: fmt.Sprintf("%s%d-%05d", models.REFERENCE_CODE_PREFIX, year, seq),
		RequesterID:   requesterID,
		RequestTypeID: requestTypeID,
		StatusID:      m.pendingStatusID,
		Description:   description,
		OriginChannel: channel,
	}
	if err := tx.Create(&request).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	return m.GetByID(request.ID)
}

// nextSequence incrementa el contador del año dentro de la transacción
// y devuelve la secuencia asignada. La primera solicitud del año crea
// la fila del contador; la clave primaria en year hace fallar (y
// reintentar al cliente) una segunda creación simultánea.
func nextSequence(tx *gorm.DB, year int) (int64, error) {
	res := tx.Model(&models.RequestCounter{}).
		Where("year = ?", year).
		Update("last_seq", gorm.Expr("last_seq + 1"))
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		if err := tx.Create(&models.RequestCounter{Year: year, LastSeq: 1}).Error; err != nil {
			return 0, err
		}
		return 1, nil
	}

	var counter models.RequestCounter
	if err := tx.Where("year = ?", year).First(&counter).Error; err != nil {
		return 0, err
	}
	return counter.LastSeq, nil
}

// Transition cambia el estado de una solicitud dejando primero la fila
// de historial, todo en una transacción: historial y estado no pueden
// divergir en una llamada exitosa. Si la solicitud no existe devuelve
// ErrNotFound sin escribir nada.
func (m *Manager) Transition(requestID string, newStatusID int64, actingUserID string, comment string) (*models.Request, error) {
	var newStatus models.Status
	if err := m.db.First(&newStatus, newStatusID).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, fmt.Errorf("%w: estado %d no existe", ErrValidation, newStatusID)
		}
		return nil, err
	}

	tx := m.db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	var request models.Request
	if err := tx.Where("id = ?", requestID).First(&request).Error; err != nil {
		tx.Rollback()
		if gorm.IsRecordNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	history := models.StatusHistory{
		RequestID:        request.ID,
		PreviousStatusID: request.StatusID,
		NewStatusID:      newStatusID,
		UserID:           actingUserID,
		Comment:          comment,
	}
	if err := tx.Create(&history).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Model(&models.Request{}).
		Where("id = ?", request.ID).
		Update("status_id", newStatusID).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	return m.GetByID(request.ID)
}

// GetByID devuelve la solicitud con sus asociaciones cargadas.
func (m *Manager) GetByID(id string) (*models.Request, error) {
	var request models.Request
	err := m.withAssociations().Where("id = ?", id).First(&request).Error
	if err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &request, nil
}

// GetByCode busca por código de referencia (ej: SOL-2026-00001).
func (m *Manager) GetByCode(code string) (*models.Request, error) {
	var request models.Request
	err := m.withAssociations().Where("reference_code = ?", code).First(&request).Error
	if err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &request, nil
}

// GetByRequester devuelve todas las solicitudes de un usuario.
func (m *Manager) GetByRequester(requesterID string) ([]models.Request, error) {
	var requests []models.Request
	err := m.withAssociations().
		Where("requester_id = ?", requesterID).
		Order("created_at asc, reference_code asc").
		Find(&requests).Error
	return requests, err
}

// GetAll devuelve todas las solicitudes (alcance admin/secretaría).
func (m *Manager) GetAll() ([]models.Request, error) {
	var requests []models.Request
	err := m.withAssociations().
		Order("created_at asc, reference_code asc").
		Find(&requests).Error
	return requests, err
}

// Search filtra por cualquier combinación de estado, tipo y canal de
// origen. Un filtro en cero/vacío no restringe; los presentes se
// combinan con AND por coincidencia exacta.
func (m *Manager) Search(statusID int64, requestTypeID int64, channel string) ([]models.Request, error) {
	query := m.withAssociations()

	if statusID > 0 {
		query = query.Where("status_id = ?", statusID)
	}
	if requestTypeID > 0 {
		query = query.Where("request_type_id = ?", requestTypeID)
	}
	if channel != "" {
		query = query.Where("origin_channel = ?", channel)
	}

	var requests []models.Request
	err := query.Order("created_at asc, reference_code asc").Find(&requests).Error
	return requests, err
}

// History devuelve el historial de una solicitud en orden de creación
// (el más viejo primero). Una solicitud sin transiciones devuelve una
// lista vacía, nunca un error.
func (m *Manager) History(requestID string) ([]models.StatusHistory, error) {
	var entries []models.StatusHistory
	err := m.db.Preload("NewStatus").
		Where("request_id = ?", requestID).
		Order("created_at asc, id asc").
		Find(&entries).Error
	return entries, err
}

func (m *Manager) withAssociations() *gorm.DB {
	return m.db.Preload("Requester").Preload("RequestType").Preload("Status")
}
