// Package assistant implementa el motor conversacional: interpreta cada
// mensaje entrante contra el paso actual de la sesión del remitente,
// produce la respuesta y avanza (o cierra) la sesión. Los efectos sobre
// solicitudes pasan siempre por lifecycle.Manager.
package assistant

import (
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"

	"tramita/lifecycle"
	"tramita/models"

	"github.com/google/uuid"
	"github.com/jinzhu/gorm"
)

var greetingWords = []string{"hola", "buenos dias", "buenas tardes", "menu", "inicio"}
var farewellWords = []string{"adios", "bye", "chao", "hasta luego"}

type Engine struct {
	db      *gorm.DB
	manager *lifecycle.Manager

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewEngine(db *gorm.DB, manager *lifecycle.Manager) *Engine {
	return &Engine{
		db:      db,
		manager: manager,
		locks:   make(map[string]*sync.Mutex),
	}
}

// HandleMessage es el punto de entrada por mensaje entrante: serializa
// el procesamiento por teléfono, abre o recupera la sesión, despacha y
// deja en el log las dos filas (entrante y saliente). Serializar por
// remitente es lo que sostiene el invariante de una sola sesión activa
// por teléfono ante mensajes concurrentes del mismo número.
func (e *Engine) HandleMessage(phone string, body string) (string, error) {
	lock := e.phoneLock(phone)
	lock.Lock()
	defer lock.Unlock()

	session, err := e.GetOrOpenSession(phone)
	if err != nil {
		return "", err
	}

	if err := e.logMessage(session.ID, models.MESSAGE_DIRECTION_INBOUND, body); err != nil {
		return "", err
	}

	reply, err := e.Process(session, phone, body)
	if err != nil {
		return "", err
	}

	if err := e.logMessage(session.ID, models.MESSAGE_DIRECTION_OUTBOUND, reply); err != nil {
		return "", err
	}

	return reply, nil
}

// GetOrOpenSession devuelve la sesión activa del teléfono o abre una
// nueva en INICIO. Si el número pertenece a un usuario registrado, la
// sesión queda vinculada a él.
func (e *Engine) GetOrOpenSession(phone string) (*models.ChatSession, error) {
	var session models.ChatSession
	err := e.db.Where("phone = ? AND active = ?", phone, true).First(&session).Error
	if err == nil {
		return &session, nil
	}
	if !gorm.IsRecordNotFoundError(err) {
		return nil, err
	}

	userID := ""
	if user := e.findUserByPhone(phone); user != nil {
		userID = user.ID
	}

	now := time.Now()
	session = models.ChatSession{
		ID:        uuid.NewString(),
		UserID:    userID,
		Phone:     phone,
		Step:      Step{Kind: StepStart}.Tag(),
		Active:    true,
		StartedAt: &now,
	}
	if err := e.db.Create(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

// CloseSession marca la sesión como finalizada. Es idempotente: sobre
// una sesión ya cerrada no escribe nada y el ended_at original queda
// intacto.
func (e *Engine) CloseSession(sessionID string) error {
	now := time.Now()
	return e.db.Model(&models.ChatSession{}).
		Where("id = ? AND active = ?", sessionID, true).
		Updates(map[string]any{"active": false, "ended_at": &now}).Error
}

// Process despacha un mensaje contra el paso actual de la sesión y
// devuelve la respuesta. Precedencia: mensaje vacío, luego saludo,
// luego despedida, luego el paso en curso. Todo error de entrada del
// usuario se convierte aquí en texto; solo los fallos de almacenamiento
// suben como error.
func (e *Engine) Process(session *models.ChatSession, phone string, raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return replyEmptyMessage, nil
	}

	msg := strings.ToLower(trimmed)
	step := ParseStep(session.Step)

	// Un saludo siempre vuelve al menú y una despedida siempre cierra,
	// sin importar el paso en que esté la conversación.
	if step.Kind == StepStart || containsAny(msg, greetingWords) {
		if err := e.setStep(session, Step{Kind: StepMainMenu}); err != nil {
			return "", err
		}
		return replyWelcomeMenu, nil
	}
	if containsAny(msg, farewellWords) {
		if err := e.CloseSession(session.ID); err != nil {
			return "", err
		}
		session.Active = false
		return replyGoodbye, nil
	}

	switch step.Kind {
	case StepMainMenu:
		return e.processMainMenu(session, phone, msg)
	case StepSelectType:
		return e.processSelectType(session, msg)
	case StepAwaitingDescription:
		return e.processDescription(session, phone, step.TypeID, trimmed)
	case StepCheckStatus:
		return e.processCheckStatus(session, msg)
	}

	return replyFallback, nil
}

func (e *Engine) processMainMenu(session *models.ChatSession, phone string, msg string) (string, error) {
	switch msg {
	case "1":
		var types []models.RequestType
		if err := e.db.Where("active = ?", true).Order("id asc").Find(&types).Error; err != nil {
			return "", err
		}
		if err := e.setStep(session, Step{Kind: StepSelectType}); err != nil {
			return "", err
		}
		return replyTypeList(types), nil

	case "2":
		if err := e.setStep(session, Step{Kind: StepCheckStatus}); err != nil {
			return "", err
		}
		return replyAskReferenceCode, nil

	case "3":
		user := e.findUserByPhone(phone)
		if user == nil {
			return replyUnregistered, nil
		}
		requests, err := e.manager.GetByRequester(user.ID)
		if err != nil {
			return "", err
		}
		if len(requests) == 0 {
			return replyNoRequests, nil
		}
		return replyRequestList(requests), nil

	case "4":
		return replyHelp, nil
	}

	return replyMenuRange, nil
}

func (e *Engine) processSelectType(session *models.ChatSession, msg string) (string, error) {
	typeID, err := strconv.ParseInt(msg, 10, 64)
	if err != nil || typeID < 1 || typeID > 9 {
		return replyTypeRange, nil
	}

	var reqType models.RequestType
	if err := e.db.First(&reqType, typeID).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return replyTypeRange, nil
		}
		return "", err
	}
	if !reqType.Active {
		return replyTypeRange, nil
	}

	if err := e.setStep(session, Step{Kind: StepAwaitingDescription, TypeID: typeID}); err != nil {
		return "", err
	}
	return replyTypeChosen(reqType.Name), nil
}

func (e *Engine) processDescription(session *models.ChatSession, phone string, typeID int64, text string) (string, error) {
	user := e.findUserByPhone(phone)
	if user == nil {
		if err := e.setStep(session, Step{Kind: StepMainMenu}); err != nil {
			return "", err
		}
		return replyUnregistered, nil
	}

	request, err := e.manager.Create(user.ID, typeID, text, models.CHANNEL_WHATSAPP)
	if err != nil {
		if errors.Is(err, lifecycle.ErrValidation) {
			if stepErr := e.setStep(session, Step{Kind: StepMainMenu}); stepErr != nil {
				return "", stepErr
			}
			return replyCreateFailed, nil
		}
		return "", err
	}

	if err := e.setStep(session, Step{Kind: StepMainMenu}); err != nil {
		return "", err
	}
	return replyRequestCreated(request.ReferenceCode), nil
}

func (e *Engine) processCheckStatus(session *models.ChatSession, msg string) (string, error) {
	if !strings.HasPrefix(msg, strings.ToLower(models.REFERENCE_CODE_PREFIX)) {
		return replyCodeFormat, nil
	}

	code := strings.ToUpper(msg)
	if err := e.setStep(session, Step{Kind: StepMainMenu}); err != nil {
		return "", err
	}

	request, err := e.manager.GetByCode(code)
	if err != nil {
		if errors.Is(err, lifecycle.ErrNotFound) {
			return replyCodeNotFound(code), nil
		}
		return "", err
	}
	return replyRequestDetail(request), nil
}

func (e *Engine) setStep(session *models.ChatSession, step Step) error {
	tag := step.Tag()
	if err := e.db.Model(&models.ChatSession{}).
		Where("id = ?", session.ID).
		Update("step", tag).Error; err != nil {
		return err
	}
	session.Step = tag
	return nil
}

func (e *Engine) logMessage(sessionID string, direction string, content string) error {
	entry := models.ChatMessage{
		SessionID: sessionID,
		Direction: direction,
		Content:   content,
	}
	return e.db.Create(&entry).Error
}

func (e *Engine) findUserByPhone(phone string) *models.User {
	var user models.User
	if err := e.db.Where("whatsapp_phone = ?", phone).First(&user).Error; err != nil {
		return nil
	}
	return &user
}

func (e *Engine) phoneLock(phone string) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()
	lock, ok := e.locks[phone]
	if !ok {
		lock = &sync.Mutex{}
		e.locks[phone] = lock
	}
	return lock
}

func containsAny(msg string, words []string) bool {
	for _, w := range words {
		if strings.Contains(msg, w) {
			return true
		}
	}
	return false
}
