package controllers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"tramita/lifecycle"
	"tramita/models"
	"tramita/tools"

	"github.com/gin-gonic/gin"
)

type RequestCreateInput struct {
	RequestTypeID int64  `json:"request_type_id" form:"request_type_id"`
	Description   string `json:"description" form:"description"`
}

type StatusUpdateInput struct {
	StatusID int64  `json:"status_id" form:"status_id"`
	Comment  string `json:"comment" form:"comment"`
}

// POST /api/solicitudes
func CreateRequest(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}

	manager := ManagerInstance(c)
	if manager == nil {
		RespondError(c, "core no configurado en el contexto", http.StatusInternalServerError)
		return
	}

	var input RequestCreateInput
	if err := c.Bind(&input); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	request, err := manager.Create(user.ID, input.RequestTypeID, input.Description, models.CHANNEL_WEB)
	if err != nil {
		respondLifecycleError(c, err)
		return
	}

	sanitizeRequest(request)
	RespondSuccess(c, gin.H{"request": request})
}

// GET /api/solicitudes (staff)
func GetRequests(c *gin.Context) {
	manager := ManagerInstance(c)
	if manager == nil {
		RespondError(c, "core no configurado en el contexto", http.StatusInternalServerError)
		return
	}

	requests, err := manager.GetAll()
	if err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	sanitizeRequests(requests)
	RespondSuccess(c, gin.H{"requests": requests})
}

// GET /api/solicitudes/mis-solicitudes
func GetMyRequests(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}

	manager := ManagerInstance(c)
	if manager == nil {
		RespondError(c, "core no configurado en el contexto", http.StatusInternalServerError)
		return
	}

	requests, err := manager.GetByRequester(user.ID)
	if err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	sanitizeRequests(requests)
	RespondSuccess(c, gin.H{"requests": requests})
}

// GET /api/solicitudes/buscar?estado_id=&tipo_solicitud_id=&canal_origen= (staff)
func SearchRequests(c *gin.Context) {
	manager := ManagerInstance(c)
	if manager == nil {
		RespondError(c, "core no configurado en el contexto", http.StatusInternalServerError)
		return
	}

	statusID, ok := QueryInt64(c, "estado_id")
	if !ok {
		return
	}
	typeID, ok := QueryInt64(c, "tipo_solicitud_id")
	if !ok {
		return
	}
	channel := c.Query("canal_origen")

	requests, err := manager.Search(statusID, typeID, channel)
	if err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	sanitizeRequests(requests)
	RespondSuccess(c, gin.H{"requests": requests})
}

// GET /api/solicitudes/:id
func GetRequestByID(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}

	manager := ManagerInstance(c)
	if manager == nil {
		RespondError(c, "core no configurado en el contexto", http.StatusInternalServerError)
		return
	}

	request, err := manager.GetByID(c.Param("id"))
	if err != nil {
		respondLifecycleError(c, err)
		return
	}

	if !user.IsStaff() && request.RequesterID != user.ID {
		RespondError(c, "sin acceso a esta solicitud", http.StatusForbidden)
		return
	}

	sanitizeRequest(request)
	RespondSuccess(c, gin.H{"request": request})
}

// PATCH /api/solicitudes/:id/estado (staff)
func UpdateRequestStatus(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}

	manager := ManagerInstance(c)
	if manager == nil {
		RespondError(c, "core no configurado en el contexto", http.StatusInternalServerError)
		return
	}

	var input StatusUpdateInput
	if err := c.Bind(&input); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	request, err := manager.Transition(c.Param("id"), input.StatusID, user.ID, input.Comment)
	if err != nil {
		respondLifecycleError(c, err)
		return
	}

	notifyStatusChange(request)

	sanitizeRequest(request)
	RespondSuccess(c, gin.H{"request": request})
}

// GET /api/solicitudes/:id/historial
func GetRequestHistory(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}

	manager := ManagerInstance(c)
	if manager == nil {
		RespondError(c, "core no configurado en el contexto", http.StatusInternalServerError)
		return
	}

	request, err := manager.GetByID(c.Param("id"))
	if err != nil {
		respondLifecycleError(c, err)
		return
	}
	if !user.IsStaff() && request.RequesterID != user.ID {
		RespondError(c, "sin acceso a esta solicitud", http.StatusForbidden)
		return
	}

	history, err := manager.History(request.ID)
	if err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	RespondSuccess(c, gin.H{"history": history})
}

// notifyStatusChange avisa al solicitante por WhatsApp del nuevo
// estado. Mejor esfuerzo: un fallo de envío se loguea y no afecta la
// transición, que ya quedó confirmada.
func notifyStatusChange(request *models.Request) {
	phone := request.Requester.WhatsAppPhone
	if phone == "" {
		return
	}

	text := fmt.Sprintf("📢 Tu solicitud *%s* cambió de estado: *%s*.",
		request.ReferenceCode, request.Status.Name)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := tools.SendWhatsAppText(ctx, phone, text); err != nil {
			log.Printf("notify status change: %v", err)
		}
	}()
}

func respondLifecycleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, lifecycle.ErrNotFound):
		RespondError(c, "solicitud no encontrada", http.StatusNotFound)
	case errors.Is(err, lifecycle.ErrValidation):
		RespondError(c, err.Error(), http.StatusBadRequest)
	default:
		RespondError(c, err.Error(), http.StatusInternalServerError)
	}
}

func sanitizeRequest(r *models.Request) {
	r.Requester.Password = ""
}

func sanitizeRequests(rs []models.Request) {
	for i := range rs {
		rs[i].Requester.Password = ""
	}
}
