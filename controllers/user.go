package controllers

import (
	"net/http"

	dbpkg "tramita/db"
	"tramita/models"
	"tramita/tools"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// POST /api/registro
func CreateUser(c *gin.Context) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db no configurada en el contexto", http.StatusInternalServerError)
		return
	}

	user := models.User{}
	if err := c.Bind(&user); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	missing := user.MissingFields()
	if missing != "" {
		RespondError(c, "Falta el campo "+missing, http.StatusBadRequest)
		return
	}

	if !tools.ValidateEmail(user.Email) {
		RespondError(c, "E-mail inválido", http.StatusBadRequest)
		return
	}

	if user.WhatsAppPhone != "" {
		phone, err := tools.NormalizePhone(user.WhatsAppPhone)
		if err != nil {
			RespondError(c, "Teléfono inválido", http.StatusBadRequest)
			return
		}
		user.WhatsAppPhone = phone
	}

	var existing models.User
	if err := db.Where("email = ?", user.Email).First(&existing).Error; err == nil {
		RespondError(c, "El email ya está registrado", http.StatusBadRequest)
		return
	}

	hashed, err := tools.HashPassword(user.Password, bcryptCost())
	if err != nil {
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}
	user.Password = hashed

	// El registro público siempre crea estudiantes; los roles de
	// gestión se asignan por fuera.
	user.ID = uuid.NewString()
	user.RoleID = models.ROLE_STUDENT
	user.Active = true

	if err := db.Create(&user).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	user.Password = ""
	RespondSuccess(c, user)
}

// GET /api/me
func Me(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}
	user.Password = ""
	RespondSuccess(c, gin.H{"user": user})
}
