package controllers

import (
	"net/http"
	"time"

	dbpkg "tramita/db"
	"tramita/models"
	"tramita/tools"

	"github.com/gin-gonic/gin"
)

type LoginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type LoginResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// POST /api/login
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.Password == "" {
		RespondError(c, "email y password son obligatorios", http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db no configurada en el contexto", http.StatusInternalServerError)
		return
	}

	var user models.User
	if err := db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		RespondError(c, "usuario o contraseña inválidos", http.StatusUnauthorized)
		return
	}

	if !tools.CheckPassword(req.Password, user.Password) {
		RespondError(c, "usuario o contraseña inválidos", http.StatusUnauthorized)
		return
	}

	if !user.Active {
		RespondError(c, "usuario inactivo", http.StatusForbidden)
		return
	}

	validHours := tokenValidHours()
	signed, err := signHS256JWT(getJWTSecret(), map[string]any{
		"sub":   user.ID,
		"email": user.Email,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(time.Duration(validHours) * time.Hour).Unix(),
	})
	if err != nil {
		RespondError(c, "error al firmar el token", http.StatusInternalServerError)
		return
	}

	user.Password = ""
	RespondSuccess(c, LoginResponse{Token: signed, User: user})
}
