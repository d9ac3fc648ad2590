package controllers

import (
	"net/http"

	dbpkg "tramita/db"
	"tramita/models"

	"github.com/gin-gonic/gin"
)

// GET /api/tipos-solicitud
func GetRequestTypes(c *gin.Context) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db no configurada en el contexto", http.StatusInternalServerError)
		return
	}

	var types []models.RequestType
	if err := db.Where("active = ?", true).Order("id asc").Find(&types).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	RespondSuccess(c, gin.H{"request_types": types})
}

// GET /api/estados
func GetStatuses(c *gin.Context) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db no configurada en el contexto", http.StatusInternalServerError)
		return
	}

	var statuses []models.Status
	if err := db.Order("id asc").Find(&statuses).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	RespondSuccess(c, gin.H{"statuses": statuses})
}
