package router

import (
	"log"

	"tramita/config"
	"tramita/controllers"
	"tramita/middleware"

	"github.com/gin-gonic/gin"
)

// Initialize registra todas las rutas y middlewares: rutas públicas,
// rutas autenticadas (token) y rutas de gestión (token + staff).
func Initialize(r *gin.Engine, cfg config.Configuration) {
	controllers.SetSecurity(cfg.Security)

	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())

	api := r.Group("/api")

	// Webhook de WhatsApp (verificación de Meta + mensajes de Twilio)
	api.GET("/webhook", controllers.WebhookVerify)
	api.POST("/webhook", Logger(), controllers.WhatsAppWebhook)

	// Públicas (sin auth)
	api.POST("/registro", Logger(), controllers.CreateUser)
	api.POST("/login", Logger(), controllers.Login)

	// Catálogos (solo lectura, sin auth, igual que el resto del sistema
	// los consume)
	api.GET("/tipos-solicitud", Logger(), controllers.GetRequestTypes)
	api.GET("/estados", Logger(), controllers.GetStatuses)

	// Autenticadas (token + usuario activo)
	auth := api.Group("")
	auth.Use(controllers.AuthRequired())
	auth.Use(Authorizer())

	auth.GET("/me", Logger(), controllers.Me)

	auth.POST("/solicitudes", Logger(), controllers.CreateRequest)
	auth.GET("/solicitudes/mis-solicitudes", Logger(), controllers.GetMyRequests)
	auth.GET("/solicitudes/:id", Logger(), controllers.GetRequestByID)
	auth.GET("/solicitudes/:id/historial", Logger(), controllers.GetRequestHistory)

	// Gestión (staff: secretaría o admin)
	staff := auth.Group("")
	staff.Use(Adminizer())

	staff.GET("/solicitudes", Logger(), controllers.GetRequests)
	staff.GET("/solicitudes/buscar", Logger(), controllers.SearchRequests)
	staff.PATCH("/solicitudes/:id/estado", Logger(), controllers.UpdateRequestStatus)

	log.Printf("Routes initialized")
}
