package router

import (
	"net/http"

	"tramita/controllers"

	"github.com/gin-gonic/gin"
)

// Authorizer bloquea rutas protegidas cuando el usuario no está activo.
func Authorizer() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := controllers.GetUserLogged(c)
		if !ok {
			controllers.RespondError(c, "unauthorized", http.StatusUnauthorized)
			c.Abort()
			return
		}

		if !user.Active {
			controllers.RespondError(c, "usuario inactivo", http.StatusForbidden)
			c.Abort()
			return
		}

		c.Next()
	}
}
