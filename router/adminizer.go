package router

import (
	"net/http"

	"tramita/controllers"

	"github.com/gin-gonic/gin"
)

// Adminizer bloquea el acceso cuando el usuario no es de gestión
// (secretaría o administrador).
func Adminizer() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := controllers.GetUserLogged(c)
		if !ok {
			controllers.RespondError(c, "unauthorized", http.StatusUnauthorized)
			c.Abort()
			return
		}
		if !user.IsStaff() {
			controllers.RespondError(c, "se requiere rol de gestión", http.StatusForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}
