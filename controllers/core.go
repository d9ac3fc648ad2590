package controllers

import (
	"tramita/assistant"
	"tramita/lifecycle"

	"github.com/gin-gonic/gin"
)

const managerKey = "lifecycle_manager"
const engineKey = "assistant_engine"

// SetCoreToContext inyecta el manager de ciclo de vida y el motor
// conversacional en el contexto de gin, igual que db.SetDBtoContext.
func SetCoreToContext(manager *lifecycle.Manager, engine *assistant.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(managerKey, manager)
		c.Set(engineKey, engine)
		c.Next()
	}
}

func ManagerInstance(c *gin.Context) *lifecycle.Manager {
	v, ok := c.Get(managerKey)
	if !ok {
		return nil
	}
	m, _ := v.(*lifecycle.Manager)
	return m
}

func EngineInstance(c *gin.Context) *assistant.Engine {
	v, ok := c.Get(engineKey)
	if !ok {
		return nil
	}
	e, _ := v.(*assistant.Engine)
	return e
}
