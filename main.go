package main

import (
	"log"
	"os"

	"tramita/assistant"
	"tramita/config"
	"tramita/controllers"
	"tramita/db"
	"tramita/lifecycle"
	"tramita/router"

	"github.com/gin-gonic/gin"
)

func main() {
	configPath := "config.json"
	if v := os.Getenv("TRAMITA_CONFIG"); v != "" {
		configPath = v
	}
	cfg := config.Get(configPath)

	db.SetConfigurations(cfg)
	database, err := db.Connect()
	if err != nil {
		log.Fatal(err)
	}
	defer database.Close()

	if err := db.Seed(database); err != nil {
		log.Fatal("seed de catálogos falló: ", err)
	}

	// El manager resuelve el estado PENDIENTE aquí: un catálogo
	// incompleto tumba el arranque, no una solicitud en producción.
	manager, err := lifecycle.NewManager(database)
	if err != nil {
		log.Fatal(err)
	}
	engine := assistant.NewEngine(database, manager)

	r := gin.New()
	r.Use(db.SetDBtoContext(database))
	r.Use(controllers.SetCoreToContext(manager, engine))
	router.Initialize(r, cfg)

	log.Printf("Tramita escuchando en :%s", cfg.ApiPort)
	if err := r.Run(":" + cfg.ApiPort); err != nil {
		log.Fatal(err)
	}
}
