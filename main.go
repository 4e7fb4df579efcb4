package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/wize-house/api-go/config"
	"github.com/wize-house/api-go/routes"
	"github.com/wize-house/api-go/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	cfg := config.Load()

	if err := utils.InitLogger(cfg); err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer utils.Logger.Sync()

	// Initialize database
	db := config.InitDB()
	config.EnsureAdmin(db)

	// Create a new Gin router
	r := gin.Default()

	// Initialize routes
	routes.SetupRoutes(r, db, cfg)

	utils.Sugar.Infow("starting server", "port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		utils.Sugar.Fatalw("server exited", "err", err)
	}
}
