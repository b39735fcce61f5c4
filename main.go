package main

import (
	"log"

	"github.com/gin-gonic/gin"
)

func main() {

	cfg, err := LoadConfig()
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	log.Println("🔐 Configuration loaded successfully")

	db, err := InitDB(cfg)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	defer func() {
		if err := CloseDB(db); err != nil {
			log.Printf("⚠️ closing database: %v", err)
		}
	}()
	log.Println("✅ Database connected and migrated")

	app := NewApp(db, cfg)

	r := gin.Default()
	r.Use(CORSMiddleware())
	app.SetupRoutes(r)

	log.Printf("🚀 Server running on http://localhost:%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("❌ server stopped: %v", err)
	}
}
