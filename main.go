package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"sweetshop/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading .env:", err)
	}

	if err := InitJWT(); err != nil {
		log.Fatalf("JWT setup failed: %v", err)
	}

	db, err := InitDB()
	if err != nil {
		log.Fatalf("Database initialization failed: %v", err)
	}
	defer db.Close()

	logger.Log.Info("[main] Running database migrations...")
	if err := RunMigrations(db); err != nil {
		logger.Log.Error(fmt.Sprintf("[main] Database migration failed: %v", err))
		log.Fatalf("Database migration failed: %v", err)
	}

	r := gin.Default()

	// CORS for the browser client.
	origins := []string{"http://localhost:3000"}
	if raw := os.Getenv("CORS_ORIGINS"); raw != "" {
		origins = strings.Split(raw, ",")
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Authorization", "Content-Type"},
	}))

	AuthRoutes(r, &MySQLUserStore{DB: db})
	SweetRoutes(r, &MySQLSweetStore{DB: db})
	HealthRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	logger.Log.Info(fmt.Sprintf("[main] Server starting on :%s", port))
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
