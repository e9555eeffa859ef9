package main

import (
	"log"
	"net/http"
	"os"

	"torre_tracker/internal/config"
	"torre_tracker/internal/logger"
	"torre_tracker/internal/middleware"
	"torre_tracker/internal/routes"
)

func main() {
	// Initialize structured logging to file
	logger.Setup()

	// Connect to the database
	config.InitDB()

	// Setup Gin router (recovery + request logging wired inside)
	r := routes.SetupRouter()

	// Wrap with CORS
	handler := middleware.EnableCORS(r)

	addr := "0.0.0.0:" + port()
	log.Println("🚀 Server running at " + addr)
	log.Fatal(http.ListenAndServe(addr, handler))
}

func port() string {
	if p := os.Getenv("PORT"); p != "" {
		return p
	}
	return "8080"
}
