package main

import (
	"log"
	"net/http"

	"fleet_console/internal/config"
	"fleet_console/internal/controllers"
	"fleet_console/internal/logger"
	"fleet_console/internal/middleware"
	"fleet_console/internal/routes"
	"fleet_console/internal/scheduling"
)

func main() {
	// Initialize structured logging to file
	logger.Setup()

	// Connect to the database
	config.InitDB()

	// Scheduler owns the validate-then-write path for shift assignment
	store := scheduling.NewGormStore(config.DB)
	controllers.InitScheduler(scheduling.NewScheduler(store, store))

	// Setup Gin router
	r := routes.SetupRouter()

	// Wrap with CORS
	handler := middleware.EnableCORS(r)

	log.Println("🚀 Server running at :8080")
	log.Fatal(http.ListenAndServe("0.0.0.0:8080", handler))
}
