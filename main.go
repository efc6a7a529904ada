package main

import (
	"embed"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"popgen/adapters/chart"
	"popgen/adapters/excel"
	"popgen/app"
	"popgen/internal/config"
	"popgen/internal/session"
	"popgen/ui"
)

//go:embed ui/templates/*
var embeddedFiles embed.FS

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Load application configuration
	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	gin.SetMode(appConfig.Server.GinMode)

	loader := excel.NewLoader(excel.Config{
		HeaderOffset: appConfig.Data.HeaderOffset,
	})
	renderer := chart.NewRenderer(chart.Config{
		WidthInches:  appConfig.Chart.WidthInches,
		HeightInches: appConfig.Chart.HeightInches,
		DPI:          appConfig.Chart.DPI,
	})
	service := app.NewGenerateService(renderer, appConfig.Data.MaxPyramids)
	store := session.NewStore()

	// Initialize web server
	server := ui.NewServer(embeddedFiles)
	if err := server.Initialize(appConfig, loader, service, store); err != nil {
		log.Fatalf("Failed to initialize server: %v", err)
	}

	log.Printf("Starting population pyramid server on port %s", appConfig.Server.Port)
	log.Fatal(server.Start(":" + appConfig.Server.Port))
}
