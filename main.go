package main

import (
	"log"

	"github.com/joho/godotenv"

	"hungerscrm/internal/app"
)

// @title        Hungers CRM API
// @version      1.0
// @description  API del CRM de ventas Hungers: pipeline, reportes, respaldo en GitHub y análisis IA.
// @BasePath     /
func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}
	app.Run()
}
