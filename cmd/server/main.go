package main

import (
	"log"
	"time"

	"github.com/gavraq/activity-backend-go/internal/activity"
	"github.com/gavraq/activity-backend-go/internal/analyzer"
	"github.com/gavraq/activity-backend-go/internal/api"
	"github.com/gavraq/activity-backend-go/internal/config"
	"github.com/gavraq/activity-backend-go/internal/database"
	"github.com/gavraq/activity-backend-go/internal/geocode"
	"github.com/gavraq/activity-backend-go/internal/handler"
	"github.com/gavraq/activity-backend-go/internal/locations"
	"github.com/gavraq/activity-backend-go/internal/service"
)

func main() {
	cfg := config.Load()
	thresholds := config.LoadThresholds(cfg.ThresholdsPath)

	if err := database.Init(database.Config{Path: cfg.GeocacheDBPath}); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer database.Close()

	store := locations.NewStore(cfg.LocationsDir)

	geocacheStore, err := geocode.NewSQLiteStore(database.GetDB())
	if err != nil {
		log.Fatal("Failed to initialize geocache store:", err)
	}
	nominatim := geocode.NewNominatimClient(cfg.GeocodeUserAgent,
		time.Duration(thresholds.Daily.GeocodeTimeoutSecs)*time.Second)
	geocoder, err := geocode.NewCache(nominatim, cfg.GeocodeCacheSize, geocacheStore)
	if err != nil {
		log.Fatal("Failed to initialize geocode cache:", err)
	}

	classifiers := activity.NewAll(thresholds)
	dailyAnalyzer := analyzer.NewDailyAnalyzer(classifiers, geocoder, thresholds.Daily)

	analysisService := service.NewAnalysisService(dailyAnalyzer, store)
	analysisHandler := handler.NewAnalysisHandler(analysisService)

	router := api.SetupRouter(analysisHandler)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
