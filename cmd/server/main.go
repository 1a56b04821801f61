package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"pantry-finder/internal/api"
	"pantry-finder/internal/db"
	"pantry-finder/internal/geocode"
	"pantry-finder/internal/locate"
	"pantry-finder/internal/pantry"
)

func main() {
	// Parse command line flags
	port := flag.Int("port", 8080, "Port to listen on")
	dbPath := flag.String("db", "", "Path to SQLite database")
	dataPath := flag.String("data", "", "CSV dataset used to bootstrap an empty database")
	provider := flag.String("geocoder", "nominatim", "Geocoding provider: nominatim or google")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using system environment variables")
	}

	// Determine paths
	execPath, err := os.Executable()
	if err != nil {
		log.Fatal(err)
	}
	baseDir := filepath.Dir(filepath.Dir(execPath))

	// Default database path
	if *dbPath == "" {
		*dbPath = filepath.Join(baseDir, "data", "pantries.db")
	}

	// For development, use relative paths
	if _, err := os.Stat(*dbPath); os.IsNotExist(err) {
		// Try relative path from current working directory
		cwd, _ := os.Getwd()
		*dbPath = filepath.Join(cwd, "data", "pantries.db")
	}

	if *dataPath == "" {
		*dataPath = filepath.Join(filepath.Dir(*dbPath), "pantries.csv")
	}

	log.Printf("Database path: %s", *dbPath)

	// Initialize database
	database, err := db.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	// Bootstrap an empty database from the bundled dataset
	count, err := database.CountPantries()
	if err != nil {
		log.Fatalf("Failed to count pantries: %v", err)
	}
	if count == 0 {
		if _, err := os.Stat(*dataPath); err == nil {
			imported, err := importCSV(database, *dataPath)
			if err != nil {
				log.Fatalf("Failed to import %s: %v", *dataPath, err)
			}
			log.Printf("Imported %d pantries from %s", imported, *dataPath)
		}
	}

	geocoder, err := geocode.New(*provider)
	if err != nil {
		log.Fatalf("Failed to configure geocoder: %v", err)
	}
	resolver := locate.NewResolver(geocoder, nil)

	// Create router
	router := api.NewRouter(database, resolver)

	// Start server
	addr := fmt.Sprintf(":%d", *port)
	log.Printf("Starting server on http://localhost%s", addr)

	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func importCSV(database *db.DB, path string) (int, error) {
	pantries, skipped, err := pantry.LoadCSV(path)
	if err != nil {
		return 0, err
	}
	for _, s := range skipped {
		log.Printf("Skipping invalid row %d: %s", s.Line, s.Reason)
	}
	for i := range pantries {
		if err := database.UpsertPantry(&pantries[i]); err != nil {
			return 0, err
		}
	}
	return len(pantries), nil
}
