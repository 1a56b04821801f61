package main

import (
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/schollz/progressbar/v3"

	"pantry-finder/internal/db"
	"pantry-finder/internal/geocode"
	"pantry-finder/internal/models"
	"pantry-finder/internal/pantry"
)

func main() {
	// Sub-commands
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	os.Args = os.Args[1:] // Shift args for flag parsing

	switch cmd {
	case "import":
		importDataset()
	case "seed":
		seedSampleData()
	case "geocode":
		geocodeDataset()
	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: tools <command> [options]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  import   Import a CSV or XLSX pantry dataset into the database")
	fmt.Println("  seed     Seed database with sample data")
	fmt.Println("  geocode  Fill in missing coordinates in a CSV dataset")
}

func importDataset() {
	dbPath := flag.String("db", "data/pantries.db", "Database path")
	file := flag.String("file", "", "Dataset file (.csv or .xlsx)")
	sheet := flag.String("sheet", "", "Sheet name for XLSX files (defaults to the first sheet)")
	flag.Parse()

	if *file == "" {
		log.Fatal("missing -file")
	}

	database, err := db.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer database.Close()

	var (
		pantries []models.Pantry
		skipped  []pantry.SkippedRow
	)

	switch strings.ToLower(filepath.Ext(*file)) {
	case ".csv":
		pantries, skipped, err = pantry.LoadCSV(*file)
	case ".xlsx":
		pantries, skipped, err = pantry.LoadXLSX(*file, *sheet)
	default:
		log.Fatalf("Unsupported dataset format: %s", *file)
	}
	if err != nil {
		log.Fatalf("Failed to load %s: %v", *file, err)
	}

	for _, s := range skipped {
		log.Printf("Skipping invalid row %d: %s", s.Line, s.Reason)
	}

	for i := range pantries {
		if err := database.UpsertPantry(&pantries[i]); err != nil {
			log.Fatalf("Failed to upsert %q: %v", pantries[i].Name, err)
		}
	}

	count, _ := database.CountPantries()
	log.Printf("Imported %d pantries (%d rows skipped). Total pantries: %d", len(pantries), len(skipped), count)
}

func seedSampleData() {
	dbPath := flag.String("db", "data/pantries.db", "Database path")
	flag.Parse()

	database, err := db.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer database.Close()

	for _, p := range pantry.Sample() {
		if err := database.UpsertPantry(&p); err != nil {
			log.Fatalf("Failed to seed %q: %v", p.Name, err)
		}
	}

	count, _ := database.CountPantries()
	log.Printf("Database seeded successfully! Total pantries: %d", count)
}

func geocodeDataset() {
	inPath := flag.String("in", "", "Input CSV file")
	outPath := flag.String("out", "", "Output CSV file")
	provider := flag.String("geocoder", "nominatim", "Geocoding provider: nominatim or google")
	flag.Parse()

	if *inPath == "" || *outPath == "" {
		log.Fatal("missing -in or -out")
	}

	// Optional .env for provider credentials
	godotenv.Load()

	geocoder, err := geocode.New(*provider)
	if err != nil {
		log.Fatalf("Failed to configure geocoder: %v", err)
	}

	// Setup context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Println("Received interrupt signal, shutting down...")
		cancel()
	}()

	f, err := os.Open(*inPath)
	if err != nil {
		log.Fatalf("Failed to open %s: %v", *inPath, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		log.Fatalf("Failed to read %s: %v", *inPath, err)
	}
	if len(records) == 0 {
		log.Fatalf("Input file %s is empty", *inPath)
	}

	header := records[0]
	idxAddr := findColumn(header, "address", "street_address")
	idxLat := findColumn(header, "lat", "latitude")
	idxLng := findColumn(header, "lon", "lng", "long", "longitude")

	if idxLat == -1 || idxLng == -1 {
		log.Fatalf("Input header is missing lat/lon columns: %v", header)
	}
	if idxAddr == -1 {
		log.Fatalf("Input header is missing an address column: %v", header)
	}

	rows := records[1:]
	bar := progressbar.Default(int64(len(rows)), "geocoding")

	out := make([][]string, 0, len(records))
	out = append(out, header)

	geocoded, dropped := 0, 0
	for i, record := range rows {
		bar.Add(1)

		if hasValidCoords(record, idxLat, idxLng) {
			out = append(out, record)
			continue
		}

		addr := ""
		if idxAddr < len(record) {
			addr = strings.TrimSpace(record[idxAddr])
		}
		if addr == "" {
			log.Printf("Dropping row %d: no address to geocode", i+2)
			dropped++
			continue
		}

		coord, err := geocoder.Geocode(ctx, addr)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				log.Fatal("Geocoding cancelled")
			}
			log.Printf("Dropping row %d: %v", i+2, err)
			dropped++
			continue
		}

		for len(record) <= idxLat || len(record) <= idxLng {
			record = append(record, "")
		}
		record[idxLat] = strconv.FormatFloat(coord.Latitude, 'f', -1, 64)
		record[idxLng] = strconv.FormatFloat(coord.Longitude, 'f', -1, 64)
		out = append(out, record)
		geocoded++
	}

	outFile, err := os.Create(*outPath)
	if err != nil {
		log.Fatalf("Failed to create %s: %v", *outPath, err)
	}
	defer outFile.Close()

	writer := csv.NewWriter(outFile)
	if err := writer.WriteAll(out); err != nil {
		log.Fatalf("Failed to write %s: %v", *outPath, err)
	}

	log.Printf("Geocoded %d rows, dropped %d. Wrote %s", geocoded, dropped, *outPath)
}

func findColumn(header []string, names ...string) int {
	for i, col := range header {
		col = strings.ToLower(strings.TrimSpace(col))
		for _, name := range names {
			if col == name {
				return i
			}
		}
	}
	return -1
}

func hasValidCoords(record []string, idxLat, idxLng int) bool {
	if idxLat >= len(record) || idxLng >= len(record) {
		return false
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(record[idxLat]), 64)
	if err != nil {
		return false
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(record[idxLng]), 64)
	if err != nil {
		return false
	}
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}
