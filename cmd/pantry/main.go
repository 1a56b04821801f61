package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"pantry-finder/internal/geo"
	"pantry-finder/internal/geocode"
	"pantry-finder/internal/locate"
	"pantry-finder/internal/pantry"
	"pantry-finder/internal/search"
)

func main() {
	// Parse command line flags
	address := flag.String("address", "", "Address, postal code, or \"lat,lon\" to search from")
	top := flag.Int("top", 1, "Number of nearest pantries to return")
	radius := flag.Float64("radius", 0, "Maximum distance in km (0 means no limit)")
	autolocate := flag.Bool("autolocate", false, "Approximate your location from your IP address")
	dataPath := flag.String("data", "data/pantries.csv", "Path to the pantry dataset")
	provider := flag.String("geocoder", "nominatim", "Geocoding provider: nominatim or google")
	flag.Parse()

	// Optional .env for provider credentials
	godotenv.Load()

	pantries, skipped, err := pantry.LoadCSV(*dataPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Fatalf("Pantry data file not found: %s", *dataPath)
		}
		log.Fatalf("Failed to load pantry data: %v", err)
	}
	for _, s := range skipped {
		log.Printf("Skipping invalid row %d: %s", s.Line, s.Reason)
	}

	geocoder, err := geocode.New(*provider)
	if err != nil {
		log.Fatalf("Failed to configure geocoder: %v", err)
	}
	resolver := locate.NewResolver(geocoder, geocode.NewIPLocator(geocode.IPLocatorConfig{}))

	ctx := context.Background()
	reader := bufio.NewReader(os.Stdin)

	var origin *geo.Coordinate

	input := *address
	if input == "" && *autolocate {
		if c, ok := resolver.Autolocate(ctx); ok {
			fmt.Printf("Autolocated to: %.6f,%.6f\n", c.Latitude, c.Longitude)
			origin = &c
		} else {
			fmt.Println("Autolocate failed; please enter an address or coordinates.")
		}
	}

	if origin == nil && input == "" {
		input = prompt(reader, "Enter your address (or 'lat,lon'): ")
	}

	if origin == nil {
		c, err := resolver.Resolve(ctx, input)
		if err != nil {
			fmt.Println("Could not resolve your location. Enter coordinates directly as 'lat,lon', or check your network.")
			os.Exit(1)
		}
		origin = &c
	}

	var radiusKm *float64
	if *radius > 0 {
		radiusKm = radius
	}

	results := search.Nearest(*origin, pantries, *top, radiusKm)
	if len(results) == 0 {
		fmt.Println("No pantries found within the given radius or dataset.")
		return
	}

	idx := 0
	if len(results) > 1 {
		fmt.Println("Multiple matches found:")
		for i, m := range results {
			fmt.Printf("%d. %s - %s (%.2f km)\n", i+1, m.Pantry.Name, m.Pantry.Address, m.DistanceKm)
		}
		for {
			line := prompt(reader, fmt.Sprintf("Select 1-%d (or Enter to pick 1): ", len(results)))
			if i, ok := search.Choose(line, len(results)); ok {
				idx = i
				break
			}
			fmt.Println("Invalid choice; try again.")
		}
	}

	// Show the full ranking when more than one result was requested
	if *top > 1 {
		fmt.Println("Top results:")
		for i, m := range results {
			fmt.Printf("%d. %s - %s (%.2f km) @ %v,%v\n",
				i+1, m.Pantry.Name, m.Pantry.Address, m.DistanceKm, m.Pantry.Latitude, m.Pantry.Longitude)
		}
		fmt.Println()
	}

	chosen := results[idx]
	fmt.Printf("Selected pantry: %s\n", chosen.Pantry.Name)
	fmt.Printf("Address: %s\n", chosen.Pantry.Address)
	fmt.Printf("Distance: %.2f km\n", chosen.DistanceKm)
	fmt.Printf("Location: %v,%v\n", chosen.Pantry.Latitude, chosen.Pantry.Longitude)
}

func prompt(reader *bufio.Reader, msg string) string {
	fmt.Print(msg)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}
