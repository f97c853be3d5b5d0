package main

import (
	"fmt"
	"log"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/Ritu-r8j/DINEEZY-sub001/config"
	"github.com/Ritu-r8j/DINEEZY-sub001/internal/app/model"
	"github.com/Ritu-r8j/DINEEZY-sub001/internal/app/repository"
	"github.com/Ritu-r8j/DINEEZY-sub001/internal/db"
	"github.com/xuri/excelize/v2"
)

// Imports a restaurant catalog from an XLSX export. Expected columns:
//
//	0: name
//	1: cuisines (comma separated)
//	2: city
//	3: area
//	4: address
//	5: phone
//	6: open time  (e.g. 09:00)
//	7: close time (e.g. 23:00)
//	8: cost for two
//	9: delivery fee (blank = no delivery)
//
// Imported restaurants are unclaimed: they have no owner until a restaurant
// account claims the listing.
func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go <xlsx_file_path>")
	}

	filePath := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	restaurantRepo := repository.NewRestaurantRepository(db.GetDB())

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	restaurants, err := readRestaurantsFromXLSX(filePath)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	fmt.Printf("Total restaurants to import: %d\n", len(restaurants))

	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	batchSize := 500
	fmt.Printf("Starting bulk import with batch size: %d\n", batchSize)
	if err := restaurantRepo.BulkCreate(restaurants, batchSize); err != nil {
		log.Fatal("Failed to bulk create restaurants:", err)
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("Total restaurants imported: %d\n", len(restaurants))
}

func readRestaurantsFromXLSX(filePath string) ([]model.Restaurant, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in XLSX file")
	}

	fmt.Printf("Reading sheet: %s\n", sheetName)

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("no data found in XLSX file")
	}

	var restaurants []model.Restaurant
	seen := make(map[string]bool)
	slugCounter := make(map[string]int)
	skippedCount := 0

	for i, row := range rows {
		if i == 0 {
			fmt.Printf("Headers: %v\n", row)
			continue
		}

		if len(row) < 5 {
			skippedCount++
			continue
		}

		name := strings.TrimSpace(row[0])
		cuisinesRaw := strings.TrimSpace(row[1])
		city := strings.TrimSpace(row[2])
		area := strings.TrimSpace(row[3])
		address := strings.TrimSpace(row[4])

		if name == "" || city == "" || address == "" {
			skippedCount++
			continue
		}
		if !isValidRestaurantName(name) {
			skippedCount++
			continue
		}

		key := fmt.Sprintf("%s|%s|%s", name, city, address)
		if seen[key] {
			skippedCount++
			continue
		}
		seen[key] = true

		restaurant := model.Restaurant{
			Name:     name,
			Cuisines: parseCuisines(cuisinesRaw),
			City:     city,
			Area:     area,
			Address:  address,
			// Unclaimed listing; an owner account claims it later
			OwnerID:             nil,
			AcceptsReservations: true,
			IsOpen:              true,
		}

		// Optional columns
		if len(row) > 5 {
			restaurant.PhoneNumber = strings.TrimSpace(row[5])
		}
		if len(row) > 6 {
			restaurant.OpenTime = strings.TrimSpace(row[6])
		}
		if len(row) > 7 {
			restaurant.CloseTime = strings.TrimSpace(row[7])
		}
		if len(row) > 8 {
			if cost, err := strconv.ParseFloat(strings.TrimSpace(row[8]), 64); err == nil && cost > 0 {
				restaurant.CostForTwo = cost
			}
		}
		if len(row) > 9 {
			if fee, err := strconv.ParseFloat(strings.TrimSpace(row[9]), 64); err == nil && fee >= 0 {
				restaurant.DeliveryOptions = []model.DeliveryOption{
					{Name: "Standard", Fee: fee, EstimatedMinutes: 45},
				}
			}
		}

		// Pre-assign slugs so batched inserts cannot race the uniqueness
		// check in the BeforeCreate hook.
		baseSlug := makeSlug(city, name)
		slug := baseSlug
		if count, exists := slugCounter[baseSlug]; exists {
			slugCounter[baseSlug] = count + 1
			slug = fmt.Sprintf("%s-%d", baseSlug, count+1)
		} else {
			slugCounter[baseSlug] = 1
		}
		restaurant.Slug = slug

		restaurants = append(restaurants, restaurant)

		if len(restaurants)%500 == 0 {
			fmt.Printf("Processed %d restaurants...\n", len(restaurants))
		}
	}

	fmt.Printf("\nSummary:\n")
	fmt.Printf("  Total rows: %d\n", len(rows)-1)
	fmt.Printf("  Valid restaurants: %d\n", len(restaurants))
	fmt.Printf("  Skipped rows: %d\n", skippedCount)

	return restaurants, nil
}

func parseCuisines(raw string) model.StringArray {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	cuisines := make(model.StringArray, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			cuisines = append(cuisines, trimmed)
		}
	}
	return cuisines
}

func makeSlug(city, name string) string {
	slug := fmt.Sprintf("%s-%s", city, name)

	reg := regexp.MustCompile(`[^\p{L}\p{N}-]+`)
	slug = reg.ReplaceAllString(slug, "-")

	reg = regexp.MustCompile(`-+`)
	slug = reg.ReplaceAllString(slug, "-")

	slug = strings.Trim(slug, "-")
	return strings.ToLower(slug)
}

// isValidRestaurantName filters obvious junk rows out of catalog exports.
func isValidRestaurantName(name string) bool {
	if len([]rune(name)) < 3 {
		return false
	}

	numOnly := regexp.MustCompile(`^[0-9]+$`)
	if numOnly.MatchString(name) {
		return false
	}

	specialOnly := regexp.MustCompile(`^[\p{P}\p{S}\s]+$`)
	if specialOnly.MatchString(name) {
		return false
	}

	return true
}
