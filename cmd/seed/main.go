package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/Cup-Trail/cup-trail-sub000/config"
	"github.com/Cup-Trail/cup-trail-sub000/internal/app/repository"
	"github.com/Cup-Trail/cup-trail-sub000/internal/app/service"
	"github.com/Cup-Trail/cup-trail-sub000/internal/db"
)

// Bulk-imports shops from an XLSX export. Expected columns:
// name, address, latitude, longitude, place_id. The first row is a header.
// Rows resolve through the same canonicalization path as the API, so
// re-running the import never duplicates a shop.
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

	shopRepo := repository.NewShopRepository(db.GetDB())
	shopService := service.NewShopService(shopRepo)

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	inputs, skipped, err := readShopsFromXLSX(filePath)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	fmt.Printf("Rows to import: %d (skipped: %d)\n", len(inputs), skipped)

	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	var created, failed int
	for _, input := range inputs {
		if _, err := shopService.ResolveShop(input); err != nil {
			failed++
			fmt.Printf("Failed to resolve %q: %v\n", input.Name, err)
			continue
		}
		created++
	}

	fmt.Printf("Import completed: %d resolved, %d failed\n", created, failed)
}

func readShopsFromXLSX(filePath string) ([]service.ResolveShopInput, int, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, 0, fmt.Errorf("no sheets found in XLSX file")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, 0, fmt.Errorf("no data found in XLSX file")
	}

	var inputs []service.ResolveShopInput
	skipped := 0
	for i, row := range rows {
		if i == 0 {
			continue
		}
		if len(row) < 2 {
			skipped++
			continue
		}

		name := strings.TrimSpace(row[0])
		address := strings.TrimSpace(row[1])
		if name == "" {
			skipped++
			continue
		}

		input := service.ResolveShopInput{
			Name:    name,
			Address: address,
		}
		if len(row) > 2 {
			input.Latitude = parseCoord(row[2])
		}
		if len(row) > 3 {
			input.Longitude = parseCoord(row[3])
		}
		if len(row) > 4 {
			input.PlaceID = strings.TrimSpace(row[4])
		}

		inputs = append(inputs, input)
	}

	return inputs, skipped, nil
}

func parseCoord(cell string) *float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil {
		return nil
	}
	return &v
}
