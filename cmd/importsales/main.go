package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/cscruggs10/autointel/internal/db"
	"github.com/cscruggs10/autointel/internal/db/repositories"
	"github.com/cscruggs10/autointel/internal/logging"
	"github.com/cscruggs10/autointel/internal/services"
)

func main() {
	filePath := flag.String("file", "./sales-data.csv", "path to the dealer sales CSV export")
	flag.Parse()

	appEnv := os.Getenv("APP_ENV")
	if appEnv == "" {
		appEnv = "development"
	}
	if err := logging.Init(appEnv); err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logging.Close()

	if err := db.InitPostgres(); err != nil {
		log.Fatalf("connect postgres: %v", err)
	}

	f, err := os.Open(*filePath)
	if err != nil {
		log.Fatalf("open sales file: %v", err)
	}
	defer f.Close()

	salesRepo := repositories.NewHistoricalSalesRepository(db.DB)
	importer := services.NewSalesImportService(salesRepo, nil)

	summary, err := importer.Import(context.Background(), f)
	if err != nil {
		log.Fatalf("import sales: %v", err)
	}

	fmt.Printf("Import complete: %d new, %d updated, %d errors\n",
		summary.Imported, summary.Updated, summary.Errors)
}
