// Command seed loads a catalog JSON document from a file or s3://bucket/key
// and upserts it into the database.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"nutriplan/config"
	"nutriplan/repository"
	"nutriplan/services"
	"nutriplan/utils"
)

func main() {
	cfg := config.Load()
	source := flag.String("source", cfg.Seed.Source, "catalog JSON path or s3://bucket/key")
	flag.Parse()
	if *source == "" {
		log.Fatal("no seed source: pass -source or set SEED_SOURCE")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	data, err := readSource(ctx, *source, cfg.Seed.S3Region)
	if err != nil {
		log.Fatalf("Failed to read %s: %v", *source, err)
	}
	seed, err := services.ParseCatalogSeed(data)
	if err != nil {
		log.Fatalf("Invalid catalog: %v", err)
	}

	db, err := config.InitDB(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer config.Close(db)

	seeder := services.NewCatalogSeeder(
		repository.NewMacroRepository(db),
		repository.NewEquipmentRepository(db),
		repository.NewPreparationRepository(db),
		repository.NewAlimentRepository(db),
		repository.NewMealRepository(db),
	)
	report, err := seeder.Seed(ctx, seed)
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
	log.Printf("Seeded catalog from %s: macros %+v, equipments %+v, preparations %+v, aliments %+v, meals %+v",
		*source, report.Macros, report.Equipments, report.Preparations, report.Aliments, report.Meals)
}

func readSource(ctx context.Context, source, region string) ([]byte, error) {
	bucket, key, ok := utils.ParseS3URI(source)
	if !ok {
		return os.ReadFile(source)
	}
	client, err := utils.NewS3Client(ctx, region)
	if err != nil {
		return nil, err
	}
	return utils.DownloadS3Object(ctx, client, bucket, key)
}
