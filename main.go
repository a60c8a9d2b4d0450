package main

import (
	"context"
	"flag"
	"log"
	"os"

	"Gin_postgres_redis_equipment_tracker/app"
	"Gin_postgres_redis_equipment_tracker/config"
	"Gin_postgres_redis_equipment_tracker/db"
	"Gin_postgres_redis_equipment_tracker/importer"
	"Gin_postgres_redis_equipment_tracker/routes"
)

func main() {
	seedItems := flag.String("seed-items", "", "CSV file of catalog items to load at startup")
	seedLog := flag.String("seed-log", "", "CSV file of checkout log entries to load at startup")
	flag.Parse()

	config.LoadEnv()

	application := app.MustNew()
	defer application.Close()

	if *seedItems != "" || *seedLog != "" {
		seed(application, *seedItems, *seedLog)
	}

	r := application.Router

	// Health
	r.GET("/healthz", func(c *app.Ctx) { c.JSON(200, app.H{"ok": true}) })

	routes.RegisterRoutes(r, application)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3001"
	}
	log.Printf("listening on :%s", port)
	_ = r.Run(":" + port)
}

func seed(a *app.App, itemsPath, logPath string) {
	ctx := context.Background()
	repo := db.NewRepo(a.DB)

	if itemsPath != "" {
		f, err := os.Open(itemsPath)
		if err != nil {
			log.Fatalf("seed items: %v", err)
		}
		items, err := importer.LoadItems(f)
		f.Close()
		if err != nil {
			log.Fatalf("seed items: %v", err)
		}
		if err := repo.SeedItems(ctx, items); err != nil {
			log.Fatalf("seed items: %v", err)
		}
		log.Printf("seeded %d catalog items", len(items))
	}

	if logPath != "" {
		f, err := os.Open(logPath)
		if err != nil {
			log.Fatalf("seed log: %v", err)
		}
		entries, err := importer.LoadCheckoutLog(f)
		f.Close()
		if err != nil {
			log.Fatalf("seed log: %v", err)
		}
		if err := repo.SeedEntries(ctx, entries); err != nil {
			log.Fatalf("seed log: %v", err)
		}
		log.Printf("seeded %d checkout log entries", len(entries))
	}
}
