package db

import (
	"fmt"
	"log"
	"os"

	"Gin_postgres_redis_equipment_tracker/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB() *gorm.DB {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}

	err = Migrate(DB)
	if err != nil {
		log.Fatal("Failed to migrate models: ", err)
	}
	log.Println("Database connected")
	return DB
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Item{}, &models.CheckoutEntry{}, &models.ListEntry{}, &models.Favorite{}); err != nil {
		return err
	}

	// 在库汇总只看未归还条目
	if err := db.Exec(fmt.Sprintf(`
	  CREATE INDEX IF NOT EXISTS %s_open_item
	  ON %s (item_id)
	  WHERE NOT returned;
	`, models.CheckoutTable, models.CheckoutTable)).Error; err != nil {
		return err
	}

	// 按现场+借用人分组查询更快
	if err := db.Exec(fmt.Sprintf(`
	  CREATE INDEX IF NOT EXISTS %s_open_group
	  ON %s (destination, borrower)
	  WHERE NOT returned;
	`, models.CheckoutTable, models.CheckoutTable)).Error; err != nil {
		return err
	}

	return nil
}
