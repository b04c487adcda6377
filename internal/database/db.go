package database

import (
	"log"

	"bayhomes-backend/internal/config"
	"bayhomes-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Init(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{
		// Cross-entity references are kept consistent by the mutation
		// workflows inside their transactions, not by store constraints.
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		log.Fatalf("Could not connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Area{},
		&models.Developer{},
		&models.Project{},
		&models.Property{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}

	log.Println("Database connected, migration complete.")
	return db
}
