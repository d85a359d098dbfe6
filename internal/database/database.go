package database

import (
	"fmt"
	"log"

	"github.com/doniphane/AcadyoquizzV2-deploy/internal/config"
	"github.com/doniphane/AcadyoquizzV2-deploy/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Connect(cfg *config.Config) *gorm.DB {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName,
	)

	// TranslateError turns the driver's unique-violation into
	// gorm.ErrDuplicatedKey, which the service layer uses to retry
	// access-code generation once on a commit-time collision.
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	log.Println("database connected")
	return db
}

func AutoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.Utilisateur{},
		&models.Questionnaire{},
		&models.Question{},
		&models.Reponse{},
		&models.Tentative{},
		&models.ReponseUtilisateur{},
	)
	if err != nil {
		log.Fatalf("failed to auto-migrate: %v", err)
	}
	log.Println("database migrated")
}
