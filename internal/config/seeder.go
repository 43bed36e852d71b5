package config

import (
	"log"
	"time"

	"tricount-api/internal/adapters/persistence/models"
	"tricount-api/internal/pkg/password"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Seed fills an empty database with the demo dataset: a handful of
// users, three tricounts and one fully worked expense history. Safe to
// call repeatedly; it does nothing once users exist.
func Seed(db *gorm.DB) error {
	var count int64
	db.Model(&models.User{}).Count(&count)
	if count > 0 {
		return nil
	}

	log.Println("🌱 Seeding demo data...")

	// Every demo account uses the same password.
	hashed, err := password.Hash("Password1,")
	if err != nil {
		return err
	}

	iban1 := "BE12 1234 1234 1234"
	iban2 := "BE45 4567 4567 4567"

	users := []models.User{
		{ID: 1, Email: "boverhaegen@epfc.eu", Name: "Boris", PasswordHash: hashed, Role: "USER"},
		{ID: 2, Email: "bepenelle@epfc.eu", Name: "Benoît", PasswordHash: hashed, Role: "USER"},
		{ID: 3, Email: "xapigeolet@epfc.eu", Name: "Xavier", PasswordHash: hashed, Role: "USER"},
		{ID: 4, Email: "mamichel@epfc.eu", Name: "Marc", PasswordHash: hashed, Iban: &iban1, Role: "USER"},
		{ID: 5, Email: "gedielman@epfc.eu", Name: "Geoffrey", PasswordHash: hashed, Iban: &iban2, Role: "USER"},
		{ID: 9, Email: "admin@epfc.eu", Name: "Admin", PasswordHash: hashed, Role: "ADMIN"},
	}
	if err := db.Create(&users).Error; err != nil {
		return err
	}

	vacancesDesc := "A la mer du nord"
	tricounts := []models.Tricount{
		{ID: 1, Title: "Gers 2022", CreatorID: 1, CreatedAt: time.Date(2024, 10, 10, 18, 42, 24, 0, time.UTC)},
		{ID: 2, Title: "Resto badminton", CreatorID: 1, CreatedAt: time.Date(2024, 10, 10, 19, 25, 10, 0, time.UTC)},
		{ID: 4, Title: "Vacances", Description: &vacancesDesc, CreatorID: 1, CreatedAt: time.Date(2024, 10, 10, 19, 31, 9, 0, time.UTC)},
	}
	if err := db.Create(&tricounts).Error; err != nil {
		return err
	}

	participations := []models.Participation{
		{TricountID: 1, UserID: 1},
		{TricountID: 2, UserID: 1},
		{TricountID: 2, UserID: 2},
		{TricountID: 4, UserID: 1},
		{TricountID: 4, UserID: 2},
		{TricountID: 4, UserID: 3},
		{TricountID: 4, UserID: 4},
	}
	if err := db.Create(&participations).Error; err != nil {
		return err
	}

	operations := []models.Operation{
		{ID: 1, Title: "Colruyt", TricountID: 4, Amount: decimal.New(10000, -2), OperationDate: time.Date(2024, 10, 13, 0, 0, 0, 0, time.UTC), InitiatorID: 2, CreatedAt: time.Date(2024, 10, 13, 19, 9, 18, 0, time.UTC)},
		{ID: 2, Title: "Plein essence", TricountID: 4, Amount: decimal.New(7500, -2), OperationDate: time.Date(2024, 10, 13, 0, 0, 0, 0, time.UTC), InitiatorID: 1, CreatedAt: time.Date(2024, 10, 13, 20, 10, 41, 0, time.UTC)},
		{ID: 3, Title: "Grosses courses LIDL", TricountID: 4, Amount: decimal.New(21247, -2), OperationDate: time.Date(2024, 10, 13, 0, 0, 0, 0, time.UTC), InitiatorID: 3, CreatedAt: time.Date(2024, 10, 13, 21, 23, 49, 0, time.UTC)},
		{ID: 4, Title: "Apéros", TricountID: 4, Amount: decimal.New(3190, -2), OperationDate: time.Date(2024, 10, 13, 0, 0, 0, 0, time.UTC), InitiatorID: 1, CreatedAt: time.Date(2024, 10, 13, 23, 51, 20, 0, time.UTC)},
		{ID: 5, Title: "Boucherie", TricountID: 4, Amount: decimal.New(2550, -2), OperationDate: time.Date(2024, 10, 26, 0, 0, 0, 0, time.UTC), InitiatorID: 2, CreatedAt: time.Date(2024, 10, 26, 9, 59, 56, 0, time.UTC)},
		{ID: 6, Title: "Loterie", TricountID: 4, Amount: decimal.New(3500, -2), OperationDate: time.Date(2024, 10, 26, 0, 0, 0, 0, time.UTC), InitiatorID: 1, CreatedAt: time.Date(2024, 10, 26, 10, 2, 24, 0, time.UTC)},
	}
	if err := db.Create(&operations).Error; err != nil {
		return err
	}

	repartitions := []models.Repartition{
		{OperationID: 1, UserID: 1, Weight: 1},
		{OperationID: 1, UserID: 2, Weight: 1},
		{OperationID: 2, UserID: 1, Weight: 1},
		{OperationID: 2, UserID: 2, Weight: 1},
		{OperationID: 3, UserID: 1, Weight: 2},
		{OperationID: 3, UserID: 2, Weight: 1},
		{OperationID: 3, UserID: 3, Weight: 1},
		{OperationID: 4, UserID: 1, Weight: 1},
		{OperationID: 4, UserID: 2, Weight: 2},
		{OperationID: 4, UserID: 3, Weight: 3},
		{OperationID: 5, UserID: 1, Weight: 2},
		{OperationID: 5, UserID: 2, Weight: 1},
		{OperationID: 5, UserID: 3, Weight: 1},
		{OperationID: 6, UserID: 1, Weight: 1},
		{OperationID: 6, UserID: 3, Weight: 1},
	}
	if err := db.Create(&repartitions).Error; err != nil {
		return err
	}

	log.Println("✅ Database seeding completed")
	return nil
}
