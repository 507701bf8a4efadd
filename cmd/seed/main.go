// Command seed loads a demo dataset: the two campus restaurants, a menu for
// each, and one account per role. All demo accounts use the password
// "espeat2025".
package main

import (
	"fmt"
	"os"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/esp-dakar/espeat-api/internal/config"
	"github.com/esp-dakar/espeat-api/internal/db"
	"github.com/esp-dakar/espeat-api/internal/logger"
	"github.com/esp-dakar/espeat-api/internal/repository/dao"
)

const demoPassword = "espeat2025"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "seed failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	conf, err := config.Load("./cmd/app/config.yml")
	if err != nil {
		return fmt.Errorf("config.Load -> %w", err)
	}

	if err = logger.Init(conf.API.Environment); err != nil {
		return fmt.Errorf("logger.Init -> %w", err)
	}

	var postgresDB *gorm.DB
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		postgresDB, err = db.OpenPostgresWithURL(dbURL)
	} else {
		postgresDB, err = db.OpenPostgres(conf.Postgres)
	}
	if err != nil {
		return fmt.Errorf("db.OpenPostgres -> %w", err)
	}

	return postgresDB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&dao.Restaurant{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			zap.L().Info("database already seeded, nothing to do")

			return nil
		}

		restaurants, err := seedRestaurants(tx)
		if err != nil {
			return fmt.Errorf("seedRestaurants -> %w", err)
		}

		if err := seedMenus(tx, restaurants); err != nil {
			return fmt.Errorf("seedMenus -> %w", err)
		}

		if err := seedUsers(tx); err != nil {
			return fmt.Errorf("seedUsers -> %w", err)
		}

		zap.L().Info("demo dataset loaded")

		return nil
	})
}

func seedRestaurants(tx *gorm.DB) ([]dao.Restaurant, error) {
	restaurants := []dao.Restaurant{
		{
			Name:         "Restaurant ESP",
			Location:     "UCAD - École Supérieure Polytechnique",
			MorningHours: "06h-10h",
			MiddayHours:  "12h-14h",
			EveningHours: "19h-21h",
		},
		{
			Name:         "Restaurant ENSEPT",
			Location:     "UCAD - École Normale Supérieure",
			MorningHours: "06h-10h",
			MiddayHours:  "12h-14h",
			EveningHours: "19h-21h",
		},
	}

	if err := tx.Create(&restaurants).Error; err != nil {
		return nil, err
	}

	return restaurants, nil
}

func seedMenus(tx *gorm.DB, restaurants []dao.Restaurant) error {
	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	breakfast := []string{"Pain + Lait + Stick de café + Beurre/Mayonnaise + Fromage/Chocolat"}

	menus := []dao.Menu{
		{
			RestaurantID: restaurants[0].ID,
			Date:         today,
			NdekkiDishes: breakfast,
			RepasDishes:  []string{"Thiéboudienne", "Yassa Poulet", "Mafé Bœuf"},
		},
		{
			RestaurantID: restaurants[1].ID,
			Date:         today,
			NdekkiDishes: breakfast,
			RepasDishes:  []string{"Soupou Kanja", "Domoda", "Caldou Poisson"},
		},
	}

	return tx.Create(&menus).Error
}

func seedUsers(tx *gorm.DB) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	studentNo1 := "ESP2023001"
	studentNo2 := "ESP2023002"

	users := []dao.User{
		{
			Email:         "aminata.diop@esp.sn",
			Password:      string(hash),
			FirstName:     "Aminata",
			LastName:      "Diop",
			Role:          "student",
			StudentNumber: &studentNo1,
			NdekkiBalance: 5,
			RepasBalance:  3,
		},
		{
			Email:         "moussa.fall@esp.sn",
			Password:      string(hash),
			FirstName:     "Moussa",
			LastName:      "Fall",
			Role:          "student",
			StudentNumber: &studentNo2,
			NdekkiBalance: 2,
			RepasBalance:  8,
		},
		{
			Email:     "fatou.ndiaye@esp.sn",
			Password:  string(hash),
			FirstName: "Fatou",
			LastName:  "Ndiaye",
			Role:      "agent",
		},
		{
			Email:     "ibrahima.sarr@esp.sn",
			Password:  string(hash),
			FirstName: "Ibrahima",
			LastName:  "Sarr",
			Role:      "manager",
		},
		{
			Email:     "awa.ba@esp.sn",
			Password:  string(hash),
			FirstName: "Awa",
			LastName:  "Ba",
			Role:      "restaurateur",
		},
	}

	return tx.Create(&users).Error
}
