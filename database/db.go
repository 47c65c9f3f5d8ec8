package database

import (
	"fmt"
	"os"

	"facturacion-backend/logger"
	"facturacion-backend/models"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func Connect() {
	if err := godotenv.Load(); err != nil {
		logger.L().Warn("no .env file loaded", zap.Error(err))
	}

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		env("DB_HOST", "db"), os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"), env("DB_PORT", "5432"))

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.L().Fatal("could not connect to database", zap.Error(err))
	}
	logger.L().Info("database connected", zap.String("host", env("DB_HOST", "db")))
}

func AutoMigrate() {
	if err := DB.AutoMigrate(
		&models.User{},
		&models.Paciente{},
		&models.Servicio{},
		&models.Producto{},
		&models.Cliente{},
		&models.Descargo{},
		&models.LineaDescargo{},
		&models.Factura{},
		&models.LineaFactura{},
		&models.IdempotencyKey{},
	); err != nil {
		logger.L().Fatal("automigrate failed", zap.Error(err))
	}
}
