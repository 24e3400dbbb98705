package database

import (
	"time"

	"asset-scan/internal/models"

	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB holds the audit journal. It stays nil when no DSN is configured.
var DB *gorm.DB

const (
	maxAttempts  = 10
	retryBackoff = 2 * time.Second
)

func Init(dsn string) {
	if dsn == "" {
		log.Info("DB_DSN is not set, audit journal disabled")
		return
	}

	var err error
	for i := 1; i <= maxAttempts; i++ {
		log.Infof("trying to connect to DB (attempt %d/%d)...", i, maxAttempts)

		DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Warn),
		})
		if err == nil {
			log.Info("connected to DB successfully")
			break
		}

		log.WithError(err).Warn("failed to connect to DB")
		time.Sleep(retryBackoff)
	}

	if err != nil {
		log.Fatalf("failed to connect to db after %d attempts: %v", maxAttempts, err)
	}

	if err := DB.AutoMigrate(&models.AuditLog{}); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}
}
