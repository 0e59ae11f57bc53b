// Package db opens the database and keeps the schema current.
package db

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/diewo77/go-crm/internal/auth"
	"github.com/diewo77/go-crm/internal/models"
)

// Connect opens the database selected by the DSN and migrates the
// schema. PostgreSQL DSNs go through the postgres driver; everything
// else is a SQLite file path.
func Connect(dsn string, log *zap.Logger) (*gorm.DB, error) {
	dsn = NormalizeDSN(dsn)
	if dsn == "" {
		return nil, errors.New("DATABASE_DSN est vide, vérifiez la configuration de l'environnement")
	}

	cfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}
	var (
		conn *gorm.DB
		err  error
	)
	if IsPostgresDSN(dsn) {
		conn, err = gorm.Open(postgres.Open(dsn), cfg)
	} else {
		conn, err = gorm.Open(sqlite.Open(dsn), cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("connexion à la base: %w", err)
	}

	if err := migrate(conn); err != nil {
		return nil, err
	}
	if log != nil {
		log.Debug("database ready", zap.Bool("postgres", IsPostgresDSN(dsn)))
	}
	return conn, nil
}

func migrate(conn *gorm.DB) error {
	for _, m := range []any{
		&models.User{}, &models.Client{}, &models.Contrat{}, &models.Event{},
	} {
		if err := conn.AutoMigrate(m); err != nil {
			return fmt.Errorf("automigrate %T: %w", m, err)
		}
	}
	return nil
}

// Bootstrap creates the initial ADMIN account when the users table is
// empty, so a fresh install can log in and create the real accounts.
func Bootstrap(conn *gorm.DB, hasher auth.PasswordHasher, email, password string, log *zap.Logger) error {
	var count int64
	if err := conn.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	adminEmail, err := models.NewEmail(email)
	if err != nil {
		return fmt.Errorf("email administrateur: %w", err)
	}
	hashed, err := hasher.HashPassword(password)
	if err != nil {
		return err
	}
	admin := models.User{
		FullName: "Administrateur",
		Email:    adminEmail,
		Password: hashed,
		Role:     models.RoleAdmin,
	}
	if err := conn.Create(&admin).Error; err != nil {
		return err
	}
	if log != nil {
		log.Info("compte administrateur initial créé", zap.String("email", email))
	}
	return nil
}
