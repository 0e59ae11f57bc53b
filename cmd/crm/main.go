package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/diewo77/go-crm/internal/auth"
	"github.com/diewo77/go-crm/internal/cli"
	"github.com/diewo77/go-crm/internal/config"
	"github.com/diewo77/go-crm/internal/db"
	"github.com/diewo77/go-crm/internal/logging"
	"github.com/diewo77/go-crm/internal/policy"
	"github.com/diewo77/go-crm/internal/repository"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Erreur:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()

	log, err := logging.Init(cfg.LogLevel, cfg.LogDev)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer log.Sync()

	// A missing or malformed permission table must stop the process.
	engine, err := policy.Load(cfg.PermissionsFile, log)
	if err != nil {
		return err
	}

	conn, err := db.Connect(cfg.DatabaseDSN, log)
	if err != nil {
		return err
	}

	hasher := auth.BcryptHasher{}
	if err := db.Bootstrap(conn, hasher, cfg.AdminEmail, cfg.AdminPassword, log); err != nil {
		return fmt.Errorf("compte initial: %w", err)
	}

	app := &cli.App{
		Users:    repository.NewGormUserRepository(conn),
		Clients:  repository.NewGormClientRepository(conn),
		Contrats: repository.NewGormContratRepository(conn),
		Events:   repository.NewGormEventRepository(conn),
		Policy:   engine,
		Hasher:   hasher,
		Tokens:   auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration),
		Store:    auth.NewTokenStore(cfg.TokenDir),
		Log:      log,
	}

	root := cli.NewRootCmd(app)
	if err := root.Execute(); err != nil {
		log.Debug("command failed", zap.Error(err))
		return err
	}
	return nil
}
