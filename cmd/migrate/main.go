package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"career-guide/internal/config"
	"career-guide/internal/database"
	"career-guide/internal/logger"

	"go.uber.org/zap"
)

func usage() {
	fmt.Fprintf(os.Stderr, "usage: migrate [up | down [-steps N] | version]\n")
	os.Exit(2)
}

func main() {
	if len(os.Args) < 2 {
		usage()
	}
	cmd := os.Args[1]
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	steps := fs.Int("steps", 1, "number of migrations to revert")
	_ = fs.Parse(os.Args[2:])

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	l := logger.Get()
	defer logger.Sync()

	db, err := database.NewSQLXOracleDB(cfg.GetDSN())
	if err != nil {
		l.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	m, err := database.NewEmbeddedMigrator(db)
	if err != nil {
		l.Fatal("Failed to load migrations", zap.Error(err))
	}
	defer m.Close()

	ctx := context.Background()
	switch cmd {
	case "up":
		n, err := m.Up(ctx)
		if err != nil {
			l.Fatal("Failed to run migrations", zap.Error(err))
		}
		l.Info("Migrations applied", zap.Int("count", n))
	case "down":
		n, err := m.Down(ctx, *steps)
		if err != nil {
			l.Fatal("Failed to revert migrations", zap.Error(err))
		}
		l.Info("Migrations reverted", zap.Int("count", n))
	case "version":
		v, dirty, err := m.Version(ctx)
		if err != nil {
			l.Fatal("Failed to read schema version", zap.Error(err))
		}
		l.Info("Schema version", zap.Uint("version", v), zap.Bool("dirty", dirty))
	default:
		usage()
	}
}
