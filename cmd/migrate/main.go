package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"clinic-backoffice/cmd/bootstrap"
	"clinic-backoffice/config"
	"clinic-backoffice/internal/infrastructure/database"

	"github.com/golang-migrate/migrate/v4"
	"github.com/sirupsen/logrus"
)

const usage = `usage: migrate [-source file://migrations] <command>

commands:
  up           apply all pending migrations
  down [n]     roll back n migrations (all when n is omitted)
  force <v>    mark the schema as version v without running anything
  version      print the current schema version`

func main() {
	bootstrap.SetupLogger()

	source := flag.String("source", "", "golang-migrate source URL, embedded migrations when empty")
	flag.Usage = func() { fmt.Fprintln(os.Stderr, usage) }
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.NewPostgresConnection(cfg.DB, cfg.App.Env)
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}

	sourceURL := *source
	if sourceURL == "" {
		sourceURL = cfg.DB.MigrationsPath
	}

	m, err := database.NewMigrator(db, sourceURL)
	if err != nil {
		logrus.Fatalf("Failed to create migrator: %v", err)
	}
	defer m.Close()

	if err := run(m, flag.Args()); err != nil {
		logrus.Fatalf("Migration failed: %v", err)
	}
}

func run(m *migrate.Migrate, args []string) error {
	switch args[0] {
	case "up":
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return err
		}
	case "down":
		if len(args) > 1 {
			n, err := strconv.Atoi(args[1])
			if err != nil || n < 1 {
				return fmt.Errorf("down expects a positive step count, got %q", args[1])
			}
			if err := m.Steps(-n); err != nil && !errors.Is(err, migrate.ErrNoChange) {
				return err
			}
			break
		}
		if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return err
		}
	case "force":
		if len(args) < 2 {
			return errors.New("force expects a version")
		}
		version, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid version %q", args[1])
		}
		if err := m.Force(version); err != nil {
			return err
		}
	case "version":
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}

	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		logrus.Info("Database has no migrations applied")
		return nil
	}
	if err != nil {
		return err
	}
	logrus.Infof("Database schema at version %d (dirty=%t)", version, dirty)
	return nil
}
