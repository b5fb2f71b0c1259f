package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	sitebuilder "github.com/goliatone/go-sitebuilder"
	"github.com/goliatone/go-sitebuilder/internal/storage"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatalf("sitebuilder migrator: %v", err)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("sitebuilder-migrator", flag.ContinueOnError)
	configPath := fs.String("config", "", "Path to a YAML config file (environment only when empty)")
	envFile := fs.String("env-file", ".env", "Optional dotenv file loaded before the environment is read")
	down := fs.Bool("down", false, "Roll back every migration instead of applying them")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := sitebuilder.LoadConfig(*configPath, *envFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := storage.Open(cfg.Storage)
	if err != nil {
		return err
	}
	defer db.Close()

	changed, err := storage.Migrate(db.DB, cfg.Storage.Driver, sitebuilder.GetMigrationsFS(), storage.MigrationsDir, *down)
	if err != nil {
		return err
	}
	if !changed {
		fmt.Fprintln(os.Stdout, "no migrations to apply")
		return nil
	}
	if *down {
		fmt.Fprintln(os.Stdout, "migrations rolled back")
	} else {
		fmt.Fprintln(os.Stdout, "migrations applied")
	}
	return nil
}
