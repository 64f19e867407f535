package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/guestbook-api/internal/config"
	"github.com/guestbook-api/internal/database"
	"github.com/guestbook-api/pkg/logger"
)

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: migrate [-path DIR] <command>

Commands:
  up          apply all pending migrations
  down        roll back the last migration
  goto N      migrate up or down to version N
  version     print the current schema version

`)
	flag.PrintDefaults()
}

func main() {
	path := flag.String("path", "", "migrations directory (overrides MIGRATIONS_PATH)")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}

	log := logger.New()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	migrationsPath := cfg.Database.MigrationsPath
	if *path != "" {
		migrationsPath = *path
	}

	db, err := database.New(&cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	switch flag.Arg(0) {
	case "up":
		err = db.RunMigrations(migrationsPath)
	case "down":
		err = db.MigrateDown(migrationsPath)
	case "goto":
		var version uint64
		version, err = strconv.ParseUint(flag.Arg(1), 10, 32)
		if err != nil {
			log.Fatal().Str("arg", flag.Arg(1)).Msg("goto needs a numeric version")
		}
		err = db.MigrateToVersion(migrationsPath, uint(version))
	case "version":
		var (
			version uint
			dirty   bool
		)
		version, dirty, err = db.MigrationVersion(migrationsPath)
		if err == nil {
			fmt.Printf("version=%d dirty=%t\n", version, dirty)
		}
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		log.Fatal().Err(err).Str("command", flag.Arg(0)).Msg("Migration failed")
	}
}
