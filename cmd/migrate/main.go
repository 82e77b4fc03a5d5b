package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/shopyard/shopyard-backend/pkg/config"
	"github.com/shopyard/shopyard-backend/pkg/db"
	"github.com/shopyard/shopyard-backend/pkg/logger"
	"github.com/shopyard/shopyard-backend/pkg/migrate"
)

const usage = `usage: migrate [flags] <command>

commands:
  up          apply all pending migrations
  down        roll back the most recent migration
  status      print the migration status table
  to          migrate up or down to -version (YYYYMMDDHHMMSS)
  new         scaffold a SQL migration named by -name
  validate    lint filenames and goose markers in the migrations dir

flags:
`

func main() {
	dir := flag.String("dir", migrate.DefaultDir, "migrations directory")
	name := flag.String("name", "", "migration name (new)")
	version := flag.String("version", "", "target schema version (to)")
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	command := flag.Arg(0)
	if command == "" {
		flag.Usage()
		os.Exit(2)
	}

	// new/validate only touch the filesystem, so they skip config and DB setup
	// entirely. That keeps them usable on a laptop with no database running.
	switch command {
	case "new":
		if *name == "" {
			fatalf("the new command needs -name")
		}
		path, err := migrate.CreateSQLMigration(*dir, *name)
		if err != nil {
			fatalf("scaffold migration: %v", err)
		}
		fmt.Println(path)
		return
	case "validate":
		if err := migrate.ValidateDir(*dir); err != nil {
			fatalf("validate %s: %v", *dir, err)
		}
		fmt.Println("migrations ok")
		return
	}

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fatalf("load config: %v", err)
	}

	logg := logger.New(logger.Options{
		ServiceName: "migrate",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":     cfg.App.Env,
		"command": command,
		"dir":     *dir,
	})

	client, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "database connection failed", err)
		os.Exit(1)
	}
	defer client.Close()

	sqlDB, err := client.DB().DB()
	if err != nil {
		logg.Error(ctx, "unwrapping sql.DB", err)
		os.Exit(1)
	}

	switch command {
	case "up", "down", "status":
		err = migrate.Run(ctx, sqlDB, *dir, command)
	case "to":
		if *version == "" {
			fatalf("the to command needs -version")
		}
		err = migrate.MigrateToVersion(ctx, sqlDB, *dir, *version)
	default:
		fatalf("unknown command %q", command)
	}
	if err != nil {
		logg.Error(ctx, "migration failed", err)
		os.Exit(1)
	}
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
