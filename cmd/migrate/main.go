package main

import (
	"database/sql"
	"flag"
	"log"
	"os"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"

	"github.com/gymflow/gymflow/internal/config"
	"github.com/gymflow/gymflow/internal/logger"
)

func main() {
	dir := flag.String("dir", "migrations", "directory with migration files")
	flag.Parse()

	command := "up"
	if args := flag.Args(); len(args) > 0 {
		command = args[0]
	}

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	lg, err := logger.NewLogger(cfg)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}

	db, err := sql.Open("postgres", cfg.Postgres.GetDSN())
	if err != nil {
		lg.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		lg.Fatalf("failed to set goose dialect: %v", err)
	}

	lg.Infow("running migrations", "command", command, "dir", *dir, "host", cfg.Postgres.Host)

	switch command {
	case "up":
		err = goose.Up(db, *dir)
	case "down":
		err = goose.Down(db, *dir)
	case "status":
		err = goose.Status(db, *dir)
	case "version":
		err = goose.Version(db, *dir)
	default:
		lg.Errorf("unknown command: %s", command)
		os.Exit(1)
	}
	if err != nil {
		lg.Fatalf("migration failed: %v", err)
	}
}
