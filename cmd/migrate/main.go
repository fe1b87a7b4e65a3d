package main

import (
	"context"
	"fmt"
	"os"

	"github.com/kosbot/kosbot-api/internal/config"
	"github.com/kosbot/kosbot-api/internal/repository/postgres"
	"github.com/kosbot/kosbot-api/migrations"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	db, err := postgres.New(cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	fmt.Printf("Connected to %s database\n", cfg.Database.Driver)

	applied, err := postgres.RunMigrations(context.Background(), db, migrations.GetFS())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Migration failed: %v\n", err)
		os.Exit(1)
	}

	if len(applied) == 0 {
		fmt.Println("No pending migrations")
		return
	}
	for _, name := range applied {
		fmt.Printf("  applied %s\n", name)
	}
	fmt.Printf("%d migration(s) applied\n", len(applied))
}
