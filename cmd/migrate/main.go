// migrate applies the embedded SQL migrations; run with go run ./cmd/migrate.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/sethvargo/go-envconfig"

	"github.com/salon/booking-api/internal/infrastructure/db/migrate"
	"github.com/salon/booking-api/internal/pkg/config"
)

func main() {
	direction := flag.String("direction", migrate.DirectionUp, "Migration direction: up or down")
	flag.Parse()

	cfg, err := config.LoadFrom(context.Background(), envconfig.OsLookuper())
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	if err := migrate.Run(cfg.Postgres.DSN, cfg.Postgres.Schema, *direction); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			return
		}
		fmt.Fprintln(os.Stderr, "migrate:", err)
		os.Exit(1)
	}
}
