package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/GoSim-25-26J-441/tracker-gateway/config"
	"github.com/GoSim-25-26J-441/tracker-gateway/internal/bootstrap"
)

var errUsage = errors.New("usage: worker seed | orphans")

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(args []string, out io.Writer) error {
	if len(args) < 1 {
		return errUsage
	}
	cmd := args[0]
	if cmd != "seed" && cmd != "orphans" {
		return fmt.Errorf("unknown command: %s", cmd)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	// The memory store lives only as long as this process.
	if cmd == "seed" && cfg.Store.Driver == config.DriverMemory {
		return fmt.Errorf("seed: STORE_DRIVER=%s does not persist; pick mongo, redis or postgres", config.DriverMemory)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, err := bootstrap.OpenStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("store: %w", err)
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			log.Printf("close store: %v", cerr)
		}
	}()

	switch cmd {
	case "seed":
		err = RunSeed(ctx, store, out)
	case "orphans":
		err = RunOrphans(ctx, store, out)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", cmd, err)
	}
	return nil
}
