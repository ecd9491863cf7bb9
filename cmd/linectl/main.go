// Command linectl runs the line calculators and edits the conversion factor
// table from a shell, against the same store as the dashboard server.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/bitfantasy/linedash/internal/config"
	"github.com/bitfantasy/linedash/internal/line/repository"
	"github.com/bitfantasy/linedash/internal/line/service"
	"github.com/bitfantasy/linedash/internal/line/store"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type rootOptions struct {
	configPath string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "linectl",
		Short:         "Converting line calculators and factor table tools",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "config file (default: configs/config.yaml or ./config.yaml)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log store activity to stderr")

	root.AddCommand(newCalcCmd(opts), newFactorsCmd(opts))
	return root
}

func (o *rootOptions) logger() *zap.Logger {
	if !o.verbose {
		return zap.NewNop()
	}
	l, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return l
}

// errVolatileStore is returned for edits against the in-memory store, which
// is gone when linectl exits.
var errVolatileStore = errors.New("store.driver is memory, edits would be lost on exit: configure a redis, postgres or sqlite store")

// openFactors opens the configured store and returns the factor service on
// top of it. The returned func closes the store. With write set, the memory
// driver is refused.
func (o *rootOptions) openFactors(ctx context.Context, write bool) (*service.FactorService, func(), error) {
	cfg, err := config.LoadFile(o.configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	logger := o.logger()
	kv, err := store.Open(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	if write && kv.Driver == config.DriverMemory {
		kv.Close()
		return nil, nil, errVolatileStore
	}
	repos := repository.NewRepositories(kv, logger)
	svc := service.NewFactorService(repos.Factor, nil, logger.Named("factors"))
	return svc, func() {
		kv.Close()
		logger.Sync()
	}, nil
}
