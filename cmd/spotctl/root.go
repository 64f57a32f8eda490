package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/alexivanou/padel-spots-api/internal/config"
	"github.com/alexivanou/padel-spots-api/internal/database"
	"github.com/alexivanou/padel-spots-api/internal/logging"
	"github.com/alexivanou/padel-spots-api/internal/repository"
	"github.com/alexivanou/padel-spots-api/internal/service"
	"github.com/spf13/cobra"
)

// app carries what every subcommand needs
type app struct {
	svc        service.ServiceInterface
	out        io.Writer
	outputJSON bool
	closeFn    func() error
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "spotctl",
		Short: "Browse and manage posted padel spots",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if a.svc != nil {
				return nil
			}
			return a.open(cmd.Context())
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.closeFn != nil {
				return a.closeFn()
			}
			return nil
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().BoolVar(&a.outputJSON, "json", false, "Output JSON")
	root.SetOut(a.out)

	root.AddCommand(searchCmd(a))
	root.AddCommand(showCmd(a))
	root.AddCommand(deleteCmd(a))
	return root
}

// open connects to the configured database and builds the service
func (a *app) open(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := logging.NewDevelopment("warn")
	if err != nil {
		return err
	}

	db, err := database.Connect(ctx, cfg.DB)
	if err != nil {
		return err
	}
	if cfg.DB.IsMemory() {
		if err := database.Migrate(db, cfg.DB, "migrations"); err != nil {
			db.Close()
			return err
		}
	}

	repos := repository.NewRepositories(db, cfg.DB.Type)
	a.svc = service.NewService(repos.Spot, logger)
	a.closeFn = func() error {
		_ = logger.Sync()
		return db.Close()
	}
	return nil
}

func (a *app) writeJSON(v any) error {
	encoder := json.NewEncoder(a.out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
