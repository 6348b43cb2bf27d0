// Command nwp-admin runs one-off maintenance tasks against the database.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"nwptourism/internal/config"
	"nwptourism/internal/infra"
	"nwptourism/internal/repositories"
	"nwptourism/internal/services"
	mem "nwptourism/pkg/memcache"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "nwp-admin",
		Short:         "Maintenance commands for the NWP tourism service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(setupDBCmd(), createAdminCmd())
	return cmd
}

func setupDBCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "setup-db",
		Short: "Create the tables and indexes if they do not exist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := bootstrap()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			db, err := infra.OpenPostgres(cfg.Database)
			if err != nil {
				return err
			}
			defer infra.ClosePostgresql(db, log)

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			if err := infra.EnsureSchema(ctx, db, log); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Database schema is ready.")
			return nil
		},
	}
}

func createAdminCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create-admin <username> <password>",
		Short: "Create an admin user, or reset the password of an existing one",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := bootstrap()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			sqlDB, err := infra.OpenPostgres(cfg.Database)
			if err != nil {
				return err
			}
			defer infra.ClosePostgresql(sqlDB, log)

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			if err := infra.EnsureSchema(ctx, sqlDB, log); err != nil {
				return err
			}

			db, err := infra.OpenGorm(sqlDB)
			if err != nil {
				return err
			}

			admin, err := services.NewAdminService(
				repositories.NewAdminUserRepository(db),
				mem.NewInMemorySessions(),
				services.SessionConfig{Secret: []byte(cfg.Session.Secret), TTL: cfg.Session.TTL},
				log,
			)
			if err != nil {
				return err
			}
			if err := admin.CreateAdmin(ctx, args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Admin user %q is ready.\n", args[0])
			return nil
		},
	}
}

func bootstrap() (config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, err
	}
	log, err := infra.NewLogger(cfg.Log)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, log, nil
}
