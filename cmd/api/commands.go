package main

import (
	"fmt"

	"dateTracker/internal/app"
	"dateTracker/internal/config"
	"dateTracker/internal/logger"
	"dateTracker/internal/migrations"
	"dateTracker/internal/seed"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type cliState struct {
	configPath string
	cfg        *config.Config
}

func newRootCommand() *cobra.Command {
	state := &cliState{}

	root := &cobra.Command{
		Use:   "api",
		Short: "Date difference and task HTTP service",
		Long: `Serves GET /api/calculate-date and the /api/tasks CRUD resource.

CONFIGURATION:
  config.yml in the working directory (or --config) is read first;
  environment variables override it:
    PORT, APP_ENV, DB_HOST, DB_PORT, DB_NAME, DB_USER, DB_PASSWORD,
    DB_SSLMODE, REPOSITORY_TYPE (postgres|sqlite|inmemory), SQLITE_PATH,
    LOG_FILE, RATE_LIMIT_RPM`,
		SilenceUsage:      true,
		PersistentPreRunE: state.load,
		PersistentPostRun: func(cmd *cobra.Command, args []string) { logger.Sync() },
		RunE:              state.serve,
	}
	root.PersistentFlags().StringVar(&state.configPath, "config", "", "path to a YAML config file")

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the HTTP server (default)",
			Args:  cobra.NoArgs,
			RunE:  state.serve,
		},
		newMigrateCommand(state),
		&cobra.Command{
			Use:   "seed",
			Short: "Insert the sample tasks into an empty store",
			Args:  cobra.NoArgs,
			RunE:  state.seed,
		},
	)
	return root
}

func newMigrateCommand(state *cliState) *cobra.Command {
	migrate := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the PostgreSQL schema",
	}
	migrate.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply pending migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := state.requirePostgres(); err != nil {
					return err
				}
				if err := migrations.Up(state.cfg.Database.DatabaseURL()); err != nil {
					return err
				}
				logger.Info("CLI: migrations applied")
				return nil
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back every migration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := state.requirePostgres(); err != nil {
					return err
				}
				if err := migrations.Down(state.cfg.Database.DatabaseURL()); err != nil {
					return err
				}
				logger.Info("CLI: migrations rolled back")
				return nil
			},
		},
	)
	return migrate
}

func (s *cliState) load(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(s.configPath)
	if err != nil {
		return err
	}

	var opts []logger.Option
	if cfg.Logging.File != "" {
		opts = append(opts, logger.WithFile(cfg.Logging.File, cfg.Logging.MaxSizeMB, cfg.Logging.MaxAgeDays))
	}
	if err := logger.Init(cfg.IsDevelopment(), opts...); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	s.cfg = cfg
	return nil
}

func (s *cliState) serve(cmd *cobra.Command, args []string) error {
	a := app.New(s.cfg)
	if err := a.Init(cmd.Context()); err != nil {
		logger.Error("CLI: failed to start server", err)
		return err
	}
	return a.Run(cmd.Context())
}

func (s *cliState) seed(cmd *cobra.Command, args []string) error {
	repo, closeStore, err := app.OpenStore(cmd.Context(), s.cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	n, err := seed.Tasks(cmd.Context(), repo)
	if err != nil {
		return err
	}
	logger.Info("CLI: seeding finished", zap.Int("created", n))
	return nil
}

func (s *cliState) requirePostgres() error {
	if s.cfg.Repository.Type != config.RepositoryPostgres {
		return fmt.Errorf("migrations apply to the postgres repository, not %q", s.cfg.Repository.Type)
	}
	return nil
}
