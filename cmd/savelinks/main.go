package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/dmitrijs2005/savelinks/internal/buildinfo"
	shell "github.com/dmitrijs2005/savelinks/internal/cli"
	"github.com/dmitrijs2005/savelinks/internal/config"
	"github.com/dmitrijs2005/savelinks/internal/cryptox"
	"github.com/dmitrijs2005/savelinks/internal/logging"
	"github.com/dmitrijs2005/savelinks/internal/services"
	"github.com/dmitrijs2005/savelinks/internal/storage"
)

// env bundles what every subcommand needs once flags are parsed.
type env struct {
	cfg      *config.Config
	log      logging.Logger
	st       *storage.Storage
	security config.SecurityConfig
	closeLog func() error
}

func (e *env) Close() {
	if e.st != nil {
		if err := e.st.Close(); err != nil {
			e.log.Error(context.Background(), "failed to close storage", "error", err)
		}
	}
	_ = e.closeLog()
}

func overridesFromFlags(cmd *cli.Command) []config.Override {
	var o []config.Override
	if cmd.IsSet("driver") {
		v := cmd.String("driver")
		o = append(o, func(c *config.Config) { c.Storage.Driver = v })
	}
	if cmd.IsSet("dsn") {
		v := cmd.String("dsn")
		o = append(o, func(c *config.Config) { c.Storage.DSN = v })
	}
	if cmd.IsSet("log-level") {
		v := cmd.String("log-level")
		o = append(o, func(c *config.Config) { c.Log.Level = v })
	}
	if cmd.IsSet("log-file") {
		v := cmd.String("log-file")
		o = append(o, func(c *config.Config) { c.Log.File = v })
	}
	return o
}

// setup loads the config, builds the logger, opens storage and pins the
// vault's key derivation parameters.
func setup(ctx context.Context, cmd *cli.Command) (*env, error) {
	cfg, err := config.Load(cmd.String("config"), overridesFromFlags(cmd)...)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	zl, closeLog, err := logging.New(cfg.Log, os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("failed to init logger: %w", err)
	}
	log := zl.With("session", uuid.NewString())
	e := &env{cfg: cfg, log: log, closeLog: closeLog}

	log.Info(ctx, "starting", "version", buildinfo.Version(), "driver", cfg.Storage.Driver)

	e.st, err = storage.Open(ctx, cfg.Storage, log)
	if err != nil {
		log.Error(ctx, "failed to open storage", "error", err)
		e.Close()
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	e.security, err = services.ResolveSecurity(ctx, e.st.Metadata, cfg.Security, log)
	if err != nil {
		e.Close()
		return nil, err
	}
	return e, nil
}

func runShell(ctx context.Context, cmd *cli.Command) error {
	e, err := setup(ctx, cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	eng := cryptox.New(e.security.EngineOptions()...)
	app := shell.NewApp(
		services.NewAuthService(e.st.Users, eng, e.log),
		services.NewLinkService(e.st.Links, eng, e.cfg.Search.Workers, e.log),
		e.log, os.Stdin, os.Stdout,
	)
	app.Run(ctx)
	return nil
}

func runMigrate(ctx context.Context, cmd *cli.Command) error {
	e, err := setup(ctx, cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	fmt.Fprintf(os.Stdout, "%s storage at %s is up to date\n", e.cfg.Storage.Driver, e.cfg.Storage.DSN)
	return nil
}

func main() {
	cmd := &cli.Command{
		Name:   "savelinks",
		Usage:  "Password-protected, encrypted link store",
		Action: runShell,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a YAML or JSON config file",
				Sources: cli.EnvVars("SAVELINKS_CONFIG"),
			},
			&cli.StringFlag{
				Name:    "driver",
				Usage:   "Storage driver: sqlite, postgres or bolt",
				Sources: cli.EnvVars("SAVELINKS_DRIVER"),
			},
			&cli.StringFlag{
				Name:    "dsn",
				Usage:   "Database file path or postgres connection string",
				Sources: cli.EnvVars("SAVELINKS_DSN"),
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "debug, info, warn or error",
			},
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "Path to the rotated JSON log file",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "migrate",
				Usage:  "Create or upgrade the storage schema and exit",
				Action: runMigrate,
			},
			{
				Name:  "version",
				Usage: "Print build information",
				Action: func(context.Context, *cli.Command) error {
					buildinfo.PrintBuildData(os.Stdout)
					return nil
				},
			},
		},
	}

	ctx := context.Background()
	if err := cmd.Run(ctx, os.Args); err != nil {
		logging.NewBootstrap(os.Stderr).Error(ctx, "application error", "error", err)
		os.Exit(1)
	}
}
