// Package cli implementa posctl: tareas de operación del punto de venta por línea de comandos
// (migraciones, catálogo de ejemplo, importación, auditoría y reportes rápidos).
package cli

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jhoicas/Inventario-pos/internal/bootstrap"
	"github.com/jhoicas/Inventario-pos/pkg/config"
	"github.com/jhoicas/Inventario-pos/pkg/logger"
)

// Opener abre almacenamiento y servicios. Los tests inyectan uno sobre SQLite en memoria.
type Opener func(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*bootstrap.Storage, *bootstrap.Services, error)

// DefaultOpener usa el motor configurado (DB_DRIVER).
func DefaultOpener(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*bootstrap.Storage, *bootstrap.Services, error) {
	st, err := bootstrap.OpenStorage(ctx, cfg.DB, log)
	if err != nil {
		return nil, nil, err
	}
	return st, bootstrap.NewServices(cfg, st, log), nil
}

// app estado compartido entre subcomandos.
type app struct {
	open    Opener
	cfg     *config.Config
	log     zerolog.Logger
	storage *bootstrap.Storage
	svc     *bootstrap.Services
}

// NewRootCommand construye posctl con todos sus subcomandos.
func NewRootCommand(open Opener) *cobra.Command {
	a := &app{open: open}
	var driver, sqlitePath, logLevel string

	root := &cobra.Command{
		Use:           "posctl",
		Short:         "Operación del punto de venta (inventario y ventas)",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if driver != "" {
				cfg.DB.Driver = driver
			}
			if sqlitePath != "" {
				cfg.DB.SQLitePath = sqlitePath
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			a.cfg = cfg
			a.log = logger.New(logger.Config{Env: cfg.App.Env, Level: logLevel, Out: os.Stderr}).Zerolog()
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) { a.close() },
	}
	root.PersistentFlags().StringVar(&driver, "db-driver", "", "motor de base de datos: sqlite | postgres (por defecto DB_DRIVER)")
	root.PersistentFlags().StringVar(&sqlitePath, "sqlite-path", "", "archivo SQLite (por defecto SQLITE_PATH)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "nivel de log")

	root.AddCommand(
		a.migrateCommand(),
		a.seedCommand(),
		a.importCommand(),
		a.lowStockCommand(),
		a.auditCommand(),
		a.reportCommand(),
		hashPasswordCommand(),
	)
	a.closeOnError(root)
	return root
}

// closeOnError envuelve cada RunE: cobra no ejecuta PersistentPostRun cuando el comando falla.
func (a *app) closeOnError(cmd *cobra.Command) {
	for _, c := range cmd.Commands() {
		a.closeOnError(c)
	}
	run := cmd.RunE
	if run == nil {
		return
	}
	cmd.RunE = func(c *cobra.Command, args []string) error {
		err := run(c, args)
		if err != nil {
			a.close()
		}
		return err
	}
}

func (a *app) close() {
	if a.storage != nil {
		a.storage.Close()
		a.storage, a.svc = nil, nil
	}
}

// services abre el almacenamiento una sola vez por ejecución.
func (a *app) services(ctx context.Context) (*bootstrap.Services, error) {
	if a.svc != nil {
		return a.svc, nil
	}
	st, svc, err := a.open(ctx, a.cfg, a.log)
	if err != nil {
		return nil, err
	}
	a.storage, a.svc = st, svc
	return svc, nil
}
