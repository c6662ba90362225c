package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Inventario-pos/internal/domain"
)

func (a *app) migrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Crea o actualiza las tablas",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Abrir el almacenamiento aplica las migraciones.
			if _, err := a.services(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "migraciones aplicadas (%s)\n", a.storage.Driver)
			return nil
		},
	}
}

func (a *app) seedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Carga el catálogo de ejemplo (idempotente)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := a.services(cmd.Context())
			if err != nil {
				return err
			}
			res, err := svc.Seed.Run(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "categorías nuevas: %d, productos nuevos: %d\n",
				res.CategoriesInserted, res.ProductsInserted)
			return nil
		},
	}
}

func (a *app) lowStockCommand() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "low-stock",
		Short: "Lista productos con stock en o por debajo del mínimo",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := a.services(cmd.Context())
			if err != nil {
				return err
			}
			list, err := svc.Products.ListLowStock(cmd.Context())
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), list)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tCÓDIGO\tPRODUCTO\tSTOCK\tMÍNIMO")
			for _, p := range list.Items {
				barcode := ""
				if p.Barcode != nil {
					barcode = *p.Barcode
				}
				fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%d\n", p.ID, barcode, p.Name, p.CurrentStock, p.MinStock)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "salida JSON")
	return cmd
}

func (a *app) auditCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "audit <product-id>",
		Short: "Compara el stock del producto con su libro de movimientos",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || id <= 0 {
				return domain.Invalid("id de producto inválido: %q", args[0])
			}
			svc, err := a.services(cmd.Context())
			if err != nil {
				return err
			}
			res, err := svc.Engine.Audit(cmd.Context(), id)
			if err != nil {
				return err
			}
			if err := writeJSON(cmd.OutOrStdout(), res); err != nil {
				return err
			}
			if !res.Consistent {
				return fmt.Errorf("%w: stock %d, libro %d", domain.ErrConflict, res.CurrentStock, res.LedgerStock)
			}
			return nil
		},
	}
}

func (a *app) reportCommand() *cobra.Command {
	report := &cobra.Command{
		Use:   "report",
		Short: "Reportes de ventas",
	}
	report.AddCommand(&cobra.Command{
		Use:   "today",
		Short: "Ventas, ingresos y ticket promedio de hoy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := a.services(cmd.Context())
			if err != nil {
				return err
			}
			stats, err := svc.Reports.StatisticsToday(cmd.Context())
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), stats)
		},
	})

	var from, to string
	daily := &cobra.Command{
		Use:   "daily",
		Short: "Ingresos por día (AAAA-MM-DD, ambos incluidos)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			now := time.Now()
			start, err := parseDay(from, now.AddDate(0, 0, -6))
			if err != nil {
				return err
			}
			end, err := parseDay(to, now)
			if err != nil {
				return err
			}
			svc, err := a.services(cmd.Context())
			if err != nil {
				return err
			}
			rows, err := svc.Reports.DailyRevenue(cmd.Context(), start, end)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', tabwriter.AlignRight)
			fmt.Fprintln(tw, "DÍA\tVENTAS\tINGRESOS\t")
			for _, r := range rows {
				fmt.Fprintf(tw, "%s\t%d\t%s\t\n", r.Day, r.TotalSales, r.Revenue.StringFixed(2))
			}
			return tw.Flush()
		},
	}
	daily.Flags().StringVar(&from, "from", "", "primer día (por defecto hace 6 días)")
	daily.Flags().StringVar(&to, "to", "", "último día (por defecto hoy)")
	report.AddCommand(daily)
	return report
}

func hashPasswordCommand() *cobra.Command {
	var cost int
	cmd := &cobra.Command{
		Use:   "hash-password <password>",
		Short: "Genera el hash bcrypt para OPERATOR_PASSWORD_HASH",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := bcrypt.GenerateFromPassword([]byte(args[0]), cost)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(hash))
			return nil
		},
	}
	cmd.Flags().IntVar(&cost, "cost", bcrypt.DefaultCost, "costo bcrypt")
	return cmd
}

func parseDay(s string, def time.Time) (time.Time, error) {
	if s == "" {
		return def, nil
	}
	t, err := time.ParseInLocation(time.DateOnly, s, time.Local)
	if err != nil {
		return time.Time{}, domain.Invalid("fecha %q: use AAAA-MM-DD", s)
	}
	return t, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
