package cli

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/Inventario-pos/internal/application/dto"
	"github.com/jhoicas/Inventario-pos/internal/domain"
)

// Columnas esperadas del CSV de productos (con fila de encabezado).
var importColumns = []string{"barcode", "name", "cost_price", "sale_price", "stock"}

// ImportResult resumen de una importación.
type ImportResult struct {
	Created    int
	Duplicated int
}

func (a *app) importCommand() *cobra.Command {
	var (
		latin1 bool
		comma  string
	)
	cmd := &cobra.Command{
		Use:   "import <productos.csv>",
		Short: "Importa productos desde CSV (barcode,name,cost_price,sale_price,stock)",
		Long: "Importa productos desde un CSV con encabezado. Los códigos de barras ya existentes se omiten.\n" +
			"El stock de cada fila entra al libro como \"stock inicial\".",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sep, _ := utf8.DecodeRuneInString(comma)
			if sep == utf8.RuneError || len([]rune(comma)) != 1 {
				return domain.Invalid("--comma debe ser un único carácter")
			}
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			var r io.Reader = f
			if latin1 {
				r = transform.NewReader(f, charmap.ISO8859_1.NewDecoder())
			}
			rows, err := readProductRows(r, sep)
			if err != nil {
				return err
			}
			svc, err := a.services(cmd.Context())
			if err != nil {
				return err
			}
			var res ImportResult
			for _, row := range rows {
				_, err := svc.Products.Create(cmd.Context(), row.req)
				switch {
				case errors.Is(err, domain.ErrDuplicate):
					res.Duplicated++
					a.log.Warn().Int("line", row.line).Str("barcode", *row.req.Barcode).Msg("código de barras existente, se omite")
				case err != nil:
					return fmt.Errorf("línea %d: %w", row.line, err)
				default:
					res.Created++
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "productos creados: %d, omitidos (duplicados): %d\n", res.Created, res.Duplicated)
			return nil
		},
	}
	cmd.Flags().BoolVar(&latin1, "latin1", false, "el archivo está en ISO-8859-1")
	cmd.Flags().StringVar(&comma, "comma", ",", "separador de columnas")
	return cmd
}

type productRow struct {
	line int
	req  dto.CreateProductRequest
}

// readProductRows valida encabezado y tipos antes de tocar la base.
func readProductRows(r io.Reader, comma rune) ([]productRow, error) {
	cr := csv.NewReader(r)
	cr.Comma = comma
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, domain.Invalid("csv sin encabezado: %v", err)
	}
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	for _, c := range importColumns {
		if _, ok := idx[c]; !ok {
			return nil, domain.Invalid("falta la columna %q", c)
		}
	}

	var out []productRow
	line := 1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, domain.Invalid("línea %d: %v", line, err)
		}
		row, err := parseProductRow(rec, idx)
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		out = append(out, productRow{line: line, req: row})
	}
	return out, nil
}

func parseProductRow(rec []string, idx map[string]int) (dto.CreateProductRequest, error) {
	get := func(col string) string { return strings.TrimSpace(rec[idx[col]]) }

	barcode := get("barcode")
	if barcode == "" {
		return dto.CreateProductRequest{}, domain.Invalid("barcode vacío")
	}
	cost, err := decimal.NewFromString(get("cost_price"))
	if err != nil {
		return dto.CreateProductRequest{}, domain.Invalid("cost_price %q", get("cost_price"))
	}
	price, err := decimal.NewFromString(get("sale_price"))
	if err != nil {
		return dto.CreateProductRequest{}, domain.Invalid("sale_price %q", get("sale_price"))
	}
	stock, err := strconv.Atoi(get("stock"))
	if err != nil {
		return dto.CreateProductRequest{}, domain.Invalid("stock %q", get("stock"))
	}
	return dto.CreateProductRequest{
		Barcode:      &barcode,
		Name:         get("name"),
		CostPrice:    cost,
		SalePrice:    &price,
		InitialStock: stock,
	}, nil
}
