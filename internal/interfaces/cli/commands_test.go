package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Inventario-pos/internal/application/dto"
	"github.com/jhoicas/Inventario-pos/internal/interfaces/cli"
)

// run ejecuta posctl contra una base SQLite en archivo temporal y devuelve stdout.
func run(t *testing.T, dbPath string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("DB_DRIVER", "sqlite")
	var out bytes.Buffer
	root := cli.NewRootCommand(cli.DefaultOpener)
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--sqlite-path", dbPath, "--log-level", "disabled"}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestSeed_Idempotente(t *testing.T) {
	db := filepath.Join(t.TempDir(), "pos.db")

	out, err := run(t, db, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "categorías nuevas: 5, productos nuevos: 25")

	out, err = run(t, db, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "categorías nuevas: 0, productos nuevos: 0")
}

func TestAudit_DespuesDeSeed_Consistente(t *testing.T) {
	db := filepath.Join(t.TempDir(), "pos.db")
	_, err := run(t, db, "seed")
	require.NoError(t, err)

	out, err := run(t, db, "audit", "1")
	require.NoError(t, err)
	var res dto.StockAuditResponse
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, int64(1), res.ProductID)
	assert.True(t, res.Consistent)
	assert.Equal(t, int64(res.CurrentStock), res.LedgerStock)
}

func TestAudit_IDInvalido(t *testing.T) {
	db := filepath.Join(t.TempDir(), "pos.db")
	_, err := run(t, db, "audit", "abc")
	assert.Error(t, err)
}

func TestImport_Latin1YDuplicados(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "pos.db")
	csvPath := filepath.Join(dir, "productos.csv")

	// "Café" y "Açúcar" codificados en ISO-8859-1
	content := []byte("barcode;name;cost_price;sale_price;stock\n" +
		"1111;Caf\xe9 500g;8.00;12.50;10\n" +
		"2222;A\xe7\xfacar 1kg;3.00;4.90;0\n")
	require.NoError(t, os.WriteFile(csvPath, content, 0o600))

	out, err := run(t, db, "import", "--latin1", "--comma", ";", csvPath)
	require.NoError(t, err)
	assert.Contains(t, out, "productos creados: 2, omitidos (duplicados): 0")

	out, err = run(t, db, "import", "--latin1", "--comma", ";", csvPath)
	require.NoError(t, err)
	assert.Contains(t, out, "productos creados: 0, omitidos (duplicados): 2")

	out, err = run(t, db, "low-stock", "--json")
	require.NoError(t, err)
	var list dto.ProductListResponse
	require.NoError(t, json.Unmarshal([]byte(out), &list))
	names := make([]string, 0, len(list.Items))
	for _, p := range list.Items {
		names = append(names, p.Name)
	}
	assert.Contains(t, names, "Açúcar 1kg")
	assert.Contains(t, names, "Café 500g")
}

func TestImport_ColumnaFaltante(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "productos.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("barcode,name,sale_price\n1,a,2\n"), 0o600))

	_, err := run(t, filepath.Join(dir, "pos.db"), "import", csvPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cost_price")
}

func TestReportDaily_Encabezado(t *testing.T) {
	db := filepath.Join(t.TempDir(), "pos.db")
	out, err := run(t, db, "report", "daily", "--from", "2026-03-01", "--to", "2026-03-03")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[1], "2026-03-01")
	assert.Contains(t, lines[3], "0.00")
}

func TestHashPassword(t *testing.T) {
	db := filepath.Join(t.TempDir(), "pos.db")
	out, err := run(t, db, "hash-password", "--cost", "4", "secreto")
	require.NoError(t, err)
	hash := strings.TrimSpace(out)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("secreto")))
}
