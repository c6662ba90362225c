package entity

import "time"

// Tipos de movimiento de inventario.
const (
	MovementEntry = "entry" // entrada
	MovementExit  = "exit"  // salida
)

// StockMovement registro append-only de una entrada o salida de stock.
// Nunca se actualiza ni se elimina: una anulación agrega un movimiento compensatorio.
type StockMovement struct {
	ID        int64
	ProductID int64
	Kind      string // entry, exit
	Quantity  int    // siempre positivo
	Notes     string
	BatchID   string // agrupa los movimientos de una misma operación (venta, anulación, ajuste)
	CreatedAt time.Time
}

// Signed devuelve la cantidad con signo (+ entrada, - salida).
func (m *StockMovement) Signed() int {
	if m.Kind == MovementExit {
		return -m.Quantity
	}
	return m.Quantity
}
