package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago aceptados.
const (
	PaymentCash       = "cash"
	PaymentCreditCard = "credit_card"
	PaymentDebitCard  = "debit_card"
	PaymentPix        = "pix"
)

// ValidPaymentMethod indica si m es un método de pago aceptado.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentCash, PaymentCreditCard, PaymentDebitCard, PaymentPix:
		return true
	}
	return false
}

// Sale cabecera de una venta. TotalValue = Σ Subtotal de sus ítems.
type Sale struct {
	ID            int64
	TotalValue    decimal.Decimal
	PaymentMethod string
	Notes         string
	CreatedAt     time.Time
	// BatchID lote de las salidas de stock de la venta; la anulación revierte exactamente ese lote.
	BatchID string

	// ItemCount proyección de lectura en listados.
	ItemCount int
}

// SaleItem línea de una venta. UnitPrice es la foto del precio de venta al momento de vender.
type SaleItem struct {
	ID        int64
	SaleID    int64
	ProductID int64
	Quantity  int
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal

	// Proyección de lectura (JOIN con products).
	ProductName string
	Barcode     string
}
