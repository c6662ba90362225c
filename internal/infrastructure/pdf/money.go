package pdf

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// MoneyFormatter formatea montos con el símbolo y separadores del locale configurado.
type MoneyFormatter struct {
	unit    currency.Unit
	printer *message.Printer
}

// NewMoneyFormatter construye el formateador. Locale y moneda inválidos caen a pt-BR / BRL.
func NewMoneyFormatter(locale, iso string) *MoneyFormatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.BrazilianPortuguese
	}
	unit, err := currency.ParseISO(iso)
	if err != nil {
		unit = currency.BRL
	}
	return &MoneyFormatter{unit: unit, printer: message.NewPrinter(tag)}
}

// Format ej: pt-BR / BRL 1234.5 -> "R$ 1.234,50".
func (f *MoneyFormatter) Format(amount decimal.Decimal) string {
	return f.printer.Sprint(currency.Symbol(f.unit.Amount(amount.Round(2).InexactFloat64())))
}
