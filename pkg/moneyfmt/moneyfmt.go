// Package moneyfmt formatea montos en pesos colombianos para recibos y
// comprobantes (separador de miles es-CO, sin decimales).
package moneyfmt

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.MustParse("es-CO"))

// COP formatea un monto en pesos enteros: 8120 → "$ 8.120".
func COP(amount decimal.Decimal) string {
	return printer.Sprintf("$ %v", number.Decimal(
		amount.Round(0).IntPart(),
		number.MaxFractionDigits(0),
	))
}
