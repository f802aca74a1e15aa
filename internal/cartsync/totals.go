package cartsync

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var usd = message.NewPrinter(language.AmericanEnglish)

// FormatUSD renders an amount the way the storefront displays prices:
// grouped thousands, two fraction digits, e.g. "$1,234.50".
func FormatUSD(amount decimal.Decimal) string {
	f, _ := amount.Float64()
	return usd.Sprintf("$%v", number.Decimal(f,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2),
	))
}
