package core

// Currency is a display label only; the tracker never converts between
// currencies.
type Currency string

const (
	USD Currency = "USD"
	EUR Currency = "EUR"
	GBP Currency = "GBP"
	GHS Currency = "GHS"
	NGN Currency = "NGN"
	XOF Currency = "XOF"
)

var currencySymbols = map[Currency]string{
	USD: "$",
	EUR: "€",
	GBP: "£",
	GHS: "₵",
	NGN: "₦",
	XOF: "CFA",
}

// Symbol returns the display symbol for the currency. Unrecognized codes
// fall back to "$".
func (c Currency) Symbol() string {
	if s, ok := currencySymbols[c]; ok {
		return s
	}
	return "$"
}
