// Package words spells out currency amounts in German for the contract's
// price-in-words clause.
package words

import (
	"strings"

	"github.com/shopspring/decimal"
)

var units = []string{
	"null", "eins", "zwei", "drei", "vier",
	"fünf", "sechs", "sieben", "acht", "neun",
}

var teens = []string{
	"zehn", "elf", "zwölf", "dreizehn", "vierzehn",
	"fünfzehn", "sechzehn", "siebzehn", "achtzehn", "neunzehn",
}

var tens = []string{
	"", "", "zwanzig", "dreißig", "vierzig",
	"fünfzig", "sechzig", "siebzig", "achtzig", "neunzig",
}

// Integer spells a non-negative number as a German cardinal, lower case.
// Supported up to the hundreds of millions, which is far beyond any shop
// price.
func Integer(n int64) string {
	if n == 0 {
		return "null"
	}
	return cardinal(n, false)
}

// EuroAmount spells an amount as upper-case euros and cents, the form the
// contract's "In Worten" line uses: 250.00 -> "ZWEIHUNDERTFÜNFZIG EURO",
// 121.50 -> "EINHUNDERTEINUNDZWANZIG EURO UND FÜNFZIG CENT".
func EuroAmount(amount decimal.Decimal) string {
	rounded := amount.Round(2)
	euros := rounded.IntPart()
	cents := rounded.Sub(decimal.NewFromInt(euros)).Mul(decimal.NewFromInt(100)).IntPart()

	var sb strings.Builder
	if euros == 0 {
		sb.WriteString("null")
	} else {
		sb.WriteString(cardinal(euros, true))
	}
	sb.WriteString(" Euro")
	if cents > 0 {
		sb.WriteString(" und ")
		sb.WriteString(cardinal(cents, true))
		sb.WriteString(" Cent")
	}
	// ß stays lower case under ToUpper; the upper-case form is SS.
	return strings.ToUpper(strings.ReplaceAll(sb.String(), "ß", "ss"))
}

// cardinal renders n > 0. compound selects "ein" over "eins" for a bare 1,
// the form used before a unit word (ein Euro) and inside compounds
// (einhundert, einundzwanzig).
func cardinal(n int64, compound bool) string {
	switch {
	case n >= 1_000_000:
		millions := n / 1_000_000
		rest := n % 1_000_000
		var head string
		if millions == 1 {
			head = "eine Million"
		} else {
			head = cardinal(millions, false) + " Millionen"
		}
		if rest == 0 {
			return head
		}
		return head + " " + cardinal(rest, compound)
	case n >= 1000:
		thousands := n / 1000
		rest := n % 1000
		head := cardinal(thousands, true) + "tausend"
		if rest == 0 {
			return head
		}
		return head + cardinal(rest, compound)
	case n >= 100:
		hundreds := n / 100
		rest := n % 100
		head := cardinal(hundreds, true) + "hundert"
		if rest == 0 {
			return head
		}
		return head + cardinal(rest, compound)
	case n >= 20:
		unit := n % 10
		ten := tens[n/10]
		if unit == 0 {
			return ten
		}
		return cardinal(unit, true) + "und" + ten
	case n >= 10:
		return teens[n-10]
	case n == 1 && compound:
		return "ein"
	default:
		return units[n]
	}
}
