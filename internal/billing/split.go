// Package billing computes fee splits for gross parking charges.
package billing

import "github.com/shopspring/decimal"

// currencyPlaces is the smallest currency unit used when rounding splits.
const currencyPlaces = 2

// Split divides a gross charge into the platform service amount and the lot
// operator net amount for the given fee fraction (0 <= fee <= 1).
//
// The service amount is gross * fee rounded to the smallest currency unit
// using banker's rounding; the net amount is the exact remainder so that
// service + net always equals gross.
func Split(gross decimal.Decimal, fee decimal.Decimal) (service decimal.Decimal, net decimal.Decimal) {
	if gross.IsZero() {
		zero := decimal.Zero.Round(currencyPlaces)
		return zero, zero
	}
	service = gross.Mul(fee).RoundBank(currencyPlaces)
	net = gross.Sub(service)
	return service, net
}

// FeeFraction converts a configured float fraction into a decimal suitable
// for Split. Values are clamped into [0, 1].
func FeeFraction(f float64) decimal.Decimal {
	d := decimal.NewFromFloat(f)
	if d.IsNegative() {
		return decimal.Zero
	}
	one := decimal.NewFromInt(1)
	if d.GreaterThan(one) {
		return one
	}
	return d
}
