// Package currency converts between the host application's decimal amounts
// and the integer minor unit (cent) amounts the payment provider works with.
package currency

import (
	"math"

	"github.com/fleetmgmt/billplz-payment-service/internal/config"
)

// Policy is the single place that decides how amounts move between the host
// currency and the configured pay-in currency.
//
// Note the historical asymmetry: amounts sent to the provider are divided by
// the conversion rate, but paid amounts reported back are never multiplied by
// it. ApplyRateOnPayout exists so a deployment can correct this without
// touching any call sites; it is off by default to match the historical
// behavior.
type Policy struct {
	PayInCurrencyCode   string
	PayInCurrencySymbol string
	Rate                float64

	CurrencyCode   string
	CurrencySymbol string

	ApplyRateOnPayout bool
}

func PolicyFromConfig(conf config.PaymentConfig) Policy {
	return Policy{
		PayInCurrencyCode:   conf.PayInCurrencyCode,
		PayInCurrencySymbol: conf.PayInCurrencySymbol,
		Rate:                conf.PayInCurrencyRate,
		CurrencyCode:        conf.CurrencyCode,
		CurrencySymbol:      conf.CurrencySymbol,
		ApplyRateOnPayout:   conf.ApplyRateOnPayout,
	}
}

// converts returns true if a pay-in currency is configured and the rate is
// usable. A rate of 0 means "no conversion", never a division by zero.
func (p Policy) converts() bool {
	return p.PayInCurrencyCode != "" && p.Rate > 0
}

// PayInAmount returns the decimal amount the payer is billed, in the pay-in
// currency if one is configured. Negative amounts clamp to 0.
func (p Policy) PayInAmount(hostAmount float64) float64 {
	if hostAmount < 0 || math.IsNaN(hostAmount) {
		hostAmount = 0
	}
	if p.converts() {
		return hostAmount / p.Rate
	}
	return hostAmount
}

// ToProviderAmount converts a host currency amount into the provider's
// integer minor units, applying the pay-in conversion first.
func (p Policy) ToProviderAmount(hostAmount float64) int64 {
	return int64(math.Round(p.PayInAmount(hostAmount) * 100))
}

// FromProviderAmount converts a paid amount reported by the provider back
// into a decimal. The provider reports amounts in the pay-in currency, so by
// default no rate is applied here.
func (p Policy) FromProviderAmount(minorUnits int64) float64 {
	amount := float64(minorUnits) / 100
	if p.ApplyRateOnPayout && p.converts() {
		return amount * p.Rate
	}
	return amount
}

// DisplayCurrency returns the currency code and symbol that initiation
// results should present to the payer.
func (p Policy) DisplayCurrency() (code string, symbol string) {
	if p.PayInCurrencyCode != "" {
		return p.PayInCurrencyCode, p.PayInCurrencySymbol
	}
	return p.CurrencyCode, p.CurrencySymbol
}
