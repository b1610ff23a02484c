package service

import "time"

// Default: instance converter yang dipakai controller course & payments.
// Diisi sekali saat bootstrap app (pola sama dengan InitMidtrans).
var Default *CurrencyConverter

func InitCurrency() {
	Default = NewCurrencyConverter(NewRateFetcherFromConfig(), DefaultRateTTL, time.Now)
}
