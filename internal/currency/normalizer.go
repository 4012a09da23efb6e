package currency

import (
	"log/slog"
	"math"
	"sort"

	"github.com/frahmantamala/expense-claims/internal"
)

// Normalizer converts claim amounts into the reference currency using a
// static rate table. Rates never change after startup; a claim's
// normalized amount is computed once at submission and never revised.
type Normalizer struct {
	reference string
	rates     map[string]float64
	logger    *slog.Logger
}

func NewNormalizer(cfg internal.CurrencyConfig, logger *slog.Logger) *Normalizer {
	rates := make(map[string]float64)
	for code, rate := range cfg.RatesOrDefault() {
		rates[code] = rate
	}

	reference := cfg.Reference
	if reference == "" {
		reference = "USD"
	}

	return &Normalizer{
		reference: reference,
		rates:     rates,
		logger:    logger,
	}
}

// Normalize returns the reference-currency equivalent of amount, rounded to
// cents. Unknown codes are treated as already being in the reference
// currency (rate 1.0); that policy is deliberate, so it logs instead of
// failing.
func (n *Normalizer) Normalize(amount float64, code string) float64 {
	rate, ok := n.rates[code]
	if !ok {
		rate = 1.0
		n.logger.Warn("unknown currency code, assuming reference rate",
			"currency", code,
			"reference", n.reference)
	}
	return math.Round(amount*rate*100) / 100
}

func (n *Normalizer) Reference() string {
	return n.reference
}

// Rates returns a copy of the rate table.
func (n *Normalizer) Rates() map[string]float64 {
	rates := make(map[string]float64, len(n.rates))
	for code, rate := range n.rates {
		rates[code] = rate
	}
	return rates
}

// Codes returns the supported currency codes in sorted order.
func (n *Normalizer) Codes() []string {
	codes := make([]string, 0, len(n.rates))
	for code := range n.rates {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
