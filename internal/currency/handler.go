package currency

import (
	"net/http"

	"github.com/frahmantamala/expense-claims/internal/transport"
)

type Rate struct {
	Code string  `json:"code"`
	Rate float64 `json:"rate"`
}

type CurrenciesResponse struct {
	Reference  string `json:"reference"`
	Currencies []Rate `json:"currencies"`
}

type Handler struct {
	*transport.BaseHandler
	normalizer *Normalizer
}

func NewHandler(base *transport.BaseHandler, normalizer *Normalizer) *Handler {
	return &Handler{
		BaseHandler: base,
		normalizer:  normalizer,
	}
}

// GetCurrencies handles GET /currencies. It lists the supported codes and
// their conversion rates so clients can populate submission forms.
func (h *Handler) GetCurrencies(w http.ResponseWriter, r *http.Request) {
	rates := h.normalizer.Rates()

	resp := CurrenciesResponse{
		Reference:  h.normalizer.Reference(),
		Currencies: make([]Rate, 0, len(rates)),
	}
	for _, code := range h.normalizer.Codes() {
		resp.Currencies = append(resp.Currencies, Rate{Code: code, Rate: rates[code]})
	}

	h.WriteJSON(w, http.StatusOK, resp)
}
