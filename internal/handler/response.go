package handler

import (
	"errors"
	"net/http"

	"github.com/zeromicro/go-zero/rest/httpx"

	"stocklens-api/internal/logic"
	"stocklens-api/internal/ohlcv"
	"stocklens-api/pkg/indicators"
	"stocklens-api/pkg/quotes"
)

type errorBody struct {
	Error string `json:"error"`
}

// writeError maps domain errors onto HTTP status codes and renders a JSON
// error body.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	httpx.WriteJsonCtx(r.Context(), w, statusFor(err), errorBody{Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ohlcv.ErrInvalidTicker),
		errors.Is(err, logic.ErrNoIndicators):
		return http.StatusBadRequest
	case errors.Is(err, quotes.ErrSymbolNotFound),
		errors.Is(err, indicators.ErrUnknownIndicator):
		return http.StatusNotFound
	case errors.Is(err, quotes.ErrUpstreamUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
