package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/zeromicro/go-zero/rest/httpx"

	"liqdepth-api/internal/svc"
	"liqdepth-api/internal/types"
	"liqdepth-api/pkg/symbols"
)

// SetTickerHandler switches the actively polled pair. Venue statuses reset
// and the next poll cycle fetches the new pair.
func SetTickerHandler(serverCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.SetTickerRequest
		if err := httpx.Parse(r, &req); err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
			return
		}

		ticker := strings.ToUpper(strings.TrimSpace(req.Ticker))
		if ticker == "" {
			httpx.ErrorCtx(r.Context(), w, fmt.Errorf("ticker is required"))
			return
		}
		if !symbols.IsTracked(ticker) {
			httpx.ErrorCtx(r.Context(), w, fmt.Errorf("ticker %s is not tracked", ticker))
			return
		}

		serverCtx.Poller.SetTicker(ticker)
		httpx.OkJsonCtx(r.Context(), w, types.SetTickerResponse{Ticker: ticker})
	}
}

// TickersHandler lists every tracked pair.
func TickersHandler(serverCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.OkJsonCtx(r.Context(), w, types.TickersResponse{Tickers: symbols.ListTracked()})
	}
}
