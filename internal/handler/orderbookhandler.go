package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/zeromicro/go-zero/rest/httpx"

	"liqdepth-api/internal/svc"
	"liqdepth-api/internal/types"
	"liqdepth-api/pkg/symbols"
	"liqdepth-api/pkg/venue"
)

// OrderbookHandler proxies one raw order book fetch to the upstream venue.
// Exchange and ticker are validated before any network call is made.
func OrderbookHandler(serverCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.OrderbookRequest
		if err := httpx.Parse(r, &req); err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
			return
		}

		exchange, err := venue.Parse(req.Exchange)
		if err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
			return
		}
		ticker := strings.ToUpper(strings.TrimSpace(req.Ticker))
		if ticker == "" {
			httpx.ErrorCtx(r.Context(), w, fmt.Errorf("ticker is required"))
			return
		}
		if !symbols.IsTickerSupported(ticker, exchange) {
			httpx.ErrorCtx(r.Context(), w, fmt.Errorf("ticker %s is not listed on %s", ticker, exchange))
			return
		}

		raw, err := serverCtx.Feed.FetchOrderbook(r.Context(), exchange, ticker, nil)
		if err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(raw)
	}
}
