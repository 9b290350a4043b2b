package handler

import (
	"net/http"

	"github.com/zeromicro/go-zero/rest/httpx"

	"liqdepth-api/internal/svc"
)

// LiquidityHandler returns the latest per-venue liquidity statuses for the
// active ticker.
func LiquidityHandler(serverCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.OkJsonCtx(r.Context(), w, serverCtx.Poller.Snapshot())
	}
}
