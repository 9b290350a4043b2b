package handler

import (
	"net/http"

	"github.com/zeromicro/go-zero/rest/httpx"

	"liqdepth-api/internal/svc"
	"liqdepth-api/internal/types"
	"liqdepth-api/pkg/symbols"
)

// PairsHandler returns the ticker-to-venue-symbol mapping table, with
// excluded venues rendered as "N/A".
func PairsHandler(serverCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows := symbols.ListPairMappings(symbols.ListTracked())
		httpx.OkJsonCtx(r.Context(), w, types.PairsResponse{Pairs: rows})
	}
}
