package handler

import (
	"net/http"

	"github.com/zeromicro/go-zero/rest"

	"liqdepth-api/internal/svc"
)

func RegisterHandlers(server *rest.Server, serverCtx *svc.ServiceContext) {
	server.AddRoutes(
		[]rest.Route{
			{
				Method:  http.MethodGet,
				Path:    "/api/v1/liquidity",
				Handler: LiquidityHandler(serverCtx),
			},
			{
				Method:  http.MethodPut,
				Path:    "/api/v1/ticker",
				Handler: SetTickerHandler(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/api/v1/tickers",
				Handler: TickersHandler(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/api/v1/pairs",
				Handler: PairsHandler(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/api/v1/orderbook",
				Handler: OrderbookHandler(serverCtx),
			},
		},
	)
}
