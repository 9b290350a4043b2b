package types

import "liqdepth-api/pkg/symbols"

type SetTickerRequest struct {
	Ticker string `json:"ticker"`
}

type SetTickerResponse struct {
	Ticker string `json:"ticker"`
}

type TickersResponse struct {
	Tickers []string `json:"tickers"`
}

type PairsResponse struct {
	Pairs []symbols.PairMappingRow `json:"pairs"`
}

type OrderbookRequest struct {
	Exchange string `form:"exchange"`
	Ticker   string `form:"ticker"`
}
