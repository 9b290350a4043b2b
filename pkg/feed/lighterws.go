package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/gorilla/websocket"

	"liqdepth-api/pkg/liquidity"
	"liqdepth-api/pkg/symbols"
	"liqdepth-api/pkg/venue"
)

const wsHandshakeTimeout = 10 * time.Second

type lighterWsLevel struct {
	Price string `json:"price"`
	Size  string `json:"size"`
}

type lighterWsMessage struct {
	Type      string `json:"type"`
	OrderBook *struct {
		Bids []lighterWsLevel `json:"bids"`
		Asks []lighterWsLevel `json:"asks"`
	} `json:"order_book"`
}

type lighterSubscribeMessage struct {
	Type    string `json:"type"`
	Channel string `json:"channel"`
}

func parseLighterWsLevels(levels []lighterWsLevel) []liquidity.BookLevel {
	out := make([]liquidity.BookLevel, 0, len(levels))
	for _, l := range levels {
		px, err := strconv.ParseFloat(l.Price, 64)
		if err != nil {
			continue
		}
		sz, err := strconv.ParseFloat(l.Size, 64)
		if err != nil {
			continue
		}
		if math.IsNaN(px) || math.IsInf(px, 0) || px <= 0 ||
			math.IsNaN(sz) || math.IsInf(sz, 0) || sz <= 0 {
			continue
		}
		out = append(out, liquidity.BookLevel{Px: px, Sz: sz})
	}
	return out
}

// FetchLighterSnapshot opens a one-shot streaming connection to Lighter,
// subscribes to the full aggregated book for the ticker, and returns the
// first complete snapshot. The stream serves every price level, unlike the
// REST endpoint which is hard-capped per side, so the poller uses this as a
// deeper fallback. The wait is bounded by the configured snapshot timeout.
func (c *Client) FetchLighterSnapshot(ctx context.Context, ticker string) (*liquidity.Book, error) {
	symbol, err := symbols.ResolveExchangeSymbol(venue.Lighter, ticker)
	if err != nil {
		return nil, err
	}
	marketID, err := c.ResolveLighterMarketID(ctx, symbol)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.WsSnapshotWait)
	defer cancel()
	deadline, _ := ctx.Deadline()

	dialer := websocket.Dialer{HandshakeTimeout: wsHandshakeTimeout}
	conn, _, err := dialer.DialContext(ctx, c.cfg.LighterWsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("lighter: stream connect: %w", err)
	}
	defer conn.Close()

	subscribe := lighterSubscribeMessage{
		Type:    "subscribe",
		Channel: fmt.Sprintf("order_book/%d", marketID),
	}
	if err := conn.SetWriteDeadline(deadline); err != nil {
		return nil, fmt.Errorf("lighter: stream deadline: %w", err)
	}
	if err := conn.WriteJSON(subscribe); err != nil {
		return nil, fmt.Errorf("lighter: stream subscribe: %w", err)
	}
	if err := conn.SetReadDeadline(deadline); err != nil {
		return nil, fmt.Errorf("lighter: stream deadline: %w", err)
	}

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("lighter: stream snapshot timed out")
			}
			return nil, fmt.Errorf("lighter: stream read: %w", err)
		}

		var msg lighterWsMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			continue
		}
		if msg.OrderBook == nil {
			continue
		}

		bids := parseLighterWsLevels(msg.OrderBook.Bids)
		asks := parseLighterWsLevels(msg.OrderBook.Asks)
		sort.Slice(bids, func(i, j int) bool { return bids[i].Px > bids[j].Px })
		sort.Slice(asks, func(i, j int) bool { return asks[i].Px < asks[j].Px })

		if len(bids) == 0 || len(asks) == 0 {
			return nil, fmt.Errorf("lighter: stream book snapshot is empty")
		}
		return &liquidity.Book{Bids: bids, Asks: asks, Timestamp: time.Now().UnixMilli()}, nil
	}
}
