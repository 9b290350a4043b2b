package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"liqdepth-api/internal/cli"
	"liqdepth-api/internal/config"
	"liqdepth-api/pkg/feed"
	"liqdepth-api/pkg/liquidity"
	"liqdepth-api/pkg/poller"
	"liqdepth-api/pkg/symbols"
	"liqdepth-api/pkg/venue"
)

const (
	displayInterval = 5 * time.Second  // How often the summary is printed
	shutdownTimeout = 10 * time.Second // Grace period for shutdown
)

var (
	configFile = flag.String("f", "etc/liqdepth.yaml", "the config file")
	tickerFlag = flag.String("ticker", "", "pair to watch (defaults to the configured ticker)")
)

func main() {
	flag.Parse()

	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds)
	log.Println("[main] Starting liquidity watcher...")

	appCfg, err := config.Load(*configFile)
	if err != nil {
		log.Printf("[main] Warning: Failed to load app config: %v", err)
		log.Printf("[main] Using default configuration")
		appCfg = &config.Config{Env: "test", DefaultTicker: "BTC", PollIntervalMs: 1500}
	}

	ticker := strings.ToUpper(strings.TrimSpace(*tickerFlag))
	if ticker == "" {
		ticker = appCfg.DefaultTicker
	}
	if !symbols.IsTracked(ticker) {
		log.Fatalf("[main] Ticker %q is not tracked", ticker)
	}

	feedCfg := appCfg.Feed.Value
	if feedCfg == nil {
		feedCfg = feed.DefaultConfig()
	}

	log.Printf("[main] Configuration loaded:")
	for _, line := range cli.ConfigSummaryLines(appCfg) {
		log.Printf("  - %s", line)
	}
	log.Printf("  - Ticker: %s", ticker)
	log.Printf("  - Hyperliquid: %s", feedCfg.HyperliquidURL)
	log.Printf("  - dYdX: %s", feedCfg.DydxBaseURL)
	log.Printf("  - Lighter: %s (ws %s)", feedCfg.LighterBaseURL, feedCfg.LighterWsURL)
	log.Printf("  - AsterDEX: %s", feedCfg.AsterdexBaseURL)
	log.Printf("  - Binance: %s", feedCfg.BinanceBaseURL)
	log.Printf("  - Bybit: %s", feedCfg.BybitBaseURL)

	client := feed.NewClient(feed.WithConfig(feedCfg))
	interval := time.Duration(appCfg.PollIntervalMs) * time.Millisecond
	p := poller.New(client, ticker, poller.WithInterval(interval))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		p.Run(ctx)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		runDisplay(ctx, p)
	}()

	log.Println("[main] Watcher started. Press Ctrl+C to stop.")

	<-ctx.Done()
	log.Println("[main] Shutdown signal received, stopping tasks...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Println("[main] All tasks stopped cleanly")
	case <-shutdownCtx.Done():
		log.Println("[main] Shutdown timeout exceeded, forcing exit")
	}

	log.Println("[main] Watcher stopped")
}

// runDisplay prints a per-venue summary on a schedule.
func runDisplay(ctx context.Context, p *poller.Poller) {
	ticker := time.NewTicker(displayInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("[display] Stopping display loop")
			return
		case <-ticker.C:
			printSnapshot(p.Snapshot())
		}
	}
}

// printSnapshot logs one line per venue with spread and depth figures.
func printSnapshot(snap poller.Snapshot) {
	log.Printf("[%s] hasData=%v isLoading=%v", snap.Ticker, snap.HasData, snap.IsLoading)

	for _, key := range venue.All() {
		status, ok := snap.Statuses[key]
		if !ok {
			continue
		}
		label := key.Label()

		if status.Error != "" {
			log.Printf("  - %-12s [ERROR] %s", label, status.Error)
			continue
		}
		if status.Analysis == nil {
			if status.Loading {
				log.Printf("  - %-12s loading...", label)
			} else {
				log.Printf("  - %-12s no data", label)
			}
			continue
		}

		a := status.Analysis
		log.Printf("  - %-12s mid=%.6f spread=%.2fbps bid100k=%s ask100k=%s",
			label, a.MidPrice, a.SpreadBps,
			formatSlippage(a.Bids, 100_000),
			formatSlippage(a.Asks, 100_000))
	}
}

// formatSlippage renders the slippage figure for one notional tier.
func formatSlippage(results []liquidity.SlippageResult, notional float64) string {
	for _, r := range results {
		if r.Notional != notional {
			continue
		}
		if !r.Filled {
			return "partial"
		}
		return fmt.Sprintf("%.2fbps", r.SlippageBps)
	}
	return "n/a"
}
