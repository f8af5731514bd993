package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"stocklens-api/internal/cli"
	"stocklens-api/internal/config"
	"stocklens-api/internal/ohlcv"
	"stocklens-api/internal/search"
	"stocklens-api/internal/svc"
)

const syncTimeout = 2 * time.Minute // per-ticker budget, covers fetch plus upsert

var (
	configFile  = flag.String("f", "etc/stocklens.yaml", "the config file")
	tickersFlag = flag.String("tickers", "", "comma-separated tickers to sync; defaults to the search catalog")
	period      = flag.String("period", "1y", "history period to sync")
	force       = flag.Bool("force", false, "refetch even when stored coverage satisfies the window")
	interval    = flag.Duration("interval", 0, "when set, keep syncing on this interval")
)

func main() {
	flag.Parse()
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds)
	log.Println("[main] Starting price sync...")

	cfg := config.MustLoad(*configFile)
	log.Printf("[main] Configuration loaded:")
	for _, line := range cli.ConfigSummaryLines(cfg) {
		log.Printf("  - %s", line)
	}

	svcCtx := svc.NewServiceContext(*cfg)
	if svcCtx.Journal != nil {
		defer svcCtx.Journal.Close()
	}

	symbols := resolveSymbols(cfg)
	if len(symbols) == 0 {
		log.Fatal("[main] no tickers to sync")
	}
	log.Printf("[main] Syncing %d tickers, period=%s, force=%v", len(symbols), *period, *force)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runSync(ctx, svcCtx.OHLCV, symbols)

	if *interval > 0 {
		ticker := time.NewTicker(*interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				log.Println("[main] Shutdown signal received, stopping")
				return
			case <-ticker.C:
				runSync(ctx, svcCtx.OHLCV, symbols)
			}
		}
	}
}

// resolveSymbols takes the -tickers flag when given, otherwise the search
// catalog. Symbols are validated later by the sync service.
func resolveSymbols(cfg *config.Config) []string {
	if raw := strings.TrimSpace(*tickersFlag); raw != "" {
		var symbols []string
		for _, part := range strings.Split(raw, ",") {
			if s := strings.TrimSpace(part); s != "" {
				symbols = append(symbols, s)
			}
		}
		return symbols
	}

	entries, err := search.LoadCatalog(cfg.CatalogPath())
	if err != nil {
		log.Fatalf("[main] Failed to load ticker catalog: %v", err)
	}
	symbols := make([]string, 0, len(entries))
	for _, entry := range entries {
		symbols = append(symbols, entry.Ticker)
	}
	return symbols
}

// runSync syncs every symbol once. The service's own fetch limit bounds
// upstream concurrency, so one goroutine per symbol is safe.
func runSync(parentCtx context.Context, service *ohlcv.Service, symbols []string) {
	if parentCtx.Err() != nil {
		return
	}

	var wg sync.WaitGroup
	for _, symbol := range symbols {
		wg.Add(1)
		go func(sym string) {
			defer wg.Done()
			ctx, cancel := context.WithTimeout(parentCtx, syncTimeout)
			defer cancel()

			start := time.Now()
			hist, err := service.GetHistory(ctx, sym, *period, *force)
			elapsed := time.Since(start)
			if err != nil {
				log.Printf("[sync.%s] [ERROR] %v, took %dms", sym, err, elapsed.Milliseconds())
				return
			}
			log.Printf("[sync.%s] [OK] %d bars (%s .. %s), took %dms",
				sym, len(hist.Bars),
				hist.Start.Format("2006-01-02"), hist.End.Format("2006-01-02"),
				elapsed.Milliseconds())
		}(symbol)
	}
	wg.Wait()
}
