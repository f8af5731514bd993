package svc

import (
	"log"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx driver
	gzcache "github.com/zeromicro/go-zero/core/stores/cache"
	"github.com/zeromicro/go-zero/core/stores/redis"
	"github.com/zeromicro/go-zero/core/stores/sqlx"
	"github.com/zeromicro/go-zero/core/syncx"

	cachekeys "stocklens-api/internal/cache"
	"stocklens-api/internal/config"
	"stocklens-api/internal/ohlcv"
	"stocklens-api/internal/search"
	"stocklens-api/internal/store"
	"stocklens-api/pkg/indicators"
	"stocklens-api/pkg/journal"
	"stocklens-api/pkg/quotes"
	_ "stocklens-api/pkg/quotes/yahoo"
)

type ServiceContext struct {
	Config config.Config

	DBConn sqlx.SqlConn
	Store  *store.Store

	QuoteProviders map[string]quotes.Provider
	DefaultQuotes  quotes.Provider

	Cache gzcache.Cache
	TTL   cachekeys.TTLSet

	OHLCV      *ohlcv.Service
	Registry   *indicators.Registry
	Calculator *indicators.Calculator
	Search     *search.Service
	Journal    *journal.Writer
}

func NewServiceContext(c config.Config) *ServiceContext {
	svc := &ServiceContext{
		Config: c,
		TTL:    cachekeys.NewTTLSet(c.TTL),
	}

	if c.Postgres.DSN == "" {
		log.Fatal("postgres.dsn is required")
	}
	svc.DBConn = sqlx.NewSqlConn("pgx", c.Postgres.DSN)
	svc.Store = store.New(svc.DBConn)

	if c.Quotes.Value == nil {
		log.Fatal("quotes config section is required")
	}
	providers, err := c.Quotes.Value.BuildProviders()
	if err != nil {
		log.Fatalf("failed to build quote providers: %v", err)
	}
	svc.QuoteProviders = providers
	if c.Quotes.Value.Default != "" {
		svc.DefaultQuotes = providers[c.Quotes.Value.Default]
	}
	if svc.DefaultQuotes == nil {
		log.Fatal("quotes config must name a default provider")
	}

	if c.Redis.Host != "" {
		svc.Cache = gzcache.NewNode(redis.MustNewRedis(c.Redis), syncx.NewSingleFlight(),
			gzcache.NewStat(cachekeys.Namespace), sqlx.ErrNotFound)
	}

	if path := c.JournalPath(); path != "" {
		writer, err := journal.NewWriter(path)
		if err != nil {
			log.Fatalf("failed to open fetch journal: %v", err)
		}
		svc.Journal = writer
	}

	svc.OHLCV = ohlcv.NewService(ohlcv.Config{
		Store:              svc.Store,
		Provider:           svc.DefaultQuotes,
		Cache:              svc.Cache,
		TTL:                svc.TTL,
		Journal:            svc.Journal,
		MaxInflightFetches: c.Sync.MaxInflightFetches,
	})

	svc.Registry = indicators.NewDefaultRegistry()
	svc.Calculator = indicators.NewCalculator(svc.Registry)

	entries, err := search.LoadCatalog(c.CatalogPath())
	if err != nil {
		log.Fatalf("failed to load search catalog: %v", err)
	}
	searchOpts := []search.Option{}
	if svc.Cache != nil {
		searchOpts = append(searchOpts, search.WithCache(svc.Cache, svc.TTL))
	}
	svc.Search = search.NewService(entries, searchOpts...)

	return svc
}
