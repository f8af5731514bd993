package yahoo

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"stocklens-api/pkg/quotes"
)

const defaultProviderTimeout = 15 * time.Second

// Provider wraps the Yahoo client behind the generic quotes.Provider
// contract, bounding every upstream call with a timeout.
type Provider struct {
	client  *Client
	timeout time.Duration
	name    string
}

type providerConfig struct {
	timeout       time.Duration
	clientOptions []Option
}

// ProviderOption customises the Yahoo provider.
type ProviderOption func(*providerConfig)

// WithTimeout overrides the default per-call timeout.
func WithTimeout(timeout time.Duration) ProviderOption {
	return func(cfg *providerConfig) {
		if timeout > 0 {
			cfg.timeout = timeout
		}
	}
}

// WithClientOptions passes options to the underlying Yahoo client.
func WithClientOptions(options ...Option) ProviderOption {
	return func(cfg *providerConfig) {
		cfg.clientOptions = append(cfg.clientOptions, options...)
	}
}

// NewProvider constructs a Yahoo price-history provider.
func NewProvider(name string, opts ...ProviderOption) *Provider {
	cfg := &providerConfig{timeout: defaultProviderTimeout}
	for _, opt := range opts {
		opt(cfg)
	}
	if name == "" {
		name = "yahoo"
	}
	return &Provider{
		client:  NewClient(cfg.clientOptions...),
		timeout: cfg.timeout,
		name:    name,
	}
}

// Name identifies the provider instance.
func (p *Provider) Name() string { return p.name }

// FetchDailyHistory fetches daily bars for [start, end] inclusive.
func (p *Provider) FetchDailyHistory(ctx context.Context, symbol string, start, end time.Time) ([]quotes.RawBar, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	bars, err := p.client.GetDailyHistory(ctx, symbol, start, end)
	if err != nil {
		return nil, classifyErr(err)
	}
	return bars, nil
}

// FetchInfo fetches descriptive metadata for the symbol.
func (p *Provider) FetchInfo(ctx context.Context, symbol string) (*quotes.Info, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	info, err := p.client.GetInfo(ctx, symbol)
	if err != nil {
		return nil, classifyErr(err)
	}
	return info, nil
}

// classifyErr folds transport and decode failures into the generic upstream
// error while keeping symbol-not-found intact.
func classifyErr(err error) error {
	if errors.Is(err, quotes.ErrSymbolNotFound) {
		return err
	}
	return fmt.Errorf("%w: %w", quotes.ErrUpstreamUnavailable, err)
}

func init() {
	quotes.RegisterProvider("yahoo", func(name string, cfg *quotes.ProviderConfig) (quotes.Provider, error) {
		opts := []ProviderOption{}
		clientOptions := []Option{}
		if cfg.Timeout > 0 {
			opts = append(opts, WithTimeout(cfg.Timeout))
		}
		if cfg.HTTPTimeout > 0 {
			clientOptions = append(clientOptions, WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}))
		}
		if cfg.BaseURL != "" {
			clientOptions = append(clientOptions, WithBaseURL(cfg.BaseURL))
		}
		if cfg.MaxRetries > 0 {
			clientOptions = append(clientOptions, WithMaxRetries(cfg.MaxRetries))
		}
		if len(clientOptions) > 0 {
			opts = append(opts, WithClientOptions(clientOptions...))
		}
		return NewProvider(name, opts...), nil
	})
}
