package yahoo

import (
	"context"
	"fmt"
	"net/url"

	"stocklens-api/pkg/quotes"
)

// GetInfo fetches descriptive metadata for the symbol from the quoteSummary
// endpoint. Missing modules yield partial results rather than errors.
func (c *Client) GetInfo(ctx context.Context, symbol string) (*quotes.Info, error) {
	if symbol == "" {
		return nil, fmt.Errorf("yahoo: symbol must not be empty")
	}

	query := url.Values{}
	query.Set("modules", "price,summaryProfile")

	var response summaryResponse
	if err := c.doGet(ctx, "/v10/finance/quoteSummary/"+url.PathEscape(symbol), query, &response); err != nil {
		return nil, err
	}
	if response.QuoteSummary.Error != nil {
		if response.QuoteSummary.Error.Code == "Not Found" {
			return nil, ErrSymbolNotFound
		}
		return nil, fmt.Errorf("yahoo: quoteSummary error %s: %s", response.QuoteSummary.Error.Code, response.QuoteSummary.Error.Description)
	}
	if len(response.QuoteSummary.Result) == 0 {
		return nil, ErrSymbolNotFound
	}

	result := response.QuoteSummary.Result[0]
	name := result.Price.LongName
	if name == "" {
		name = result.Price.ShortName
	}

	info := &quotes.Info{
		Symbol:        result.Price.Symbol,
		Name:          name,
		Exchange:      result.Price.ExchangeName,
		Sector:        result.SummaryProfile.Sector,
		Industry:      result.SummaryProfile.Industry,
		CurrentPrice:  result.Price.RegularMarketPrice.Raw,
		PreviousClose: result.Price.PreviousClose.Raw,
	}
	if result.Price.MarketCap.Raw != nil {
		info.MarketCap = int64(*result.Price.MarketCap.Raw)
	}
	return info, nil
}
