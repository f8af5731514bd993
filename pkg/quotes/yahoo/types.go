package yahoo

// chartResponse mirrors the v8 finance/chart payload, reduced to the fields
// the history fetch needs.
type chartResponse struct {
	Chart struct {
		Result []chartResult `json:"result"`
		Error  *apiError     `json:"error"`
	} `json:"chart"`
}

type chartResult struct {
	Timestamps []int64 `json:"timestamp"`
	Indicators struct {
		Quote    []quoteBlock    `json:"quote"`
		AdjClose []adjCloseBlock `json:"adjclose"`
	} `json:"indicators"`
}

type quoteBlock struct {
	Open   []*float64 `json:"open"`
	High   []*float64 `json:"high"`
	Low    []*float64 `json:"low"`
	Close  []*float64 `json:"close"`
	Volume []*int64   `json:"volume"`
}

type adjCloseBlock struct {
	AdjClose []*float64 `json:"adjclose"`
}

type apiError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// summaryResponse mirrors the v10 quoteSummary payload for the price and
// summaryProfile modules.
type summaryResponse struct {
	QuoteSummary struct {
		Result []summaryResult `json:"result"`
		Error  *apiError       `json:"error"`
	} `json:"quoteSummary"`
}

type summaryResult struct {
	Price struct {
		Symbol             string   `json:"symbol"`
		LongName           string   `json:"longName"`
		ShortName          string   `json:"shortName"`
		ExchangeName       string   `json:"exchangeName"`
		MarketCap          rawValue `json:"marketCap"`
		RegularMarketPrice rawValue `json:"regularMarketPrice"`
		PreviousClose      rawValue `json:"regularMarketPreviousClose"`
	} `json:"price"`
	SummaryProfile struct {
		Sector   string `json:"sector"`
		Industry string `json:"industry"`
	} `json:"summaryProfile"`
}

// rawValue is Yahoo's {raw, fmt} number wrapper.
type rawValue struct {
	Raw *float64 `json:"raw"`
}
