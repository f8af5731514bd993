package types

// --- OHLCV ------------------------------------------------------------------

type OHLCVReq struct {
	Ticker       string `path:"ticker"`
	Period       string `form:"period,default=1y"`
	ForceRefresh bool   `form:"force_refresh,default=false"`
}

type BarData struct {
	Date     string  `json:"date"`
	Open     float64 `json:"open"`
	High     float64 `json:"high"`
	Low      float64 `json:"low"`
	Close    float64 `json:"close"`
	AdjClose float64 `json:"adj_close"`
	Volume   int64   `json:"volume"`
}

type OHLCVMeta struct {
	Records   int    `json:"records"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type OHLCVResp struct {
	Ticker   string    `json:"ticker"`
	Period   string    `json:"period"`
	Data     []BarData `json:"data"`
	Metadata OHLCVMeta `json:"metadata"`
}

// --- Ticker info ------------------------------------------------------------

type TickerInfoReq struct {
	Ticker string `path:"ticker"`
}

type TickerInfoResp struct {
	Ticker        string   `json:"ticker"`
	Name          string   `json:"name,omitempty"`
	Exchange      string   `json:"exchange,omitempty"`
	Sector        string   `json:"sector,omitempty"`
	Industry      string   `json:"industry,omitempty"`
	MarketCap     int64    `json:"market_cap,omitempty"`
	CurrentPrice  *float64 `json:"current_price,omitempty"`
	PreviousClose *float64 `json:"previous_close,omitempty"`
	Change        *float64 `json:"change,omitempty"`
	ChangePercent *float64 `json:"change_percent,omitempty"`
}

// --- Search -----------------------------------------------------------------

type SearchReq struct {
	Query string `form:"q"`
	Limit int    `form:"limit,default=10,range=[1:50]"`
}

type SearchResult struct {
	Ticker   string `json:"ticker"`
	Name     string `json:"name"`
	Distance int    `json:"distance"`
}

type SearchResp struct {
	Query   string         `json:"query"`
	Results []SearchResult `json:"results"`
	Count   int            `json:"count"`
}

// --- Indicator catalogue ----------------------------------------------------

type IndicatorListReq struct {
	Category string `form:"category,optional"`
}

type IndicatorParam struct {
	Name    string  `json:"name"`
	Type    string  `json:"type"`
	Default float64 `json:"default"`
	MinVal  float64 `json:"min_val"`
	MaxVal  float64 `json:"max_val"`
}

type IndicatorInfo struct {
	Name        string           `json:"name"`
	DisplayName string           `json:"display_name"`
	Category    string           `json:"category"`
	OutputType  string           `json:"output_type"`
	Params      []IndicatorParam `json:"params"`
	OutputNames []string         `json:"output_names"`
}

type IndicatorListResp struct {
	Indicators []IndicatorInfo `json:"indicators"`
	Count      int             `json:"count"`
}

type IndicatorGetReq struct {
	Name string `path:"name"`
}

// --- Indicator calculation --------------------------------------------------

type IndicatorSpec struct {
	Name   string             `json:"name"`
	Params map[string]float64 `json:"params,optional"`
}

type CalculateReq struct {
	Ticker     string          `path:"ticker"`
	Period     string          `json:"period,default=1y"`
	Indicators []IndicatorSpec `json:"indicators"`
}

type IndicatorOutput struct {
	Name       string                `json:"name"`
	Success    bool                  `json:"success"`
	OutputType string                `json:"output_type,omitempty"`
	Data       map[string][]*float64 `json:"data,omitempty"`
	Error      string                `json:"error,omitempty"`
}

type CalculateResp struct {
	Ticker     string            `json:"ticker"`
	Period     string            `json:"period"`
	Dates      []string          `json:"dates"`
	Indicators []IndicatorOutput `json:"indicators"`
}

// --- Health -----------------------------------------------------------------

type HealthResp struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Cache    string `json:"cache"`
}
