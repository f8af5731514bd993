package indicators

import (
	"sort"
	"strings"
	"sync"
)

// Category groups indicators by what they measure.
type Category string

const (
	CategoryTrend      Category = "trend"
	CategoryMomentum   Category = "momentum"
	CategoryVolatility Category = "volatility"
	CategoryVolume     Category = "volume"
)

// OutputType is a display hint: overlay indicators are drawn on the price
// chart, separate indicators get their own pane. Carried through untouched.
type OutputType string

const (
	OutputOverlay  OutputType = "overlay"
	OutputSeparate OutputType = "separate"
)

// Param declares one indicator parameter. MinVal/MaxVal are advisory bounds
// surfaced to clients; the calculator does not enforce them.
type Param struct {
	Name    string  `json:"name"`
	Type    string  `json:"type"`
	Default float64 `json:"default"`
	MinVal  float64 `json:"min_val"`
	MaxVal  float64 `json:"max_val"`
}

// Transform computes named output series from a close-price series. Every
// output slice must be exactly as long as the input, NaN marking warm-up.
type Transform interface {
	Compute(closes []float64, params map[string]float64) map[string][]float64
}

// Definition is a catalogue entry for one indicator.
type Definition struct {
	Name        string     `json:"name"`
	DisplayName string     `json:"display_name"`
	Category    Category   `json:"category"`
	OutputType  OutputType `json:"output_type"`
	Params      []Param    `json:"params"`
	OutputNames []string   `json:"output_names"`
	Transform   Transform  `json:"-"`
}

// Registry is the process-wide indicator catalogue. It is populated once at
// startup and read-mostly afterwards.
type Registry struct {
	mu   sync.RWMutex
	defs map[string]Definition
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]Definition)}
}

// Register inserts or replaces a definition keyed by its name.
func (r *Registry) Register(def Definition) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.defs[strings.ToLower(def.Name)] = def
}

// Get looks up a definition by name.
func (r *Registry) Get(name string) (Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.defs[strings.ToLower(strings.TrimSpace(name))]
	return def, ok
}

// ListAll returns every definition sorted by name.
func (r *Registry) ListAll() []Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	defs := make([]Definition, 0, len(r.defs))
	for _, def := range r.defs {
		defs = append(defs, def)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Name < defs[j].Name })
	return defs
}

// ListByCategory returns definitions in the given category, sorted by name.
func (r *Registry) ListByCategory(category Category) []Definition {
	all := r.ListAll()
	out := make([]Definition, 0, len(all))
	for _, def := range all {
		if def.Category == category {
			out = append(out, def)
		}
	}
	return out
}

type smaTransform struct{}

func (smaTransform) Compute(closes []float64, params map[string]float64) map[string][]float64 {
	return map[string][]float64{"sma": SMA(closes, int(params["period"]))}
}

type emaTransform struct{}

func (emaTransform) Compute(closes []float64, params map[string]float64) map[string][]float64 {
	return map[string][]float64{"ema": EMA(closes, int(params["period"]))}
}

type rsiTransform struct{}

func (rsiTransform) Compute(closes []float64, params map[string]float64) map[string][]float64 {
	return map[string][]float64{"rsi": RSI(closes, int(params["period"]))}
}

type macdTransform struct{}

func (macdTransform) Compute(closes []float64, params map[string]float64) map[string][]float64 {
	macd, signal, hist := MACD(closes, int(params["fast"]), int(params["slow"]), int(params["signal"]))
	return map[string][]float64{"macd": macd, "signal": signal, "histogram": hist}
}

type bbandsTransform struct{}

func (bbandsTransform) Compute(closes []float64, params map[string]float64) map[string][]float64 {
	upper, middle, lower := BollingerBands(closes, int(params["period"]), params["std_dev"])
	return map[string][]float64{"upper": upper, "middle": middle, "lower": lower}
}

// NewDefaultRegistry builds the catalogue served by the API.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()

	r.Register(Definition{
		Name:        "sma",
		DisplayName: "Simple Moving Average",
		Category:    CategoryTrend,
		OutputType:  OutputOverlay,
		Params: []Param{
			{Name: "period", Type: "int", Default: 20, MinVal: 1, MaxVal: 500},
		},
		OutputNames: []string{"sma"},
		Transform:   smaTransform{},
	})

	r.Register(Definition{
		Name:        "ema",
		DisplayName: "Exponential Moving Average",
		Category:    CategoryTrend,
		OutputType:  OutputOverlay,
		Params: []Param{
			{Name: "period", Type: "int", Default: 20, MinVal: 1, MaxVal: 500},
		},
		OutputNames: []string{"ema"},
		Transform:   emaTransform{},
	})

	r.Register(Definition{
		Name:        "rsi",
		DisplayName: "Relative Strength Index",
		Category:    CategoryMomentum,
		OutputType:  OutputSeparate,
		Params: []Param{
			{Name: "period", Type: "int", Default: 14, MinVal: 2, MaxVal: 200},
		},
		OutputNames: []string{"rsi"},
		Transform:   rsiTransform{},
	})

	r.Register(Definition{
		Name:        "macd",
		DisplayName: "MACD",
		Category:    CategoryMomentum,
		OutputType:  OutputSeparate,
		Params: []Param{
			{Name: "fast", Type: "int", Default: 12, MinVal: 1, MaxVal: 200},
			{Name: "slow", Type: "int", Default: 26, MinVal: 1, MaxVal: 500},
			{Name: "signal", Type: "int", Default: 9, MinVal: 1, MaxVal: 200},
		},
		OutputNames: []string{"macd", "signal", "histogram"},
		Transform:   macdTransform{},
	})

	r.Register(Definition{
		Name:        "bbands",
		DisplayName: "Bollinger Bands",
		Category:    CategoryVolatility,
		OutputType:  OutputOverlay,
		Params: []Param{
			{Name: "period", Type: "int", Default: 20, MinVal: 1, MaxVal: 500},
			{Name: "std_dev", Type: "float", Default: 2.0, MinVal: 0.1, MaxVal: 10.0},
		},
		OutputNames: []string{"upper", "middle", "lower"},
		Transform:   bbandsTransform{},
	})

	return r
}
