package indicators

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrUnknownIndicator indicates the requested name is not in the registry.
var ErrUnknownIndicator = errors.New("indicators: unknown indicator")

// Series is a time-indexed close-price series. Timestamps and Closes are
// parallel slices of equal length, ascending by time.
type Series struct {
	Timestamps []time.Time
	Closes     []float64
}

// Point is one time-aligned output sample. Value is nil where the transform
// produced no finite number (warm-up or NaN propagation), never zero.
type Point struct {
	Time  time.Time `json:"time"`
	Value *float64  `json:"value"`
}

// Result carries the calculated output channels for one indicator. Each
// channel has exactly one point per input bar.
type Result struct {
	Indicator  string             `json:"indicator"`
	OutputType OutputType         `json:"output_type"`
	Data       map[string][]Point `json:"data"`
}

// Request names one indicator plus requested parameter overrides.
type Request struct {
	Name   string             `json:"name"`
	Params map[string]float64 `json:"params"`
}

// BatchItem is the per-request outcome of a batch calculation.
type BatchItem struct {
	Name   string
	Result *Result
	Err    error
}

// Calculator binds the registry to resolved price series.
type Calculator struct {
	registry *Registry
}

// NewCalculator returns a calculator over the given registry.
func NewCalculator(registry *Registry) *Calculator {
	return &Calculator{registry: registry}
}

// Calculate runs one indicator over the series. Unknown names fail with
// ErrUnknownIndicator; missing parameters fall back to declared defaults.
func (c *Calculator) Calculate(series Series, name string, params map[string]float64) (*Result, error) {
	def, ok := c.registry.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownIndicator, name)
	}

	effective := make(map[string]float64, len(def.Params))
	for _, p := range def.Params {
		if v, ok := params[p.Name]; ok {
			effective[p.Name] = v
		} else {
			effective[p.Name] = p.Default
		}
	}

	outputs := def.Transform.Compute(series.Closes, effective)

	data := make(map[string][]Point, len(outputs))
	for channel, values := range outputs {
		points := make([]Point, len(series.Timestamps))
		for i, ts := range series.Timestamps {
			points[i] = Point{Time: ts}
			if i < len(values) && !math.IsNaN(values[i]) && !math.IsInf(values[i], 0) {
				v := values[i]
				points[i].Value = &v
			}
		}
		data[channel] = points
	}

	return &Result{
		Indicator:  def.Name,
		OutputType: def.OutputType,
		Data:       data,
	}, nil
}

// CalculateBatch runs several indicators against one resolved series. Each
// request succeeds or fails independently.
func (c *Calculator) CalculateBatch(series Series, requests []Request) []BatchItem {
	items := make([]BatchItem, 0, len(requests))
	for _, req := range requests {
		result, err := c.Calculate(series, req.Name, req.Params)
		items = append(items, BatchItem{Name: req.Name, Result: result, Err: err})
	}
	return items
}
