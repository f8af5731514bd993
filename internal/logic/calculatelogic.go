package logic

import (
	"context"
	"errors"
	"time"

	"github.com/zeromicro/go-zero/core/logx"

	"stocklens-api/internal/svc"
	"stocklens-api/internal/types"
	"stocklens-api/pkg/indicators"
)

// ErrNoIndicators rejects calculation requests with an empty indicator list.
var ErrNoIndicators = errors.New("at least one indicator is required")

type CalculateLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewCalculateLogic(ctx context.Context, svcCtx *svc.ServiceContext) *CalculateLogic {
	return &CalculateLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// Calculate resolves the price series for the ticker and period, then runs
// every requested indicator against it. Individual indicators fail without
// failing the batch.
func (l *CalculateLogic) Calculate(req *types.CalculateReq) (*types.CalculateResp, error) {
	if len(req.Indicators) == 0 {
		return nil, ErrNoIndicators
	}

	hist, err := l.svcCtx.OHLCV.GetHistory(l.ctx, req.Ticker, req.Period, false)
	if err != nil {
		return nil, err
	}

	series := indicators.Series{
		Timestamps: make([]time.Time, 0, len(hist.Bars)),
		Closes:     make([]float64, 0, len(hist.Bars)),
	}
	dates := make([]string, 0, len(hist.Bars))
	for _, bar := range hist.Bars {
		series.Timestamps = append(series.Timestamps, bar.Day)
		series.Closes = append(series.Closes, bar.Close.InexactFloat64())
		dates = append(dates, bar.Day.Format("2006-01-02"))
	}

	requests := make([]indicators.Request, 0, len(req.Indicators))
	for _, spec := range req.Indicators {
		requests = append(requests, indicators.Request{Name: spec.Name, Params: spec.Params})
	}

	items := l.svcCtx.Calculator.CalculateBatch(series, requests)
	outputs := make([]types.IndicatorOutput, 0, len(items))
	for _, item := range items {
		out := types.IndicatorOutput{Name: item.Name}
		if item.Err != nil {
			out.Error = item.Err.Error()
			outputs = append(outputs, out)
			continue
		}
		out.Success = true
		out.OutputType = string(item.Result.OutputType)
		out.Data = make(map[string][]*float64, len(item.Result.Data))
		for channel, points := range item.Result.Data {
			values := make([]*float64, len(points))
			for i, point := range points {
				values[i] = point.Value
			}
			out.Data[channel] = values
		}
		outputs = append(outputs, out)
	}

	return &types.CalculateResp{
		Ticker:     hist.Ticker,
		Period:     hist.Period,
		Dates:      dates,
		Indicators: outputs,
	}, nil
}
