package logic

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"stocklens-api/internal/ohlcv"
	"stocklens-api/internal/svc"
	"stocklens-api/internal/types"
)

type OhlcvLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewOhlcvLogic(ctx context.Context, svcCtx *svc.ServiceContext) *OhlcvLogic {
	return &OhlcvLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *OhlcvLogic) Ohlcv(req *types.OHLCVReq) (*types.OHLCVResp, error) {
	hist, err := l.svcCtx.OHLCV.GetHistory(l.ctx, req.Ticker, req.Period, req.ForceRefresh)
	if err != nil {
		return nil, err
	}
	return historyResponse(hist), nil
}

func historyResponse(hist *ohlcv.History) *types.OHLCVResp {
	data := make([]types.BarData, 0, len(hist.Bars))
	for _, bar := range hist.Bars {
		data = append(data, types.BarData{
			Date:     bar.Day.Format("2006-01-02"),
			Open:     bar.Open.InexactFloat64(),
			High:     bar.High.InexactFloat64(),
			Low:      bar.Low.InexactFloat64(),
			Close:    bar.Close.InexactFloat64(),
			AdjClose: bar.AdjClose.InexactFloat64(),
			Volume:   bar.Volume,
		})
	}
	return &types.OHLCVResp{
		Ticker: hist.Ticker,
		Period: hist.Period,
		Data:   data,
		Metadata: types.OHLCVMeta{
			Records:   len(data),
			StartDate: hist.Start.Format("2006-01-02"),
			EndDate:   hist.End.Format("2006-01-02"),
		},
	}
}
