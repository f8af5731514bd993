package logic

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"stocklens-api/internal/svc"
	"stocklens-api/internal/types"
)

type TickerInfoLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewTickerInfoLogic(ctx context.Context, svcCtx *svc.ServiceContext) *TickerInfoLogic {
	return &TickerInfoLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *TickerInfoLogic) TickerInfo(req *types.TickerInfoReq) (*types.TickerInfoResp, error) {
	info, err := l.svcCtx.OHLCV.GetInfo(l.ctx, req.Ticker)
	if err != nil {
		return nil, err
	}
	return &types.TickerInfoResp{
		Ticker:        info.Ticker,
		Name:          info.Name,
		Exchange:      info.Exchange,
		Sector:        info.Sector,
		Industry:      info.Industry,
		MarketCap:     info.MarketCap,
		CurrentPrice:  info.CurrentPrice,
		PreviousClose: info.PreviousClose,
		Change:        info.Change,
		ChangePercent: info.ChangePercent,
	}, nil
}
