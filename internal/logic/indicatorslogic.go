package logic

import (
	"context"
	"fmt"

	"github.com/zeromicro/go-zero/core/logx"

	cachekeys "stocklens-api/internal/cache"
	"stocklens-api/internal/svc"
	"stocklens-api/internal/types"
	"stocklens-api/pkg/indicators"
)

type ListIndicatorsLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewListIndicatorsLogic(ctx context.Context, svcCtx *svc.ServiceContext) *ListIndicatorsLogic {
	return &ListIndicatorsLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *ListIndicatorsLogic) ListIndicators(req *types.IndicatorListReq) (*types.IndicatorListResp, error) {
	cached := req.Category == "" && l.svcCtx.Cache != nil
	cacheKey := cachekeys.IndicatorCatalogKey()
	if cached {
		var resp types.IndicatorListResp
		if err := l.svcCtx.Cache.GetCtx(l.ctx, cacheKey, &resp); err == nil {
			return &resp, nil
		}
	}

	var defs []indicators.Definition
	if req.Category != "" {
		defs = l.svcCtx.Registry.ListByCategory(indicators.Category(req.Category))
	} else {
		defs = l.svcCtx.Registry.ListAll()
	}

	infos := make([]types.IndicatorInfo, 0, len(defs))
	for _, def := range defs {
		infos = append(infos, indicatorInfo(def))
	}
	resp := &types.IndicatorListResp{Indicators: infos, Count: len(infos)}

	if cached {
		if err := l.svcCtx.Cache.SetWithExpireCtx(l.ctx, cacheKey, resp,
			cachekeys.CatalogTTL(l.svcCtx.TTL)); err != nil {
			l.Errorf("catalog cache write failed: %v", err)
		}
	}
	return resp, nil
}

type GetIndicatorLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewGetIndicatorLogic(ctx context.Context, svcCtx *svc.ServiceContext) *GetIndicatorLogic {
	return &GetIndicatorLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *GetIndicatorLogic) GetIndicator(req *types.IndicatorGetReq) (*types.IndicatorInfo, error) {
	def, ok := l.svcCtx.Registry.Get(req.Name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", indicators.ErrUnknownIndicator, req.Name)
	}
	info := indicatorInfo(def)
	return &info, nil
}

func indicatorInfo(def indicators.Definition) types.IndicatorInfo {
	params := make([]types.IndicatorParam, 0, len(def.Params))
	for _, p := range def.Params {
		params = append(params, types.IndicatorParam{
			Name:    p.Name,
			Type:    p.Type,
			Default: p.Default,
			MinVal:  p.MinVal,
			MaxVal:  p.MaxVal,
		})
	}
	return types.IndicatorInfo{
		Name:        def.Name,
		DisplayName: def.DisplayName,
		Category:    string(def.Category),
		OutputType:  string(def.OutputType),
		Params:      params,
		OutputNames: def.OutputNames,
	}
}
