package logic

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"stocklens-api/internal/svc"
	"stocklens-api/internal/types"
)

type SearchLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewSearchLogic(ctx context.Context, svcCtx *svc.ServiceContext) *SearchLogic {
	return &SearchLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *SearchLogic) Search(req *types.SearchReq) (*types.SearchResp, error) {
	matches := l.svcCtx.Search.Search(l.ctx, req.Query, req.Limit)
	results := make([]types.SearchResult, 0, len(matches))
	for _, m := range matches {
		results = append(results, types.SearchResult{
			Ticker:   m.Ticker,
			Name:     m.Name,
			Distance: m.Distance,
		})
	}
	return &types.SearchResp{
		Query:   req.Query,
		Results: results,
		Count:   len(results),
	}, nil
}
