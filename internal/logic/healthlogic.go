package logic

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"stocklens-api/internal/svc"
	"stocklens-api/internal/types"
)

type HealthLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewHealthLogic(ctx context.Context, svcCtx *svc.ServiceContext) *HealthLogic {
	return &HealthLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// Health reports readiness: the database must answer a trivial query; the
// cache is optional and only reported.
func (l *HealthLogic) Health() *types.HealthResp {
	resp := &types.HealthResp{Status: "ok", Database: "ok", Cache: "disabled"}

	var one int
	if err := l.svcCtx.DBConn.QueryRowCtx(l.ctx, &one, "SELECT 1"); err != nil {
		l.Errorf("health: database ping failed: %v", err)
		resp.Status = "degraded"
		resp.Database = "down"
	}
	if l.svcCtx.Cache != nil {
		resp.Cache = "ok"
	}
	return resp
}
