package handler

import (
	"net/http"

	"github.com/zeromicro/go-zero/rest"

	"stocklens-api/internal/svc"
)

func RegisterHandlers(server *rest.Server, serverCtx *svc.ServiceContext) {
	server.AddRoutes(
		[]rest.Route{
			{
				Method:  http.MethodGet,
				Path:    "/stocks/search",
				Handler: SearchHandler(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/stocks/:ticker/ohlcv",
				Handler: OhlcvHandler(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/stocks/:ticker/info",
				Handler: TickerInfoHandler(serverCtx),
			},
			{
				Method:  http.MethodPost,
				Path:    "/stocks/:ticker/indicators",
				Handler: CalculateHandler(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/indicators",
				Handler: ListIndicatorsHandler(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/indicators/:name",
				Handler: GetIndicatorHandler(serverCtx),
			},
		},
		rest.WithPrefix("/api/v1"),
	)

	server.AddRoutes(
		[]rest.Route{
			{
				Method:  http.MethodGet,
				Path:    "/healthz",
				Handler: HealthHandler(serverCtx),
			},
		},
	)
}
