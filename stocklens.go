package main

import (
	"flag"
	"fmt"

	"github.com/zeromicro/go-zero/rest"

	"stocklens-api/internal/config"
	"stocklens-api/internal/handler"
	"stocklens-api/internal/svc"
)

var configFile = flag.String("f", "etc/stocklens.yaml", "the config file")

func main() {
	flag.Parse()

	cfg := config.MustLoad(*configFile)

	server := rest.MustNewServer(cfg.RestConf)
	defer server.Stop()

	ctx := svc.NewServiceContext(*cfg)
	if ctx.Journal != nil {
		defer ctx.Journal.Close()
	}
	handler.RegisterHandlers(server, ctx)

	fmt.Printf("Starting server at %s:%d...\n", cfg.Host, cfg.Port)
	server.Start()
}
