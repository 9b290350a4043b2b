package main

import (
	"flag"
	"fmt"

	"liqdepth-api/internal/config"
	"liqdepth-api/internal/handler"
	"liqdepth-api/internal/svc"

	"github.com/zeromicro/go-zero/rest"
)

var configFile = flag.String("f", "etc/liqdepth.yaml", "the config file")

func main() {
	flag.Parse()

	cfg := config.MustLoad(*configFile)

	server := rest.MustNewServer(cfg.RestConf)
	defer server.Stop()

	ctx := svc.NewServiceContext(*cfg, *configFile)
	ctx.StartPolling()
	defer ctx.StopPolling()

	handler.RegisterHandlers(server, ctx)

	fmt.Printf("Starting server at %s:%d...\n", cfg.Host, cfg.Port)
	server.Start()
}
