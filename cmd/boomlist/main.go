package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/winspan/boomlist/internal/list"
	"github.com/winspan/boomlist/internal/web"
)

func main() {
	var configPath string
	var serve bool
	flag.StringVar(&configPath, "config", "configs/config.yaml", "path to config file")
	flag.BoolVar(&serve, "serve", false, "keep running and expose the admin http api")
	flag.Parse()

	cfg, err := list.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	src := list.NewSource(cfg)
	gen := list.NewGenerator(cfg, src)

	// 启动先生成一次；单次模式到此结束，失败路径均已降级处理，保持退出码0
	res := gen.Run()
	if !serve {
		return
	}

	// Admin HTTP
	r := chi.NewRouter()
	api := web.BindRoutes(r, gen, cfg)
	api.SetResult(res)

	httpSrv := &http.Server{
		Addr:              cfg.GetListenHTTP(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Printf("admin http listening on %s", cfg.GetListenHTTP())
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http listen: %v", err)
		}
	}()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	// 定时重新生成，SIGHUP 立即触发
	ticker := time.NewTicker(cfg.GetInterval())
	defer ticker.Stop()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGHUP)

	for {
		select {
		case <-ctx.Done():
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			_ = httpSrv.Shutdown(shutdownCtx)
			shutdownCancel()
			return
		case <-ticker.C:
			api.SetResult(gen.Run())
		case <-sigc:
			log.Printf("regenerating on SIGHUP")
			api.SetResult(gen.Run())
		}
	}
}
