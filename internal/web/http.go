package web

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/winspan/boomlist/internal/list"
	"github.com/winspan/boomlist/pkg/utils"
)

// Api 管理接口：serve 模式下暴露生成状态、清单内容与手动触发入口
type Api struct {
	gen   *list.Generator
	cfg   *list.Config
	token string

	mu   sync.RWMutex
	last *list.Result
}

// BindRoutes 绑定管理路由
func BindRoutes(r *chi.Mux, gen *list.Generator, cfg *list.Config) *Api {
	api := &Api{gen: gen, cfg: cfg, token: cfg.GetAdminToken()}

	// 中间件
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer, middleware.Timeout(60*time.Second))

	r.Get("/api/health", api.health)
	r.Get("/list", api.serveList)
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(pr chi.Router) {
		pr.Use(api.auth)
		pr.Get("/api/status", api.getStatus)
		pr.Post("/api/generate", api.generate)
	})

	return api
}

// SetResult 记录最近一次生成结果
func (a *Api) SetResult(res *list.Result) {
	a.mu.Lock()
	a.last = res
	a.mu.Unlock()
}

func (a *Api) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 如果token为空，跳过认证
		if utils.IsEmpty(a.token) {
			next.ServeHTTP(w, r)
			return
		}

		h := r.Header.Get("Authorization")
		if !strings.HasPrefix(h, "Bearer ") || strings.TrimPrefix(h, "Bearer ") != a.token {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (a *Api) health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("content-type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"ok": true})
}

// 最近一次生成的统计信息
func (a *Api) getStatus(w http.ResponseWriter, r *http.Request) {
	a.mu.RLock()
	last := a.last
	a.mu.RUnlock()

	w.Header().Set("content-type", "application/json")
	if last == nil {
		_ = json.NewEncoder(w).Encode(map[string]any{"generated": false})
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]any{"generated": true, "last_run": last})
}

// 手动触发一次重新生成
func (a *Api) generate(w http.ResponseWriter, r *http.Request) {
	res := a.gen.Run()
	a.SetResult(res)

	w.Header().Set("content-type", "application/json")
	_ = json.NewEncoder(w).Encode(res)
}

// 输出生成好的清单文件
func (a *Api) serveList(w http.ResponseWriter, r *http.Request) {
	path := a.cfg.GetOutputPath()
	if !utils.FileExists(path) {
		http.Error(w, "list not generated yet", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	http.ServeFile(w, r, path)
}
