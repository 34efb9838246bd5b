// Package server 提供展开服务的 HTTP 路由与中间件。
//
// 服务本身不包含展开逻辑，只把请求转交给 [Expander]，输出与本地展开完全一致。
package server

import (
	"github.com/gin-gonic/gin"

	"github.com/lwmacct/251207-go-pkg-contraction/internal/api"
)

// Setup 挂载全局中间件并注册所有端点。
func Setup(r *gin.Engine, h *Handler, corsOrigins []string) {
	r.Use(RequestID(), RequestLogger(), Recovery(), CORS(corsOrigins))

	r.GET(api.PathHealth, h.Health)
	r.POST(api.PathExpand, h.Expand)
	r.GET(api.PathContractions, h.Contractions)
	r.GET(api.PathHistory, h.History)
}

// NewEngine 创建不带默认中间件的 gin 引擎并完成路由注册。
func NewEngine(h *Handler, corsOrigins []string) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies(nil)
	Setup(r, h, corsOrigins)

	return r
}
