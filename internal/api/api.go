// Package api 定义 HTTP 服务与客户端共用的请求/响应结构。
package api

import (
	"github.com/lwmacct/251207-go-pkg-contraction/pkg/contraction"
)

// 路由路径。
const (
	PathHealth       = "/health"
	PathExpand       = "/expand"
	PathContractions = "/contractions"
	PathHistory      = "/history"
)

// HeaderRequestID 请求 ID 头。
const HeaderRequestID = "X-Request-ID"

// ExpandRequest POST /expand 请求体。
type ExpandRequest struct {
	Text string `json:"text"`
}

// ExpandResponse POST /expand 响应体。
type ExpandResponse struct {
	Expanded     string `json:"expanded"`
	Replacements int    `json:"replacements"`
	Characters   int    `json:"characters"`
	Words        int    `json:"words"`
}

// HealthResponse GET /health 响应体。
type HealthResponse struct {
	Status string `json:"status"`
}

// ContractionsResponse GET /contractions 响应体。
type ContractionsResponse struct {
	Count   int                 `json:"count"`
	Entries []contraction.Entry `json:"entries"`
}

// ErrorResponse 错误响应体。
type ErrorResponse struct {
	Error string `json:"error"`
}
