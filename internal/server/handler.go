package server

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/lwmacct/251207-go-pkg-contraction/internal/api"
	"github.com/lwmacct/251207-go-pkg-contraction/internal/history"
	"github.com/lwmacct/251207-go-pkg-contraction/pkg/contraction"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// Expander 处理器依赖的展开能力，由 *contraction.Expander 实现。
type Expander interface {
	ExpandN(text string) (string, int)
	Table() contraction.Table
}

// HistoryResponse GET /history 响应体。
type HistoryResponse struct {
	Entries []history.Entry `json:"entries"`
}

// expandBody POST /expand 的请求体解码目标，text 缺失或为 null 时为 nil。
type expandBody struct {
	Text *string `json:"text"`
}

// Handler 汇集各 HTTP 端点的依赖。
type Handler struct {
	expander Expander
	history  history.Recorder
	maxBytes int64
}

// NewHandler 创建处理器。maxBytes <= 0 表示不限制请求体大小。
func NewHandler(e Expander, rec history.Recorder, maxBytes int64) *Handler {
	if rec == nil {
		rec = history.Nop{}
	}

	return &Handler{expander: e, history: rec, maxBytes: maxBytes}
}

// Health 处理 GET /health。
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, api.HealthResponse{Status: "ok"})
}

// Expand 处理 POST /expand。
func (h *Handler) Expand(c *gin.Context) {
	if h.maxBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes)
	}

	var req expandBody
	if err := c.ShouldBindJSON(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, api.ErrorResponse{Error: "request body too large"})
			return
		}
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}
	if req.Text == nil {
		c.JSON(http.StatusUnprocessableEntity, api.ErrorResponse{Error: "text is required"})
		return
	}
	text := *req.Text

	expanded, n := h.expander.ExpandN(text)
	stats := contraction.Count(expanded)

	entry := history.NewEntry()
	entry.InputCharacters = contraction.Count(text).Characters
	entry.Characters = stats.Characters
	entry.Words = stats.Words
	entry.Replacements = n
	if err := h.history.Record(c.Request.Context(), entry); err != nil {
		slog.Warn("Record history failed", "error", err, "request_id", c.GetString(ctxRequestID))
	}

	c.JSON(http.StatusOK, api.ExpandResponse{
		Expanded:     expanded,
		Replacements: n,
		Characters:   stats.Characters,
		Words:        stats.Words,
	})
}

// Contractions 处理 GET /contractions。
func (h *Handler) Contractions(c *gin.Context) {
	table := h.expander.Table()
	c.JSON(http.StatusOK, api.ContractionsResponse{
		Count:   table.Len(),
		Entries: table.Entries(),
	})
}

// History 处理 GET /history?limit=N。
func (h *Handler) History(c *gin.Context) {
	limit, err := strconv.ParseInt(c.DefaultQuery("limit", strconv.Itoa(defaultHistoryLimit)), 10, 64)
	if err != nil || limit < 1 {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid limit"})
		return
	}
	limit = min(limit, maxHistoryLimit)

	entries, err := h.history.Recent(c.Request.Context(), limit)
	switch {
	case errors.Is(err, history.ErrDisabled):
		c.JSON(http.StatusServiceUnavailable, api.ErrorResponse{Error: "history disabled"})
		return
	case err != nil:
		slog.Error("Read history failed", "error", err, "request_id", c.GetString(ctxRequestID))
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "history unavailable"})
		return
	}

	c.JSON(http.StatusOK, HistoryResponse{Entries: entries})
}
