// Package command 提供展开、服务端与客户端的命令行功能。
package command

import (
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-contraction/internal/config"
	"github.com/lwmacct/251207-go-pkg-contraction/internal/version"
	"github.com/lwmacct/251207-go-pkg-contraction/pkg/contraction"
)

// EnvPrefix 环境变量前缀。
const EnvPrefix = "CONTRACTION_"

// Defaults 为默认配置的单一来源。
var Defaults = config.DefaultConfig()

// ConfigFlag 返回指定配置文件路径的 flag，各子命令各自持有一份。
func ConfigFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "配置文件路径 (默认按 .contraction.yaml 等路径搜索)",
	}
}

// LoadConfig 加载配置：默认值 → 配置文件 → .env/环境变量 → CLI flags，并按配置初始化日志。
func LoadConfig(cmd *cli.Command) (*config.Config, error) {
	cfg, err := config.Load(
		config.WithCommand(cmd),
		config.WithAppName(version.AppRawName),
		config.WithDotenv(".env"),
		config.WithEnvPrefix(EnvPrefix),
	)
	if err != nil {
		return nil, err
	}
	SetupLogger(cfg.Log)

	return cfg, nil
}

// NewExpander 按展开配置构造展开器。
func NewExpander(cfg config.ExpandConfig) (*contraction.Expander, error) {
	table, err := contraction.DefaultTable().Merge(cfg.Extra)
	if err != nil {
		return nil, err
	}

	var opts []contraction.Option
	if cfg.Typographic {
		opts = append(opts, contraction.WithTypographicApostrophes())
	}

	return contraction.New(table, opts...), nil
}

// SetupLogger 按配置安装默认 slog 处理器，输出到 stderr。
func SetupLogger(cfg config.LogConfig) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}
