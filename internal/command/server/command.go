// Package server 提供 HTTP 服务器命令。
package server

import (
	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-contraction/internal/command"
	"github.com/lwmacct/251207-go-pkg-contraction/internal/version"
)

// Command 服务器命令
var Command = NewCommand()

// NewCommand 创建服务器命令，每次调用返回独立的 flag 状态。
func NewCommand() *cli.Command {
	return &cli.Command{
		Name:     "server",
		Usage:    "启动展开 HTTP 服务",
		Action:   action,
		Commands: []*cli.Command{version.Command},
		Flags: []cli.Flag{
			command.ConfigFlag(),
			&cli.StringFlag{
				Name:    "server-addr",
				Aliases: []string{"a"},
				Value:   command.Defaults.Server.Addr,
				Usage:   "服务器监听地址",
			},
			&cli.DurationFlag{
				Name:  "server-timeout",
				Value: command.Defaults.Server.Timeout,
				Usage: "HTTP 读写超时",
			},
			&cli.DurationFlag{
				Name:  "server-idletime",
				Value: command.Defaults.Server.Idletime,
				Usage: "HTTP 空闲超时",
			},
			&cli.Int64Flag{
				Name:  "server-max-bytes",
				Value: command.Defaults.Server.MaxBytes,
				Usage: "请求体大小上限 (字节)",
			},
			&cli.StringSliceFlag{
				Name:  "server-cors-origins",
				Value: command.Defaults.Server.CORSOrigins,
				Usage: "允许跨域的来源",
			},
			&cli.BoolFlag{
				Name:  "redis-disabled",
				Value: command.Defaults.Redis.Disabled,
				Usage: "禁用 Redis 展开历史",
			},
			&cli.BoolFlag{
				Name:  "expand-typographic",
				Value: command.Defaults.Expand.Typographic,
				Usage: "同时匹配排版撇号 (’)",
			},
		},
	}
}
