// Package client 提供 HTTP 客户端命令。
package client

import (
	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-contraction/internal/command"
	"github.com/lwmacct/251207-go-pkg-contraction/internal/version"
)

// Command 客户端命令
var Command = NewCommand()

// NewCommand 创建客户端命令，每次调用返回独立的 flag 状态。
func NewCommand() *cli.Command {
	return &cli.Command{
		Name:  "client",
		Usage: "HTTP 客户端工具",
		Flags: []cli.Flag{
			command.ConfigFlag(),
			&cli.StringFlag{
				Name:    "client-url",
				Aliases: []string{"s"},
				Value:   command.Defaults.Client.URL,
				Usage:   "服务器地址",
			},
			&cli.DurationFlag{
				Name:  "client-timeout",
				Value: command.Defaults.Client.Timeout,
				Usage: "请求超时时间",
			},
			&cli.IntFlag{
				Name:  "client-retries",
				Value: command.Defaults.Client.Retries,
				Usage: "重试次数",
			},
		},
		Commands: []*cli.Command{
			version.Command,
			{
				Name:   "health",
				Usage:  "检查服务器健康状态",
				Action: healthAction,
			},
			{
				Name:      "expand",
				Usage:     "通过服务器展开文本",
				ArgsUsage: "[text...]",
				Action:    expandAction,
			},
			{
				Name:   "contractions",
				Usage:  "列出服务器使用的映射表",
				Action: contractionsAction,
			},
		},
	}
}
