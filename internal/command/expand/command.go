// Package expand 提供本地展开命令。
package expand

import (
	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-contraction/internal/command"
)

// Command 本地展开命令
var Command = NewCommand()

// NewCommand 创建本地展开命令，每次调用返回独立的 flag 状态。
func NewCommand() *cli.Command {
	return &cli.Command{
		Name:      "expand",
		Usage:     "展开文本中的英文缩略形式",
		ArgsUsage: "[text...]",
		Description: "文本来源优先级：命令行参数 → --file → 标准输入。\n" +
			"空白输入不输出任何内容。",
		Flags: []cli.Flag{
			command.ConfigFlag(),
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "从文件读取文本",
			},
			&cli.BoolFlag{
				Name:  "stats",
				Usage: "在 stderr 输出字符数、单词数与替换次数",
			},
			&cli.BoolFlag{
				Name:  "expand-typographic",
				Value: command.Defaults.Expand.Typographic,
				Usage: "同时匹配排版撇号 (’)",
			},
		},
		Action: action,
	}
}
