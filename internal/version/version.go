// Package version 提供应用名称、构建版本与 version 子命令。
package version

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/urfave/cli/v3"
)

// AppRawName 应用名称，用于配置文件搜索路径与日志。
const AppRawName = "contraction"

// 以下变量可在构建时通过 -ldflags "-X" 注入。
var (
	Version   = ""
	Commit    = ""
	BuildTime = ""
)

// GetVersion 返回版本号；未注入时回退到模块构建信息。
func GetVersion() string {
	if Version != "" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}

	return "(devel)"
}

// Command 打印版本信息的子命令。
var Command = &cli.Command{
	Name:  "version",
	Usage: "显示版本信息",
	Action: func(_ context.Context, cmd *cli.Command) error {
		_, err := fmt.Fprintf(cmd.Root().Writer, "%s %s\n", AppRawName, GetVersion())
		if err != nil {
			return err
		}
		if Commit != "" {
			_, _ = fmt.Fprintf(cmd.Root().Writer, "commit: %s\n", Commit)
		}
		if BuildTime != "" {
			_, _ = fmt.Fprintf(cmd.Root().Writer, "built:  %s\n", BuildTime)
		}

		return nil
	},
}
