package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-contraction/internal/command/client"
	"github.com/lwmacct/251207-go-pkg-contraction/internal/command/expand"
	"github.com/lwmacct/251207-go-pkg-contraction/internal/command/server"
	"github.com/lwmacct/251207-go-pkg-contraction/internal/version"
)

func main() {
	app := &cli.Command{
		Name:    version.AppRawName,
		Usage:   "英文缩略形式展开工具",
		Version: version.GetVersion(),
		Commands: []*cli.Command{
			version.Command,
			expand.Command,
			client.Command,
			server.Command,
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
