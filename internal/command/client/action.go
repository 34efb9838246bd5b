package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-contraction/internal/client"
	"github.com/lwmacct/251207-go-pkg-contraction/internal/command"
)

func newClient(cmd *cli.Command) (*client.Client, error) {
	cfg, err := command.LoadConfig(cmd)
	if err != nil {
		return nil, err
	}

	return client.New(cfg.Client.URL,
		client.WithTimeout(cfg.Client.Timeout),
		client.WithRetries(cfg.Client.Retries),
		client.WithBackoff(cfg.Client.Backoff),
	), nil
}

func healthAction(ctx context.Context, cmd *cli.Command) error {
	c, err := newClient(cmd)
	if err != nil {
		return err
	}

	if err := c.Health(ctx); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	_, err = fmt.Fprintln(cmd.Root().Writer, "ok")

	return err
}

func expandAction(ctx context.Context, cmd *cli.Command) error {
	text := strings.Join(cmd.Args().Slice(), " ")
	if text == "" {
		data, err := io.ReadAll(cmd.Root().Reader)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		text = string(data)
	}
	if strings.TrimSpace(text) == "" {
		return nil
	}

	c, err := newClient(cmd)
	if err != nil {
		return err
	}

	resp, err := c.Expand(ctx, text)
	if err != nil {
		if errors.Is(err, client.ErrUnavailable) {
			return fmt.Errorf("server unreachable, is it running? %w", err)
		}
		return err
	}

	out := resp.Expanded
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	_, err = io.WriteString(cmd.Root().Writer, out)

	return err
}

func contractionsAction(ctx context.Context, cmd *cli.Command) error {
	c, err := newClient(cmd)
	if err != nil {
		return err
	}

	entries, err := c.Contractions(ctx)
	if err != nil {
		return err
	}

	w := cmd.Root().Writer
	for _, e := range entries {
		if _, err := fmt.Fprintf(w, "%-14s %s\n", e.Contraction, e.Expansion); err != nil {
			return err
		}
	}

	return nil
}
