package expand

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-contraction/internal/command"
	"github.com/lwmacct/251207-go-pkg-contraction/pkg/contraction"
)

func action(_ context.Context, cmd *cli.Command) error {
	cfg, err := command.LoadConfig(cmd)
	if err != nil {
		return err
	}

	e, err := command.NewExpander(cfg.Expand)
	if err != nil {
		return fmt.Errorf("build expander: %w", err)
	}

	text, err := readInput(cmd)
	if err != nil {
		return err
	}
	if strings.TrimSpace(text) == "" {
		return nil
	}

	out, n := e.ExpandN(text)
	if _, err := io.WriteString(cmd.Root().Writer, out); err != nil {
		return err
	}
	if !strings.HasSuffix(out, "\n") {
		_, _ = io.WriteString(cmd.Root().Writer, "\n")
	}

	if cmd.Bool("stats") {
		stats := contraction.Count(out)
		_, _ = fmt.Fprintf(cmd.Root().ErrWriter, "characters: %d  words: %d  replacements: %d\n",
			stats.Characters, stats.Words, n)
	}

	return nil
}

// readInput 依次从参数、--file、标准输入读取文本。
func readInput(cmd *cli.Command) (string, error) {
	if cmd.Args().Len() > 0 {
		return strings.Join(cmd.Args().Slice(), " "), nil
	}

	if path := cmd.String("file"); path != "" {
		b, err := os.ReadFile(path) //nolint:gosec // path is given by the user
		if err != nil {
			return "", fmt.Errorf("read %s: %w", path, err)
		}
		return string(b), nil
	}

	reader := cmd.Root().Reader
	if reader == nil {
		reader = os.Stdin
	}
	b, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}

	return string(b), nil
}
