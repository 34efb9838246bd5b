package command

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lwmacct/251207-go-pkg-contraction/internal/config"
	"github.com/lwmacct/251207-go-pkg-contraction/pkg/contraction"
)

func TestNewExpander(t *testing.T) {
	e, err := NewExpander(config.ExpandConfig{
		Extra:       map[string]string{"gonna": "going to"},
		Typographic: true,
	})
	require.NoError(t, err)

	assert.Equal(t, "I am going to go", e.Expand("I’m gonna go"))
	assert.Equal(t, contraction.DefaultTable().Len()+1, e.Table().Len())

	_, err = NewExpander(config.ExpandConfig{Extra: map[string]string{"Gonna": "going to"}})
	require.ErrorIs(t, err, contraction.ErrKeyNotLowercase)
}

func TestSetupLogger(t *testing.T) {
	old := slog.Default()
	t.Cleanup(func() { slog.SetDefault(old) })

	SetupLogger(config.LogConfig{Level: "debug", Format: "json"})
	assert.True(t, slog.Default().Enabled(context.Background(), slog.LevelDebug))

	SetupLogger(config.LogConfig{Level: "nonsense"})
	assert.False(t, slog.Default().Enabled(context.Background(), slog.LevelDebug))
	assert.True(t, slog.Default().Enabled(context.Background(), slog.LevelInfo))
}
