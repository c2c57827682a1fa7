package logging

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestSetGlobalLogger(t *testing.T) {
	previous := Logger
	t.Cleanup(func() { SetGlobalLogger(previous) })

	var buf bytes.Buffer
	SetGlobalLogger(zerolog.New(&buf).Level(zerolog.TraceLevel))

	Trace().Int("entries", 3).Msg("cleared indexed graph")
	require.Contains(t, buf.String(), `"entries":3`)
	require.Contains(t, buf.String(), `"level":"trace"`)

	buf.Reset()
	Err(errors.New("boom")).Msg("replay failed")
	require.Contains(t, buf.String(), `"error":"boom"`)

	buf.Reset()
	sub := With().Str("component", "replay").Logger()
	sub.Info().Msg("loaded")
	require.Contains(t, buf.String(), `"component":"replay"`)
}

func TestCtxFallsBackToGlobalLogger(t *testing.T) {
	previous := Logger
	t.Cleanup(func() { SetGlobalLogger(previous) })

	var buf bytes.Buffer
	SetGlobalLogger(zerolog.New(&buf))

	Ctx(context.Background()).Info().Msg("from context")
	require.Contains(t, buf.String(), "from context")
}

func TestNopByDefault(t *testing.T) {
	previous := Logger
	t.Cleanup(func() { SetGlobalLogger(previous) })

	SetGlobalLogger(zerolog.Nop())
	require.Equal(t, zerolog.Disabled, Logger.GetLevel())
}
