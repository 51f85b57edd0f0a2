package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    zerolog.Level
		wantErr bool
	}{
		{"", zerolog.InfoLevel, false},
		{"debug", zerolog.DebugLevel, false},
		{" WARN ", zerolog.WarnLevel, false},
		{"loud", zerolog.NoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestInitWritesComponentToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "showcase.log")
	require.NoError(t, Init(Config{Level: "debug", Format: "json", File: path}))
	t.Cleanup(func() { _ = Close() })

	logger := Component("sequencer")
	logger.Info().Str("script", "screening").Msg("run started")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	line := string(data)
	require.True(t, strings.Contains(line, `"component":"sequencer"`), line)
	require.True(t, strings.Contains(line, `"script":"screening"`), line)
}

func TestInitRejectsUnknownFormat(t *testing.T) {
	err := Init(Config{Format: "xml", Discard: true})
	require.Error(t, err)
}

func TestInitDiscard(t *testing.T) {
	require.NoError(t, Init(Config{Level: "info", Discard: true}))
	t.Cleanup(func() { _ = Close() })

	logger := Logger()
	require.Equal(t, zerolog.InfoLevel, logger.GetLevel())
	require.False(t, logger.Debug().Enabled())
	logger.Info().Msg("dropped")
}

func TestInitFiltersBelowLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "showcase.log")
	require.NoError(t, Init(Config{Level: "warn", Format: "json", File: path}))
	t.Cleanup(func() { _ = Close() })

	logger := Component("cli")
	logger.Info().Msg("hidden")
	logger.Warn().Msg("shown")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NotContains(t, string(data), "hidden")
	require.Contains(t, string(data), "shown")
}
