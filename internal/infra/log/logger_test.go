package logs

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"storefront/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{in: "debug", want: slog.LevelDebug},
		{in: "INFO", want: slog.LevelInfo},
		{in: "", want: slog.LevelInfo},
		{in: "warning", want: slog.LevelWarn},
		{in: "error", want: slog.LevelError},
		{in: "verbose", want: slog.LevelInfo, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseLogLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNew_WritesJSONToOutput(t *testing.T) {
	var buf bytes.Buffer
	cfg := &config.Config{}
	cfg.Env.ServiceName = "storefront"
	cfg.Env.Log.Level = "info"

	logger, err := New(Params{Config: cfg, Output: &buf})
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("cart loaded", slog.Int("items", 2))

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "cart loaded", record["msg"])
	assert.Equal(t, "storefront", record["service"])
	assert.EqualValues(t, 2, record["items"])
}
