package common

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDuration_UnmarshalText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Duration
		wantErr  bool
	}{
		{name: "milliseconds", input: "250ms", expected: 250 * time.Millisecond},
		{name: "seconds", input: "5s", expected: 5 * time.Second},
		{name: "complex duration", input: "1h30m45s", expected: time.Hour + 30*time.Minute + 45*time.Second},
		{name: "zero", input: "0s", expected: 0},
		{name: "no unit", input: "100", wantErr: true},
		{name: "invalid unit", input: "100x", wantErr: true},
		{name: "empty string", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := d.UnmarshalText([]byte(tt.input))

			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, d.Duration)
		})
	}
}

func TestDuration_ConfigFormats(t *testing.T) {
	type refresh struct {
		Interval Duration `json:"interval" yaml:"interval" toml:"interval"`
	}

	t.Run("json", func(t *testing.T) {
		var r refresh
		require.NoError(t, json.Unmarshal([]byte(`{"interval":"5s"}`), &r))
		assert.Equal(t, 5*time.Second, r.Interval.Duration)
	})

	t.Run("yaml", func(t *testing.T) {
		var r refresh
		require.NoError(t, yaml.Unmarshal([]byte("interval: 12s\n"), &r))
		assert.Equal(t, 12*time.Second, r.Interval.Duration)
	})

	t.Run("toml", func(t *testing.T) {
		var r refresh
		_, err := toml.Decode(`interval = "1m"`, &r)
		require.NoError(t, err)
		assert.Equal(t, time.Minute, r.Interval.Duration)
	})

	t.Run("json roundtrip", func(t *testing.T) {
		data, err := json.Marshal(refresh{Interval: NewDuration(90 * time.Second)})
		require.NoError(t, err)
		assert.JSONEq(t, `{"interval":"1m30s"}`, string(data))
	})
}

func TestDuration_JSONSchema(t *testing.T) {
	schema := Duration{}.JSONSchema()

	require.NotNil(t, schema)
	assert.Equal(t, "string", schema.Type)
	assert.Equal(t, "Duration", schema.Title)
	assert.Contains(t, schema.Examples, "1m")
}
