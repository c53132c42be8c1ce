package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/aretw0/javelin/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvelope_Decode(t *testing.T) {
	body := `{
		"payload": {"x": 1},
		"javelin_metadata": {"7": {"name": "row"}},
		"javelin_behaviors": {"tooltip": [{"delay": 250}], "autofocus": []},
		"onload": ["refresh", {"call": "highlight", "args": {"id": "row-7"}}]
	}`

	var env domain.Envelope
	require.NoError(t, json.Unmarshal([]byte(body), &env))

	assert.False(t, env.Failed())
	assert.Equal(t, map[string]any{"x": float64(1)}, env.Payload)
	assert.Contains(t, env.Metadata, "7")
	assert.Len(t, env.Behaviors["tooltip"], 1)
	assert.Empty(t, env.Behaviors["autofocus"])

	require.Len(t, env.Onload, 2)
	assert.Equal(t, domain.OnloadInstruction{Call: "refresh"}, env.Onload[0])
	assert.Equal(t, "highlight", env.Onload[1].Call)
	assert.Equal(t, "row-7", env.Onload[1].Args["id"])
}

func TestEnvelope_InvalidOnload(t *testing.T) {
	var env domain.Envelope
	err := json.Unmarshal([]byte(`{"onload": [42]}`), &env)
	assert.Error(t, err)
}

func TestTruthy(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  bool
	}{
		{"nil", nil, false},
		{"false", false, false},
		{"true", true, true},
		{"empty string", "", false},
		{"string", "denied", true},
		{"zero", float64(0), false},
		{"number", float64(403), true},
		{"object", map[string]any{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.Truthy(tt.value))
		})
	}
}

func TestIsTimeout(t *testing.T) {
	assert.True(t, domain.IsTimeout(domain.ErrorTimeout))
	assert.False(t, domain.IsTimeout(float64(domain.ErrorTimeout)))
	assert.False(t, domain.IsTimeout(nil))
	assert.False(t, domain.IsTimeout("timeout"))
}

func TestChannel_String(t *testing.T) {
	assert.Equal(t, "done", domain.ChannelDone.String())
	assert.Equal(t, "error", domain.ChannelError.String())
	assert.Equal(t, "finally", domain.ChannelFinally.String())
}
