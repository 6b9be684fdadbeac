package entities

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanModeJSONRoundTrip(t *testing.T) {
	cases := []struct {
		mode PlanMode
		want string
	}{
		{ModeBaseline, `"baseline"`},
		{ModeAdvanced, `"advanced"`},
	}

	for _, tc := range cases {
		data, err := json.Marshal(tc.mode)
		require.NoError(t, err)
		assert.Equal(t, tc.want, string(data))

		var decoded PlanMode
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, tc.mode, decoded)
	}
}

func TestPlanModeUnmarshalJSONRejectsUnknownValue(t *testing.T) {
	var mode PlanMode
	err := json.Unmarshal([]byte(`"something-else"`), &mode)
	assert.Error(t, err)
}
