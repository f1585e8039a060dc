package rediscache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsKey(t *testing.T) {
	assert.Equal(t, "planner:settings:org-1", settingsKey("org-1"))
}

func TestDecodeSettings(t *testing.T) {
	doc, err := decodeSettings([]byte(`{"vehicleTypes":["jetter","tanker"]}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"jetter", "tanker"}, doc.VehicleTypes)

	doc, err = decodeSettings([]byte(`{}`))
	require.NoError(t, err)
	assert.Nil(t, doc.VehicleTypes)

	_, err = decodeSettings([]byte(`not json`))
	assert.ErrorContains(t, err, "corrupt planner settings")
}
