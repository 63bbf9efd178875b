package obs

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_JSONOutsideDev(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger("prod", &buf)
	log.Info("booked", "plate", "1234ABC")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "booked", rec["msg"])
	assert.Equal(t, "1234ABC", rec["plate"])
}

func TestNewLogger_DevIsNotJSON(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger("dev", &buf)
	log.Debug("rolling back")

	assert.Contains(t, buf.String(), "rolling back")
	assert.False(t, json.Valid(buf.Bytes()))
}
