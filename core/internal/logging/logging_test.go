package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(Options{Level: "WARN", JSON: true, Out: &buf})
	require.NoError(t, err)

	log.Info().Msg("hidden")
	log.Warn().Str("name", "C").Msg("no display artifact")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	assert.Equal(t, "warn", rec["level"])
	assert.Equal(t, "C", rec["name"])

	_, err = uuid.Parse(rec["run_id"].(string))
	assert.NoError(t, err)
}

func TestNew_Console(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(Options{Out: &buf})
	require.NoError(t, err)

	log.Info().Str("path", "WORK_DISPLAY/A/x.png").Msg("selected")
	assert.Contains(t, buf.String(), "selected")
	assert.Contains(t, buf.String(), "WORK_DISPLAY/A/x.png")
}

func TestNew_BadLevel(t *testing.T) {
	_, err := New(Options{Level: "chatty"})
	assert.Error(t, err)
}
