package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogCarriesRequestID(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf, zerolog.DebugLevel)

	ctx := WithRequestID(context.Background(), "req-42")
	InfoLog(ctx, "parsed %d deficiencies", 3)

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "info", line["level"])
	assert.Equal(t, "parsed 3 deficiencies", line["message"])
	assert.Equal(t, "req-42", line["request_id"])
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf, zerolog.WarnLevel)

	DebugLog(context.Background(), "hidden")
	InfoLog(context.Background(), "hidden")
	assert.Zero(t, buf.Len())

	ErrorLog(context.Background(), "shown")
	assert.Contains(t, buf.String(), "shown")
}
