package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferedLogger() (*Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return &Logger{Logger: slog.New(slog.NewJSONHandler(buf, nil))}, buf
}

func decodeRecord(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	return record
}

func TestPrintStyleArgsFoldIntoMessage(t *testing.T) {
	log, buf := newBufferedLogger()

	log.Info("Points purchased:", "user-1", "points:", 500)

	record := decodeRecord(t, buf)
	assert.Equal(t, "Points purchased: user-1 points: 500", record["msg"])
	assert.NotContains(t, record, "!BADKEY")
}

func TestErrorValueFoldsIntoMessage(t *testing.T) {
	log, buf := newBufferedLogger()

	log.Error("failed to credit vendor:", errors.New("connection reset"))

	record := decodeRecord(t, buf)
	assert.Equal(t, "failed to credit vendor: connection reset", record["msg"])
	assert.NotContains(t, record, "!BADKEY")
}

func TestAttrArgsStayStructured(t *testing.T) {
	log, buf := newBufferedLogger()

	log.Error("failed to connect", slog.Any("error", errors.New("boom")))

	record := decodeRecord(t, buf)
	assert.Equal(t, "failed to connect", record["msg"])
	assert.Equal(t, "boom", record["error"])
}
