package logging

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// records decodes every JSON line written by a JSON slog handler.
func records(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	sc := bufio.NewScanner(buf)
	for sc.Scan() {
		var rec map[string]any
		require.NoError(t, json.Unmarshal(sc.Bytes(), &rec), "line: %s", sc.Text())
		out = append(out, rec)
	}
	return out
}

func TestJSONSlogLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	log := NewJSONSlogLogger(&buf, slog.LevelDebug)
	ctx := context.Background()

	log.Debug(ctx, "dbg", "n", 1)
	log.Info(ctx, "inf", "n", 2)
	log.Warn(ctx, "wrn", "n", 3)
	log.Error(ctx, "err", "n", 4)

	recs := records(t, &buf)
	require.Len(t, recs, 4)
	for i, want := range []string{"DEBUG", "INFO", "WARN", "ERROR"} {
		assert.Equal(t, want, recs[i]["level"])
		assert.EqualValues(t, i+1, recs[i]["n"])
	}
}

func TestJSONSlogLogger_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewJSONSlogLogger(&buf, slog.LevelInfo)

	log.Debug(context.Background(), "hidden")
	log.Info(context.Background(), "shown", "path", "/login")

	recs := records(t, &buf)
	require.Len(t, recs, 1)
	assert.Equal(t, "shown", recs[0]["msg"])
	assert.Equal(t, "/login", recs[0]["path"])
}

func TestJSONSlogLogger_WithKeepsModule(t *testing.T) {
	var buf bytes.Buffer
	log := NewJSONSlogLogger(&buf, slog.LevelInfo).With("module", "auth")

	log.Info(context.Background(), "credential registered", "credential_id", "c-1")

	recs := records(t, &buf)
	require.Len(t, recs, 1)
	assert.Equal(t, "auth", recs[0]["module"])
	assert.Equal(t, "c-1", recs[0]["credential_id"])
}

func TestJSONSlogLogger_RedactsSecrets(t *testing.T) {
	var buf bytes.Buffer
	log := NewJSONSlogLogger(&buf, slog.LevelInfo)

	log.Info(context.Background(), "debugging a reset",
		"email", "admin@example.com",
		"otp", "123456",
		"Password", "hunter2",
		"token", "eyJhbGciOi",
	)

	recs := records(t, &buf)
	require.Len(t, recs, 1)
	assert.Equal(t, "admin@example.com", recs[0]["email"])
	assert.Equal(t, RedactedValue, recs[0]["otp"])
	assert.Equal(t, RedactedValue, recs[0]["Password"])
	assert.Equal(t, RedactedValue, recs[0]["token"])
	assert.NotContains(t, buf.String(), "123456")
}

func TestSlogLogger_WrapsGivenLogger(t *testing.T) {
	var buf bytes.Buffer
	log := NewSlogLogger(slog.New(slog.NewTextHandler(&buf, nil)))

	log.Warn(context.TODO(), "plain", "k", "v")

	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "k=v")
}
