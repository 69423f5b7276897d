package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestZerologLogger_LevelsAndFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewZerologLogger(zerolog.New(&buf).Level(zerolog.DebugLevel))
	ctx := context.Background()

	log.Debug(ctx, "dbg", "a", 1)
	log.Info(ctx, "inf", "b", "two")
	log.Warn(ctx, "wrn")
	log.Error(ctx, "err", "dangling")

	out := buf.String()
	for _, want := range []string{
		`"level":"debug"`, `"message":"dbg"`, `"a":1`,
		`"level":"info"`, `"b":"two"`,
		`"level":"warn"`,
		`"level":"error"`, `"!BADKEY":"dangling"`,
	} {
		assert.Contains(t, out, want)
	}
}

func TestZerologLogger_With(t *testing.T) {
	var buf bytes.Buffer
	log := NewZerologLogger(zerolog.New(&buf)).With("module", "auth")
	log.Info(context.Background(), "hello")

	assert.True(t, strings.Contains(buf.String(), `"module":"auth"`), buf.String())
}

func TestNop_DoesNothing(t *testing.T) {
	var l Logger = Nop{}
	assert.NotPanics(t, func() {
		l.With("k", "v").Info(context.Background(), "ignored")
	})
}

func TestZerologLogger_RedactsSecrets(t *testing.T) {
	var buf bytes.Buffer
	log := NewZerologLogger(zerolog.New(&buf))
	log.Info(context.Background(), "reset", "email", "a@b.co", "resetpassword", "s3cret", "OTP", "654321")

	out := buf.String()
	assert.Contains(t, out, `"email":"a@b.co"`)
	assert.Contains(t, out, `"resetpassword":"`+RedactedValue+`"`)
	assert.Contains(t, out, `"OTP":"`+RedactedValue+`"`)
	assert.NotContains(t, out, "s3cret")
	assert.NotContains(t, out, "654321")
}
