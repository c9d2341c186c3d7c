package obs

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestTime(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := zap.New(core)
	ctx := WithRequestID(context.Background(), "abc")

	var err error
	Time(ctx, log, "ok.op")(&err)

	err = errors.New("boom")
	Time(ctx, log, "bad.op")(&err)

	entries := logs.All()
	require.Len(t, entries, 2)

	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, "ok.op", entries[0].ContextMap()["op"])
	assert.Equal(t, "abc", entries[0].ContextMap()["req_id"])

	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, "boom", entries[1].ContextMap()["error"])
}

func TestTimeNilLogger(t *testing.T) {
	var err error
	assert.NotPanics(t, func() { Time(context.Background(), nil, "op")(&err) })
}
