package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]LogLevel{
		"trace": TRACE,
		"DEBUG": DEBUG,
		"":      INFO,
		"warn":  WARN,
		"Error": ERROR,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		require.NoError(t, err, "уровень %q должен разбираться", in)
		assert.Equal(t, want, got)
	}

	_, err := ParseLevel("verbose")
	assert.Error(t, err, "неизвестный уровень должен давать ошибку")
}

func TestLoggerRespectsLevel(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	SetBackend(zap.New(core))
	defer SetBackend(nil)

	l, err := NewLogger("test")
	require.NoError(t, err)
	l.SetLevel(WARN)

	l.Info("не должно попасть")
	l.Warn("чанк %d", 7)
	l.Error("ошибка")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "чанк 7", entries[0].Message)
	assert.Equal(t, "test", entries[0].LoggerName)
}

func TestManagerReturnsSameLogger(t *testing.T) {
	lm := GetLoggerManager()
	a := lm.MustGetLogger("world")
	b := lm.MustGetLogger("world")
	assert.Same(t, a, b, "менеджер должен кешировать логгеры")
	assert.Contains(t, lm.ListComponents(), "world")

	require.NoError(t, lm.SetLogLevel("world", ERROR))
	assert.Equal(t, ERROR, a.Level())
	assert.Error(t, lm.SetLogLevel("нет-такого", ERROR))
}

func TestNewLoggerRejectsEmptyComponent(t *testing.T) {
	_, err := NewLogger("")
	assert.Error(t, err)
}
