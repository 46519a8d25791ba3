package logging

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogLevel определяет уровни логирования
type LogLevel int

const (
	TRACE LogLevel = iota
	DEBUG
	INFO
	WARN
	ERROR
)

// String возвращает строковое представление уровня логирования
func (l LogLevel) String() string {
	switch l {
	case TRACE:
		return "TRACE"
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel разбирает уровень из строки конфигурации
func ParseLevel(s string) (LogLevel, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "TRACE":
		return TRACE, nil
	case "DEBUG":
		return DEBUG, nil
	case "", "INFO":
		return INFO, nil
	case "WARN", "WARNING":
		return WARN, nil
	case "ERROR":
		return ERROR, nil
	}
	return INFO, fmt.Errorf("неизвестный уровень логирования %q", s)
}

// zapLevel отображает наш уровень на уровень zap.
// TRACE у zap нет, поэтому он пишется как DEBUG с пометкой.
func (l LogLevel) zapLevel() zapcore.Level {
	switch l {
	case TRACE, DEBUG:
		return zapcore.DebugLevel
	case INFO:
		return zapcore.InfoLevel
	case WARN:
		return zapcore.WarnLevel
	default:
		return zapcore.ErrorLevel
	}
}

// Logger логгер компонента
type Logger struct {
	component string
	sugar     *zap.SugaredLogger

	mu       sync.RWMutex
	minLevel LogLevel
}

var (
	baseMu    sync.RWMutex
	baseCore  *zap.Logger
	baseLevel = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	defaultLv = INFO
)

// InitLogger настраивает общий zap-бэкенд и уровень по умолчанию
func InitLogger(level LogLevel) {
	baseMu.Lock()
	defer baseMu.Unlock()

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.Lock(os.Stdout),
		baseLevel,
	)
	baseCore = zap.New(core)
	defaultLv = level
}

// SetBackend подменяет zap-логгер (используется в тестах с zaptest/observer)
func SetBackend(l *zap.Logger) {
	baseMu.Lock()
	baseCore = l
	baseMu.Unlock()
}

func backend() *zap.Logger {
	baseMu.RLock()
	l := baseCore
	baseMu.RUnlock()
	if l != nil {
		return l
	}
	InitLogger(INFO)
	baseMu.RLock()
	defer baseMu.RUnlock()
	return baseCore
}

// NewLogger создает логгер для компонента
func NewLogger(component string) (*Logger, error) {
	if component == "" {
		return nil, fmt.Errorf("пустое имя компонента")
	}
	baseMu.RLock()
	lv := defaultLv
	baseMu.RUnlock()
	return &Logger{
		component: component,
		sugar:     backend().Named(component).Sugar(),
		minLevel:  lv,
	}, nil
}

// SetLevel меняет минимальный уровень логгера
func (l *Logger) SetLevel(level LogLevel) {
	l.mu.Lock()
	l.minLevel = level
	l.mu.Unlock()
}

// Level возвращает минимальный уровень логгера
func (l *Logger) Level() LogLevel {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.minLevel
}

// Enabled сообщает, будет ли записано сообщение уровня level
func (l *Logger) Enabled(level LogLevel) bool {
	return level >= l.Level()
}

// Close сбрасывает буферы
func (l *Logger) Close() error {
	err := l.sugar.Sync()
	// stdout не поддерживает fsync на части платформ
	if err != nil && strings.Contains(err.Error(), "invalid argument") {
		return nil
	}
	return err
}

// Trace логирует сообщение уровня TRACE
func (l *Logger) Trace(format string, args ...interface{}) {
	l.log(TRACE, format, args...)
}

// Debug логирует сообщение уровня DEBUG
func (l *Logger) Debug(format string, args ...interface{}) {
	l.log(DEBUG, format, args...)
}

// Info логирует сообщение уровня INFO
func (l *Logger) Info(format string, args ...interface{}) {
	l.log(INFO, format, args...)
}

// Warn логирует сообщение уровня WARN
func (l *Logger) Warn(format string, args ...interface{}) {
	l.log(WARN, format, args...)
}

// Error логирует сообщение уровня ERROR
func (l *Logger) Error(format string, args ...interface{}) {
	l.log(ERROR, format, args...)
}

func (l *Logger) log(level LogLevel, format string, args ...interface{}) {
	if !l.Enabled(level) {
		return
	}
	if level == TRACE {
		format = "[TRACE] " + format
	}
	switch level.zapLevel() {
	case zapcore.DebugLevel:
		l.sugar.Debugf(format, args...)
	case zapcore.InfoLevel:
		l.sugar.Infof(format, args...)
	case zapcore.WarnLevel:
		l.sugar.Warnf(format, args...)
	default:
		l.sugar.Errorf(format, args...)
	}
}
