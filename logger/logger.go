// Package logger provides structured, leveled logging for the copper
// simulation core, plus assertion helpers that panic instead of
// returning a bool. A failed assertion models a "programming error,
// fatal" per the error-handling policy of this module: it is never
// recoverable and is never surfaced as a normal Go error.
package logger

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level is the log-level for the simulation as a whole.
type Level int8

const (
	TraceLevel   Level = 5
	DebugLevel   Level = 4
	InfoLevel    Level = 3
	WarnLevel    Level = 2
	ErrorLevel   Level = 1
	PanicLevel   Level = 0
	FatalLevel   Level = -1
	OffLevel     Level = -2
	MinLevel           = OffLevel
	DefaultLevel       = InfoLevel
)

var (
	cfg          zap.Config
	zaplogger    *zap.Logger
	currentLevel Level
	zapLevels    = []zapcore.Level{zapcore.FatalLevel + 1, zapcore.FatalLevel, zapcore.PanicLevel,
		zapcore.ErrorLevel, zapcore.WarnLevel, zapcore.InfoLevel, zapcore.DebugLevel, zapcore.DebugLevel}
)

func init() {
	cfgJson := []byte(`{
		"level": "debug",
		"outputPaths": ["stderr"],
		"errorOutputPaths": ["stderr"],
		"encoding": "console",
		"encoderConfig": {
			"messageKey": "message",
			"levelKey": "level",
			"levelEncoder": "lowercase"
		}
	}`)
	currentLevel = DefaultLevel

	if err := json.Unmarshal(cfgJson, &cfg); err != nil {
		panic(err)
	}
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	rebuildLoggerFromCfg()
}

// SetLevel sets the active log level.
func SetLevel(lv Level) {
	currentLevel = lv
}

// GetLevel returns the active log level.
func GetLevel() Level {
	return currentLevel
}

// ParseLevel parses a level name (trace, debug, info, warn, error,
// panic, fatal, off, case-insensitive) as found in a config file or
// -log command-line flag. An unrecognized name is a configuration
// error, not a programming error, so it is returned rather than
// panicked.
func ParseLevel(name string) (Level, error) {
	switch strings.ToLower(name) {
	case "trace":
		return TraceLevel, nil
	case "debug":
		return DebugLevel, nil
	case "info":
		return InfoLevel, nil
	case "warn", "warning":
		return WarnLevel, nil
	case "error":
		return ErrorLevel, nil
	case "panic":
		return PanicLevel, nil
	case "fatal":
		return FatalLevel, nil
	case "off":
		return OffLevel, nil
	default:
		return 0, errors.Errorf("logger: unknown level %q", name)
	}
}

// SetOutput redirects log output, e.g. logger.SetOutput([]string{"stderr", "copper.log"}).
func SetOutput(outputs []string) {
	cfg.OutputPaths = outputs
	rebuildLoggerFromCfg()
}

func rebuildLoggerFromCfg() {
	newLogger, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	if zaplogger != nil {
		_ = zaplogger.Sync()
	}
	zaplogger = newLogger
}

func getMessage(template string, fmtArgs []interface{}) string {
	if len(fmtArgs) == 0 {
		return template
	}
	if template != "" {
		return fmt.Sprintf(template, fmtArgs...)
	}
	if len(fmtArgs) == 1 {
		if str, ok := fmtArgs[0].(string); ok {
			return str
		}
	}
	return fmt.Sprint(fmtArgs...)
}

// Logf outputs a formatted message at the given level.
func Logf(level Level, format string, args []interface{}) {
	if level > currentLevel {
		return
	}
	timeStr := time.Now().Format("2006-01-02 15:04:05.000") + " - "
	zaplogger.Log(zapLevels[level-MinLevel], timeStr+getMessage(format, args))
}

func Tracef(format string, args ...interface{}) { Logf(TraceLevel, format, args) }
func Debugf(format string, args ...interface{}) { Logf(DebugLevel, format, args) }
func Infof(format string, args ...interface{})  { Logf(InfoLevel, format, args) }
func Warnf(format string, args ...interface{})  { Logf(WarnLevel, format, args) }
func Errorf(format string, args ...interface{}) { Logf(ErrorLevel, format, args) }

// Panicf logs at panic level and then panics. Used for programming
// errors: the spec requires these to abort, never to be retried.
func Panicf(format string, args ...interface{}) {
	msg := getMessage(format, args)
	Logf(PanicLevel, "%s", []interface{}{msg})
	panic(msg)
}

// Fatalf logs at fatal level and then exits the process. Used for
// configuration errors discovered outside of a recoverable call path
// (e.g. cmd/copperd startup).
func Fatalf(format string, args ...interface{}) {
	msg := getMessage(format, args)
	Logf(FatalLevel, "%s", []interface{}{msg})
	os.Exit(1)
}

type assertLogger struct{}

func (assertLogger) Errorf(format string, args ...interface{}) {
	Panicf(format, args...)
}

// AssertTrue panics (via Panicf) if value is false.
func AssertTrue(value bool, msgAndArgs ...interface{}) {
	assert.True(assertLogger{}, value, msgAndArgs...)
}

// AssertFalse panics if value is true.
func AssertFalse(value bool, msgAndArgs ...interface{}) {
	assert.False(assertLogger{}, value, msgAndArgs...)
}

// AssertNil panics if object is non-nil.
func AssertNil(object interface{}, msgAndArgs ...interface{}) {
	assert.Nil(assertLogger{}, object, msgAndArgs...)
}

// AssertNotNil panics if object is nil.
func AssertNotNil(object interface{}, msgAndArgs ...interface{}) {
	assert.NotNil(assertLogger{}, object, msgAndArgs...)
}

// AssertEqual panics if expected != actual.
func AssertEqual(expected, actual interface{}, msgAndArgs ...interface{}) {
	assert.Equal(assertLogger{}, expected, actual, msgAndArgs...)
}
