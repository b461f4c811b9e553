// Package logging builds the console logger used by the CLI and the editor.
package logging

import (
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

// Console verbosity levels.
const (
	LevelNone   = "none"
	LevelNormal = "normal"
	LevelDebug  = "debug"
)

// ErrInvalidLevel indicates an unknown verbosity level.
var ErrInvalidLevel = errors.New("invalid log level")

// ValidLevel reports whether level is one of the console levels.
// The empty string is accepted and means LevelNormal.
func ValidLevel(level string) bool {
	switch level {
	case "", LevelNone, LevelNormal, LevelDebug:
		return true
	}
	return false
}

// New returns a console logger writing info and warnings to out and
// errors to errOut. Levels are colored when the stream is a terminal.
func New(level string, out, errOut io.Writer) (*zap.Logger, error) {
	var lowest zapcore.Level
	switch level {
	case LevelNone:
		return zap.NewNop(), nil
	case "", LevelNormal:
		lowest = zapcore.InfoLevel
	case LevelDebug:
		lowest = zapcore.DebugLevel
	default:
		return nil, fmt.Errorf("%w: %q (must be none, normal or debug)", ErrInvalidLevel, level)
	}

	lowPriority := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return lowest <= lvl && lvl < zapcore.ErrorLevel
	})
	highPriority := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return lvl >= zapcore.ErrorLevel
	})

	core := zapcore.NewTee(
		zapcore.NewCore(encoder(out), zapcore.Lock(zapcore.AddSync(out)), lowPriority),
		zapcore.NewCore(encoder(errOut), zapcore.Lock(zapcore.AddSync(errOut)), highPriority),
	)
	return zap.New(core).Named("scribe"), nil
}

func encoder(w io.Writer) zapcore.Encoder {
	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeCaller = nil
	if colorOutput(w) {
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
		ec.TimeKey = zapcore.OmitKey
	} else {
		ec.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	return zapcore.NewConsoleEncoder(ec)
}

func colorOutput(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd())) // #nosec G115 -- file descriptors fit in int
}
