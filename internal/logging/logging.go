// Package logging builds the zap loggers used by the command line tool.
package logging

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// TimeLayout is the console timestamp layout.
const TimeLayout = "15:04:05"

// Options configures New.
type Options struct {
	Quiet   bool      // warnings and errors only
	Verbose bool      // include debug entries
	NoColor bool      // plain level names
	File    string    // optional JSON log file, appended to
	Writer  io.Writer // console destination, os.Stderr when nil
}

// FromEnv fills NoColor from the NO_COLOR convention.
func (o Options) FromEnv() Options {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		o.NoColor = true
	}
	return o
}

// Level returns the minimum console level selected by the options.
func (o Options) Level() zapcore.Level {
	switch {
	case o.Quiet:
		return zapcore.WarnLevel
	case o.Verbose:
		return zapcore.DebugLevel
	default:
		return zapcore.InfoLevel
	}
}

// New builds a console logger, teed into a JSON file when o.File is set.
// The returned function closes the file and must be called once logging is
// done; it is never nil.
func New(o Options) (*zap.Logger, func(), error) {
	w := o.Writer
	if w == nil {
		w = os.Stderr
	}

	enc := zap.NewDevelopmentEncoderConfig()
	enc.EncodeTime = zapcore.TimeEncoderOfLayout(TimeLayout)
	enc.EncodeLevel = zapcore.CapitalColorLevelEncoder
	if o.NoColor {
		enc.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	enc.CallerKey = zapcore.OmitKey
	enc.NameKey = zapcore.OmitKey

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.Lock(zapcore.AddSync(w)), o.Level()),
	}

	cleanup := func() {}
	if o.File != "" {
		sink, closeFile, err := zap.Open(o.File)
		if err != nil {
			return nil, cleanup, err
		}
		cleanup = closeFile
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			sink,
			zapcore.DebugLevel,
		))
	}

	return zap.New(zapcore.NewTee(cores...)), cleanup, nil
}
