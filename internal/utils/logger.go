package utils

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogOptions selects level, encoding and an optional file sink.
type LogOptions struct {
	Level  string // debug|info|warn|error
	Format string // json|console, empty picks console on a terminal
	File   string
}

// NewLogger builds the process logger. Output always goes to stderr; File adds
// a JSON copy appended to that path.
func NewLogger(opts LogOptions) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(strings.ToLower(orDefault(opts.Level, "info")))
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var stderrEnc zapcore.Encoder
	switch opts.Format {
	case "console":
		stderrEnc = zapcore.NewConsoleEncoder(encCfg)
	case "json":
		stderrEnc = zapcore.NewJSONEncoder(encCfg)
	case "":
		if isatty.IsTerminal(os.Stderr.Fd()) {
			stderrEnc = zapcore.NewConsoleEncoder(encCfg)
		} else {
			stderrEnc = zapcore.NewJSONEncoder(encCfg)
		}
	default:
		return nil, fmt.Errorf("unknown log format %q", opts.Format)
	}

	cores := []zapcore.Core{zapcore.NewCore(stderrEnc, zapcore.Lock(os.Stderr), level)}
	if opts.File != "" {
		file, err := os.OpenFile(opts.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o640)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(file), level))
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller()), nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
