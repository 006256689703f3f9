// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package logx builds the structured zap loggers used by the
// scene graph packages and the command line tools.
package logx

import (
	"strings"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	innerLogger          *zap.Logger
	loggerInitializeOnce sync.Once
)

// Encodings supported by [New].
const (
	EncodingConsole = "console"
	EncodingJSON    = "json"
)

// ParseLevel returns the zap level for the given name
// (debug, info, warn, error), case insensitive.
func ParseLevel(name string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return zap.DebugLevel, nil
	case "", "info":
		return zap.InfoLevel, nil
	case "warn", "warning":
		return zap.WarnLevel, nil
	case "error":
		return zap.ErrorLevel, nil
	}
	return zap.InfoLevel, errors.Errorf("logx: unknown log level %q", name)
}

// New returns a new logger writing to stderr at the given level,
// using the given encoding (console or json). The first logger
// created becomes the one returned by [Provide].
func New(level zapcore.Level, encoding string) (*zap.Logger, error) {
	if encoding == "" {
		encoding = EncodingConsole
	}
	ec := zap.NewProductionEncoderConfig()
	if encoding == EncodingConsole {
		ec = zap.NewDevelopmentEncoderConfig()
	}
	config := zap.Config{
		Level:       zap.NewAtomicLevelAt(level),
		Development: false,
		Sampling: &zap.SamplingConfig{
			Initial:    100,
			Thereafter: 100,
		},
		Encoding:         encoding,
		EncoderConfig:    ec,
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
		DisableCaller:    true,
	}
	lg, err := config.Build()
	if err != nil {
		return nil, errors.Wrap(err, "logx: building logger")
	}
	loggerInitializeOnce.Do(func() { innerLogger = lg })
	return lg, nil
}

// Provide returns the first logger made by [New], or a no-op logger
// if none has been made yet.
func Provide() *zap.Logger {
	if innerLogger == nil {
		return Nop()
	}
	return innerLogger
}

// Nop returns a logger that discards everything.
func Nop() *zap.Logger {
	return zap.NewNop()
}
