// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logger

import (
	"go.uber.org/zap/zapcore"
)

type Config struct {
	Format string        `toml:"format" yaml:"format"`
	Level  zapcore.Level `toml:"level" yaml:"level"`
}

// NewConfig returns a new instance of Config with defaults.
func NewConfig() Config {
	return Config{
		Format: "auto",
		Level:  zapcore.InfoLevel,
	}
}

// ParseConfig returns a Config for the named format and level.
func ParseConfig(format, level string) (Config, error) {
	c := NewConfig()
	if format != "" {
		c.Format = format
	}
	if level != "" {
		if err := c.Level.UnmarshalText([]byte(level)); err != nil {
			return c, err
		}
	}
	return c, nil
}
