// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config holds the settings shared by the set-value compiler
// and its command.
package config // import "bindkit.dev/setvalue/config"

import (
	"strings"

	"github.com/spf13/viper"
)

// Config is the configuration. The zero value is usable; it selects
// context 0 as the global context, auto log format and info level.
type Config struct {
	debug         map[string]bool
	globalContext int
	dataPath      string
	logFormat     string
	logLevel      string
}

// DebugFlags lists the recognized debug flags.
var DebugFlags = []string{
	"intent", // Log every compiled binding at debug level.
}

func (c *Config) Debug(s string) bool {
	return c.debug[s]
}

func (c *Config) SetDebug(s string, state bool) {
	if c.debug == nil {
		c.debug = make(map[string]bool)
	}
	c.debug[s] = state
}

// GlobalContext is the data context $globals paths resolve against.
func (c *Config) GlobalContext() int {
	return c.globalContext
}

func (c *Config) SetGlobalContext(id int) {
	c.globalContext = id
}

// DataPath is the YAML file the command seeds its data store from.
func (c *Config) DataPath() string {
	return c.dataPath
}

func (c *Config) SetDataPath(path string) {
	c.dataPath = path
}

func (c *Config) LogFormat() string {
	if c.logFormat == "" {
		return "auto"
	}
	return c.logFormat
}

func (c *Config) SetLogFormat(format string) {
	c.logFormat = format
}

func (c *Config) LogLevel() string {
	if c.logLevel == "" {
		return "info"
	}
	return c.logLevel
}

func (c *Config) SetLogLevel(level string) {
	c.logLevel = level
}

// Load reads the configuration through v from the file at path, if path
// is not empty, and from SETVALUE_* environment variables, which take
// precedence. Flags bound to v take precedence over both. A nil v is
// replaced by NewViper().
func Load(v *viper.Viper, path string) (*Config, error) {
	if v == nil {
		v = NewViper()
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}
	return FromViper(v), nil
}

// NewViper returns a viper instance with the defaults and the SETVALUE_
// environment binding set up. Keys use dashes; the environment uses
// underscores, as in SETVALUE_GLOBAL_CONTEXT.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("setvalue")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.SetDefault("global-context", 0)
	v.SetDefault("log-format", "auto")
	v.SetDefault("log-level", "info")
	v.SetDefault("data", "")
	v.SetDefault("debug", []string{})
	return v
}

// FromViper builds a configuration from v's current settings.
func FromViper(v *viper.Viper) *Config {
	c := new(Config)
	c.SetGlobalContext(v.GetInt("global-context"))
	c.SetLogFormat(v.GetString("log-format"))
	c.SetLogLevel(v.GetString("log-level"))
	c.SetDataPath(v.GetString("data"))
	for _, s := range v.GetStringSlice("debug") {
		for _, name := range strings.Split(s, ",") {
			if name = strings.TrimSpace(name); name != "" {
				c.SetDebug(name, true)
			}
		}
	}
	return c
}
