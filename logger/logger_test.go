// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestFormats(t *testing.T) {
	for _, test := range []struct {
		format string
		check  func(t *testing.T, out string)
	}{
		{"json", func(t *testing.T, out string) {
			var m map[string]any
			require.NoError(t, json.Unmarshal([]byte(out), &m))
			assert.Equal(t, "compiled", m["msg"])
			assert.Equal(t, "a = b", m["expression"])
		}},
		{"logfmt", func(t *testing.T, out string) {
			assert.Contains(t, out, `msg=compiled`)
			assert.Contains(t, out, `expression="a = b"`)
		}},
		{"console", func(t *testing.T, out string) {
			assert.Contains(t, out, "compiled")
			assert.Contains(t, out, `{"expression": "a = b"}`)
		}},
		// A buffer is not a terminal.
		{"auto", func(t *testing.T, out string) {
			assert.Contains(t, out, `msg=compiled`)
		}},
	} {
		var buf bytes.Buffer
		log, err := Config{Format: test.format, Level: zapcore.InfoLevel}.New(&buf)
		require.NoError(t, err, test.format)
		log.Info("compiled", zap.String("expression", "a = b"))
		test.check(t, strings.TrimSpace(buf.String()))
	}
}

func TestLevel(t *testing.T) {
	var buf bytes.Buffer
	log, err := Config{Format: "logfmt", Level: zapcore.WarnLevel}.New(&buf)
	require.NoError(t, err)
	log.Info("hidden")
	log.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestUnknownFormat(t *testing.T) {
	_, err := Config{Format: "xml"}.New(new(bytes.Buffer))
	assert.EqualError(t, err, "unknown logging format: xml")
}

func TestParseConfig(t *testing.T) {
	c, err := ParseConfig("", "")
	require.NoError(t, err)
	assert.Equal(t, NewConfig(), c)

	c, err = ParseConfig("json", "debug")
	require.NoError(t, err)
	assert.Equal(t, "json", c.Format)
	assert.Equal(t, zapcore.DebugLevel, c.Level)

	_, err = ParseConfig("json", "loud")
	assert.Error(t, err)
}
