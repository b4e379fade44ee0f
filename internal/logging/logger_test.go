// Folio - Book Recommendation Lookup Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	got := DefaultConfig()
	if got.Level != "info" || got.Format != "json" || got.Caller || !got.Timestamp || got.Output == nil {
		t.Errorf("DefaultConfig() = %+v", got)
	}
}

// TestInit exercises the global logger, so its cases run sequentially.
func TestInit(t *testing.T) {
	t.Cleanup(func() { Init(DefaultConfig()) })

	tests := []struct {
		name    string
		cfg     Config
		emit    func()
		want    []string
		notWant []string
	}{
		{
			name: "json with fields",
			cfg:  Config{Level: "debug", Format: "json", Timestamp: true},
			emit: func() { Info().Str("title", "Dune").Msg("lookup served") },
			want: []string{`"level":"info"`, `"title":"Dune"`, `"message":"lookup served"`, `"time":"`},
		},
		{
			name:    "console is not json",
			cfg:     Config{Level: "info", Format: "CONSOLE"},
			emit:    func() { Info().Msg("console message") },
			want:    []string{"console message"},
			notWant: []string{`{"level"`},
		},
		{
			name:    "warning level drops info",
			cfg:     Config{Level: "warning", Service: "folio-server", Version: "1.2.3"},
			emit:    func() { Info().Msg("suppressed"); Warn().Msg("kept") },
			want:    []string{`"service":"folio-server"`, `"version":"1.2.3"`, `"message":"kept"`},
			notWant: []string{"suppressed"},
		},
		{
			name:    "no timestamp unless asked",
			cfg:     Config{Level: "info"},
			emit:    func() { Error().Msg("catalog down") },
			want:    []string{`"level":"error"`},
			notWant: []string{`"time":`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			cfg := tt.cfg
			cfg.Output = &buf
			Init(cfg)

			tt.emit()

			out := buf.String()
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("missing %s in %q", w, out)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(out, w) {
					t.Errorf("unexpected %s in %q", w, out)
				}
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := map[string]zerolog.Level{
		"trace":    zerolog.TraceLevel,
		"debug":    zerolog.DebugLevel,
		" DEBUG ":  zerolog.DebugLevel,
		"info":     zerolog.InfoLevel,
		"warn":     zerolog.WarnLevel,
		"Warning":  zerolog.WarnLevel,
		"error":    zerolog.ErrorLevel,
		"fatal":    zerolog.FatalLevel,
		"panic":    zerolog.PanicLevel,
		"disabled": zerolog.Disabled,
		"verbose":  zerolog.InfoLevel,
		"":         zerolog.InfoLevel,
	}

	for in, want := range tests {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(NewTestLogger(&buf))
	t.Cleanup(func() { Init(DefaultConfig()) })

	logger := WithComponent("catalog")
	logger.Info().Msg("search")

	if !strings.Contains(buf.String(), `"component":"catalog"`) {
		t.Errorf("missing component field: %s", buf.String())
	}
}
