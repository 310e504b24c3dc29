// Copyright 2025 NoamBuilds
// Licensed under the EUPL-1.2

package config

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/urfave/cli/v3"
)

func TestIsLocalhost(t *testing.T) {
	tests := []struct {
		host     string
		expected bool
	}{
		{"", true},
		{"localhost", true},
		{"127.0.0.1", true},
		{"::1", true},
		{"0.0.0.0", true},
		{"site.localhost", true},
		{"noambuilds.com", false},
		{"www.noambuilds.com", false},
		{"192.168.1.1", false},
		{"localhost.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsLocalhost(tt.host))
		})
	}
}

func TestShouldUseTLS(t *testing.T) {
	tests := []struct {
		name     string
		mode     string
		host     string
		expected bool
	}{
		{"off mode", "off", "noambuilds.com", false},
		{"acme mode", "acme", "localhost", true},
		{"manual mode", "manual", "localhost", true},
		{"selfsigned mode", "selfsigned", "localhost", true},
		{"auto mode with localhost", "auto", "localhost", false},
		{"auto mode with remote host", "auto", "noambuilds.com", true},
		{"empty mode with remote host", "", "noambuilds.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, shouldUseTLS(tt.mode, tt.host))
		})
	}
}

func TestBuildBaseURL(t *testing.T) {
	tests := []struct {
		name     string
		cfg      *Config
		expected string
	}{
		{
			name: "localhost HTTP default port",
			cfg: &Config{
				Server: ServerConfig{Host: "localhost", Port: 80},
				TLS:    TLSConfig{Mode: "off"},
			},
			expected: "http://localhost",
		},
		{
			name: "localhost HTTP custom port",
			cfg: &Config{
				Server: ServerConfig{Host: "localhost", Port: 8080},
				TLS:    TLSConfig{Mode: "auto"},
			},
			expected: "http://localhost:8080",
		},
		{
			name: "remote host behind manual TLS",
			cfg: &Config{
				Server: ServerConfig{Host: "noambuilds.com", Port: 8443},
				TLS:    TLSConfig{Mode: "manual"},
			},
			expected: "https://noambuilds.com:8443",
		},
		{
			name: "ACME ignores configured port",
			cfg: &Config{
				Server: ServerConfig{Host: "noambuilds.com", Port: 8080},
				TLS:    TLSConfig{Mode: "acme"},
			},
			expected: "https://noambuilds.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, buildBaseURL(tt.cfg))
		})
	}
}

func TestSiteURL_TrimsTrailingSlash(t *testing.T) {
	cfg := &Config{Server: ServerConfig{BaseURL: "https://noambuilds.com/"}}

	assert.Equal(t, "https://noambuilds.com", cfg.SiteURL())
}

func TestApplyContactDefaults(t *testing.T) {
	t.Run("falls back to sender", func(t *testing.T) {
		cfg := &Config{SMTP: SMTPConfig{From: "waitlist@noambuilds.com"}}

		applyContactDefaults(cfg)

		assert.Equal(t, "waitlist@noambuilds.com", cfg.Contact.Recipient)
	})

	t.Run("keeps explicit recipient", func(t *testing.T) {
		cfg := &Config{
			SMTP:    SMTPConfig{From: "waitlist@noambuilds.com"},
			Contact: ContactConfig{Recipient: "me@noambuilds.com"},
		}

		applyContactDefaults(cfg)

		assert.Equal(t, "me@noambuilds.com", cfg.Contact.Recipient)
	})
}

func TestFlags(t *testing.T) {
	flagNames := make(map[string]bool)
	for _, f := range Flags() {
		for _, name := range f.Names() {
			flagNames[name] = true
		}
	}

	for _, name := range []string{"host", "port", "base-url", "database-dsn", "log-level", "tls-mode", "smtp-host", "smtp-from", "contact-recipient", "ratelimit-per-minute"} {
		assert.True(t, flagNames[name], "should have %s flag", name)
	}
}

func TestNewFromCLI(t *testing.T) {
	app := &cli.Command{
		Name:  "test",
		Flags: append([]cli.Flag{ConfigFlag()}, Flags()...),
		Action: func(_ context.Context, cmd *cli.Command) error {
			cfg := NewFromCLI(cmd)

			assert.Equal(t, "localhost", cfg.Server.Host)
			assert.Equal(t, 8080, cfg.Server.Port)
			assert.Equal(t, "http://localhost:8080", cfg.Server.BaseURL)
			assert.Equal(t, "info", cfg.Log.Level)
			assert.Equal(t, "./data/site.db", cfg.Database.DSN)
			assert.Equal(t, 1025, cfg.SMTP.Port)
			assert.Equal(t, "waitlist@noambuilds.com", cfg.Contact.Recipient)
			assert.Equal(t, 20, cfg.RateLimit.PerMinute)

			return nil
		},
	}

	err := app.Run(context.Background(), []string{"test"})
	assert.NoError(t, err)
}

func TestNewFromCLI_WithCustomValues(t *testing.T) {
	app := &cli.Command{
		Name:  "test",
		Flags: Flags(),
		Action: func(_ context.Context, cmd *cli.Command) error {
			cfg := NewFromCLI(cmd)

			assert.Equal(t, "0.0.0.0", cfg.Server.Host)
			assert.Equal(t, 9000, cfg.Server.Port)
			assert.Equal(t, "https://noambuilds.com", cfg.Server.BaseURL)
			assert.Equal(t, "smtp.example.com", cfg.SMTP.Host)
			assert.Equal(t, "me@noambuilds.com", cfg.Contact.Recipient)

			return nil
		},
	}

	args := []string{
		"test",
		"--host", "0.0.0.0",
		"--port", "9000",
		"--base-url", "https://noambuilds.com",
		"--smtp-host", "smtp.example.com",
		"--contact-recipient", "me@noambuilds.com",
	}
	err := app.Run(context.Background(), args)
	assert.NoError(t, err)
}
