// Copyright 2025 NoamBuilds
// Licensed under the EUPL-1.2

package server

import (
	"crypto/tls"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"codeberg.org/noambuilds/site/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveTLSMode(t *testing.T) {
	tests := []struct {
		name string
		host string
		tls  config.TLSConfig
		want TLSMode
	}{
		{"explicit off", "noambuilds.com", config.TLSConfig{Mode: "off"}, TLSModeOff},
		{"explicit acme", "localhost", config.TLSConfig{Mode: "acme"}, TLSModeACME},
		{"explicit selfsigned", "localhost", config.TLSConfig{Mode: "selfsigned"}, TLSModeSelfSigned},
		{"explicit manual", "localhost", config.TLSConfig{Mode: "MANUAL"}, TLSModeManual},
		{"auto on localhost", "localhost", config.TLSConfig{Mode: "auto"}, TLSModeOff},
		{"auto with cert files", "noambuilds.com", config.TLSConfig{CertFile: "c.pem", KeyFile: "k.pem"}, TLSModeManual},
		{"auto without acme email", "noambuilds.com", config.TLSConfig{}, TLSModeSelfSigned},
		{"auto on ip address", "203.0.113.7", config.TLSConfig{Email: "ops@noambuilds.com"}, TLSModeSelfSigned},
		{"unknown mode falls back to auto", "localhost", config.TLSConfig{Mode: "bogus"}, TLSModeOff},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{
				Server: config.ServerConfig{Host: tt.host},
				TLS:    tt.tls,
			}
			assert.Equal(t, tt.want, resolveTLSMode(cfg))
		})
	}
}

func TestSetupTLS_SelfSigned(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{
		Server: config.ServerConfig{Host: "noambuilds.test"},
		TLS:    config.TLSConfig{Mode: "selfsigned", CertDir: dir},
	}

	res, err := SetupTLS(cfg)
	require.NoError(t, err)
	assert.Equal(t, TLSModeSelfSigned, res.Mode)
	require.Len(t, res.TLSConfig.Certificates, 1)
	assert.Equal(t, uint16(tls.VersionTLS12), res.TLSConfig.MinVersion)
	assert.FileExists(t, filepath.Join(dir, "selfsigned", "cert.pem"))

	// second call reuses the stored certificate
	again, err := SetupTLS(cfg)
	require.NoError(t, err)
	assert.Equal(t, res.TLSConfig.Certificates[0].Certificate[0], again.TLSConfig.Certificates[0].Certificate[0])
}

func TestSetupTLS_ManualMissingFiles(t *testing.T) {
	cfg := &config.Config{
		TLS: config.TLSConfig{
			Mode:     "manual",
			CertFile: filepath.Join(t.TempDir(), "missing.pem"),
			KeyFile:  filepath.Join(t.TempDir(), "missing-key.pem"),
		},
	}

	_, err := SetupTLS(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "certificate file not found")
}

func TestSetupTLS_ManualFromSelfSigned(t *testing.T) {
	dir := t.TempDir()
	_, err := SetupTLS(&config.Config{
		Server: config.ServerConfig{Host: "localhost"},
		TLS:    config.TLSConfig{Mode: "selfsigned", CertDir: dir},
	})
	require.NoError(t, err)

	certFile := filepath.Join(dir, "selfsigned", "cert.pem")
	keyFile := filepath.Join(dir, "selfsigned", "key.pem")
	_, err = os.Stat(keyFile)
	require.NoError(t, err)

	res, err := SetupTLS(&config.Config{
		TLS: config.TLSConfig{Mode: "manual", CertFile: certFile, KeyFile: keyFile},
	})
	require.NoError(t, err)
	assert.Equal(t, TLSModeManual, res.Mode)
}

func TestACMEHosts(t *testing.T) {
	assert.Equal(t, []string{"noambuilds.com", "www.noambuilds.com"}, acmeHosts("noambuilds.com"))
	assert.Equal(t, []string{"www.noambuilds.com", "noambuilds.com"}, acmeHosts("www.noambuilds.com"))
}

func TestFingerprint(t *testing.T) {
	assert.Empty(t, fingerprint(&tls.Certificate{}))

	fp := fingerprint(&tls.Certificate{Certificate: [][]byte{[]byte("leaf")}})
	assert.Len(t, fp, 32*3-1)
	assert.Equal(t, 31, strings.Count(fp, ":"))
}
