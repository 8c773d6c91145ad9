// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"testing"

	"hatk-cli/internal/config"
	"hatk-cli/pkg/hatkfile"
	"hatk-cli/pkg/types"
)

func resetServeFlags(t *testing.T) {
	t.Helper()
	origAddr, origDir, origCfg := serveAddr, serveReportsDir, loadedConfig
	t.Cleanup(func() {
		serveAddr, serveReportsDir, loadedConfig = origAddr, origDir, origCfg
	})
	serveAddr = ""
	serveReportsDir = ""
	loadedConfig = config.DefaultConfig()
}

func TestResolveListenAddr(t *testing.T) {
	tests := []struct {
		name     string
		flag     string
		manifest *hatkfile.Hatkfile
		wantHost string
		wantPort int
		wantErr  bool
	}{
		{
			name:     "config defaults",
			manifest: &hatkfile.Hatkfile{},
			wantHost: config.DefaultConfig().Server.Addr,
			wantPort: config.DefaultConfig().Server.Port,
		},
		{
			name: "manifest server block",
			manifest: &hatkfile.Hatkfile{
				Server: &hatkfile.ServerConfig{Addr: "127.0.0.2", Port: types.ListenPort(9321)},
			},
			wantHost: "127.0.0.2",
			wantPort: 9321,
		},
		{
			name:     "flag host and port win",
			flag:     "127.0.0.3:8111",
			manifest: &hatkfile.Hatkfile{Server: &hatkfile.ServerConfig{Addr: "127.0.0.2", Port: 9321}},
			wantHost: "127.0.0.3",
			wantPort: 8111,
		},
		{
			name:     "flag with port zero auto-selects",
			flag:     "127.0.0.1:0",
			manifest: &hatkfile.Hatkfile{Server: &hatkfile.ServerConfig{Port: 9321}},
			wantHost: "127.0.0.1",
			wantPort: 0,
		},
		{
			name:     "bare host keeps port",
			flag:     "localhost",
			manifest: &hatkfile.Hatkfile{Server: &hatkfile.ServerConfig{Port: 9321}},
			wantHost: "localhost",
			wantPort: 9321,
		},
		{
			name:     "bad port",
			flag:     "127.0.0.1:http-alt",
			manifest: &hatkfile.Hatkfile{},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetServeFlags(t)
			serveAddr = tt.flag

			host, port, err := resolveListenAddr(tt.manifest)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("resolveListenAddr(%q) succeeded, want error", tt.flag)
				}
				return
			}
			if err != nil {
				t.Fatalf("resolveListenAddr(%q): %v", tt.flag, err)
			}
			if host != tt.wantHost || port != tt.wantPort {
				t.Errorf("resolved %s:%d, want %s:%d", host, port, tt.wantHost, tt.wantPort)
			}
		})
	}
}

func TestResolveReportsDir(t *testing.T) {
	resetServeFlags(t)
	loadedConfig.ReportsDir = ""

	if got := resolveReportsDir(&hatkfile.Hatkfile{}); got != "." {
		t.Errorf("empty everything = %q, want .", got)
	}

	loadedConfig.ReportsDir = "/srv/reports"
	if got := resolveReportsDir(&hatkfile.Hatkfile{}); got != "/srv/reports" {
		t.Errorf("config dir = %q", got)
	}

	manifest := &hatkfile.Hatkfile{Server: &hatkfile.ServerConfig{ReportsDir: "/data/weekly"}}
	if got := resolveReportsDir(manifest); got != "/data/weekly" {
		t.Errorf("manifest dir = %q", got)
	}

	serveReportsDir = "/tmp/override"
	if got := resolveReportsDir(manifest); got != "/tmp/override" {
		t.Errorf("flag dir = %q", got)
	}
}
