package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/rectcircle/linechat/internal/variable"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
		return path
	}

	tests := []struct {
		name    string
		path    string
		want    *Config
		wantErr bool
	}{
		{
			name: "missing file",
			path: filepath.Join(dir, "missing.yaml"),
			want: Default(),
		},
		{
			name: "partial file keeps defaults",
			path: write("partial.yaml", "port: 7000\ncolor: false\n"),
			want: &Config{Host: "127.0.0.1", Port: 7000, Prompt: "> "},
		},
		{
			name: "full file",
			path: write("full.yaml", "host: 0.0.0.0\nport: 6001\nprivate_key: /tmp/me.key\npublic_key: /tmp/me.pub\nprompt: 'chat> '\ncolor: true\n"),
			want: &Config{Host: "0.0.0.0", Port: 6001, PrivateKey: "/tmp/me.key", PublicKey: "/tmp/me.pub", Prompt: "chat> ", Color: true},
		},
		{
			name:    "port out of range",
			path:    write("range.yaml", "port: 70000\n"),
			wantErr: true,
		},
		{
			name:    "port zero",
			path:    write("zero.yaml", "port: 0\n"),
			wantErr: true,
		},
		{
			name:    "not yaml",
			path:    write("bad.yaml", "host: [\n"),
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Load(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Load() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Load() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestKeyPaths(t *testing.T) {
	tests := []struct {
		name        string
		cfg         Config
		wantPrivate string
		wantPublic  string
	}{
		{"unset", Config{}, "", ""},
		{"absolute", Config{PrivateKey: "/etc/me.key", PublicKey: "/etc/me.pub"}, "/etc/me.key", "/etc/me.pub"},
		{
			"relative to config dir",
			Config{PrivateKey: "me.key", PublicKey: "keys/me.pub"},
			filepath.Join(variable.ConfigBaseDir, "me.key"),
			filepath.Join(variable.ConfigBaseDir, "keys", "me.pub"),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotPrivate, gotPublic := tt.cfg.KeyPaths()
			if gotPrivate != tt.wantPrivate || gotPublic != tt.wantPublic {
				t.Errorf("KeyPaths() = %q, %q, want %q, %q", gotPrivate, gotPublic, tt.wantPrivate, tt.wantPublic)
			}
		})
	}
}
