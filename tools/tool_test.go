package tools

import (
	"bytes"
	"errors"
	"os"
	"os/user"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/rectcircle/linechat/internal/variable"
)

func TestToAddressString(t *testing.T) {
	tests := []struct {
		name string
		host string
		port uint16
		want string
	}{
		{name: "ipv4", host: "127.0.0.1", port: 6000, want: "127.0.0.1:6000"},
		{name: "ipv6", host: "::1", port: 6000, want: "[::1]:6000"},
		{name: "hostname", host: "localhost", port: 80, want: "localhost:80"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToAddressString(tt.host, tt.port); got != tt.want {
				t.Errorf("ToAddressString() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParsePort(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    uint16
		wantErr bool
	}{
		{name: "valid", in: "6000", want: 6000},
		{name: "max", in: "65535", want: 65535},
		{name: "zero", in: "0", wantErr: true},
		{name: "overflow", in: "65536", wantErr: true},
		{name: "negative", in: "-1", wantErr: true},
		{name: "not a number", in: "http", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePort(tt.in)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParsePort() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if got != tt.want {
				t.Errorf("ParsePort() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPathExist(t *testing.T) {
	u, _ := user.Current()
	tests := []struct {
		name string
		path string
		want bool
	}{
		{name: "Home exist", path: u.HomeDir, want: true},
		{name: "os.Args[0] exist", path: os.Args[0], want: true},
		{name: "/qazwsxedc", path: "/qazwsxedc", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PathExist(tt.path); got != tt.want {
				t.Errorf("PathExist() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReadOrCreateFile(t *testing.T) {
	tmpPath := filepath.Join(t.TempDir(), "nested", "key")
	content := []byte("abc")
	calls := 0
	gen := func() ([]byte, error) {
		calls++
		return content, nil
	}
	tests := []struct {
		name    string
		path    string
		f       func() ([]byte, error)
		want    []byte
		wantErr bool
	}{
		{name: "tmp file create", path: tmpPath, f: gen, want: content},
		{name: "tmp file read", path: tmpPath, f: gen, want: content},
		{
			name:    "generator error",
			path:    filepath.Join(t.TempDir(), "other"),
			f:       func() ([]byte, error) { return nil, errors.New("boom") },
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadOrCreateFile(tt.path, 0o600, tt.f)
			if (err != nil) != tt.wantErr {
				t.Errorf("ReadOrCreateFile() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ReadOrCreateFile() = %v, want %v", got, tt.want)
			}
		})
	}
	if calls != 1 {
		t.Errorf("generator called %d times, want 1", calls)
	}
	info, err := os.Stat(tmpPath)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("perm = %04o, want 0600", perm)
	}
}

func TestWriteFileExclusive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "once")
	if err := WriteFileExclusive(path, 0o644, []byte("1")); err != nil {
		t.Fatalf("first write: %v", err)
	}
	if err := WriteFileExclusive(path, 0o644, []byte("2")); err == nil {
		t.Errorf("second write should fail on existing file")
	}
}

func TestIf(t *testing.T) {
	if got := If(true, "Client", "Server"); got != "Client" {
		t.Errorf("If(true) = %v", got)
	}
	if got := If(false, "Client", "Server"); got != "Server" {
		t.Errorf("If(false) = %v", got)
	}
}

func TestTraceF(t *testing.T) {
	var buf bytes.Buffer
	prev := SetTraceOutput(&buf)
	defer SetTraceOutput(prev)
	trace := variable.Trace
	defer func() { variable.Trace = trace }()

	variable.Trace = false
	TraceF("hidden %d\n", 1)
	if buf.Len() != 0 {
		t.Errorf("TraceF() with trace off wrote %q", buf.String())
	}

	variable.Trace = true
	TraceF("shown %d\n", 2)
	if !strings.HasSuffix(buf.String(), "[trace] shown 2\n") {
		t.Errorf("TraceF() wrote %q", buf.String())
	}
	if got := SetTraceOutput(&buf); got != &buf {
		t.Errorf("SetTraceOutput() previous = %v, want the buffer", got)
	}
}
