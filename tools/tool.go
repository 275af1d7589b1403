package tools

import (
	"io"
	"log"
	"net"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rectcircle/linechat/internal/variable"
)

// ToAddressString - return "$host:$port"
func ToAddressString(host string, port uint16) string {
	return net.JoinHostPort(host, strconv.FormatInt(int64(port), 10))
}

// ParsePort - parse a decimal TCP port, it must be in 1..65535
func ParsePort(s string) (uint16, error) {
	p, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return 0, err
	}
	if p == 0 {
		return 0, strconv.ErrRange
	}
	return uint16(p), nil
}

// PathExist - return whether exist of path
func PathExist(path string) bool {
	_, err := os.Stat(path)
	if err == nil {
		return true
	}
	if os.IsNotExist(err) {
		return false
	}
	return false
}

// ReadOrCreateFile - read from file, and return the file content
// if path not exist, will create the path and call `f()` to write to the file with `perm`.
func ReadOrCreateFile(path string, perm os.FileMode, f func() ([]byte, error)) ([]byte, error) {
	if PathExist(path) {
		return os.ReadFile(path)
	}
	content, err := f()
	if err != nil {
		return nil, err
	}
	if err := WriteFileExclusive(path, perm, content); err != nil {
		return nil, err
	}
	return content, nil
}

// WriteFileExclusive - create parent dirs and write content to a new file,
// fail if the file already exists
func WriteFileExclusive(path string, perm os.FileMode, content []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return err
	}
	if _, err := file.Write(content); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

var traceLogger = log.New(os.Stderr, "", log.LstdFlags)

// SetTraceOutput - redirect TraceF to w, return the previous output
func SetTraceOutput(w io.Writer) io.Writer {
	prev := traceLogger.Writer()
	traceLogger.SetOutput(w)
	return prev
}

// TraceF - log only when variable.Trace is on
func TraceF(format string, v ...interface{}) {
	if variable.Trace {
		traceLogger.Printf("[trace] "+format, v...)
	}
}

// If - ternary operator for strings
func If(cond bool, a, b string) string {
	if cond {
		return a
	}
	return b
}
