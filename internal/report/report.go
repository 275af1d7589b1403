// Package report - user-visible status lines shared by the connection,
// key exchange and session layers.
package report

import (
	"fmt"
	"io"
	"log"
)

// Reporter - print one status line, Info for success (`[+]`), Warn for failure (`[-]`)
type Reporter interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	// Count - byte counter after a frame is sent or received
	Count(n int, what string)
}

// LogReporter - Reporter on top of a std log.Logger
type LogReporter struct {
	Logger *log.Logger
}

// NewLogReporter - create a LogReporter writing to w without timestamps
func NewLogReporter(w io.Writer) *LogReporter {
	return &LogReporter{Logger: log.New(w, "", 0)}
}

// Info - `[+] ...`
func (r *LogReporter) Info(format string, v ...interface{}) {
	r.Logger.Printf("[+] "+format, v...)
}

// Warn - `[-] ...`
func (r *LogReporter) Warn(format string, v ...interface{}) {
	r.Logger.Printf("[-] "+format, v...)
}

// Count - `N bytes what !`
func (r *LogReporter) Count(n int, what string) {
	r.Logger.Print(fmt.Sprintf("%d bytes %s !", n, what))
}

// Discard - Reporter which drops everything
var Discard Reporter = NewLogReporter(io.Discard)
