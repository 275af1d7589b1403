package report

import (
	"bytes"
	"testing"
)

func TestLogReporter(t *testing.T) {
	var buf bytes.Buffer
	r := NewLogReporter(&buf)
	r.Info("Listening on : %s", "127.0.0.1:6000")
	r.Warn("Cannot connect to %s...", "127.0.0.1:1")
	r.Count(12, "sent")
	want := "[+] Listening on : 127.0.0.1:6000\n" +
		"[-] Cannot connect to 127.0.0.1:1...\n" +
		"12 bytes sent !\n"
	if got := buf.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}
