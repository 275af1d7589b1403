// Package session - the duplex driver: one goroutine sends operator lines,
// the other receives and displays peer lines, until either side sends STOP.
//
// The send loop is the only writer of the framed connection and the receive
// loop its only reader. Besides the connection they share one flag, raised
// before the sentinel is written, so the peer hanging up in answer to our
// STOP still ends as ResultLocalStop. Otherwise the first loop to finish
// decides the Result; Run then closes the connection so a blocked read is
// abandoned, and returns. A blocked operator read is left to process exit.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync/atomic"
	"unicode"

	"github.com/rectcircle/linechat/internal/framing"
	"github.com/rectcircle/linechat/internal/handshake"
	"github.com/rectcircle/linechat/internal/report"
	"github.com/rectcircle/linechat/internal/variable"
	"github.com/rectcircle/linechat/tools"
)

// Operator - blocking source of lines typed by the local user
type Operator interface {
	ReadLine() (string, error)
}

// Display - sink for lines received from the peer
type Display interface {
	Show(line string)
}

// Result - why the session ended
type Result int

const (
	// ResultLocalStop - the operator sent the sentinel
	ResultLocalStop Result = iota + 1
	// ResultRemoteStop - the peer sent the sentinel
	ResultRemoteStop
	// ResultPeerClosed - the peer closed the connection without the sentinel
	ResultPeerClosed
	// ResultInterrupted - the context was cancelled
	ResultInterrupted
	// ResultFailed - unexpected I/O error, see the returned error
	ResultFailed
)

func (r Result) String() string {
	switch r {
	case ResultLocalStop:
		return "local stop"
	case ResultRemoteStop:
		return "remote stop"
	case ResultPeerClosed:
		return "peer closed"
	case ResultInterrupted:
		return "interrupted"
	case ResultFailed:
		return "failed"
	}
	return fmt.Sprintf("Result(%d)", int(r))
}

// Config - everything a session needs
type Config struct {
	Conn     *framing.Conn
	Keys     handshake.SessionKeys
	Operator Operator
	Display  Display
	Reporter report.Reporter
	// Closer - closed when the session ends, normally the net.Conn under Conn
	Closer io.Closer
}

type outcome struct {
	result Result
	err    error
	// waitSend - the receive loop ended after the sentinel was sent, the send
	// loop's outcome is the one to return
	waitSend bool
}

// IsStop - whether line is the termination sentinel, trailing whitespace ignored
func IsStop(line string) bool {
	return strings.TrimRightFunc(line, unicode.IsSpace) == variable.StopSentinel
}

// Run - start both loops and block until the session ends
func Run(ctx context.Context, cfg Config) (Result, error) {
	if cfg.Reporter == nil {
		cfg.Reporter = report.Discard
	}
	// set by the send loop before the sentinel is written, a peer close seen
	// afterwards is the answer to our own STOP
	var stopping atomic.Bool
	// buffered so the loser can still finish after Run returned
	done := make(chan outcome, 2)
	go func() { done <- sendLoop(cfg, &stopping) }()
	go func() { done <- recvLoop(cfg, &stopping) }()

	var out outcome
	select {
	case out = <-done:
	case <-ctx.Done():
		out = outcome{result: ResultInterrupted, err: ctx.Err()}
	}
	if cfg.Closer != nil {
		cfg.Closer.Close()
	}
	if out.waitSend {
		// the send loop is past the operator read, closing unblocks its write
		out = <-done
	}
	tools.TraceF("session end: %s, err = %v\n", out.result, out.err)
	return out.result, out.err
}

func sendLoop(cfg Config, stopping *atomic.Bool) outcome {
	for {
		line, err := cfg.Operator.ReadLine()
		if errors.Is(err, io.EOF) {
			cfg.Reporter.Warn("Input closed, sending %s", variable.StopSentinel)
			line = variable.StopSentinel
		} else if err != nil {
			return outcome{result: ResultFailed, err: fmt.Errorf("read input: %w", err)}
		}

		stop := IsStop(line)
		if stop {
			stopping.Store(true)
		}
		n, err := cfg.Conn.SendLine(line, cfg.Keys.Send)
		if err != nil {
			cfg.Reporter.Warn("message could not be sent: %v", err)
		} else {
			cfg.Reporter.Count(n, "sent")
		}

		if stop {
			cfg.Reporter.Info("Connection closed with success")
			return outcome{result: ResultLocalStop}
		}
	}
}

func recvLoop(cfg Config, stopping *atomic.Bool) outcome {
	for {
		text, n, err := cfg.Conn.RecvLine(cfg.Keys.Recv)
		switch {
		case err == nil:
		case stopping.Load() && !errors.Is(err, framing.ErrEmptyFrame) && !errors.Is(err, framing.ErrNotAuthentic):
			return outcome{result: ResultLocalStop, waitSend: true}
		case errors.Is(err, framing.ErrEmptyFrame):
			continue
		case errors.Is(err, framing.ErrNotAuthentic):
			cfg.Reporter.Warn("Warning someone is watching us...")
			continue
		case errors.Is(err, io.EOF):
			cfg.Reporter.Warn("Peer closed the connection")
			return outcome{result: ResultPeerClosed}
		default:
			return outcome{result: ResultFailed, err: fmt.Errorf("receive: %w", err)}
		}

		cfg.Display.Show(text)
		cfg.Reporter.Count(n, "received")
		if IsStop(text) {
			cfg.Reporter.Info("Connection closed with success")
			return outcome{result: ResultRemoteStop}
		}
	}
}
