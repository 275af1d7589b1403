// Package handshake - session key exchange, run once right after the
// connection is established and before any framed line is sent.
//
// The dialer initiates: it writes its public key as one raw line and blocks
// until the listener echoes a line back as confirmation. The echo is
// discarded. The listener adopts the received key for both directions.
//
//	Dialer (Initiate)                      Listener (Respond)
//	    public key + "\n"    ----------->      read one line
//	    read one line        <-----------      echo the same line
package handshake

import (
	"fmt"

	"github.com/rectcircle/linechat/internal/framing"
	"github.com/rectcircle/linechat/internal/keys"
	"github.com/rectcircle/linechat/internal/report"
	"github.com/rectcircle/linechat/tools"
)

// SessionKeys - keys used by the framed transport
type SessionKeys struct {
	// Send - key passed to every SendLine
	Send keys.Key
	// Recv - key passed to every RecvLine
	Recv keys.Key
	// Peer - the key which crossed the wire
	Peer keys.Key
}

// Error - key exchange failure, there is no retry
type Error struct {
	Step string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("key exchange failed on %s: %v", e.Step, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

var errEmptyKey = fmt.Errorf("peer sent an empty key")

// Initiate - send pair.Public and wait for the confirmation line
func Initiate(conn *framing.Conn, pair keys.Pair, reporter report.Reporter) (SessionKeys, error) {
	if _, err := conn.WriteRawLine(pair.Public.String()); err != nil {
		return SessionKeys{}, &Error{Step: "send key", Err: err}
	}
	tools.TraceF("key sent, waiting for confirmation\n")
	if _, err := conn.ReadRawLine(); err != nil {
		return SessionKeys{}, &Error{Step: "receive confirmation", Err: err}
	}
	sk := SessionKeys{
		Send: pair.Public,
		Recv: pair.Private,
		Peer: pair.Public,
	}
	reporter.Info("key exchanged with success (%s)", sk.Peer.Fingerprint())
	return sk, nil
}

// Respond - read the initiator key and echo it back as confirmation
func Respond(conn *framing.Conn, reporter report.Reporter) (SessionKeys, error) {
	line, err := conn.ReadRawLine()
	if err != nil {
		return SessionKeys{}, &Error{Step: "receive key", Err: err}
	}
	if line == "" {
		return SessionKeys{}, &Error{Step: "receive key", Err: errEmptyKey}
	}
	if _, err := conn.WriteRawLine(line); err != nil {
		return SessionKeys{}, &Error{Step: "send confirmation", Err: err}
	}
	k := keys.Key(line)
	sk := SessionKeys{
		Send: k,
		Recv: k,
		Peer: k,
	}
	reporter.Info("key exchanged with success (%s)", sk.Peer.Fingerprint())
	return sk, nil
}
