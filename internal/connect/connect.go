// Package connect - role driven TCP setup, produces exactly one connection.
//
// State machine:
//
//	Idle --Listen--> Listening --AcceptOne--> Established
//	Idle --Dial----> Dialing   -------------> Established
//
// A listener accepts a single peer and then stops listening. A dialer makes a
// single attempt. Neither retries: failures come back as *Error and the
// caller decides to end the process. Establish reports every transition,
// a failure returns to Idle.
package connect

import (
	"context"
	"fmt"
	"net"
	"strings"

	"github.com/rectcircle/linechat/internal/report"
	"github.com/rectcircle/linechat/tools"
)

// Role - whether this process listens for or initiates the connection
type Role int

const (
	// Listener - bind and wait for one peer
	Listener Role = iota
	// Dialer - connect to the peer once
	Dialer
)

func (r Role) String() string {
	switch r {
	case Listener:
		return "listener"
	case Dialer:
		return "dialer"
	}
	return fmt.Sprintf("Role(%d)", int(r))
}

// ParseRole - "listener"/"listen"/"server" or "dialer"/"dial"/"client"
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(s) {
	case "listener", "listen", "server":
		return Listener, nil
	case "dialer", "dial", "client":
		return Dialer, nil
	}
	return 0, fmt.Errorf("unknown role %q", s)
}

// State - connection establishment state
type State int

const (
	// Idle - nothing done yet
	Idle State = iota
	// Listening - bound, waiting for the peer
	Listening
	// Dialing - connecting to the peer
	Dialing
	// Established - connection ready
	Established
)

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Listening:
		return "Listening"
	case Dialing:
		return "Dialing"
	case Established:
		return "Established"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Endpoint - host and port
type Endpoint struct {
	Host string
	Port uint16
}

func (e Endpoint) String() string {
	return tools.ToAddressString(e.Host, e.Port)
}

// Error - establishment failure
type Error struct {
	Op   string // "listen", "accept" or "dial"
	Addr string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Addr, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// OneShotListener - a bound socket which hands out a single connection
type OneShotListener struct {
	ln    net.Listener
	state State
}

// Listen - bind ep
func Listen(ctx context.Context, ep Endpoint) (*OneShotListener, error) {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", ep.String())
	if err != nil {
		return nil, &Error{Op: "listen", Addr: ep.String(), Err: err}
	}
	return &OneShotListener{ln: ln, state: Listening}, nil
}

// Addr - the bound address
func (l *OneShotListener) Addr() net.Addr {
	return l.ln.Addr()
}

// State - current state
func (l *OneShotListener) State() State {
	return l.state
}

// AcceptOne - wait for one peer, then close the listening socket.
// Cancelling ctx abandons the wait
func (l *OneShotListener) AcceptOne(ctx context.Context) (net.Conn, error) {
	defer l.Close()
	stop := context.AfterFunc(ctx, func() { l.ln.Close() })
	defer stop()

	conn, err := l.ln.Accept()
	if err != nil {
		if ctx.Err() != nil {
			err = ctx.Err()
		}
		l.state = Idle
		return nil, &Error{Op: "accept", Addr: l.ln.Addr().String(), Err: err}
	}
	l.state = Established
	return conn, nil
}

// Close - stop listening. An accepted connection stays Established
func (l *OneShotListener) Close() error {
	if l.state != Established {
		l.state = Idle
	}
	return l.ln.Close()
}

// Dial - single connection attempt to ep
func Dial(ctx context.Context, ep Endpoint) (net.Conn, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", ep.String())
	if err != nil {
		return nil, &Error{Op: "dial", Addr: ep.String(), Err: err}
	}
	return conn, nil
}

// progress - state of one Establish call, every transition is reported
type progress struct {
	role     Role
	state    State
	reporter report.Reporter
}

func (p *progress) enter(s State, addr string) {
	tools.TraceF("%s: %s -> %s\n", p.role, p.state, s)
	p.state = s
	switch s {
	case Listening:
		p.reporter.Info("Listening on : %s", addr)
	case Dialing:
		p.reporter.Info("Connecting to %s...", addr)
	case Established:
		if p.role == Listener {
			p.reporter.Info("New client on %s", addr)
		} else {
			p.reporter.Info("Connected to %s", addr)
		}
	}
}

// fail - back to Idle, there is no retry
func (p *progress) fail(format string, v ...interface{}) {
	tools.TraceF("%s: %s -> %s\n", p.role, p.state, Idle)
	p.state = Idle
	p.reporter.Warn(format, v...)
}

// Establish - run the role specific path, reporting every state change
func Establish(ctx context.Context, role Role, ep Endpoint, reporter report.Reporter) (net.Conn, error) {
	p := &progress{role: role, state: Idle, reporter: reporter}
	return p.establish(ctx, ep)
}

func (p *progress) establish(ctx context.Context, ep Endpoint) (net.Conn, error) {
	switch p.role {
	case Listener:
		ln, err := Listen(ctx, ep)
		if err != nil {
			p.fail("Cannot listen to %s...", ep)
			return nil, err
		}
		p.enter(ln.State(), ln.Addr().String())
		conn, err := ln.AcceptOne(ctx)
		if err != nil {
			p.fail("Err : %v", err)
			return nil, err
		}
		p.enter(ln.State(), conn.RemoteAddr().String())
		return conn, nil
	case Dialer:
		p.enter(Dialing, ep.String())
		conn, err := Dial(ctx, ep)
		if err != nil {
			p.fail("Cannot connect to %s...", ep)
			return nil, err
		}
		p.enter(Established, ep.String())
		return conn, nil
	}
	return nil, &Error{Op: "establish", Addr: ep.String(), Err: fmt.Errorf("unknown role %v", p.role)}
}
