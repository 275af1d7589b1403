// Package framing - newline delimited line transport on top of a raw connection.
//
// Every payload goes through cipher.Encode on the way out and is checked with
// cipher.IsAuthentic before cipher.Decode on the way in. A Conn is shared by
// two goroutines: one only calls SendLine, the other only calls RecvLine.
package framing

import (
	"bufio"
	"bytes"
	"errors"
	"io"

	"github.com/rectcircle/linechat/internal/cipher"
	"github.com/rectcircle/linechat/internal/keys"
	"github.com/rectcircle/linechat/internal/variable"
	"github.com/rectcircle/linechat/tools"
)

var (
	// ErrNotAuthentic - received line has no marker, discard it and read again
	ErrNotAuthentic = cipher.ErrNotAuthentic
	// ErrEmptyFrame - received an empty line, read again
	ErrEmptyFrame = errors.New("empty frame")
	// ErrUnframeable - the encoded payload would contain the line delimiter
	ErrUnframeable = errors.New("payload contains a byte which encodes to the line delimiter")
)

// Conn - framed view of a connection
type Conn struct {
	writer io.Writer
	reader *bufio.Reader
}

// New - wrap rw. All reads of rw must go through the returned Conn from now
// on, its buffer may hold bytes read ahead
func New(rw io.ReadWriter) *Conn {
	return &Conn{
		writer: rw,
		reader: bufio.NewReader(rw),
	}
}

// SendLine - encode plain, append the delimiter and write it in one call.
// Return the bytes written
func (c *Conn) SendLine(plain string, key keys.Key) (int, error) {
	wire := cipher.Encode([]byte(plain), key)
	if bytes.IndexByte(wire, variable.LineDelimiter) >= 0 {
		return 0, ErrUnframeable
	}
	wire = append(wire, variable.LineDelimiter)
	n, err := c.writer.Write(wire)
	tools.TraceF("send frame: %d/%d bytes, err = %v\n", n, len(wire), err)
	if err != nil {
		return 0, err
	}
	return n, nil
}

// RecvLine - block until one full line is read, return the decoded text and
// the bytes read from the wire. A non authentic line returns ErrNotAuthentic
// and is never decoded. io.EOF means the peer closed the connection
func (c *Conn) RecvLine(key keys.Key) (string, int, error) {
	line, err := c.reader.ReadBytes(variable.LineDelimiter)
	n := len(line)
	if err != nil {
		// a partial line before EOF is dropped
		tools.TraceF("recv frame: %d bytes, err = %v\n", n, err)
		return "", n, err
	}
	wire := trimDelimiter(line)
	tools.TraceF("recv frame: %d bytes\n", n)
	if len(wire) == 0 {
		return "", n, ErrEmptyFrame
	}
	if !cipher.IsAuthentic(wire) {
		return "", n, ErrNotAuthentic
	}
	plain, err := cipher.Decode(wire, key)
	if err != nil {
		return "", n, err
	}
	return string(plain), n, nil
}

// WriteRawLine - write text and the delimiter without encoding, used by the
// key exchange
func (c *Conn) WriteRawLine(text string) (int, error) {
	return c.writer.Write(append([]byte(text), variable.LineDelimiter))
}

// ReadRawLine - read one line without decoding, the delimiter is stripped
func (c *Conn) ReadRawLine() (string, error) {
	line, err := c.reader.ReadBytes(variable.LineDelimiter)
	if err != nil {
		return "", err
	}
	return string(trimDelimiter(line)), nil
}

func trimDelimiter(line []byte) []byte {
	line = bytes.TrimSuffix(line, []byte{variable.LineDelimiter})
	return bytes.TrimSuffix(line, []byte{'\r'})
}
