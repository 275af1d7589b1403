package variable

import (
	"log"
	"os"
	"os/user"
	"path"
)

var (
	// ConfigBaseDir - the project config dir
	ConfigBaseDir string
	// ConfigFileName - yaml config file name under ConfigBaseDir
	ConfigFileName string = "config.yaml"
	// PrivateKeyFileName - default private key file name under ConfigBaseDir
	PrivateKeyFileName string = "linechat.key"
	// PublicKeyFileName - default public key file name under ConfigBaseDir
	PublicKeyFileName string = "linechat.pub"
	// Trace - whether print trace log, see tools.TraceF
	Trace bool = os.Getenv("LINECHAT_TRACE") == "1"
)

const (
	// StopSentinel - the line which terminates a session, compared after trimming trailing whitespace
	StopSentinel = "STOP"
	// AuthMarker - appended to every encoded frame, checked before decoding
	AuthMarker = "33"
	// LineDelimiter - frame terminator on the wire
	LineDelimiter = byte('\n')
	// DefaultHost - default host to listen on or dial
	DefaultHost = "127.0.0.1"
	// DefaultPort - default TCP port
	DefaultPort = uint16(6000)
	// DefaultPrompt - prompt shown by the terminal line editor
	DefaultPrompt = "> "
	// Version - program version
	Version = "1.0.0"
)

func init() {
	u, err := user.Current()
	if err != nil {
		log.Printf("Warning: %s, config dir fall back to working dir\n", err.Error())
		ConfigBaseDir = ".linechat"
		return
	}
	ConfigBaseDir = path.Join(u.HomeDir, ".linechat")
}
