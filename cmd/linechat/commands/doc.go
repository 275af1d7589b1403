// Package commands defines the linechat CLI.
//
// Commands
//
//   - listen   Wait for one peer and chat with it
//   - dial     Connect to a listening peer and chat with it
//   - keygen   Write a new key pair to two files
//   - version  Print the program version
//
// # Exit status
//
// Argument and configuration mistakes print the usage text and exit with 0.
// Failures once the arguments were accepted (cannot listen, cannot connect,
// key exchange failed) come back as *ExitError with a non zero Code. A session
// ended by STOP or by the peer closing the connection exits with 0.
package commands
