package domain

import "errors"

// Error kinds. Wrap them with fmt.Errorf("...: %w", kind) and match with errors.Is.
var (
	// ErrBadUserInput means an argument failed validation; no remote call was issued
	ErrBadUserInput = errors.New("bad user input")
	// ErrNoPlayersRunning means discovery found no player at all
	ErrNoPlayersRunning = errors.New("no players running")
	// ErrRequestedPlayerNotRunning means the named player is not among the running ones
	ErrRequestedPlayerNotRunning = errors.New("requested player not running")
	// ErrProtocol means the player answered with a payload of the wrong shape
	ErrProtocol = errors.New("protocol error")
	// ErrTransport means the remote call itself failed
	ErrTransport = errors.New("transport error")
)

// Exit codes
const (
	ExitOK         = 0
	ExitRuntime    = 1
	ExitBadInput   = 2
	ExitNoPlayers  = 3
	ExitNotRunning = 4
	ExitProtocol   = 5
)

// ExitCode returns the process exit code for err
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrBadUserInput):
		return ExitBadInput
	case errors.Is(err, ErrNoPlayersRunning):
		return ExitNoPlayers
	case errors.Is(err, ErrRequestedPlayerNotRunning):
		return ExitNotRunning
	case errors.Is(err, ErrProtocol):
		return ExitProtocol
	default:
		return ExitRuntime
	}
}
