// Package validate converts raw command-line tokens into typed arguments.
// Every rejection wraps domain.ErrBadUserInput.
package validate

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/genricoloni/mpris-remote/internal/domain"
	"go.uber.org/multierr"
)

const (
	maxVolume   = 100
	maxPathLine = 1024 * 1024

	// StdinSource is the file argument that means "read paths from standard input"
	StdinSource = "-"
	// AllTracks is the trackinfo argument that selects every track
	AllTracks = "*"
)

func badInput(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrBadUserInput, fmt.Sprintf(format, args...))
}

// Arity rejects args unless there are between lo and hi of them
func Arity(command string, args []string, lo, hi int) error {
	switch {
	case len(args) < lo:
		return badInput("%s: expected at least %d argument(s), got %d", command, lo, len(args))
	case len(args) > hi:
		return badInput("%s: expected at most %d argument(s), got %d", command, hi, len(args))
	}
	return nil
}

// digitString rejects anything but a non-empty run of ASCII decimal digits
func digitString(what, raw string) error {
	if raw == "" {
		return badInput("%s: empty value", what)
	}
	for _, r := range raw {
		if r < '0' || r > '9' {
			return badInput("%s: %q is not a non-negative decimal integer", what, raw)
		}
	}
	return nil
}

// digits parses a non-empty string made only of ASCII decimal digits
func digits(what, raw string) (uint64, error) {
	if err := digitString(what, raw); err != nil {
		return 0, err
	}
	n, err := strconv.ParseUint(raw, 10, 63)
	if err != nil {
		return 0, badInput("%s: %q is out of range", what, raw)
	}
	return n, nil
}

// Volume accepts a decimal integer from 0 to 100 inclusive
func Volume(raw string) (int, error) {
	n, err := digits("volume", raw)
	if err != nil {
		return 0, err
	}
	if n > maxVolume {
		return 0, badInput("volume: %s is above %d", raw, maxVolume)
	}
	return int(n), nil
}

// Position accepts any non-negative decimal integer, in milliseconds.
// Magnitudes past int64 saturate at math.MaxInt64.
func Position(raw string) (int64, error) {
	if err := digitString("seek position", raw); err != nil {
		return 0, err
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if errors.Is(err, strconv.ErrRange) {
		return math.MaxInt64, nil
	}
	if err != nil {
		return 0, badInput("seek position: %q: %v", raw, err)
	}
	return n, nil
}

// TrackIndex accepts a zero-based non-negative decimal track index.
// Range is not checked; the player owns the track list.
func TrackIndex(raw string) (int, error) {
	n, err := digits("track index", raw)
	if err != nil {
		return 0, err
	}
	if n > uint64(^uint32(0)>>1) {
		return 0, badInput("track index: %s is out of range", raw)
	}
	return int(n), nil
}

// Bool accepts the literal tokens "true" and "false"
func Bool(raw string) (bool, error) {
	switch raw {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, badInput("expected 'true' or 'false', got %q", raw)
	}
}

// OptionalBool returns def when args is empty, otherwise validates args[0]
func OptionalBool(args []string, def bool) (bool, error) {
	if len(args) == 0 {
		return def, nil
	}
	return Bool(args[0])
}

// Path accepts a path that exists, or a URI with a scheme
func Path(raw string) (string, error) {
	if strings.Contains(raw, "://") {
		return raw, nil
	}
	if _, err := os.Stat(raw); err != nil {
		return "", badInput("not a valid path or uri: %s", raw)
	}
	return raw, nil
}

// Paths reads one path per line from r and validates each of them.
// Blank lines are skipped and empty input yields no paths.
// All invalid paths are reported together.
func Paths(r io.Reader) ([]string, error) {
	var (
		paths []string
		errs  error
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxPathLine)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		p, err := Path(line)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		paths = append(paths, p)
	}
	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, badInput("path line longer than %d bytes", maxPathLine)
		}
		return nil, fmt.Errorf("failed to read paths: %w", err)
	}
	if errs != nil {
		return nil, errs
	}
	return paths, nil
}
