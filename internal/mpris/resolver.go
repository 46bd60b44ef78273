package mpris

import (
	"context"
	"fmt"
	"strings"

	"github.com/genricoloni/mpris-remote/internal/domain"
	"go.uber.org/zap"
)

const (
	// BusPrefix is the well-known name prefix of MPRIS v1 players
	BusPrefix = "org.mpris."
	// mpris2Prefix names players that only speak MPRIS v2
	mpris2Prefix = "org.mpris.MediaPlayer2."
)

// Resolver discovers running players and binds a handle to one of them
type Resolver struct {
	logger  *zap.Logger
	conn    Conn
	running []string
}

// NewResolver creates a resolver over conn
func NewResolver(logger *zap.Logger, conn Conn) *Resolver {
	return &Resolver{
		logger: logger,
		conn:   conn,
	}
}

// Running returns the players found by the last Resolve, in discovery order
func (r *Resolver) Running() []string {
	return r.running
}

// Resolve binds a handle to the requested player, or to the first one
// discovered when requested is empty.
func (r *Resolver) Resolve(ctx context.Context, requested string) (*Player, error) {
	names, err := r.conn.ListNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list bus names: %w", domain.ErrTransport, err)
	}

	r.running = []string{}
	for _, name := range names {
		if strings.HasPrefix(name, BusPrefix) && !strings.HasPrefix(name, mpris2Prefix) {
			r.running = append(r.running, name)
			r.logger.Debug("Detected MPRIS player", zap.String("name", name))
		}
	}

	if len(r.running) == 0 {
		return nil, domain.ErrNoPlayersRunning
	}

	if requested == "" {
		r.logger.Debug("No player requested, using first found",
			zap.String("player", r.running[0]),
			zap.Int("count", len(r.running)))
		return NewPlayer(r.logger, r.conn, r.running[0]), nil
	}

	want := requested
	if !strings.HasPrefix(want, BusPrefix) {
		want = BusPrefix + want
	}
	for _, name := range r.running {
		if name == want {
			return NewPlayer(r.logger, r.conn, name), nil
		}
	}

	return nil, fmt.Errorf("%w: %s (running: %s)",
		domain.ErrRequestedPlayerNotRunning, requested, strings.Join(r.running, ", "))
}
