package mpris

import (
	"context"
	"errors"
	"fmt"

	"github.com/genricoloni/mpris-remote/internal/domain"
	"github.com/godbus/dbus/v5"
)

// Conn defines the interface for D-Bus operations.
// This abstraction allows us to mock D-Bus interactions in tests.
//
//go:generate mockgen -destination=mocks/conn_mock.go -package=mocks github.com/genricoloni/mpris-remote/internal/mpris Conn
type Conn interface {
	// Close closes the D-Bus connection
	Close() error

	// ListNames returns all names on the bus, in bus daemon order
	ListNames(ctx context.Context) ([]string, error)

	// Call invokes method on the object at path owned by dest and returns the reply body.
	// method is the fully qualified member, e.g. "org.freedesktop.MediaPlayer.Play"
	Call(ctx context.Context, dest string, path dbus.ObjectPath, method string, args ...any) ([]any, error)
}

var errNotConnected = errors.New("bus not connected")

// StdConn is the real implementation using godbus.
// It dials on Connect, not on construction.
type StdConn struct {
	bus  string
	conn *dbus.Conn
}

// NewStdConn creates a connection to the session or system bus
func NewStdConn(bus string) *StdConn {
	return &StdConn{bus: bus}
}

// Connect dials the bus
func (c *StdConn) Connect() error {
	var err error
	switch c.bus {
	case "system":
		c.conn, err = dbus.ConnectSystemBus()
	default:
		c.conn, err = dbus.ConnectSessionBus()
	}
	if err != nil {
		return fmt.Errorf("%w: %s bus connection failed: %w", domain.ErrTransport, c.bus, err)
	}
	return nil
}

// Close closes the D-Bus connection
func (c *StdConn) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

// ListNames returns all names on the bus
func (c *StdConn) ListNames(ctx context.Context) ([]string, error) {
	if c.conn == nil {
		return nil, errNotConnected
	}
	var names []string
	err := c.conn.BusObject().CallWithContext(ctx, "org.freedesktop.DBus.ListNames", 0).Store(&names)
	return names, err
}

// Call invokes a method and returns the raw reply body
func (c *StdConn) Call(ctx context.Context, dest string, path dbus.ObjectPath, method string, args ...any) ([]any, error) {
	if c.conn == nil {
		return nil, errNotConnected
	}
	call := c.conn.Object(dest, path).CallWithContext(ctx, method, 0, args...)
	if call.Err != nil {
		return nil, call.Err
	}
	return call.Body, nil
}
