package dispatch

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/genricoloni/mpris-remote/internal/domain"
	"go.uber.org/zap"
)

// DefaultCommand runs when no command name is given
const DefaultCommand = "verbose-status"

// runFunc issues the remote calls of one validated command and returns its report
type runFunc func(ctx context.Context, p domain.Player) (string, error)

// Command is a fully validated invocation, ready to run against a player
type Command struct {
	name string
	run  runFunc
}

// Name returns the canonical command name
func (c *Command) Name() string {
	return c.name
}

// Info describes one command for help output
type Info struct {
	Name    string
	Aliases []string
	Usage   string
	Short   string
}

// Dispatcher maps command names and raw arguments to remote call sequences
type Dispatcher struct {
	logger *zap.Logger
	stdin  io.Reader
	byName map[string]*entry
}

// NewDispatcher creates a dispatcher reading "-" file lists from os.Stdin
func NewDispatcher(logger *zap.Logger) *Dispatcher {
	d := &Dispatcher{
		logger: logger,
		stdin:  os.Stdin,
		byName: make(map[string]*entry),
	}
	for i := range commands {
		e := &commands[i]
		d.byName[e.name] = e
		for _, alias := range e.aliases {
			d.byName[alias] = e
		}
	}
	return d
}

// SetStdin replaces the reader used for "addtrack -"
func (d *Dispatcher) SetStdin(r io.Reader) {
	d.stdin = r
}

// Commands lists every command in table order
func (d *Dispatcher) Commands() []Info {
	out := make([]Info, 0, len(commands))
	for _, e := range commands {
		out = append(out, Info{
			Name:    e.name,
			Aliases: e.aliases,
			Usage:   e.usage,
			Short:   e.short,
		})
	}
	return out
}

// Parse validates args for the named command. No remote call is made.
// An empty name selects DefaultCommand.
func (d *Dispatcher) Parse(name string, args []string) (*Command, error) {
	if name == "" {
		name = DefaultCommand
	}
	e, ok := d.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown command %q", domain.ErrBadUserInput, name)
	}

	run, err := e.parse(d, args)
	if err != nil {
		d.logger.Debug("Command rejected",
			zap.String("command", e.name),
			zap.Strings("args", args),
			zap.Error(err))
		return nil, err
	}
	return &Command{name: e.name, run: run}, nil
}

// Run issues the command's calls against p, strictly in order, and returns
// the complete report. Nothing is returned on failure.
func (d *Dispatcher) Run(ctx context.Context, cmd *Command, p domain.Player) (string, error) {
	d.logger.Debug("Running command",
		zap.String("command", cmd.name),
		zap.String("player", p.Name()))

	out, err := cmd.run(ctx, p)
	if err != nil {
		return "", fmt.Errorf("%s: %w", cmd.name, err)
	}
	return out, nil
}

// Dispatch validates and runs a command in one step
func (d *Dispatcher) Dispatch(ctx context.Context, p domain.Player, name string, args []string) (string, error) {
	cmd, err := d.Parse(name, args)
	if err != nil {
		return "", err
	}
	return d.Run(ctx, cmd, p)
}
