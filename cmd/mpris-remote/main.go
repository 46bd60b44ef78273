package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/genricoloni/mpris-remote/internal/config"
	"github.com/genricoloni/mpris-remote/internal/dispatch"
	"github.com/genricoloni/mpris-remote/internal/domain"
	"github.com/genricoloni/mpris-remote/internal/mpris"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// AppOptions provides every component of one invocation.
// The caller supplies a *config.AppConfig.
var AppOptions = fx.Options(
	fx.Provide(
		asConfig,
		newLogger,
		newConn,
		mpris.NewResolver,
		dispatch.NewDispatcher,
	),
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := execute(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}

// execute runs one invocation and returns the process exit code.
// extra options are appended to the app, after AppOptions.
func execute(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer, extra ...fx.Option) int {
	c := &cli{extra: extra}
	root := c.rootCmd()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if err != nil && !c.invoked {
		// cobra rejected the command line before any command ran
		err = fmt.Errorf("%w: %w", domain.ErrBadUserInput, err)
	}
	if err != nil {
		fmt.Fprintf(stderr, "mpris-remote: %v\n", err)
	}
	return domain.ExitCode(err)
}

type cli struct {
	player     string
	configPath string
	verbose    bool
	invoked    bool
	extra      []fx.Option
}

func (c *cli) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:              "mpris-remote [command] [args...]",
		Short:            "Control MPRIS v1 media players over D-Bus",
		Long:             "Control MPRIS v1 media players over D-Bus. With no command, prints a summary of the current track.",
		Args:             cobra.ArbitraryArgs,
		TraverseChildren: true,
		SilenceErrors:    true,
		SilenceUsage:     true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return c.invoke(cmd, dispatch.DefaultCommand, nil)
			}
			return c.invoke(cmd, args[0], args[1:])
		},
	}

	root.CompletionOptions.DisableDefaultCmd = true

	flags := root.PersistentFlags()
	flags.StringVarP(&c.player, "player", "p", "", "player bus name, with or without the org.mpris. prefix")
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "log bus traffic to stderr")
	flags.StringVarP(&c.configPath, "config", "c", "", "config file path")

	// Commands are registered from the dispatcher table. Flag parsing is
	// left to the validators so tokens like "-1" reach them untouched.
	for _, info := range dispatch.NewDispatcher(zap.NewNop()).Commands() {
		name := info.Name
		use := name
		if info.Usage != "" {
			use += " " + info.Usage
		}
		root.AddCommand(&cobra.Command{
			Use:                use,
			Aliases:            info.Aliases,
			Short:              info.Short,
			DisableFlagParsing: true,
			RunE: func(cmd *cobra.Command, args []string) error {
				return c.invoke(cmd, name, args)
			},
		})
	}

	return root
}

// invoke validates the command, then connects, resolves the player and
// runs it. Output is written only after every call succeeded.
func (c *cli) invoke(cmd *cobra.Command, name string, args []string) error {
	c.invoked = true

	opts := config.Options{Path: c.configPath, Player: c.player}
	if c.verbose {
		opts.LogLevel = "debug"
	}
	cfg, err := config.Load(opts)
	if err != nil {
		return err
	}

	var (
		logger     *zap.Logger
		dispatcher *dispatch.Dispatcher
		resolver   *mpris.Resolver
	)
	app := fx.New(
		AppOptions,
		fx.Supply(cfg),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Populate(&logger, &dispatcher, &resolver),
		fx.Options(c.extra...),
	)
	if err := app.Err(); err != nil {
		return err
	}
	cfg.Log(logger)

	dispatcher.SetStdin(cmd.InOrStdin())
	command, err := dispatcher.Parse(name, args)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if err := app.Start(ctx); err != nil {
		return err
	}

	out, err := c.run(ctx, cfg, resolver, dispatcher, command)
	err = multierr.Append(err, app.Stop(context.Background()))
	if err != nil {
		return err
	}

	_, err = io.WriteString(cmd.OutOrStdout(), out)
	return err
}

func (c *cli) run(ctx context.Context, cfg domain.Config, r *mpris.Resolver, d *dispatch.Dispatcher, command *dispatch.Command) (string, error) {
	p, err := r.Resolve(ctx, cfg.GetPlayer())
	if err != nil {
		return "", err
	}
	return d.Run(ctx, command, p)
}

func asConfig(cfg *config.AppConfig) domain.Config {
	return cfg
}

// newLogger creates a production zap logger writing to stderr at the
// configured level
func newLogger(cfg domain.Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.GetLogLevel())
	if err != nil {
		return nil, fmt.Errorf("%w: invalid log level %q", domain.ErrBadUserInput, cfg.GetLogLevel())
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.Sampling = nil
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}
	return zc.Build()
}

// newConn provides the bus connection. It dials when the app starts and
// closes when it stops.
func newConn(lc fx.Lifecycle, cfg domain.Config, logger *zap.Logger) mpris.Conn {
	conn := mpris.NewStdConn(cfg.GetBus())
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Debug("Connecting to bus", zap.String("bus", cfg.GetBus()))
			return conn.Connect()
		},
		OnStop: func(ctx context.Context) error {
			logger.Debug("Closing bus connection")
			return conn.Close()
		},
	})
	return conn
}
