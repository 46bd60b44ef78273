package dispatch

import (
	"context"

	"github.com/genricoloni/mpris-remote/internal/domain"
	"github.com/genricoloni/mpris-remote/internal/report"
	"github.com/genricoloni/mpris-remote/internal/validate"
)

type entry struct {
	name    string
	aliases []string
	usage   string
	short   string
	parse   func(d *Dispatcher, args []string) (runFunc, error)
}

var commands = []entry{
	{name: "identity", short: "Print the player identity", parse: parseIdentity},
	{name: "quit", short: "Ask the player to exit", parse: action("quit", (domain.Player).Quit)},
	{name: "prev", aliases: []string{"previous"}, short: "Skip to the previous track", parse: action("prev", (domain.Player).Prev)},
	{name: "next", short: "Skip to the next track", parse: action("next", (domain.Player).Next)},
	{name: "stop", short: "Stop playback", parse: action("stop", (domain.Player).Stop)},
	{name: "play", short: "Start playback", parse: action("play", (domain.Player).Play)},
	{name: "pause", short: "Pause playback", parse: action("pause", (domain.Player).Pause)},
	{name: "volume", usage: "[0-100]", short: "Print or set the volume", parse: parseVolume},
	{name: "seek", usage: "[ms]", short: "Print or set the play position", parse: parseSeek},
	{name: "addtrack", usage: "<path|uri|-> [true|false]", short: "Add tracks, optionally playing the first now", parse: parseAddTrack},
	{name: "deltrack", usage: "<index>", short: "Remove a track from the track list", parse: parseDelTrack},
	{name: "clear", short: "Remove every track from the track list", parse: parseClear},
	{name: "random", usage: "[true|false]", short: "Print or set shuffle", parse: flag("random", statusShuffle, (domain.Player).SetRandom)},
	{name: "loop", usage: "[true|false]", short: "Print or set track list looping", parse: flag("loop", statusRepeatList, (domain.Player).SetLoop)},
	{name: "repeat", usage: "[true|false]", short: "Print or set current track repeat", parse: flag("repeat", statusRepeatTrack, (domain.Player).Repeat)},
	{name: "playstatus", short: "Print the play status", parse: parsePlayStatus},
	{name: "trackinfo", usage: "[*|index]", short: "Print track metadata", parse: parseTrackInfo},
	{name: "tracknum", short: "Print the current track index", parse: parseTrackNum},
	{name: "numtracks", short: "Print the number of tracks", parse: parseNumTracks},
	{name: "verbose-status", short: "Print a summary of the current track", parse: parseVerboseStatus},
	{name: "mprisversion", short: "Print the MPRIS version of the player", parse: parseMprisVersion},
	{name: "caps", short: "Print the player capabilities", parse: parseCaps},
}

// noArgs rejects any argument for name
func noArgs(name string, args []string) error {
	return validate.Arity(name, args, 0, 0)
}

// action builds a fixed-arity command issuing a single call
func action(name string, call func(domain.Player, context.Context) error) func(*Dispatcher, []string) (runFunc, error) {
	return func(_ *Dispatcher, args []string) (runFunc, error) {
		if err := noArgs(name, args); err != nil {
			return nil, err
		}
		return func(ctx context.Context, p domain.Player) (string, error) {
			return "", call(p, ctx)
		}, nil
	}
}

// flag builds a command that prints a status field with no argument and
// sets it with a true/false argument
func flag(name string, get func(domain.Status) bool, set func(domain.Player, context.Context, bool) error) func(*Dispatcher, []string) (runFunc, error) {
	return func(_ *Dispatcher, args []string) (runFunc, error) {
		if err := validate.Arity(name, args, 0, 1); err != nil {
			return nil, err
		}
		if len(args) == 0 {
			return func(ctx context.Context, p domain.Player) (string, error) {
				s, err := p.Status(ctx)
				if err != nil {
					return "", err
				}
				return report.Bool(get(s)), nil
			}, nil
		}
		on, err := validate.Bool(args[0])
		if err != nil {
			return nil, err
		}
		return func(ctx context.Context, p domain.Player) (string, error) {
			return "", set(p, ctx, on)
		}, nil
	}
}

func statusShuffle(s domain.Status) bool { return s.Shuffle }
func statusRepeatList(s domain.Status) bool { return s.RepeatList }
func statusRepeatTrack(s domain.Status) bool { return s.RepeatTrack }

func parseIdentity(_ *Dispatcher, args []string) (runFunc, error) {
	if err := noArgs("identity", args); err != nil {
		return nil, err
	}
	return func(ctx context.Context, p domain.Player) (string, error) {
		id, err := p.Identity(ctx)
		if err != nil {
			return "", err
		}
		return report.Line(id), nil
	}, nil
}

func parseVolume(_ *Dispatcher, args []string) (runFunc, error) {
	if err := validate.Arity("volume", args, 0, 1); err != nil {
		return nil, err
	}
	if len(args) == 0 {
		return func(ctx context.Context, p domain.Player) (string, error) {
			v, err := p.Volume(ctx)
			if err != nil {
				return "", err
			}
			return report.Int(int64(v)), nil
		}, nil
	}
	level, err := validate.Volume(args[0])
	if err != nil {
		return nil, err
	}
	return func(ctx context.Context, p domain.Player) (string, error) {
		return "", p.SetVolume(ctx, level)
	}, nil
}

func parseSeek(_ *Dispatcher, args []string) (runFunc, error) {
	if err := validate.Arity("seek", args, 0, 1); err != nil {
		return nil, err
	}
	if len(args) == 0 {
		return func(ctx context.Context, p domain.Player) (string, error) {
			ms, err := p.Position(ctx)
			if err != nil {
				return "", err
			}
			return report.Int(ms), nil
		}, nil
	}
	ms, err := validate.Position(args[0])
	if err != nil {
		return nil, err
	}
	return func(ctx context.Context, p domain.Player) (string, error) {
		return "", p.SetPosition(ctx, ms)
	}, nil
}

// parseAddTrack validates the play-now flag and every path before any call.
// Only the first path may start playing; the rest are enqueued.
func parseAddTrack(d *Dispatcher, args []string) (runFunc, error) {
	if err := validate.Arity("addtrack", args, 1, 2); err != nil {
		return nil, err
	}
	playNow, err := validate.OptionalBool(args[1:], false)
	if err != nil {
		return nil, err
	}

	var paths []string
	if args[0] == validate.StdinSource {
		paths, err = validate.Paths(d.stdin)
	} else {
		var path string
		path, err = validate.Path(args[0])
		paths = []string{path}
	}
	if err != nil {
		return nil, err
	}

	return func(ctx context.Context, p domain.Player) (string, error) {
		for i, path := range paths {
			if err := p.AddTrack(ctx, path, playNow && i == 0); err != nil {
				return "", err
			}
		}
		return "", nil
	}, nil
}

func parseDelTrack(_ *Dispatcher, args []string) (runFunc, error) {
	if err := validate.Arity("deltrack", args, 1, 1); err != nil {
		return nil, err
	}
	index, err := validate.TrackIndex(args[0])
	if err != nil {
		return nil, err
	}
	return func(ctx context.Context, p domain.Player) (string, error) {
		return "", p.DelTrack(ctx, index)
	}, nil
}

func parseClear(_ *Dispatcher, args []string) (runFunc, error) {
	if err := noArgs("clear", args); err != nil {
		return nil, err
	}
	return func(ctx context.Context, p domain.Player) (string, error) {
		n, err := p.Length(ctx)
		if err != nil {
			return "", err
		}
		for i := 0; i < n; i++ {
			if err := p.DelTrack(ctx, 0); err != nil {
				return "", err
			}
		}
		return "", nil
	}, nil
}

func parsePlayStatus(_ *Dispatcher, args []string) (runFunc, error) {
	if err := noArgs("playstatus", args); err != nil {
		return nil, err
	}
	return func(ctx context.Context, p domain.Player) (string, error) {
		s, err := p.Status(ctx)
		if err != nil {
			return "", err
		}
		return report.PlayStatus(s), nil
	}, nil
}

func parseTrackInfo(_ *Dispatcher, args []string) (runFunc, error) {
	if err := validate.Arity("trackinfo", args, 0, 1); err != nil {
		return nil, err
	}

	switch {
	case len(args) == 0:
		return func(ctx context.Context, p domain.Player) (string, error) {
			m, err := p.Metadata(ctx)
			if err != nil {
				return "", err
			}
			return report.Dump(m), nil
		}, nil

	case args[0] == validate.AllTracks:
		return func(ctx context.Context, p domain.Player) (string, error) {
			n, err := p.Length(ctx)
			if err != nil {
				return "", err
			}
			records := make([]domain.Metadata, 0, n)
			for i := 0; i < n; i++ {
				m, err := p.TrackMetadata(ctx, i)
				if err != nil {
					return "", err
				}
				records = append(records, m)
			}
			return report.DumpAll(records), nil
		}, nil
	}

	index, err := validate.TrackIndex(args[0])
	if err != nil {
		return nil, err
	}
	return func(ctx context.Context, p domain.Player) (string, error) {
		m, err := p.TrackMetadata(ctx, index)
		if err != nil {
			return "", err
		}
		return report.Dump(m), nil
	}, nil
}

func parseTrackNum(_ *Dispatcher, args []string) (runFunc, error) {
	if err := noArgs("tracknum", args); err != nil {
		return nil, err
	}
	return func(ctx context.Context, p domain.Player) (string, error) {
		n, err := p.CurrentTrack(ctx)
		if err != nil {
			return "", err
		}
		return report.Int(int64(n)), nil
	}, nil
}

func parseNumTracks(_ *Dispatcher, args []string) (runFunc, error) {
	if err := noArgs("numtracks", args); err != nil {
		return nil, err
	}
	return func(ctx context.Context, p domain.Player) (string, error) {
		n, err := p.Length(ctx)
		if err != nil {
			return "", err
		}
		return report.Int(int64(n)), nil
	}, nil
}

// parseVerboseStatus reads status, length, current index, position and
// metadata, in that order
func parseVerboseStatus(_ *Dispatcher, args []string) (runFunc, error) {
	if err := noArgs("verbose-status", args); err != nil {
		return nil, err
	}
	return func(ctx context.Context, p domain.Player) (string, error) {
		var (
			v   report.Verbose
			err error
		)
		if v.Status, err = p.Status(ctx); err != nil {
			return "", err
		}
		if v.Length, err = p.Length(ctx); err != nil {
			return "", err
		}
		if v.Current, err = p.CurrentTrack(ctx); err != nil {
			return "", err
		}
		if v.PositionMS, err = p.Position(ctx); err != nil {
			return "", err
		}
		if v.Metadata, err = p.Metadata(ctx); err != nil {
			return "", err
		}
		return report.VerboseStatus(v), nil
	}, nil
}

func parseMprisVersion(_ *Dispatcher, args []string) (runFunc, error) {
	if err := noArgs("mprisversion", args); err != nil {
		return nil, err
	}
	return func(ctx context.Context, p domain.Player) (string, error) {
		v, err := p.MprisVersion(ctx)
		if err != nil {
			return "", err
		}
		return report.Version(v), nil
	}, nil
}

func parseCaps(_ *Dispatcher, args []string) (runFunc, error) {
	if err := noArgs("caps", args); err != nil {
		return nil, err
	}
	return func(ctx context.Context, p domain.Player) (string, error) {
		c, err := p.Caps(ctx)
		if err != nil {
			return "", err
		}
		return report.Caps(c), nil
	}, nil
}
