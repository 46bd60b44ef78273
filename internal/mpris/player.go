package mpris

import (
	"context"
	"fmt"
	"math"

	"github.com/genricoloni/mpris-remote/internal/domain"
	"github.com/godbus/dbus/v5"
	"go.uber.org/zap"
)

// Interface implemented by every MPRIS v1 object
const Interface = "org.freedesktop.MediaPlayer"

// Object paths
const (
	RootPath      dbus.ObjectPath = "/"
	PlayerPath    dbus.ObjectPath = "/Player"
	TrackListPath dbus.ObjectPath = "/TrackList"
)

var _ domain.Player = (*Player)(nil)

// Player is a handle bound to one player bus name. It holds no remote state.
type Player struct {
	logger *zap.Logger
	conn   Conn
	name   string
}

// NewPlayer binds a handle to the given bus name
func NewPlayer(logger *zap.Logger, conn Conn, name string) *Player {
	return &Player{
		logger: logger,
		conn:   conn,
		name:   name,
	}
}

// Name returns the bus name the handle is bound to
func (p *Player) Name() string {
	return p.name
}

// call issues one remote call and wraps failures as transport errors
func (p *Player) call(ctx context.Context, path dbus.ObjectPath, member string, args ...any) ([]any, error) {
	p.logger.Debug("Calling player",
		zap.String("player", p.name),
		zap.String("path", string(path)),
		zap.String("member", member),
		zap.Any("args", args))

	body, err := p.conn.Call(ctx, p.name, path, Interface+"."+member, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %w", domain.ErrTransport, path, member, err)
	}
	return body, nil
}

// callInt issues a call whose reply is a single integer
func (p *Player) callInt(ctx context.Context, path dbus.ObjectPath, member string, args ...any) (int64, error) {
	body, err := p.call(ctx, path, member, args...)
	if err != nil {
		return 0, err
	}
	if len(body) != 1 {
		return 0, fmt.Errorf("%w: %s returned %d values, want 1", domain.ErrProtocol, member, len(body))
	}
	n, ok := domain.Int64(body[0])
	if !ok {
		return 0, fmt.Errorf("%w: %s returned %T, want integer", domain.ErrProtocol, member, body[0])
	}
	return n, nil
}

func (p *Player) callMetadata(ctx context.Context, path dbus.ObjectPath, member string, args ...any) (domain.Metadata, error) {
	body, err := p.call(ctx, path, member, args...)
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return domain.Metadata{}, nil
	}
	return DecodeMetadata(body[0])
}

func (p *Player) exec(ctx context.Context, path dbus.ObjectPath, member string, args ...any) error {
	_, err := p.call(ctx, path, member, args...)
	return err
}

// Identity returns the player's identity string
func (p *Player) Identity(ctx context.Context) (string, error) {
	body, err := p.call(ctx, RootPath, "Identity")
	if err != nil {
		return "", err
	}
	if len(body) != 1 {
		return "", fmt.Errorf("%w: Identity returned %d values, want 1", domain.ErrProtocol, len(body))
	}
	s, ok := body[0].(string)
	if !ok {
		return "", fmt.Errorf("%w: Identity returned %T, want string", domain.ErrProtocol, body[0])
	}
	return s, nil
}

// Quit asks the player to exit
func (p *Player) Quit(ctx context.Context) error {
	return p.exec(ctx, RootPath, "Quit")
}

// MprisVersion returns the protocol version implemented by the player
func (p *Player) MprisVersion(ctx context.Context) (domain.Version, error) {
	body, err := p.call(ctx, RootPath, "MprisVersion")
	if err != nil {
		return domain.Version{}, err
	}
	if len(body) != 1 {
		return domain.Version{}, fmt.Errorf("%w: MprisVersion returned %d values, want 1", domain.ErrProtocol, len(body))
	}
	fields, ok := body[0].([]any)
	if !ok || len(fields) != 2 {
		return domain.Version{}, fmt.Errorf("%w: MprisVersion returned %v, want (qq)", domain.ErrProtocol, body[0])
	}
	major, ok1 := domain.Int64(fields[0])
	minor, ok2 := domain.Int64(fields[1])
	if !ok1 || !ok2 {
		return domain.Version{}, fmt.Errorf("%w: MprisVersion returned %v, want (qq)", domain.ErrProtocol, body[0])
	}
	return domain.Version{Major: uint16(major), Minor: uint16(minor)}, nil
}

// Prev skips to the previous track
func (p *Player) Prev(ctx context.Context) error {
	return p.exec(ctx, PlayerPath, "Prev")
}

// Next skips to the next track
func (p *Player) Next(ctx context.Context) error {
	return p.exec(ctx, PlayerPath, "Next")
}

// Stop stops playback
func (p *Player) Stop(ctx context.Context) error {
	return p.exec(ctx, PlayerPath, "Stop")
}

// Play starts playback
func (p *Player) Play(ctx context.Context) error {
	return p.exec(ctx, PlayerPath, "Play")
}

// Pause pauses playback
func (p *Player) Pause(ctx context.Context) error {
	return p.exec(ctx, PlayerPath, "Pause")
}

// Repeat toggles repeating of the current track
func (p *Player) Repeat(ctx context.Context, on bool) error {
	return p.exec(ctx, PlayerPath, "Repeat", on)
}

// Status reads and decodes the status tuple
func (p *Player) Status(ctx context.Context) (domain.Status, error) {
	body, err := p.call(ctx, PlayerPath, "GetStatus")
	if err != nil {
		return domain.Status{}, err
	}
	if len(body) != 1 {
		return domain.Status{}, fmt.Errorf("%w: GetStatus returned %d values, want 1", domain.ErrProtocol, len(body))
	}
	fields, ok := body[0].([]any)
	if !ok {
		return domain.Status{}, fmt.Errorf("%w: GetStatus returned %T, want (iiii)", domain.ErrProtocol, body[0])
	}
	return DecodeStatus(fields)
}

// Metadata reads the metadata of the current track
func (p *Player) Metadata(ctx context.Context) (domain.Metadata, error) {
	return p.callMetadata(ctx, PlayerPath, "GetMetadata")
}

// Caps reads the capability bitmask
func (p *Player) Caps(ctx context.Context) (domain.Caps, error) {
	n, err := p.callInt(ctx, PlayerPath, "GetCaps")
	return domain.Caps(n), err
}

// SetVolume sets the output level (0-100)
func (p *Player) SetVolume(ctx context.Context, level int) error {
	return p.exec(ctx, PlayerPath, "VolumeSet", int32(level))
}

// Volume reads the output level
func (p *Player) Volume(ctx context.Context) (int, error) {
	n, err := p.callInt(ctx, PlayerPath, "VolumeGet")
	return int(n), err
}

// SetPosition seeks to ms. Positions past the int32 range seek to the end.
func (p *Player) SetPosition(ctx context.Context, ms int64) error {
	if ms > math.MaxInt32 {
		ms = math.MaxInt32
	}
	return p.exec(ctx, PlayerPath, "PositionSet", int32(ms))
}

// Position reads the play position in milliseconds
func (p *Player) Position(ctx context.Context) (int64, error) {
	return p.callInt(ctx, PlayerPath, "PositionGet")
}

// TrackMetadata reads the metadata of the track at index
func (p *Player) TrackMetadata(ctx context.Context, index int) (domain.Metadata, error) {
	return p.callMetadata(ctx, TrackListPath, "GetMetadata", int32(index))
}

// CurrentTrack reads the zero-based index of the current track
func (p *Player) CurrentTrack(ctx context.Context) (int, error) {
	n, err := p.callInt(ctx, TrackListPath, "GetCurrentTrack")
	return int(n), err
}

// Length reads the number of tracks in the track list
func (p *Player) Length(ctx context.Context) (int, error) {
	n, err := p.callInt(ctx, TrackListPath, "GetLength")
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: GetLength returned %d", domain.ErrProtocol, n)
	}
	return int(n), nil
}

// AddTrack appends uri to the track list, optionally starting it immediately
func (p *Player) AddTrack(ctx context.Context, uri string, playNow bool) error {
	return p.exec(ctx, TrackListPath, "AddTrack", uri, playNow)
}

// DelTrack removes the track at index
func (p *Player) DelTrack(ctx context.Context, index int) error {
	return p.exec(ctx, TrackListPath, "DelTrack", int32(index))
}

// SetLoop toggles looping of the whole track list
func (p *Player) SetLoop(ctx context.Context, on bool) error {
	return p.exec(ctx, TrackListPath, "SetLoop", on)
}

// SetRandom toggles shuffle
func (p *Player) SetRandom(ctx context.Context, on bool) error {
	return p.exec(ctx, TrackListPath, "SetRandom", on)
}
