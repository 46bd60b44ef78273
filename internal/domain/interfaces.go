package domain

import "context"

// Player is a handle bound to one running media player.
// Every method issues exactly one remote call; nothing is cached.
type Player interface {
	// Name returns the bus name the handle is bound to
	Name() string

	// Root object
	Identity(ctx context.Context) (string, error)
	Quit(ctx context.Context) error
	MprisVersion(ctx context.Context) (Version, error)

	// Active player
	Prev(ctx context.Context) error
	Next(ctx context.Context) error
	Stop(ctx context.Context) error
	Play(ctx context.Context) error
	Pause(ctx context.Context) error
	Repeat(ctx context.Context, on bool) error
	Status(ctx context.Context) (Status, error)
	Metadata(ctx context.Context) (Metadata, error)
	Caps(ctx context.Context) (Caps, error)
	SetVolume(ctx context.Context, level int) error
	Volume(ctx context.Context) (int, error)
	SetPosition(ctx context.Context, ms int64) error
	Position(ctx context.Context) (int64, error)

	// Track list
	TrackMetadata(ctx context.Context, index int) (Metadata, error)
	CurrentTrack(ctx context.Context) (int, error)
	Length(ctx context.Context) (int, error)
	AddTrack(ctx context.Context, uri string, playNow bool) error
	DelTrack(ctx context.Context, index int) error
	SetLoop(ctx context.Context, on bool) error
	SetRandom(ctx context.Context, on bool) error
}

// Config defines the interface for application configuration
type Config interface {
	// GetPlayer returns the default player name, empty for "first found"
	GetPlayer() string

	// GetLogLevel returns the zap level name
	GetLogLevel() string

	// GetBus returns which message bus to connect to ("session" or "system")
	GetBus() string
}
