package domain

import "strconv"

// PlayState represents the transport state reported by the player
type PlayState int

const (
	// StatePlaying indicates the media is currently playing
	StatePlaying PlayState = 0
	// StatePaused indicates the media is paused
	StatePaused PlayState = 1
	// StateStopped indicates the media is stopped
	StateStopped PlayState = 2
)

// String returns the lowercase label used in reports
func (s PlayState) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Status is the decoded four-field status tuple
type Status struct {
	// State is the current transport state
	State PlayState
	// Shuffle is true when random playback is enabled
	Shuffle bool
	// RepeatTrack is true when the current track repeats
	RepeatTrack bool
	// RepeatList is true when the whole track list loops
	RepeatList bool
}

// MetaEntry is one key/value pair of a metadata record
type MetaEntry struct {
	Key   string
	Value any
}

// Metadata describes one track. Entries keep the order they were received in.
type Metadata []MetaEntry

// Get returns the value stored under key
func (m Metadata) Get(key string) (any, bool) {
	for _, e := range m {
		if e.Key == key {
			return e.Value, true
		}
	}
	return nil, false
}

// Int returns the value under key as an integer. Some players send numeric
// fields such as "time" as decimal strings, so those are accepted too.
func (m Metadata) Int(key string) (int64, bool) {
	v, ok := m.Get(key)
	if !ok {
		return 0, false
	}
	if s, ok := v.(string); ok {
		n, err := strconv.ParseInt(s, 10, 64)
		return n, err == nil
	}
	return Int64(v)
}

// Int64 converts any of the integer types godbus decodes into int64
func Int64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		return int64(n), true
	default:
		return 0, false
	}
}

// Caps is the MPRIS v1 capability bitmask
type Caps int32

// Capability bits, in wire order
const (
	CapGoNext Caps = 1 << iota
	CapGoPrev
	CapPause
	CapPlay
	CapSeek
	CapProvideMetadata
	CapHasTracklist
)

// Names returns the label of every set capability bit, lowest bit first
func (c Caps) Names() []string {
	labels := []string{
		"can-go-next",
		"can-go-prev",
		"can-pause",
		"can-play",
		"can-seek",
		"can-provide-metadata",
		"can-has-tracklist",
	}
	var out []string
	for i, label := range labels {
		if c&(1<<i) != 0 {
			out = append(out, label)
		}
	}
	return out
}

// Version is the protocol version reported by the player root object
type Version struct {
	Major uint16
	Minor uint16
}
